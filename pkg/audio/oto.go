//go:build !test

package audio

import (
	"encoding/binary"
	"sync"

	"github.com/ebitengine/oto/v3"
)

type otoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	src    Source
	buf    []int16

	mu     sync.Mutex
	closed bool
}

func init() {
	register("oto", openOto)
}

func openOto(src Source) (Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := &otoPlayer{ctx: ctx, src: src, buf: make([]int16, 2048)}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read is called by oto for more PCM.
func (p *otoPlayer) Read(b []byte) (int, error) {
	n := len(b) / 2
	if len(p.buf) < n {
		p.buf = make([]int16, n)
	}
	samples := p.buf[:n]
	p.src.Samples(samples)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}
	return n * 2, nil
}

func (p *otoPlayer) Play() error {
	p.player.Play()
	return p.player.Err()
}

func (p *otoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.player.Close()
}
