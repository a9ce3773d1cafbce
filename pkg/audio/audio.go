// Package audio plays the synthesizer's PCM through one of several
// backends, or writes it to a WAV file.
package audio

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Source produces mono 16-bit PCM on demand. It is pulled from the
// backend's own goroutine.
type Source interface {
	Samples(out []int16) int
	SampleRate() int
}

// Player is an open audio backend.
type Player interface {
	Play() error
	Close() error
}

type opener func(src Source) (Player, error)

var (
	backendsMu sync.Mutex
	backends   = map[string]opener{}
)

func register(name string, fn opener) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = fn
}

// Backends returns the names of the available backends.
func Backends() []string {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens the named backend, pulling samples from src.
func Open(name string, src Source) (Player, error) {
	backendsMu.Lock()
	fn, ok := backends[name]
	backendsMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("audio: unknown backend %q (have %v)", name, Backends())
	}
	p, err := fn(src)
	if err != nil {
		return nil, fmt.Errorf("audio: %s: %w", name, err)
	}
	return p, nil
}

func init() {
	register("none", newNullPlayer)
}

// nullPlayer pulls and discards samples in real time, so that a synth
// without a sound device still runs at the right speed.
type nullPlayer struct {
	src  Source
	buf  []int16
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

const nullInterval = 10 * time.Millisecond

func newNullPlayer(src Source) (Player, error) {
	return &nullPlayer{
		src:  src,
		buf:  make([]int16, src.SampleRate()*int(nullInterval)/int(time.Second)),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}, nil
}

func (p *nullPlayer) Play() error {
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(nullInterval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.src.Samples(p.buf)
			}
		}
	}()
	return nil
}

func (p *nullPlayer) Close() error {
	p.once.Do(func() {
		close(p.stop)
	})
	return nil
}
