//go:build !test

// Package midiin connects a hardware or virtual MIDI input port to the
// synthesizer's note receiver.
package midiin

import (
	"fmt"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/thelolagemann/onebit/pkg/log"
)

// Port is an open input port forwarding every message to a
// byte-oriented sink, one byte at a time, as a serial line would.
type Port struct {
	drv  *rtmididrv.Driver
	in   drivers.In
	stop func()
	log  log.Logger

	mu     sync.Mutex
	closed bool
}

// Ports lists the available input ports.
func Ports() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("midiin: %w", err)
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("midiin: listing inputs: %w", err)
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names, nil
}

// Open opens the first input port whose name contains name (case
// insensitively) and forwards its bytes to sink.
func Open(name string, sink func(b byte), l log.Logger) (*Port, error) {
	if l == nil {
		l = log.NewNullLogger()
	}
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("midiin: %w", err)
	}
	ins, err := drv.Ins()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("midiin: listing inputs: %w", err)
	}

	in := find(ins, name)
	if in == nil {
		drv.Close()
		return nil, fmt.Errorf("midiin: input %q not found", name)
	}
	if err := in.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("midiin: opening %s: %w", in, err)
	}

	p := &Port{drv: drv, in: in, log: l}
	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		Forward(msg, sink)
	}, midi.HandleError(func(err error) {
		l.Errorf("midiin: %s: %v", in, err)
	}))
	if err != nil {
		in.Close()
		drv.Close()
		return nil, fmt.Errorf("midiin: listening to %s: %w", in, err)
	}
	p.stop = stop
	l.Infof("midi input %s connected", in)
	return p, nil
}

func find(ins []drivers.In, name string) drivers.In {
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			return in
		}
	}
	return nil
}

// Name returns the name of the port.
func (p *Port) Name() string {
	return p.in.String()
}

// Close stops listening and closes the port.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	p.stop()
	err := p.in.Close()
	p.drv.Close()
	p.log.Infof("midi input %s closed", p.in)
	return err
}
