// Package lfo implements the low-frequency oscillator that modulates
// the synthesizer's pitch. The LFO runs once per control-rate tick; its
// period is measured in ticks and its output is an integer offset that
// the pitch resolver subtracts from the base pitch.
package lfo

import (
	"github.com/thelolagemann/onebit/internal/oscillator"
	"github.com/thelolagemann/onebit/internal/types"
)

// Waveform is the shape of the LFO.
type Waveform uint8

const (
	Triangle Waveform = iota
	SawUp
	SawDown
	Square
	HalfSquare
	HalfSawUp
	HalfSawDown
	Random
)

var waveformNames = [8]string{
	"triangle", "saw-up", "saw-down", "square", "half-square", "half-saw-up", "half-saw-down", "random",
}

func (w Waveform) String() string {
	return waveformNames[w&0x07]
}

// Params are the LFO settings computed by the parameter update.
type Params struct {
	Waveform Waveform
	Freq     uint16 // period, in control ticks
	Depth    uint16 // amplitude
	Delta    uint16 // Depth*256/Freq, see Delta
}

// Delta returns the 8.8 fixed-point slope of a ramp rising from 0 to
// depth over freq ticks. A zero frequency gives a flat LFO.
func Delta(freq, depth uint16) uint16 {
	if freq == 0 {
		return 0
	}
	return uint16(uint32(depth) * 256 / uint32(freq))
}

// NewParams returns Params with Delta precomputed.
func NewParams(w Waveform, freq, depth uint16) Params {
	return Params{Waveform: w, Freq: freq, Depth: depth, Delta: Delta(freq, depth)}
}

// Engine is the LFO state: a phase counter that runs from 0 to
// Freq-1 and wraps, and the current output value.
type Engine struct {
	phase     uint16
	value     uint16
	indicator bool

	// the random shape draws from its own generator, so that it
	// never steals samples from the audio noise
	rand *oscillator.Noise
}

// New returns an LFO at phase 0.
func New() *Engine {
	return &Engine{rand: oscillator.NewNoise(oscillator.DefaultSeed)}
}

// Step computes the value for the current phase, then advances the
// phase. It returns the new value.
func (e *Engine) Step(p Params) uint16 {
	t := uint32(e.phase)
	f := uint32(p.Freq)
	d := uint32(p.Depth)
	delta := uint32(p.Delta)
	half := f / 2

	ramp := func(shift uint) uint32 {
		return min((t*delta)>>shift, d)
	}

	var v uint32
	switch p.Waveform & 0x07 {
	case Triangle:
		if t < half {
			v = ramp(7)
		} else {
			v = d - min(((t-half)*delta)>>7, d)
		}
	case SawUp:
		v = ramp(8)
	case SawDown:
		v = d - ramp(8)
	case Square:
		if t >= half {
			v = d
		}
	case HalfSquare:
		if t < f/4 {
			v = d
		}
	case HalfSawUp:
		if t < half {
			v = ramp(7)
		}
	case HalfSawDown:
		if t < half {
			v = d - ramp(7)
		}
	case Random:
		v = uint32(e.value)
		if t == 0 {
			v = 0
			if d != 0 {
				v = uint32(e.rand.Step()) % d
			}
		}
	}
	e.value = uint16(v)
	e.indicator = t < half

	e.phase++
	if e.phase >= p.Freq {
		e.phase = 0
	}

	return e.value
}

// Value returns the most recent output.
func (e *Engine) Value() uint16 {
	return e.value
}

// Phase returns the phase that the next Step will evaluate.
func (e *Engine) Phase() uint16 {
	return e.phase
}

// Indicator reports whether the most recent Step fell in the first
// half of the period.
func (e *Engine) Indicator() bool {
	return e.indicator
}

var _ types.Stater = (*Engine)(nil)

func (e *Engine) Load(s *types.State) {
	e.phase = s.Read16()
	e.value = s.Read16()
	e.indicator = s.ReadBool()
	e.rand.Load(s)
}

func (e *Engine) Save(s *types.State) {
	s.Write16(e.phase)
	s.Write16(e.value)
	s.WriteBool(e.indicator)
	e.rand.Save(s)
}
