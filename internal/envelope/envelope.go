// Package envelope implements the synthesizer's amplitude envelope: a
// slow pulse wave, running at the control rate, whose output gates
// the audio line on and off.
package envelope

import "github.com/thelolagemann/onebit/internal/types"

// Engine is the envelope state. The phase runs from 0 to freq-1 and
// wraps; the gate is open while the phase is at or below the width.
type Engine struct {
	phase uint8
	gate  bool
}

// New returns an envelope with its gate open, so that the synth
// sounds before the first control tick.
func New() *Engine {
	return &Engine{gate: true}
}

// Step advances the phase and returns the new gate value. A width
// at or above freq leaves the gate permanently open.
func (e *Engine) Step(freq, width uint8) bool {
	e.phase++
	if e.phase >= freq {
		e.phase = 0
	}

	e.gate = e.phase <= width
	return e.gate
}

// Gate returns the current gate value.
func (e *Engine) Gate() bool {
	return e.gate
}

// Phase returns the current phase.
func (e *Engine) Phase() uint8 {
	return e.phase
}

var _ types.Stater = (*Engine)(nil)

func (e *Engine) Load(s *types.State) {
	e.phase = s.Read8()
	e.gate = s.ReadBool()
}

func (e *Engine) Save(s *types.State) {
	s.Write8(e.phase)
	s.WriteBool(e.gate)
}
