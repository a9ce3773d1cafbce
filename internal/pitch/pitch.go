// Package pitch turns the synthesizer's pitch and LFO value into the
// period of the audio timer.
package pitch

import "github.com/thelolagemann/onebit/internal/timer"

const (
	// knobOffset is the shortest period reachable from the pitch knob.
	knobOffset = 200
	// lfoScale converts LFO units into timer cycles.
	lfoScale = 4
)

// Resolve returns the audio timer period for the given pitch and LFO
// value. With external note control, pitch is already a timer period
// taken from NoteTable; otherwise it is a knob position, scaled and
// offset into the audible range. The arithmetic wraps at 16 bits, like
// the timer register it is written to.
func Resolve(pitch, lfo uint16, external bool) uint16 {
	if external {
		return pitch - lfo*lfoScale
	}
	return knobOffset + (pitch-lfo)*lfoScale
}

// Resolver reprograms the audio timer after every control tick.
type Resolver struct {
	t *timer.Controller
}

// NewResolver returns a Resolver writing to t.
func NewResolver(t *timer.Controller) *Resolver {
	return &Resolver{t: t}
}

// Update computes the new period and hands it to the timer, which
// ignores writes of the value it already holds. It returns the period.
func (r *Resolver) Update(pitch, lfo uint16, external bool) uint16 {
	period := Resolve(pitch, lfo, external)
	r.t.SetPeriod(period)
	return period
}
