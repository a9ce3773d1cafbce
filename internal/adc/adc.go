// Package adc models the analog front panel of the synthesizer: a set
// of 10-bit channels that are sampled once per control tick and
// averaged over a fixed window before the parameter update sees them.
package adc

import (
	"sync/atomic"

	"github.com/thelolagemann/onebit/internal/types"
	"github.com/thelolagemann/onebit/pkg/utils"
)

const (
	// MaxValue is the largest raw sample (10 bits).
	MaxValue = 1023
	// NumSamples is the averaging window. It must be a power of two.
	NumSamples = 32
)

// Provider delivers raw samples for each channel.
type Provider interface {
	Sample(ch int) uint16
}

// Panel is a Provider whose channels are set from the outside, by a
// UI, a preset or a script. It is safe for concurrent use.
type Panel struct {
	values [NumKnobs]atomic.Uint32
}

// NewPanel returns a Panel with every channel at 0.
func NewPanel() *Panel {
	return &Panel{}
}

// Set moves knob k to v, clamped to the 10-bit range.
func (p *Panel) Set(k Knob, v int) {
	if int(k) >= NumKnobs {
		return
	}
	p.values[k].Store(uint32(utils.Clamp(0, v, MaxValue)))
}

// Get returns the current position of knob k.
func (p *Panel) Get(k Knob) uint16 {
	if int(k) >= NumKnobs {
		return 0
	}
	return uint16(p.values[k].Load())
}

// Sample implements Provider.
func (p *Panel) Sample(ch int) uint16 {
	if ch < 0 || ch >= NumKnobs {
		return 0
	}
	return uint16(p.values[ch].Load())
}

// Values returns a copy of every channel.
func (p *Panel) Values() [NumKnobs]uint16 {
	var v [NumKnobs]uint16
	for i := range v {
		v[i] = uint16(p.values[i].Load())
	}
	return v
}

// Channel is the averaging state of one knob.
type Channel struct {
	Val   uint16 // last published average
	Accum uint16 // running sum of the current window
}

// Sampler accumulates samples from a Provider. Every NumSamples
// calls to Sample it publishes the averages.
type Sampler struct {
	Knobs [NumKnobs]Channel
	timer uint8
}

// NewSampler returns a Sampler with an empty window.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample reads every channel of p once. It reports whether the window
// wrapped on this call, in which case Knobs holds fresh averages.
func (s *Sampler) Sample(p Provider) bool {
	s.timer = (s.timer + 1) & (NumSamples - 1)
	for ch := range s.Knobs {
		k := &s.Knobs[ch]
		k.Accum += p.Sample(ch) & MaxValue
		if s.timer == 0 {
			k.Val = k.Accum / NumSamples
			k.Accum = 0
		}
	}
	return s.timer == 0
}

// Ready reports whether the last call to Sample published averages.
func (s *Sampler) Ready() bool {
	return s.timer == 0
}

// Value returns the published average of knob k.
func (s *Sampler) Value(k Knob) uint16 {
	return s.Knobs[k].Val
}

// Values returns the published averages.
func (s *Sampler) Values() [NumKnobs]uint16 {
	var v [NumKnobs]uint16
	for i, k := range s.Knobs {
		v[i] = k.Val
	}
	return v
}

var _ types.Stater = (*Sampler)(nil)

func (s *Sampler) Load(st *types.State) {
	s.timer = st.Read8()
	for i := range s.Knobs {
		s.Knobs[i].Val = st.Read16()
		s.Knobs[i].Accum = st.Read16()
	}
}

func (s *Sampler) Save(st *types.State) {
	st.Write8(s.timer)
	for _, k := range s.Knobs {
		st.Write16(k.Val)
		st.Write16(k.Accum)
	}
}
