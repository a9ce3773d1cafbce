// Package params turns averaged knob positions into synthesizer
// parameters. It runs on the control path every time the sampler
// publishes a new set of averages.
package params

import (
	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/internal/lfo"
	"github.com/thelolagemann/onebit/internal/oscillator"
	"github.com/thelolagemann/onebit/internal/types"
	"github.com/thelolagemann/onebit/pkg/log"
)

// InitialPitch is the knob-domain pitch before the first update.
const InitialPitch = 400

// PitchTarget receives the pitch knob. Once external note control is
// active the pitch belongs to the note receiver and SetKnobPitch
// leaves it alone.
type PitchTarget interface {
	SetKnobPitch(uint16)
}

// Indicators are the three front panel lights.
type Indicators struct {
	LFO      bool // first half of the LFO period
	Envelope bool // envelope gate
	Power    bool // off for one update after a waveform change
}

// Updater holds the parameters derived from the knobs.
type Updater struct {
	osc *oscillator.Oscillator
	log log.Logger

	lfoWave uint8
	pulse   uint8
	power   bool

	LFO      lfo.Params
	EnvFreq  uint8
	EnvWidth uint8
}

// NewUpdater returns an Updater that selects waveforms on osc.
func NewUpdater(osc *oscillator.Oscillator, l log.Logger) *Updater {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &Updater{
		osc:   osc,
		log:   l,
		power: true,
		LFO:   lfo.NewParams(lfo.Triangle, 0, 0),
	}
}

// Update copies the averaged knobs into the parameters. It reports
// whether either waveform selector changed.
func (u *Updater) Update(knobs [adc.NumKnobs]uint16, t PitchTarget) bool {
	t.SetKnobPitch(knobs[adc.Pitch])

	changed := false
	wave := oscillator.Waveform(knobs[adc.AudioWaveform] >> 7)
	if u.osc.Select(wave) {
		u.log.Debugf("waveform -> %s", wave)
		changed = true
	}

	lfoWave := uint8(knobs[adc.LFOWaveform] >> 7)
	if lfoWave != u.lfoWave {
		u.lfoWave = lfoWave
		u.log.Debugf("lfo waveform -> %s", lfo.Waveform(lfoWave))
		changed = true
	}

	if changed {
		u.pulse = 1
	}
	if u.pulse > 0 {
		u.power = false
		u.pulse--
	} else {
		u.power = true
	}

	u.LFO = lfo.NewParams(lfo.Waveform(u.lfoWave), knobs[adc.LFOFreq]>>2, knobs[adc.LFODepth]>>2)
	u.EnvFreq = uint8(knobs[adc.EnvFreq] >> 2)
	u.EnvWidth = uint8(knobs[adc.EnvWidth] >> 2)
	return changed
}

// Power returns the power indicator.
func (u *Updater) Power() bool {
	return u.power
}

// LFOWaveform returns the latched LFO waveform.
func (u *Updater) LFOWaveform() lfo.Waveform {
	return lfo.Waveform(u.lfoWave)
}

var _ types.Stater = (*Updater)(nil)

func (u *Updater) Load(s *types.State) {
	u.lfoWave = s.Read8()
	u.pulse = s.Read8()
	u.power = s.ReadBool()
	waveform := lfo.Waveform(s.Read8())
	freq, depth := s.Read16(), s.Read16()
	u.LFO = lfo.NewParams(waveform, freq, depth)
	u.EnvFreq = s.Read8()
	u.EnvWidth = s.Read8()
}

func (u *Updater) Save(s *types.State) {
	s.Write8(u.lfoWave)
	s.Write8(u.pulse)
	s.WriteBool(u.power)
	s.Write8(uint8(u.LFO.Waveform))
	s.Write16(u.LFO.Freq)
	s.Write16(u.LFO.Depth)
	s.Write8(u.EnvFreq)
	s.Write8(u.EnvWidth)
}
