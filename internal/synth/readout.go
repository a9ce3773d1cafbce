package synth

import (
	"fmt"

	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/internal/lfo"
	"github.com/thelolagemann/onebit/internal/oscillator"
	"github.com/thelolagemann/onebit/internal/params"
)

// Readout is what the front panel shows: the three lights, and the
// values behind them.
type Readout struct {
	Cycle       uint64
	Lights      params.Indicators
	Waveform    oscillator.Waveform
	LFOWaveform lfo.Waveform
	LFO         uint16 // LFO output
	Period      uint16 // audio timer period
	Pitch       uint16
	NoteOn      bool
	External    bool
	Knobs       [adc.NumKnobs]uint16 // averaged
}

func (r Readout) String() string {
	return fmt.Sprintf("wave=%s lfo=%s(%d) period=%d note=%v ext=%v",
		r.Waveform, r.LFOWaveform, r.LFO, r.Period, r.NoteOn, r.External)
}

// Readout returns the current front panel state.
func (s *Synth) Readout() Readout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readout()
}

func (s *Synth) readout() Readout {
	return Readout{
		Cycle:       s.Scheduler.Cycle(),
		Lights:      s.lights,
		Waveform:    s.Oscillator.Waveform(),
		LFOWaveform: s.Updater.LFOWaveform(),
		LFO:         s.lfoValue,
		Period:      s.period,
		Pitch:       s.shared.Pitch(),
		NoteOn:      s.shared.NoteOn(),
		External:    s.shared.External(),
		Knobs:       s.Sampler.Values(),
	}
}
