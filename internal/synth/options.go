package synth

import (
	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/internal/midi"
	"github.com/thelolagemann/onebit/internal/tia"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/log"
)

// Opt is a function that modifies a Synth
// instance.
type Opt func(s *Synth)

func WithLogger(log log.Logger) Opt {
	return func(s *Synth) {
		s.Logger = log
	}
}

// WithProvider samples the knobs from p instead of the built-in Panel.
func WithProvider(p adc.Provider) Opt {
	return func(s *Synth) {
		s.provider = p
	}
}

// WithSampleRate sets the rate of the rendered PCM.
func WithSampleRate(rate int) Opt {
	return func(s *Synth) {
		s.sampleRate = rate
	}
}

// WithControlPeriod sets the number of timer cycles between two
// control ticks.
func WithControlPeriod(cycles uint64) Opt {
	return func(s *Synth) {
		if cycles > 0 {
			s.controlPeriod = cycles
		}
	}
}

// WithPolyBank replaces the pattern table with the TIA poly bank.
func WithPolyBank() Opt {
	return func(s *Synth) {
		s.Oscillator.AttachBank(tia.NewBank())
	}
}

// WithMIDIChannel listens for notes on channel ch (0-15).
func WithMIDIChannel(ch uint8) Opt {
	return func(s *Synth) {
		s.midiOpts = append(s.midiOpts, midi.WithChannel(ch))
	}
}

// Omni listens for notes on every channel.
func Omni() Opt {
	return func(s *Synth) {
		s.midiOpts = append(s.midiOpts, midi.Omni())
	}
}

// WithOutput mirrors the output line to o, in addition to the
// built-in renderer.
func WithOutput(o Output) Opt {
	return func(s *Synth) {
		s.output = o
	}
}

// WithEvents sends indicator and note events to ch. Sends never
// block; events are dropped while ch is full.
func WithEvents(ch chan<- event.Event) Opt {
	return func(s *Synth) {
		s.events = ch
	}
}

// WithState restores a snapshot taken with Synth.Save.
func WithState(b []byte) Opt {
	return func(s *Synth) {
		s.state = b
	}
}

// WithVolume sets the output volume, from 0 to 1.
func WithVolume(v float64) Opt {
	return func(s *Synth) {
		s.volume = v
	}
}
