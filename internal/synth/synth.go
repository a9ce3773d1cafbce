// Package synth provides an emulation of a one-bit synthesizer.
//
// Two tasks share the scheduler: the audio tick, fired by the audio
// timer once per output bit, and the control tick, which samples the
// knobs and updates the LFO, the envelope and the pitch. Note bytes
// arrive asynchronously through Receive.
package synth

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/internal/apu"
	"github.com/thelolagemann/onebit/internal/envelope"
	"github.com/thelolagemann/onebit/internal/lfo"
	"github.com/thelolagemann/onebit/internal/midi"
	"github.com/thelolagemann/onebit/internal/oscillator"
	"github.com/thelolagemann/onebit/internal/params"
	"github.com/thelolagemann/onebit/internal/pitch"
	"github.com/thelolagemann/onebit/internal/scheduler"
	"github.com/thelolagemann/onebit/internal/timer"
	"github.com/thelolagemann/onebit/internal/types"
	"github.com/thelolagemann/onebit/pkg/control"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/log"
	"github.com/thelolagemann/onebit/pkg/preset"
)

// Output is a one-bit output line. SetLevel is called on every audio
// tick with the cycle it fired on.
type Output interface {
	SetLevel(cycle uint64, level uint8)
}

// Synth represents the synthesizer. It contains all of its components
// and is the main entry point for driving it.
type Synth struct {
	Scheduler  *scheduler.Scheduler
	Timer      *timer.Controller
	Oscillator *oscillator.Oscillator
	LFO        *lfo.Engine
	Envelope   *envelope.Engine
	Resolver   *pitch.Resolver
	Sampler    *adc.Sampler
	Updater    *params.Updater
	Receiver   *midi.Receiver
	APU        *apu.APU
	Panel      *adc.Panel

	log.Logger

	shared   *Shared
	provider adc.Provider
	output   Output
	events   chan<- event.Event

	controlPeriod uint64
	sampleRate    int
	volume        float64
	midiOpts      []midi.Opt
	state         []byte

	// owned by the control tick
	lfoValue uint16
	period   uint16
	lights   params.Indicators
	emitted  params.Indicators

	scratch []int16
	status  atomic.Int32

	mu sync.Mutex // serialises the scheduler
	rx sync.Mutex // serialises the note receiver
}

// New returns a new Synth.
func New(opts ...Opt) (*Synth, error) {
	s := &Synth{
		Scheduler:  scheduler.NewScheduler(),
		Oscillator: oscillator.New(),
		LFO:        lfo.New(),
		Envelope:   envelope.New(),
		Sampler:    adc.NewSampler(),
		Panel:      adc.NewPanel(),
		Logger:     log.NewNullLogger(),

		shared:        NewShared(),
		controlPeriod: types.ControlPeriod,
		sampleRate:    apu.DefaultSampleRate,
		volume:        apu.DefaultVolume,
	}
	s.provider = s.Panel
	s.Timer = timer.NewController(s.Scheduler)
	s.Resolver = pitch.NewResolver(s.Timer)

	for _, opt := range opts {
		opt(s)
	}

	a, err := apu.New(types.TimerClock, s.sampleRate)
	if err != nil {
		return nil, err
	}
	a.SetVolume(s.volume)
	s.APU = a
	s.scratch = make([]int16, a.BufferSize())

	s.Updater = params.NewUpdater(s.Oscillator, s.Logger)
	s.Receiver = midi.NewReceiver(s.shared, append(s.midiOpts,
		midi.WithLogger(s.Logger),
		midi.WithListener(midi.ListenerFunc(s.noteEvent)),
	)...)

	s.Timer.AttachMatch(s.audioTick)
	s.Scheduler.RegisterEvent(scheduler.ControlTick, s.controlTick)

	// the timer starts with the period of the initial pitch
	s.period = s.Resolver.Update(s.shared.Pitch(), 0, false)
	s.lights = params.Indicators{Envelope: s.Envelope.Gate(), Power: s.Updater.Power()}
	s.Timer.Start()
	s.Scheduler.ScheduleEvent(scheduler.ControlTick, s.controlPeriod)

	if s.state != nil {
		if err := s.Load(s.state); err != nil {
			return nil, fmt.Errorf("synth: %w", err)
		}
	}

	return s, nil
}

// audioTick drives the output line. It runs on every timer match and
// must stay free of locks and allocations.
func (s *Synth) audioTick() {
	bit := s.Oscillator.NextBit()
	if !s.shared.EnvGate() || !s.shared.NoteOn() {
		bit = 0
	}

	cycle := s.Scheduler.Cycle()
	s.APU.SetLevel(cycle, bit)
	if s.output != nil {
		s.output.SetLevel(cycle, bit)
	}
}

// controlTick is one pass of the control loop.
func (s *Synth) controlTick() {
	s.Scheduler.ScheduleEvent(scheduler.ControlTick, s.controlPeriod)

	updated := s.Sampler.Sample(s.provider)
	if updated {
		s.Updater.Update(s.Sampler.Values(), s.shared)
	}

	s.lfoValue = s.LFO.Step(s.Updater.LFO)
	s.shared.SetEnvGate(s.Envelope.Step(s.Updater.EnvFreq, s.Updater.EnvWidth))
	s.period = s.Resolver.Update(s.shared.Pitch(), s.lfoValue, s.shared.External())

	s.lights = params.Indicators{
		LFO:      s.LFO.Indicator(),
		Envelope: s.Envelope.Gate(),
		Power:    s.Updater.Power(),
	}
	if s.events == nil || (s.lights == s.emitted && !updated) {
		return
	}
	s.emitted = s.lights
	s.emit(event.Event{Type: event.Indicators, Data: s.readout()})
}

func (s *Synth) emit(e event.Event) {
	select {
	case s.events <- e:
	default:
	}
}

func (s *Synth) noteEvent(e midi.Event) {
	s.Logger.Debugf("midi: %s", e)
	if s.events != nil {
		s.emit(event.Event{Type: event.Note, Data: e})
	}
}

// Run advances the synthesizer by the given number of timer cycles,
// discarding the rendered audio.
func (s *Synth) Run(cycles uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for cycles > 0 {
		chunk := min(cycles, uint64(s.APU.ClocksNeeded(len(s.scratch)/2)))
		s.Scheduler.Tick(chunk)
		s.APU.EndFrame(int(chunk))
		for s.APU.SamplesAvailable() > 0 {
			s.APU.ReadSamples(s.scratch)
		}
		cycles -= chunk
	}
}

// Samples fills out with PCM, running the synthesizer for as long as
// it takes to produce it. A paused synthesizer renders silence. It
// returns the number of samples written.
func (s *Synth) Samples(out []int16) int {
	if s.Status() != control.Running {
		clear(out)
		return len(out)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filled := 0
	for filled < len(out) {
		n := min(len(out)-filled, len(s.scratch)/2)
		if s.APU.SamplesAvailable() < n {
			clocks := s.APU.ClocksNeeded(n)
			s.Scheduler.Tick(uint64(clocks))
			s.APU.EndFrame(clocks)
		}
		read := s.APU.ReadSamples(out[filled : filled+n])
		if read == 0 {
			break
		}
		filled += read
	}
	return filled
}

// SampleRate returns the rate of the PCM produced by Samples.
func (s *Synth) SampleRate() int {
	return s.APU.SampleRate()
}

// Receive feeds one byte to the note receiver. It may be called from
// any goroutine.
func (s *Synth) Receive(b byte) {
	s.rx.Lock()
	s.Receiver.Receive(b)
	s.rx.Unlock()
}

// Write feeds p to the note receiver, so that a Synth can be the
// destination of a serial stream.
func (s *Synth) Write(p []byte) (int, error) {
	s.rx.Lock()
	defer s.rx.Unlock()
	for _, b := range p {
		s.Receiver.Receive(b)
	}
	return len(p), nil
}

// SetKnob moves knob k of the built-in Panel.
func (s *Synth) SetKnob(k adc.Knob, v int) {
	s.Panel.Set(k, v)
}

// Knobs returns the raw positions of the built-in Panel.
func (s *Synth) Knobs() [adc.NumKnobs]uint16 {
	return s.Panel.Values()
}

// Scope returns the most recently rendered samples, oldest first.
func (s *Synth) Scope() []int16 {
	return s.APU.Scope().Snapshot()
}

// SetVolume sets the output volume, from 0 to 1.
func (s *Synth) SetVolume(v float64) {
	s.mu.Lock()
	s.APU.SetVolume(v)
	s.mu.Unlock()
}

// Shared returns the state shared between the ticks.
func (s *Synth) Shared() *Shared {
	return s.shared
}

// Status returns the run state.
func (s *Synth) Status() control.Status {
	return control.Status(s.status.Load())
}

var _ control.Controller = (*Synth)(nil)

// SendCommand executes a command packet.
func (s *Synth) SendCommand(cmd control.CommandPacket) control.ResponsePacket {
	resp := control.ResponsePacket{Command: cmd.Command}
	if s.Status() == control.Closed && cmd.Command != control.CommandClose {
		resp.Error = fmt.Errorf("synth: closed")
		return resp
	}

	switch cmd.Command {
	case control.CommandPause:
		s.status.Store(int32(control.Paused))
	case control.CommandResume:
		s.status.Store(int32(control.Running))
	case control.CommandClose:
		s.status.Store(int32(control.Closed))
	case control.CommandSetKnob:
		knob, value, err := control.ParseSetKnob(cmd.Data)
		if err != nil {
			resp.Error = err
		} else if int(knob) >= adc.NumKnobs {
			resp.Error = fmt.Errorf("synth: unknown knob %d", knob)
		} else {
			s.SetKnob(adc.Knob(knob), int(value))
		}
	case control.CommandNote:
		s.Write(cmd.Data)
	case control.CommandLoadPreset:
		p, err := preset.Load(string(cmd.Data))
		if err != nil {
			resp.Error = err
			break
		}
		p.Apply(s.Panel)
		s.Logger.Infof("loaded preset %s", p.Name)
	case control.CommandSavePreset:
		var b bytes.Buffer
		if _, err := preset.FromPanel(s.Panel).WriteTo(&b); err != nil {
			resp.Error = err
		}
		resp.Data = b.Bytes()
	case control.CommandSaveState:
		resp.Data = s.Save()
	case control.CommandLoadState:
		resp.Error = s.Load(cmd.Data)
	case control.CommandSetVolume:
		v, err := control.ParseSetVolume(cmd.Data)
		if err != nil {
			resp.Error = err
		} else {
			s.SetVolume(v)
		}
	default:
		resp.Error = fmt.Errorf("synth: unknown command %s", cmd.Command)
	}
	return resp
}
