package synth

import (
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/google/go-cmp/cmp"
	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/internal/midi"
	"github.com/thelolagemann/onebit/internal/oscillator"
	"github.com/thelolagemann/onebit/internal/pitch"
	"github.com/thelolagemann/onebit/internal/types"
	"github.com/thelolagemann/onebit/pkg/control"
	"github.com/thelolagemann/onebit/pkg/display/event"
)

// tick is one audio tick as seen on the output line.
type tick struct {
	Cycle uint64
	Level uint8
}

type recorder struct {
	ticks []tick
}

func (r *recorder) SetLevel(cycle uint64, level uint8) {
	r.ticks = append(r.ticks, tick{cycle, level})
}

func (r *recorder) ones() int {
	n := 0
	for _, t := range r.ticks {
		n += int(t.Level)
	}
	return n
}

// updates is the number of cycles covering n knob averaging windows.
func updates(n int) uint64 {
	return uint64(n*adc.NumSamples) * types.ControlPeriod
}

func newSynth(t testing.TB, opts ...Opt) *Synth {
	t.Helper()
	s, err := New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSynth_InitialPeriod(t *testing.T) {
	s := newSynth(t)
	if p := s.Timer.Period(); p != 1800 {
		t.Errorf("expected initial period 1800, got %d", p)
	}
	if !s.Shared().NoteOn() {
		t.Errorf("expected the note to start on")
	}

	// the first match comes period+1 cycles after start
	rec := &recorder{}
	s = newSynth(t, WithOutput(rec))
	s.Run(1801)
	if len(rec.ticks) != 1 || rec.ticks[0].Cycle != 1801 {
		t.Errorf("expected one audio tick at cycle 1801, got %v", rec.ticks)
	}
}

func TestSynth_Gate(t *testing.T) {
	rec := &recorder{}
	s := newSynth(t, WithOutput(rec))

	s.Run(100_000)
	if rec.ones() == 0 {
		t.Fatalf("expected the output to toggle while the note is on")
	}

	s.Receive(0xFC)
	if s.Shared().NoteOn() {
		t.Fatalf("expected stop to clear the note")
	}
	rec.ticks = rec.ticks[:0]
	s.Run(100_000)
	if len(rec.ticks) == 0 {
		t.Fatalf("expected the timer to keep running")
	}
	if n := rec.ones(); n != 0 {
		t.Errorf("expected a silent line after stop, got %d high ticks", n)
	}
}

func TestSynth_NoteTakeover(t *testing.T) {
	s := newSynth(t)
	s.SetKnob(adc.Pitch, 100)

	s.Write([]byte{0x90, 69, 100})
	if !s.Shared().External() {
		t.Fatalf("expected a status byte to take over the pitch")
	}
	if p := s.Shared().Pitch(); p != pitch.NoteTable[69] {
		t.Errorf("expected pitch %d, got %d", pitch.NoteTable[69], p)
	}

	// the knob no longer reaches the pitch
	s.Run(updates(2))
	if p := s.Timer.Period(); p != pitch.NoteTable[69] {
		t.Errorf("expected period %d, got %d", pitch.NoteTable[69], p)
	}

	s.Write([]byte{0x80, 60, 0})
	if !s.Shared().NoteOn() {
		t.Errorf("expected a note-off for another note to be ignored")
	}
	s.Write([]byte{69, 0})
	if s.Shared().NoteOn() {
		t.Errorf("expected the running-status note-off to end the note")
	}
}

func TestSynth_KnobPitch(t *testing.T) {
	s := newSynth(t)
	s.SetKnob(adc.Pitch, 512)

	s.Run(updates(1))
	if p := s.Timer.Period(); p != 200+512*4 {
		t.Errorf("expected period %d, got %d", 200+512*4, p)
	}
}

func TestSynth_PowerPulse(t *testing.T) {
	s := newSynth(t)

	// untouched knobs select the power-on waveforms
	s.Run(updates(1))
	if !s.Updater.Power() {
		t.Errorf("expected the power light on after the first update")
	}

	s.SetKnob(adc.LFOWaveform, 3<<7)
	s.Run(updates(1))
	if s.Updater.Power() {
		t.Errorf("expected a waveform change to pulse the power light")
	}
	s.Run(updates(1))
	if !s.Updater.Power() {
		t.Errorf("expected the power light back on")
	}

	t.Run("lfo knob raised at power-on", func(t *testing.T) {
		s := newSynth(t)
		s.SetKnob(adc.LFOWaveform, 5<<7)
		s.Run(updates(1))
		if s.Updater.Power() {
			t.Errorf("expected the first update to pulse the power light")
		}
		s.Run(updates(1))
		if !s.Updater.Power() {
			t.Errorf("expected the power light back on")
		}
	})
}

func TestSynth_LFO(t *testing.T) {
	s := newSynth(t)
	s.SetKnob(adc.Pitch, 512)
	s.SetKnob(adc.LFOWaveform, 3<<7) // square
	s.SetKnob(adc.LFOFreq, 40)       // 10 ticks
	s.SetKnob(adc.LFODepth, 400)     // 100
	s.Run(updates(1))

	seen := map[uint16]bool{}
	for i := 0; i < 20; i++ {
		s.Run(types.ControlPeriod)
		seen[s.Timer.Period()] = true
	}
	for _, want := range []uint16{200 + 512*4, 200 + (512-100)*4} {
		if !seen[want] {
			t.Errorf("expected period %d while the LFO runs, got %v", want, seen)
		}
	}
}

func TestSynth_Waveform(t *testing.T) {
	s := newSynth(t)
	s.SetKnob(adc.AudioWaveform, 1023)
	s.Run(updates(1))
	if w := s.Oscillator.Waveform(); w != oscillator.NoiseWaveform {
		t.Errorf("expected waveform %s, got %s", oscillator.NoiseWaveform, w)
	}
}

func TestSynth_Events(t *testing.T) {
	events := make(chan event.Event, 64)
	s := newSynth(t, WithEvents(events))
	s.SetKnob(adc.Pitch, 256)
	s.Run(updates(1))

	var last Readout
	got := false
	for len(events) > 0 {
		e := <-events
		if e.Type == event.Indicators {
			last, got = e.Data.(Readout), true
		}
	}
	if !got {
		t.Fatalf("expected an indicators event")
	}
	if last.Knobs[adc.Pitch] != 256 {
		t.Errorf("expected averaged pitch knob 256, got %d", last.Knobs[adc.Pitch])
	}
	if last.Period != 200+256*4 {
		t.Errorf("expected period %d, got %d", 200+256*4, last.Period)
	}

	s.Write([]byte{0x90, 60, 1})
	select {
	case e := <-events:
		if n, ok := e.Data.(midi.Event); e.Type != event.Note || !ok || n.String() != "NoteOn(60)" {
			t.Errorf("expected a NoteOn(60) event, got %s %v", e.Type, e.Data)
		}
	default:
		t.Errorf("expected a note event")
	}
}

func hashSamples(s *Synth, n int) uint64 {
	out := make([]int16, n)
	if got := s.Samples(out); got != n {
		panic("short read")
	}
	b := make([]byte, 2*n)
	for i, v := range out {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}
	return xxhash.Sum64(b)
}

func TestSynth_Deterministic(t *testing.T) {
	render := func() uint64 {
		s := newSynth(t)
		s.SetKnob(adc.AudioWaveform, 3<<7)
		s.SetKnob(adc.Pitch, 300)
		return hashSamples(s, 44100)
	}
	a, b := render(), render()
	if a != b {
		t.Errorf("expected identical renders, got %016x and %016x", a, b)
	}

	silent := newSynth(t)
	silent.Receive(0xFF)
	if c := hashSamples(silent, 44100); c == a {
		t.Errorf("expected a stopped synth to render differently")
	}
}

func TestSynth_Samples(t *testing.T) {
	s := newSynth(t)
	out := make([]int16, 10_000)
	if n := s.Samples(out); n != len(out) {
		t.Fatalf("expected %d samples, got %d", len(out), n)
	}
	nonzero := false
	for _, v := range out {
		if v != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Errorf("expected audible output")
	}

	elapsed := s.Scheduler.Cycle()
	want := uint64(len(out)) * types.TimerClock / 44100
	if elapsed < want-types.TimerClock/1000 || elapsed > want+types.TimerClock/1000 {
		t.Errorf("expected about %d cycles for %d samples, got %d", want, len(out), elapsed)
	}
}

func TestSynth_State(t *testing.T) {
	a := &recorder{}
	s := newSynth(t, WithOutput(a), WithPolyBank())
	s.SetKnob(adc.AudioWaveform, 2<<7)
	s.SetKnob(adc.LFOWaveform, 7<<7)
	s.SetKnob(adc.LFOFreq, 100)
	s.SetKnob(adc.LFODepth, 200)
	s.SetKnob(adc.EnvFreq, 80)
	s.SetKnob(adc.EnvWidth, 40)
	s.Run(updates(3) + 12345)
	s.Write([]byte{0x90, 64, 90})

	saved := s.Save()
	a.ticks = nil

	b := &recorder{}
	restored := newSynth(t, WithOutput(b), WithState(saved))
	for k, v := range s.Panel.Values() {
		restored.SetKnob(adc.Knob(k), int(v))
	}

	if restored.Scheduler.Cycle() != s.Scheduler.Cycle() {
		t.Fatalf("expected cycle %d, got %d", s.Scheduler.Cycle(), restored.Scheduler.Cycle())
	}
	s.Run(updates(2))
	restored.Run(updates(2))

	if diff := cmp.Diff(a.ticks, b.ticks); diff != "" {
		t.Errorf("restored output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Readout(), restored.Readout()); diff != "" {
		t.Errorf("restored readout mismatch (-want +got):\n%s", diff)
	}

	t.Run("truncated", func(t *testing.T) {
		if err := restored.Load(saved[:len(saved)/2]); err == nil {
			t.Errorf("expected an error for a truncated state")
		}
	})
}

func TestSynth_Commands(t *testing.T) {
	s := newSynth(t)

	if resp := s.SendCommand(control.SetKnob(uint8(adc.Pitch), 512)); resp.Error != nil {
		t.Fatal(resp.Error)
	}
	if v := s.Panel.Get(adc.Pitch); v != 512 {
		t.Errorf("expected knob 512, got %d", v)
	}
	if resp := s.SendCommand(control.SetKnob(42, 1)); resp.Error == nil {
		t.Errorf("expected an error for an unknown knob")
	}

	s.SendCommand(control.Pause)
	if !s.Status().IsPaused() {
		t.Fatalf("expected paused, got %s", s.Status())
	}
	cycle := s.Scheduler.Cycle()
	out := make([]int16, 512)
	s.Samples(out)
	if s.Scheduler.Cycle() != cycle {
		t.Errorf("expected a paused synth not to advance")
	}
	s.SendCommand(control.Resume)
	if !s.Status().IsRunning() {
		t.Errorf("expected running, got %s", s.Status())
	}

	resp := s.SendCommand(control.CommandPacket{Command: control.CommandSavePreset})
	if resp.Error != nil || len(resp.Data) == 0 {
		t.Errorf("expected a preset, got %q (%v)", resp.Data, resp.Error)
	}

	s.SendCommand(control.CommandPacket{Command: control.CommandNote, Data: []byte{0x90, 72, 1}})
	if !s.Shared().External() {
		t.Errorf("expected a note command to reach the receiver")
	}

	s.SendCommand(control.Close)
	if resp := s.SendCommand(control.Resume); resp.Error == nil {
		t.Errorf("expected a closed synth to refuse commands")
	}
}

func BenchmarkSynth_Samples(b *testing.B) {
	s := newSynth(b)
	s.SetKnob(adc.Pitch, 100)
	out := make([]int16, 735)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Samples(out)
	}
}
