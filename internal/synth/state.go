package synth

import (
	"fmt"

	"github.com/thelolagemann/onebit/internal/scheduler"
	"github.com/thelolagemann/onebit/internal/types"
)

// Save returns a snapshot of the synthesizer. The rendered audio is
// not part of it.
func (s *Synth) Save() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rx.Lock()
	defer s.rx.Unlock()

	st := types.NewState()
	st.Write64(s.Scheduler.Cycle())
	until, _ := s.Scheduler.Until(scheduler.ControlTick)
	st.Write64(until)
	st.Write16(s.lfoValue)
	st.Write16(s.period)

	s.shared.Save(st)
	s.Oscillator.Save(st)
	s.LFO.Save(st)
	s.Envelope.Save(st)
	s.Sampler.Save(st)
	s.Updater.Save(st)
	s.Receiver.Save(st)
	s.Timer.Save(st)
	return st.Bytes()
}

// Load restores a snapshot taken with Save.
func (s *Synth) Load(b []byte) error {
	st, err := types.StateFromBytes(b)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rx.Lock()
	defer s.rx.Unlock()

	cycle := st.Read64()
	until := st.Read64()
	s.lfoValue = st.Read16()
	s.period = st.Read16()

	// the timer reschedules itself relative to the restored cycle
	s.Scheduler.SetCycle(cycle)
	s.shared.Load(st)
	s.Oscillator.Load(st)
	s.LFO.Load(st)
	s.Envelope.Load(st)
	s.Sampler.Load(st)
	s.Updater.Load(st)
	s.Receiver.Load(st)
	s.Timer.Load(st)
	if err := st.Err(); err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	s.Scheduler.ScheduleEvent(scheduler.ControlTick, until)
	s.APU.SetFrameStart(cycle)
	return nil
}
