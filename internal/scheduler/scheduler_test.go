package scheduler

import "testing"

func TestScheduler_Tick(t *testing.T) {
	s := NewScheduler()

	var fired []uint64
	s.RegisterEvent(AudioSample, func() {
		fired = append(fired, s.Cycle())
		s.ScheduleEvent(AudioSample, 10)
	})
	s.ScheduleEvent(AudioSample, 10)

	s.Tick(35)
	if len(fired) != 3 {
		t.Fatalf("expected 3 events, got %d", len(fired))
	}
	for i, c := range fired {
		if want := uint64(10 * (i + 1)); c != want {
			t.Errorf("event %d: expected cycle %d, got %d", i, want, c)
		}
	}
	if s.Cycle() != 35 {
		t.Errorf("expected scheduler at cycle 35, got %d", s.Cycle())
	}
	if until, ok := s.Until(AudioSample); !ok || until != 5 {
		t.Errorf("expected next audio sample in 5 cycles, got %d (%v)", until, ok)
	}
}

func TestScheduler_Priority(t *testing.T) {
	s := NewScheduler()

	var order []EventType
	s.RegisterEvent(AudioSample, func() { order = append(order, AudioSample) })
	s.RegisterEvent(ControlTick, func() { order = append(order, ControlTick) })

	// schedule the lower priority event first
	s.ScheduleEvent(ControlTick, 4)
	s.ScheduleEvent(AudioSample, 4)
	s.Tick(4)

	if len(order) != 2 || order[0] != AudioSample || order[1] != ControlTick {
		t.Errorf("expected AudioSample before ControlTick, got %v", order)
	}
}

func TestScheduler_Reschedule(t *testing.T) {
	s := NewScheduler()

	count := 0
	s.RegisterEvent(AudioSample, func() { count++ })

	t.Run("replace", func(t *testing.T) {
		s.ScheduleEvent(AudioSample, 100)
		s.ScheduleEvent(AudioSample, 5)
		s.Tick(10)
		if count != 1 {
			t.Errorf("expected the replaced event to fire once, got %d", count)
		}
		s.Tick(200)
		if count != 1 {
			t.Errorf("expected the stale event to be gone, got %d", count)
		}
	})
	t.Run("deschedule", func(t *testing.T) {
		s.ScheduleEvent(AudioSample, 5)
		s.DescheduleEvent(AudioSample)
		s.Tick(10)
		if count != 1 {
			t.Errorf("expected no event after deschedule, got %d", count)
		}
		if _, ok := s.Until(AudioSample); ok {
			t.Errorf("expected AudioSample to be unscheduled")
		}
	})
}

func BenchmarkScheduler_Tick(b *testing.B) {
	s := NewScheduler()
	s.RegisterEvent(AudioSample, func() { s.ScheduleEvent(AudioSample, 100) })
	s.RegisterEvent(ControlTick, func() { s.ScheduleEvent(ControlTick, 2022) })
	s.ScheduleEvent(AudioSample, 100)
	s.ScheduleEvent(ControlTick, 2022)

	for i := 0; i < b.N; i++ {
		s.Tick(100)
	}
}
