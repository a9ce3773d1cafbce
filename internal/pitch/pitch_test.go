package pitch

import (
	"testing"

	"github.com/thelolagemann/onebit/internal/scheduler"
	"github.com/thelolagemann/onebit/internal/timer"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		pitch    uint16
		lfo      uint16
		external bool
		want     uint16
	}{
		{"knob", 400, 0, false, 1800},
		{"knob with lfo", 400, 25, false, 1700},
		{"external", 440, 10, true, 400},
		{"external A4", NotePeriod(69), 0, true, 1704},
		{"wraps like the register", 0, 1, false, 196},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.pitch, tt.lfo, tt.external); got != tt.want {
				t.Errorf("expected period %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNotePeriod(t *testing.T) {
	if NotePeriod(0) != 65535 {
		t.Errorf("expected the lowest notes to be pinned at 65535")
	}
	if NotePeriod(200) != NoteTable[127] {
		t.Errorf("expected out of range notes to clamp to 127")
	}
	for i := 7; i < len(NoteTable); i++ {
		if NoteTable[i] >= NoteTable[i-1] {
			t.Errorf("expected note %d to be shorter than note %d", i, i-1)
		}
	}
}

func TestResolver_Update(t *testing.T) {
	s := scheduler.NewScheduler()
	tc := timer.NewController(s)
	tc.SetPeriod(5000)
	tc.Start()
	r := NewResolver(tc)

	s.Tick(3000)
	if p := r.Update(400, 0, false); p != 1800 || tc.Period() != 1800 {
		t.Errorf("expected period 1800, got %d (timer %d)", p, tc.Period())
	}
	if tc.Counter() != 0 {
		t.Errorf("expected the counter to reset on a large downward jump, got %d", tc.Counter())
	}

	s.Tick(100)
	r.Update(400, 0, false)
	if tc.Counter() != 100 {
		t.Errorf("expected the same period to leave the counter alone, got %d", tc.Counter())
	}
}
