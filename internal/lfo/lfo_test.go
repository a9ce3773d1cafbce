package lfo

import (
	"testing"

	"github.com/thelolagemann/onebit/internal/oscillator"
)

// period runs the LFO over one full period and returns the values.
func period(p Params) []uint16 {
	e := New()
	out := make([]uint16, p.Freq)
	for i := range out {
		out[i] = e.Step(p)
	}
	return out
}

func TestDelta(t *testing.T) {
	if d := Delta(0, 100); d != 0 {
		t.Errorf("expected zero frequency to give delta 0, got %d", d)
	}
	if d := Delta(100, 50); d != 128 {
		t.Errorf("expected delta 128, got %d", d)
	}
	if d := Delta(1, 255); d != 255*256 {
		t.Errorf("expected delta %d, got %d", 255*256, d)
	}
}

func TestEngine_Triangle(t *testing.T) {
	for _, tt := range []struct{ freq, depth uint16 }{
		{100, 50}, {64, 255}, {255, 200}, {10, 3},
	} {
		v := period(NewParams(Triangle, tt.freq, tt.depth))
		if v[0] != 0 {
			t.Errorf("F=%d D=%d: expected 0 at phase 0, got %d", tt.freq, tt.depth, v[0])
		}
		if v[tt.freq/2] != tt.depth {
			t.Errorf("F=%d D=%d: expected %d at the midpoint, got %d", tt.freq, tt.depth, tt.depth, v[tt.freq/2])
		}
		// the last phase lands within one step of zero
		step := (uint32(tt.depth)*2)/uint32(tt.freq) + 1
		if uint32(v[tt.freq-1]) > step {
			t.Errorf("F=%d D=%d: expected ~0 at the last phase, got %d", tt.freq, tt.depth, v[tt.freq-1])
		}
		for i, x := range v {
			if x > tt.depth {
				t.Fatalf("F=%d D=%d: phase %d overshoots depth: %d", tt.freq, tt.depth, i, x)
			}
		}
	}
}

func TestEngine_Shapes(t *testing.T) {
	const f, d = 100, 60

	t.Run("saw up", func(t *testing.T) {
		v := period(NewParams(SawUp, f, d))
		if v[0] != 0 || v[f-1] < d-2 {
			t.Errorf("expected 0 -> ~%d, got %d -> %d", d, v[0], v[f-1])
		}
		for i := 1; i < f; i++ {
			if v[i] < v[i-1] {
				t.Fatalf("expected a rising ramp, phase %d fell", i)
			}
		}
	})
	t.Run("saw down", func(t *testing.T) {
		v := period(NewParams(SawDown, f, d))
		if v[0] != d || v[f-1] > 2 {
			t.Errorf("expected %d -> ~0, got %d -> %d", d, v[0], v[f-1])
		}
	})
	t.Run("square", func(t *testing.T) {
		v := period(NewParams(Square, f, d))
		if v[f/2-1] != 0 || v[f/2] != d {
			t.Errorf("expected the edge at the midpoint, got %d %d", v[f/2-1], v[f/2])
		}
	})
	t.Run("half square", func(t *testing.T) {
		v := period(NewParams(HalfSquare, f, d))
		if v[0] != d || v[f/4-1] != d || v[f/4] != 0 || v[f-1] != 0 {
			t.Errorf("expected depth for the first quarter only, got %v", v)
		}
	})
	t.Run("half saw up", func(t *testing.T) {
		v := period(NewParams(HalfSawUp, f, d))
		if v[0] != 0 || v[f/2-1] < d-3 || v[f/2] != 0 {
			t.Errorf("expected a double-rate ramp over the first half, got %d %d %d", v[0], v[f/2-1], v[f/2])
		}
	})
	t.Run("half saw down", func(t *testing.T) {
		v := period(NewParams(HalfSawDown, f, d))
		if v[0] != d || v[f/2-1] > 3 || v[f/2] != 0 {
			t.Errorf("expected a double-rate fall over the first half, got %d %d %d", v[0], v[f/2-1], v[f/2])
		}
	})
}

func TestEngine_Random(t *testing.T) {
	p := NewParams(Random, 10, 40)
	e := New()
	ref := oscillator.NewNoise(oscillator.DefaultSeed)

	for cycle := 0; cycle < 5; cycle++ {
		want := ref.Step() % 40
		for i := 0; i < 10; i++ {
			if got := e.Step(p); got != want {
				t.Fatalf("cycle %d phase %d: expected held value %d, got %d", cycle, i, want, got)
			}
		}
	}

	t.Run("zero depth", func(t *testing.T) {
		e := New()
		if v := e.Step(NewParams(Random, 10, 0)); v != 0 {
			t.Errorf("expected 0 for zero depth, got %d", v)
		}
	})
}

func TestEngine_ZeroFrequency(t *testing.T) {
	e := New()
	p := NewParams(SawUp, 0, 100)
	for i := 0; i < 10; i++ {
		if v := e.Step(p); v != 0 {
			t.Fatalf("expected a flat LFO, got %d", v)
		}
		if e.Phase() != 0 {
			t.Fatalf("expected phase to stay at 0, got %d", e.Phase())
		}
	}
}

func TestEngine_Indicator(t *testing.T) {
	e := New()
	p := NewParams(Triangle, 8, 10)
	var got []bool
	for i := 0; i < 8; i++ {
		e.Step(p)
		got = append(got, e.Indicator())
	}
	for i, on := range got {
		if want := i < 4; on != want {
			t.Errorf("phase %d: expected indicator %v, got %v", i, want, on)
		}
	}
	if e.Phase() != 0 {
		t.Errorf("expected phase to wrap to 0, got %d", e.Phase())
	}
}
