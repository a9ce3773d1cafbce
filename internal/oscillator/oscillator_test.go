package oscillator

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thelolagemann/onebit/internal/tia"
	"github.com/thelolagemann/onebit/internal/types"
)

func TestNoise_Sequence(t *testing.T) {
	n := NewNoise(DefaultSeed)
	want := []uint16{0xE270, 0x7138, 0x389C, 0x1C4E, 0x0E27, 0xB313, 0xED89, 0xC2C4}
	got := make([]uint16, len(want))
	for i := range got {
		got[i] = n.Step()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("noise sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestNoise_Period(t *testing.T) {
	n := NewNoise(DefaultSeed)
	period := 0
	for {
		period++
		if n.Step() == DefaultSeed {
			break
		}
		if period > 1<<16 {
			t.Fatalf("expected the register to cycle")
		}
	}
	if period != 65535 {
		t.Errorf("expected a maximal period of 65535, got %d", period)
	}
}

func TestNoise_NonzeroSeeds(t *testing.T) {
	for _, seed := range []uint16{1, 2, 0x8000, 0x00FF, 0xFFFF, 0x1234} {
		n := NewNoise(seed)
		ones, zeros := 0, 0
		for i := 0; i < 1024; i++ {
			if n.Step() == 0 {
				t.Fatalf("seed 0x%04X: register collapsed to zero", seed)
			}
			if n.Value()&1 == 1 {
				ones++
			} else {
				zeros++
			}
		}
		if ones == 0 || zeros == 0 {
			t.Errorf("seed 0x%04X: expected a varying output, got %d ones %d zeros", seed, ones, zeros)
		}
	}
}

func TestNoise_ZeroSeed(t *testing.T) {
	n := NewNoise(0)
	if n.Value() != DefaultSeed {
		t.Errorf("expected zero seed to be replaced by 0x%04X, got 0x%04X", DefaultSeed, n.Value())
	}
}

func TestOscillator_Rotate(t *testing.T) {
	o := New()
	o.Select(1) // 0xFF00

	var got []uint8
	for i := 0; i < 32; i++ {
		got = append(got, o.NextBit())
	}
	want := []uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1,
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rotation mismatch (-want +got):\n%s", diff)
	}
	if o.Register() != 0xFF00 {
		t.Errorf("expected register to return to 0xFF00, got 0x%04X", o.Register())
	}
}

func TestOscillator_Select(t *testing.T) {
	o := New()
	t.Run("change reloads", func(t *testing.T) {
		o.NextBit()
		if !o.Select(3) {
			t.Errorf("expected selection to change")
		}
		if o.Register() != Patterns[3] {
			t.Errorf("expected register 0x%04X, got 0x%04X", Patterns[3], o.Register())
		}
	})
	t.Run("same keeps phase", func(t *testing.T) {
		o.NextBit()
		r := o.Register()
		if o.Select(3) {
			t.Errorf("expected no change")
		}
		if o.Register() != r {
			t.Errorf("expected register to be kept, got 0x%04X want 0x%04X", o.Register(), r)
		}
	})
	t.Run("noise", func(t *testing.T) {
		o.Select(NoiseWaveform)
		ref := NewNoise(DefaultSeed)
		for i := 0; i < 64; i++ {
			if got, want := o.NextBit(), ref.Bit(); got != want {
				t.Fatalf("sample %d: expected %d, got %d", i, want, got)
			}
		}
	})
}

func TestOscillator_Bank(t *testing.T) {
	o := New()
	o.AttachBank(tia.NewBank())
	o.Select(2) // div2

	ref := tia.NewBank()
	for i := 0; i < 32; i++ {
		if got, want := o.NextBit(), ref.Output(2); got != want {
			t.Fatalf("sample %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestOscillator_ConcurrentSelect(t *testing.T) {
	o := New()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			o.Select(Waveform(i % 7))
		}
	}()
	for i := 0; i < 10000; i++ {
		o.NextBit()
	}
	wg.Wait()

	// whatever the interleaving, the register is a rotation of the
	// selected pattern
	w, r := o.Waveform(), o.Register()
	p := Patterns[w]
	for i := 0; i < 16; i++ {
		if p == r {
			return
		}
		p = p>>1 | p<<15
	}
	t.Errorf("register 0x%04X is not a rotation of pattern %d", r, w)
}

func TestOscillator_State(t *testing.T) {
	o := New()
	o.Select(NoiseWaveform)
	for i := 0; i < 100; i++ {
		o.NextBit()
	}

	st := types.NewState()
	o.Save(st)
	loaded, err := types.StateFromBytes(st.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	restored := New()
	restored.Load(loaded)

	for i := 0; i < 64; i++ {
		if got, want := restored.NextBit(), o.NextBit(); got != want {
			t.Fatalf("sample %d: expected %d, got %d", i, want, got)
		}
	}
}

func BenchmarkOscillator_NextBit(b *testing.B) {
	o := New()
	o.Select(4)
	for i := 0; i < b.N; i++ {
		o.NextBit()
	}
}
