package tia

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thelolagemann/onebit/internal/types"
)

// golden holds the first 64 samples of every selector, starting
// from the power-on state of the registers.
var golden = [8]string{
	"0010011010111100010011010111100010011010111100010011010111100010",
	"0000000010000110111101111110000000000110000110100001111100000000",
	"0010101010101010101010101010101010101010101010101010101010101010",
	"0000000000000000000000000000000000000000000000111111111111100000",
	"0000000010001010111101101001100000111001000101011110110100110000",
	"0010000100011000010011100101010110000110111101001101110010001010",
	"0010000100101100111110001101110101000010010110011111000110111010",
	"0001110000001110000001111000000000111111000001111110000111110000",
}

func render(b *Bank, selector uint8, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte('0' + b.Output(selector))
	}
	return sb.String()
}

func TestBank_Golden(t *testing.T) {
	for sel, want := range golden {
		t.Run(Selectors[sel].String(), func(t *testing.T) {
			got := render(NewBank(), uint8(sel), len(want))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("selector %d mismatch (-want +got):\n%s", sel, diff)
			}
		})
	}
}

func TestBank_Periods(t *testing.T) {
	tests := []struct {
		rule   uint8
		period int
	}{
		{0, 15}, // poly4
		{2, 2},  // div2
	}
	for _, tt := range tests {
		b := NewBank()
		// skip the power-on transient
		render(b, tt.rule, 64)
		first := render(b, tt.rule, tt.period)
		second := render(b, tt.rule, tt.period)
		if first != second {
			t.Errorf("selector %d: expected period %d, got %s then %s", tt.rule, tt.period, first, second)
		}
	}
}

func TestBank_Continuity(t *testing.T) {
	// output over split calls matches a single long run
	whole := render(NewBank(), 5, 128)

	b := NewBank()
	split := render(b, 5, 50) + render(b, 5, 78)
	if diff := cmp.Diff(whole, split); diff != "" {
		t.Errorf("split run mismatch (-whole +split):\n%s", diff)
	}
}

func TestBank_SelectorMask(t *testing.T) {
	a, b := NewBank(), NewBank()
	if render(a, 0x08|3, 64) != render(b, 3, 64) {
		t.Errorf("expected only the low 3 bits of the selector to be used")
	}
}

func TestBank_SpareRules(t *testing.T) {
	b := NewBank()
	for i := 0; i < 31*4; i++ {
		b.Step(Div31)
	}
	sr4, sr5 := b.Registers()
	if sr5 == 0 || sr5 > 0x1F {
		t.Errorf("expected a live 5-bit register, got 0x%02X", sr5)
	}
	if sr4 > 0x0F {
		t.Errorf("expected a 4-bit register, got 0x%02X", sr4)
	}

	// div6 produces runs of three
	b = NewBank()
	var sb strings.Builder
	for i := 0; i < 24; i++ {
		b.Step(Div6)
		sr4, _ := b.Registers()
		sb.WriteByte('0' + (sr4>>3)&1)
	}
	got := sb.String()[6:]
	if !strings.Contains(got, "000111") && !strings.Contains(got, "111000") {
		t.Errorf("expected div6 runs of three, got %s", sb.String())
	}
}

func TestBank_State(t *testing.T) {
	b := NewBank()
	render(b, 6, 17)

	st := types.NewState()
	b.Save(st)
	loaded, err := types.StateFromBytes(st.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	restored := &Bank{}
	restored.Load(loaded)

	if diff := cmp.Diff(render(b, 6, 40), render(restored, 6, 40)); diff != "" {
		t.Errorf("restored bank diverged (-original +restored):\n%s", diff)
	}
}
