// Package tia emulates the one-bit tone and noise generators of the
// Atari 2600 TIA sound chip. Each waveform is produced by a 4-bit and
// a 5-bit linear feedback shift register, clocked together according
// to one of a small set of rules. The rules and polynomials match the
// chip bit for bit; the output is always bit 3 of the 4-bit register.
package tia

import (
	"github.com/thelolagemann/onebit/internal/types"
	"github.com/thelolagemann/onebit/pkg/bits"
)

// Rule is one of the register update rules of the TIA. The names
// follow the chip's AUDC documentation.
type Rule uint8

const (
	Poly4 Rule = iota
	Poly5Poly4
	Div2
	Div31Div2
	Poly5Div2
	Poly9
	Poly5
	Poly5Div6
	Div31Poly4
	Div31
	Div6
	Div31Div6

	numRules
)

// Selectors maps the 3-bit waveform selector onto the rules it runs.
var Selectors = [8]Rule{
	Poly4,
	Poly5Poly4,
	Div2,
	Div31Div2,
	Poly5Div2,
	Poly9,
	Poly5,
	Poly5Div6,
}

var ruleNames = [numRules]string{
	"poly4", "poly5+poly4", "div2", "div31+div2", "poly5+div2", "poly9",
	"poly5", "poly5+div6", "div31+poly4", "div31", "div6", "div31+div6",
}

func (r Rule) String() string {
	if r < numRules {
		return ruleNames[r]
	}
	return "unknown"
}

// Bank holds the two shift registers. Both start at 1 and are
// never reset afterwards: the phase of a tone depends on the
// registers carrying over from one sample to the next.
type Bank struct {
	sr4, sr5 uint8
}

// NewBank returns a Bank in its power-on state.
func NewBank() *Bank {
	return &Bank{sr4: 1, sr5: 1}
}

// Output runs the rule picked by the 3-bit waveform selector and
// returns the resulting sample, 0 or 1.
func (b *Bank) Output(selector uint8) uint8 {
	b.Step(Selectors[selector&0x07])
	return bits.Val(b.sr4, 3)
}

// Registers returns the current 4-bit and 5-bit register values.
func (b *Bank) Registers() (sr4, sr5 uint8) {
	return b.sr4, b.sr5
}

// Step clocks the registers once according to rule.
func (b *Bank) Step(rule Rule) {
	switch rule {
	case Poly4:
		b.shift4()
	case Poly5Poly4:
		b.shift5()
		// 5-bit register clocks 4-bit register
		if b.sr5&types.Bit4 != 0 {
			b.shift4()
		}
	case Div2:
		b.div2()
	case Div31Div2:
		b.shift5()
		if b.div31() {
			b.div2()
		}
	case Poly5Div2:
		b.shift5()
		if b.sr5&types.Bit4 != 0 {
			b.div2()
		}
	case Poly9:
		// a single 9-bit register spread over both, taps at bits 8 and 4
		b.sr5 = b.sr5<<1 | (bits.Val(b.sr4, 3) ^ bits.Val(b.sr5, 4))
		b.sr4 = (b.sr4<<1 | bits.Val(b.sr5, 5)) & 0x0F
		b.sr5 &= 0x1F
	case Poly5:
		b.sr5 = b.sr5<<1 | (bits.Val(b.sr5, 4) ^ bits.Val(b.sr5, 2))
		b.sr4 = (b.sr4<<1 | bits.Val(b.sr5, 5)) & 0x0F
		b.sr5 &= 0x1F
	case Poly5Div6:
		b.shift5()
		if b.sr5&types.Bit4 != 0 {
			b.div6()
		}
	case Div31Poly4:
		b.shift5()
		if b.div31() {
			b.shift4()
		}
	case Div31:
		b.shift5()
		if b.div31() {
			b.sr4 = (b.sr4<<1 | bits.Val(b.sr5, 4)) & 0x0F
		}
	case Div6:
		b.div6()
	case Div31Div6:
		b.shift5()
		if b.div31() {
			b.div6()
		}
	}
}

// shift4 clocks the 4-bit register, taps at bits 3 and 2.
func (b *Bank) shift4() {
	b.sr4 = (b.sr4<<1 | (bits.Val(b.sr4, 3) ^ bits.Val(b.sr4, 2))) & 0x0F
}

// shift5 clocks the 5-bit register, taps at bits 4 and 2.
func (b *Bank) shift5() {
	b.sr5 = (b.sr5<<1 | (bits.Val(b.sr5, 4) ^ bits.Val(b.sr5, 2))) & 0x1F
}

// div31 reports whether the 5-bit register is at the point of its
// 31-step sequence where it clocks the 4-bit register.
func (b *Bank) div31() bool {
	return b.sr5&0x0F == 0x08
}

// div2 produces the pattern 0101...
func (b *Bank) div2() {
	b.sr4 = (b.sr4<<1 | bits.Not(b.sr4&types.Bit0)) & 0x0F
}

// div6 produces the pattern 000111000111... The upper bits of the
// register are deliberately left unmasked, as on the chip.
func (b *Bank) div6() {
	var in uint8
	if b.sr4&types.Bit2 == 0 && b.sr4&0x07 != 0 {
		in = 1
	}
	b.sr4 = ^b.sr4<<1 | in
}

var _ types.Stater = (*Bank)(nil)

// Load loads the state of the registers.
func (b *Bank) Load(s *types.State) {
	b.sr4 = s.Read8()
	b.sr5 = s.Read8()
}

// Save saves the state of the registers.
func (b *Bank) Save(s *types.State) {
	s.Write8(b.sr4)
	s.Write8(b.sr5)
}
