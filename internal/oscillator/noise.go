package oscillator

import "github.com/thelolagemann/onebit/internal/types"

const (
	// DefaultSeed is the power-on state of every Noise generator.
	DefaultSeed uint16 = 0xACE1
	// noiseTaps is the feedback mask of the maximal-length 16-bit
	// register (x^16 + x^14 + x^13 + x^11 + 1).
	noiseTaps uint16 = 0xB400
)

// Noise is a 16-bit linear feedback shift register, used as a cheap
// pseudo-random generator. Its period is 65535 for any nonzero seed.
// The zero state is a fixed point of the register, so it is never
// allowed.
type Noise struct {
	lfsr uint16
}

// NewNoise returns a Noise generator seeded with seed. A zero seed
// is replaced by DefaultSeed.
func NewNoise(seed uint16) *Noise {
	n := &Noise{}
	n.Seed(seed)
	return n
}

// Seed sets the register, substituting DefaultSeed for zero.
func (n *Noise) Seed(seed uint16) {
	if seed == 0 {
		seed = DefaultSeed
	}
	n.lfsr = seed
}

// Step advances the register once and returns its new value.
func (n *Noise) Step() uint16 {
	feedback := -(n.lfsr & 1) & noiseTaps
	n.lfsr = n.lfsr>>1 ^ feedback
	return n.lfsr
}

// Bit advances the register and returns its least significant bit.
func (n *Noise) Bit() uint8 {
	return uint8(n.Step() & 1)
}

// Value returns the current register without advancing it.
func (n *Noise) Value() uint16 {
	return n.lfsr
}

var _ types.Stater = (*Noise)(nil)

func (n *Noise) Load(s *types.State) {
	n.Seed(s.Read16())
}

func (n *Noise) Save(s *types.State) {
	s.Write16(n.lfsr)
}
