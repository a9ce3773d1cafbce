// Package oscillator produces the raw one-bit waveform of the
// synthesizer. Tones are made by rotating a fixed 16-bit pattern one
// bit per audio sample; noise comes from a 16-bit LFSR. Optionally the
// selector can drive a TIA poly bank instead of the pattern table.
package oscillator

import (
	"sync/atomic"

	"github.com/thelolagemann/onebit/internal/tia"
	"github.com/thelolagemann/onebit/internal/types"
	"github.com/thelolagemann/onebit/pkg/bits"
)

// Waveform selects the oscillator's output. Values 0-6 rotate one of
// the fixed Patterns, NoiseWaveform selects the pseudo-random generator.
type Waveform uint8

// NoiseWaveform is the Waveform that selects the noise generator.
const NoiseWaveform Waveform = 7

// NumWaveforms is the size of the selector space (3 bits).
const NumWaveforms = 8

// Patterns are the 16-bit shapes rotated by the oscillator. The slot
// of NoiseWaveform is unused.
var Patterns = [NumWaveforms]uint16{
	0b1100000000000000,
	0b1111111100000000,
	0b1110111111101111,
	0b1011011011011011,
	0b0010100001110110,
	0b1010101011010101,
	0b1010101010101010,
	0b0000000000000000, // noise
}

var waveformNames = [NumWaveforms]string{
	"pulse-12", "square", "notch", "triplet", "pattern", "buzz", "octave", "noise",
}

func (w Waveform) String() string {
	return waveformNames[w&0x07]
}

// IsNoise reports whether w selects the noise generator.
func (w Waveform) IsNoise() bool {
	return w&0x07 == NoiseWaveform
}

// Oscillator is the waveform bit generator. The waveform selection and
// the rotating register are packed in one word, so that a selection
// change (select + reload) is observed by the audio tick atomically:
//
//	bits 0-15  rotating register
//	bits 16-18 waveform selection
//
// NextBit is the only writer of the register half and must only be
// called from the audio tick. Select may be called from any goroutine.
type Oscillator struct {
	word atomic.Uint32

	// owned by the audio tick
	noise *Noise
	bank  *tia.Bank
}

// New returns an Oscillator playing the first pattern.
func New() *Oscillator {
	o := &Oscillator{noise: NewNoise(DefaultSeed)}
	o.word.Store(pack(0, Patterns[0]))
	return o
}

// AttachBank routes the selector to a TIA poly bank instead of the
// pattern table. It must be called before the audio tick starts.
func (o *Oscillator) AttachBank(b *tia.Bank) {
	o.bank = b
}

// Bank returns the attached poly bank, if any.
func (o *Oscillator) Bank() *tia.Bank {
	return o.bank
}

func pack(w Waveform, register uint16) uint32 {
	return uint32(w&0x07)<<16 | uint32(register)
}

func unpack(word uint32) (Waveform, uint16) {
	return Waveform(word>>16) & 0x07, uint16(word)
}

// Waveform returns the current selection.
func (o *Oscillator) Waveform() Waveform {
	w, _ := unpack(o.word.Load())
	return w
}

// Register returns the current rotating register.
func (o *Oscillator) Register() uint16 {
	_, r := unpack(o.word.Load())
	return r
}

// Select switches to waveform w, reloading the register with its
// pattern. Selecting the current waveform leaves the register
// untouched. It returns whether the selection changed.
func (o *Oscillator) Select(w Waveform) bool {
	w &= 0x07
	for {
		old := o.word.Load()
		if cur, _ := unpack(old); cur == w {
			return false
		}
		if o.word.CompareAndSwap(old, pack(w, Patterns[w])) {
			return true
		}
	}
}

// NextBit returns the next output bit of the selected waveform.
func (o *Oscillator) NextBit() uint8 {
	if o.bank != nil {
		return o.bank.Output(uint8(o.Waveform()))
	}

	for {
		old := o.word.Load()
		w, register := unpack(old)
		if w.IsNoise() {
			return o.noise.Bit()
		}

		register, out := bits.RotateRight16(register)
		// a failed swap means Select reloaded the word under us;
		// retry against the new pattern
		if o.word.CompareAndSwap(old, pack(w, register)) {
			return out
		}
	}
}

var _ types.Stater = (*Oscillator)(nil)

func (o *Oscillator) Load(s *types.State) {
	o.word.Store(s.Read32())
	o.noise.Load(s)
	if s.ReadBool() {
		if o.bank == nil {
			o.bank = tia.NewBank()
		}
		o.bank.Load(s)
	}
}

func (o *Oscillator) Save(s *types.State) {
	s.Write32(o.word.Load())
	o.noise.Save(s)
	s.WriteBool(o.bank != nil)
	if o.bank != nil {
		o.bank.Save(s)
	}
}
