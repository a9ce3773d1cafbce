// Package bits provides the small bit helpers shared by the
// shift-register based generators.
package bits

import "golang.org/x/exp/constraints"

// Val returns the value of the bit at the given index.
func Val[T constraints.Unsigned](b T, i uint8) T {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset[T constraints.Unsigned](b T, i uint8) T {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set[T constraints.Unsigned](b T, i uint8) T {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](b T, i uint8) bool {
	return (b>>i)&1 != 0
}

// Not returns 1 if b is 0, and 0 otherwise.
func Not[T constraints.Unsigned](b T) T {
	if b == 0 {
		return 1
	}
	return 0
}

// RotateRight16 rotates v right by one bit, returning the rotated
// value and the bit that wrapped around from bit 0 to bit 15.
func RotateRight16(v uint16) (uint16, uint8) {
	out := uint8(v & 1)
	return v>>1 | uint16(out)<<15, out
}
