// internal/ec/codec.go
package ec

import (
	"fmt"
	"math"
)

// FromRegisters decodes two 16-bit registers in ABCD (big-endian,
// high word first) order into an IEEE-754 single. Any bit pattern is
// accepted; no rounding or range checking is performed.
func FromRegisters(high, low uint16) float32 {
	bits := uint32(high)<<16 | uint32(low)
	return math.Float32frombits(bits)
}

// ToRegisters is the exact inverse of FromRegisters.
func ToRegisters(v float32) (high, low uint16) {
	bits := math.Float32bits(v)
	return uint16(bits >> 16), uint16(bits)
}

// HexString renders a register pair as an 8-character uppercase hex
// string, e.g. 0x4135/0x1A86 -> "41351A86". The raw words are logged
// next to every converted float so readings can be checked against an
// external IEEE-754 converter.
func HexString(high, low uint16) string {
	return fmt.Sprintf("%04X%04X", high, low)
}
