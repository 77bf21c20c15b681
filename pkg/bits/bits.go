// Package bits provides helpers for working with the individual
// bits and bit fields of 8-bit register values.
package bits

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// SetTo sets or resets the bits in mask depending on v.
func SetTo(b, mask uint8, v bool) uint8 {
	if v {
		return b | mask
	}
	return b &^ mask
}

// Field extracts the field selected by mask, shifted down so that
// its lowest bit lands at bit 0.
//
// e.g.
//
//	Field(0b1100_0000, 0b1100_0000) = 0b11
//	Field(0b0010_1000, 0b0011_1000) = 0b101
func Field(b, mask uint8) uint8 {
	if mask == 0 {
		return 0
	}
	return (b & mask) >> shift(mask)
}

// WithField replaces the field selected by mask with v. Bits of v
// that do not fit in the field are discarded.
func WithField(b, mask, v uint8) uint8 {
	if mask == 0 {
		return b
	}
	return (b &^ mask) | ((v << shift(mask)) & mask)
}

// shift returns the index of the lowest set bit of mask.
func shift(mask uint8) uint8 {
	var s uint8
	for mask&1 == 0 {
		mask >>= 1
		s++
	}
	return s
}
