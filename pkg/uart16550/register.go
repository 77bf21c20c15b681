// Package uart16550 provides type-safe definitions of the registers of
// a 16550-compatible UART, and the read/write primitives needed to drive
// one through an IO capability supplied by the host.
//
// The 16550 has been around long enough that it is found with both 8-bit
// and 32-bit wide registers. Whichever width the silicon uses, only the
// low 8 bits of each register are significant; the width is selected
// with the Register type parameter.
package uart16550

// Register is a backing representation of a single UART register.
// Only the low 8 bits of any Register are meaningful.
type Register interface {
	Reg8 | Reg32

	// Value returns the significant low 8 bits of the register.
	Value() uint8
	// Size returns the width of the register on the bus, in bytes.
	Size() uintptr
}

// Reg8 is the 8-bit (byte addressed) register mode.
type Reg8 uint8

// Value returns r unchanged.
func (r Reg8) Value() uint8 { return uint8(r) }

// Size always returns 1.
func (Reg8) Size() uintptr { return 1 }

// Reg32 is the 32-bit (word addressed) register mode. The upper 24 bits
// are discarded by Value.
type Reg32 uint32

// Value returns the low byte of r.
func (r Reg32) Value() uint8 { return uint8(r) }

// Size always returns 4.
func (Reg32) Size() uintptr { return 4 }

// width returns the size in bytes of R.
func width[R Register]() uintptr {
	var r R
	return r.Size()
}
