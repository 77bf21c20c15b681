package uart16550

import (
	"fmt"

	"github.com/thelolagemann/uart16550/pkg/bits"
)

// Read reads the line control register.
func (r LCR[R]) Read(io IO[R]) LineControl {
	return LineControl(io.ReadAt(r.offset).Value())
}

// Write writes the line control register.
func (r LCR[R]) Write(io IO[R], v LineControl) {
	io.WriteAt(r.offset, R(v))
}

// LineControl is the line configuration.
//
//	Bit 1-0: Character length, see CharLen
//	Bit 2:   Stop bits (0=1 stop bit, 1=1.5 for 5-bit characters, 2 otherwise)
//	Bit 5-3: Parity, see Parity
//	Bit 6:   Break control
//	Bit 7:   Divisor latch access (DLAB)
//
// While DLAB is set, offsets 0 and 1 address the low and high bytes of
// the baud rate divisor latch instead of RBR/THR and IER.
type LineControl uint8

const (
	lcrCharLenMask = bits.Bit1 | bits.Bit0
	lcrStopBits    = bits.Bit2
	lcrParityMask  = bits.Bit5 | bits.Bit4 | bits.Bit3
	lcrBreak       = bits.Bit6
	lcrDLAB        = bits.Bit7
)

// CharLen is the number of data bits per character.
type CharLen uint8

const (
	CharLen5 CharLen = 0b00
	CharLen6 CharLen = 0b01
	CharLen7 CharLen = 0b10
	CharLen8 CharLen = 0b11
)

// Bits returns the number of data bits.
func (c CharLen) Bits() int { return 5 + int(c&0b11) }

// Parity is the parity mode. Bit 0 enables parity, bit 1 selects even
// parity and bit 2 makes the parity bit sticky.
type Parity uint8

const (
	ParityNone  Parity = 0b000
	ParityOdd   Parity = 0b001
	ParityEven  Parity = 0b011
	ParityMark  Parity = 0b101
	ParitySpace Parity = 0b111
)

func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	case ParityMark:
		return "mark"
	case ParitySpace:
		return "space"
	}
	return "none"
}

// NewLineControl returns the line configuration for the given framing,
// with break and divisor latch access cleared.
func NewLineControl(length CharLen, parity Parity, twoStopBits bool) LineControl {
	return LineControl(0).WithCharLen(length).WithParity(parity).WithTwoStopBits(twoStopBits)
}

// EnableDLAB sets the divisor latch access bit.
func (l LineControl) EnableDLAB() LineControl { return l | lcrDLAB }

// DisableDLAB clears the divisor latch access bit.
func (l LineControl) DisableDLAB() LineControl { return l &^ lcrDLAB }

// IsDLAB reports whether the divisor latch access bit is set.
func (l LineControl) IsDLAB() bool { return l&lcrDLAB != 0 }

func (l LineControl) WithCharLen(c CharLen) LineControl {
	return LineControl(bits.WithField(uint8(l), lcrCharLenMask, uint8(c)))
}

func (l LineControl) CharLen() CharLen {
	return CharLen(bits.Field(uint8(l), lcrCharLenMask))
}

func (l LineControl) WithTwoStopBits(on bool) LineControl {
	return LineControl(bits.SetTo(uint8(l), lcrStopBits, on))
}

// TwoStopBits reports whether more than one stop bit is sent. For
// 5-bit characters this means 1.5 stop bits.
func (l LineControl) TwoStopBits() bool { return l&lcrStopBits != 0 }

func (l LineControl) WithParity(p Parity) LineControl {
	return LineControl(bits.WithField(uint8(l), lcrParityMask, uint8(p)))
}

// Parity returns the parity mode. Any encoding with the enable bit
// clear is ParityNone.
func (l LineControl) Parity() Parity {
	p := Parity(bits.Field(uint8(l), lcrParityMask))
	if p&0b001 == 0 {
		return ParityNone
	}
	return p
}

func (l LineControl) WithBreak(on bool) LineControl {
	return LineControl(bits.SetTo(uint8(l), lcrBreak, on))
}

// IsBreak reports whether the transmitter is forcing a break.
func (l LineControl) IsBreak() bool { return l&lcrBreak != 0 }

func (l LineControl) String() string {
	stop := "1"
	if l.TwoStopBits() {
		stop = "2"
		if l.CharLen() == CharLen5 {
			stop = "1.5"
		}
	}
	return fmt.Sprintf("%d%c%s break=%t dlab=%t",
		l.CharLen().Bits(), l.Parity().String()[0]-'a'+'A', stop, l.IsBreak(), l.IsDLAB())
}
