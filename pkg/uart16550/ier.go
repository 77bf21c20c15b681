package uart16550

import (
	"strings"

	"github.com/thelolagemann/uart16550/pkg/bits"
)

// Read reads the enabled interrupt sources.
func (r IER[R]) Read(io IO[R]) InterruptTypes {
	return InterruptTypes(io.ReadAt(r.offset).Value())
}

// Write enables the interrupt sources in v, disabling all others.
func (r IER[R]) Write(io IO[R], v InterruptTypes) {
	io.WriteAt(r.offset, R(v))
}

// writeDivisor stores the divisor latch high byte. Only meaningful
// while the divisor latch access bit is set.
func (r IER[R]) writeDivisor(io IO[R], v R) {
	io.WriteAt(r.offset, v)
}

// InterruptTypes is the set of enabled interrupt sources.
//
//	Bit 0: Received data available
//	Bit 1: Transmitter holding register empty
//	Bit 2: Receiver line status
//	Bit 3: Modem status
//	Bit 7-4: Unused
type InterruptTypes uint8

const (
	ierRDA  = bits.Bit0
	ierTHRE = bits.Bit1
	ierRLS  = bits.Bit2
	ierMS   = bits.Bit3
)

// ZeroInterruptTypes disables every interrupt source.
func ZeroInterruptTypes() InterruptTypes { return 0 }

func (t InterruptTypes) EnableRDA() InterruptTypes   { return t | ierRDA }
func (t InterruptTypes) DisableRDA() InterruptTypes  { return t &^ ierRDA }
func (t InterruptTypes) EnableTHRE() InterruptTypes  { return t | ierTHRE }
func (t InterruptTypes) DisableTHRE() InterruptTypes { return t &^ ierTHRE }
func (t InterruptTypes) EnableRLS() InterruptTypes   { return t | ierRLS }
func (t InterruptTypes) DisableRLS() InterruptTypes  { return t &^ ierRLS }
func (t InterruptTypes) EnableMS() InterruptTypes    { return t | ierMS }
func (t InterruptTypes) DisableMS() InterruptTypes   { return t &^ ierMS }

// RDA reports whether the received data available interrupt is enabled.
func (t InterruptTypes) RDA() bool { return t&ierRDA != 0 }

// THRE reports whether the transmitter holding register empty
// interrupt is enabled.
func (t InterruptTypes) THRE() bool { return t&ierTHRE != 0 }

// RLS reports whether the receiver line status interrupt is enabled.
func (t InterruptTypes) RLS() bool { return t&ierRLS != 0 }

// MS reports whether the modem status interrupt is enabled.
func (t InterruptTypes) MS() bool { return t&ierMS != 0 }

func (t InterruptTypes) String() string {
	var names []string
	if t.RDA() {
		names = append(names, "rda")
	}
	if t.THRE() {
		names = append(names, "thre")
	}
	if t.RLS() {
		names = append(names, "rls")
	}
	if t.MS() {
		names = append(names, "ms")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
