package uart16550

import (
	"fmt"

	"github.com/thelolagemann/uart16550/pkg/bits"
)

// Read reads the interrupt identification register.
func (r IIRFCR[R]) Read(io IO[R]) InterruptIdentification {
	return InterruptIdentification(io.ReadAt(r.offset).Value())
}

// Write writes the FIFO control register. The two registers share an
// offset: reads always reach the IIR, writes always reach the FCR.
func (r IIRFCR[R]) Write(io IO[R], v FIFOControl) {
	io.WriteAt(r.offset, R(v))
}

// InterruptIdentification reports the highest priority pending
// interrupt.
//
//	Bit 0:   No interrupt pending (0=Pending, 1=None)
//	Bit 3-1: Interrupt cause, see PendingInterrupt
//	Bit 5-4: Unused
//	Bit 7-6: FIFOs enabled (0b11 when enabled)
type InterruptIdentification uint8

const (
	iirNotPending = bits.Bit0
	iirCauseMask  = bits.Bit3 | bits.Bit2 | bits.Bit1
	iirFIFOMask   = bits.Bit7 | bits.Bit6
)

// PendingInterrupt is the cause of an interrupt, ordered here from
// lowest to highest priority.
type PendingInterrupt uint8

const (
	ModemStatusChange               PendingInterrupt = 0b000
	TransmitterHoldingRegisterEmpty PendingInterrupt = 0b001
	ReceivedDataAvailable           PendingInterrupt = 0b010
	ReceiverLineStatus              PendingInterrupt = 0b011
	CharacterTimeout                PendingInterrupt = 0b110
)

// IsPending reports whether any interrupt is pending.
func (i InterruptIdentification) IsPending() bool {
	return i&iirNotPending == 0
}

// Pending returns the cause of the pending interrupt. ok is false when
// no interrupt is pending or the cause is not a defined code.
func (i InterruptIdentification) Pending() (p PendingInterrupt, ok bool) {
	if !i.IsPending() {
		return 0, false
	}
	switch p = PendingInterrupt(bits.Field(uint8(i), iirCauseMask)); p {
	case ModemStatusChange, TransmitterHoldingRegisterEmpty, ReceivedDataAvailable,
		ReceiverLineStatus, CharacterTimeout:
		return p, true
	}
	return 0, false
}

// FIFOsEnabled reports whether the FIFOs are enabled.
func (i InterruptIdentification) FIFOsEnabled() bool {
	return i&iirFIFOMask == iirFIFOMask
}

func (i InterruptIdentification) String() string {
	p, ok := i.Pending()
	if !ok {
		return fmt.Sprintf("none (fifo=%t)", i.FIFOsEnabled())
	}
	return fmt.Sprintf("%s (fifo=%t)", p, i.FIFOsEnabled())
}

func (p PendingInterrupt) String() string {
	switch p {
	case ModemStatusChange:
		return "modem-status"
	case TransmitterHoldingRegisterEmpty:
		return "thr-empty"
	case ReceivedDataAvailable:
		return "data-available"
	case ReceiverLineStatus:
		return "line-status"
	case CharacterTimeout:
		return "char-timeout"
	}
	return fmt.Sprintf("PendingInterrupt(0b%03b)", uint8(p))
}

// NewInterruptIdentification encodes the identification value for p,
// or the no-interrupt value when pending is false. Used by devices that
// model the register rather than read it.
func NewInterruptIdentification(p PendingInterrupt, pending, fifos bool) InterruptIdentification {
	v := uint8(iirNotPending)
	if pending {
		v = bits.WithField(0, iirCauseMask, uint8(p))
	}
	return InterruptIdentification(bits.SetTo(v, iirFIFOMask, fifos))
}
