package uart16550

import (
	"fmt"

	"github.com/thelolagemann/uart16550/pkg/bits"
)

// FIFOControl configures the FIFOs. The control register is write
// only; the reset bits are pulses that clear themselves once the FIFO
// has been flushed.
//
//	Bit 0:   FIFO enable
//	Bit 1:   Receiver FIFO reset
//	Bit 2:   Transmitter FIFO reset
//	Bit 3:   DMA mode select
//	Bit 5-4: Reserved
//	Bit 7-6: Receiver trigger level, see TriggerLevel
type FIFOControl uint8

const (
	fcrEnable      = bits.Bit0
	fcrResetRx     = bits.Bit1
	fcrResetTx     = bits.Bit2
	fcrDMAMode     = bits.Bit3
	fcrTriggerMask = bits.Bit7 | bits.Bit6
)

// TriggerLevel is the receiver FIFO fill level at which a received
// data available interrupt is raised.
type TriggerLevel uint8

const (
	TriggerLevel1  TriggerLevel = 0b00
	TriggerLevel4  TriggerLevel = 0b01
	TriggerLevel8  TriggerLevel = 0b10
	TriggerLevel14 TriggerLevel = 0b11
)

// Bytes returns the number of bytes the trigger level represents.
func (l TriggerLevel) Bytes() int {
	return [...]int{1, 4, 8, 14}[l&0b11]
}

func (l TriggerLevel) String() string {
	return fmt.Sprintf("%d", l.Bytes())
}

// NewFIFOControl returns a control value with the FIFOs enabled at the
// given trigger level and both FIFOs being reset.
func NewFIFOControl(level TriggerLevel) FIFOControl {
	return FIFOControl(fcrEnable | fcrResetRx | fcrResetTx).WithTriggerLevel(level)
}

// DisabledFIFOControl returns a control value that disables the FIFOs.
func DisabledFIFOControl() FIFOControl { return 0 }

func (f FIFOControl) EnableFIFO() FIFOControl  { return f | fcrEnable }
func (f FIFOControl) DisableFIFO() FIFOControl { return f &^ fcrEnable }
func (f FIFOControl) ResetRx() FIFOControl     { return f | fcrResetRx }
func (f FIFOControl) ResetTx() FIFOControl     { return f | fcrResetTx }

// WithDMAMode sets the DMA mode select bit.
func (f FIFOControl) WithDMAMode(on bool) FIFOControl {
	return FIFOControl(bits.SetTo(uint8(f), fcrDMAMode, on))
}

// WithTriggerLevel returns f with the receiver trigger level replaced.
func (f FIFOControl) WithTriggerLevel(l TriggerLevel) FIFOControl {
	return FIFOControl(bits.WithField(uint8(f), fcrTriggerMask, uint8(l)))
}

func (f FIFOControl) IsFIFOEnabled() bool { return f&fcrEnable != 0 }
func (f FIFOControl) IsResetRx() bool     { return f&fcrResetRx != 0 }
func (f FIFOControl) IsResetTx() bool     { return f&fcrResetTx != 0 }
func (f FIFOControl) IsDMAMode() bool     { return f&fcrDMAMode != 0 }

// Trigger returns the receiver trigger level.
func (f FIFOControl) Trigger() TriggerLevel {
	return TriggerLevel(bits.Field(uint8(f), fcrTriggerMask))
}

func (f FIFOControl) String() string {
	return fmt.Sprintf("enable=%t rx-reset=%t tx-reset=%t dma=%t trigger=%s",
		f.IsFIFOEnabled(), f.IsResetRx(), f.IsResetTx(), f.IsDMAMode(), f.Trigger())
}
