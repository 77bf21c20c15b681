package uart16550

import (
	"strings"

	"github.com/thelolagemann/uart16550/pkg/bits"
)

// Read reads the line status register. Reading clears the error bits
// on real hardware, so the returned value should be inspected once.
func (r LSR[R]) Read(io IO[R]) LineStatus {
	return LineStatus(io.ReadAt(r.offset).Value())
}

// LineStatus reports the state of the receiver and transmitter.
//
//	Bit 0: Data ready
//	Bit 1: Overrun error
//	Bit 2: Parity error
//	Bit 3: Framing error
//	Bit 4: Break interrupt
//	Bit 5: Transmitter holding register empty (transmitter FIFO empty in FIFO mode)
//	Bit 6: Transmitter empty (holding and shift registers idle)
//	Bit 7: Error in receiver FIFO
type LineStatus uint8

const (
	LSRDataReady         = bits.Bit0
	LSROverrunError      = bits.Bit1
	LSRParityError       = bits.Bit2
	LSRFramingError      = bits.Bit3
	LSRBreakInterrupt    = bits.Bit4
	LSRTransmitterFIFO   = bits.Bit5
	LSRTransmitterEmpty  = bits.Bit6
	LSRReceiverFIFOError = bits.Bit7

	// LSRErrors is every error condition reported by the register.
	LSRErrors = LSROverrunError | LSRParityError | LSRFramingError | LSRBreakInterrupt | LSRReceiverFIFOError
)

// IsDataReady reports whether at least one character is waiting in
// the receive buffer or FIFO.
func (s LineStatus) IsDataReady() bool { return s&LSRDataReady != 0 }

// IsOverrunError reports whether a character was lost because the
// receive buffer was full.
func (s LineStatus) IsOverrunError() bool { return s&LSROverrunError != 0 }

func (s LineStatus) IsParityError() bool  { return s&LSRParityError != 0 }
func (s LineStatus) IsFramingError() bool { return s&LSRFramingError != 0 }

// IsBreak reports whether a break condition was detected on the line.
func (s LineStatus) IsBreak() bool { return s&LSRBreakInterrupt != 0 }

// IsTransmitterHoldingEmpty reports whether the transmitter holding
// register can accept a character.
func (s LineStatus) IsTransmitterHoldingEmpty() bool { return s&LSRTransmitterFIFO != 0 }

// IsTransmitterFIFOEmpty reports whether the transmitter FIFO is empty.
// In FIFO mode the holding register empty bit tracks the whole FIFO, so
// this is the same bit as IsTransmitterHoldingEmpty.
func (s LineStatus) IsTransmitterFIFOEmpty() bool { return s&LSRTransmitterFIFO != 0 }

// IsTransmitterEmpty reports whether both the holding and the shift
// register are empty, i.e. the last character has left the wire.
func (s LineStatus) IsTransmitterEmpty() bool { return s&LSRTransmitterEmpty != 0 }

// IsReceiverFIFOError reports whether at least one character in the
// receiver FIFO has a parity, framing or break error.
func (s LineStatus) IsReceiverFIFOError() bool { return s&LSRReceiverFIFOError != 0 }

// HasError reports whether any error condition is set.
func (s LineStatus) HasError() bool { return s&LSRErrors != 0 }

func (s LineStatus) String() string {
	names := []string{"dr", "oe", "pe", "fe", "bi", "thre", "temt", "fifoerr"}
	var set []string
	for i, name := range names {
		if bits.Test(uint8(s), uint8(i)) {
			set = append(set, name)
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, "|")
}
