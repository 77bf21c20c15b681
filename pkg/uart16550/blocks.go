package uart16550

// Register block handles. Each one carries nothing but the byte offset of
// its register, computed once by New from the register index and the
// width of R.
type (
	// RBRTHR is the receive buffer (read) and transmit holding (write)
	// register. With the divisor latch access bit set it addresses the
	// low byte of the divisor latch.
	RBRTHR[R Register] struct{ offset uintptr }

	// IER is the interrupt enable register. With the divisor latch
	// access bit set it addresses the high byte of the divisor latch.
	IER[R Register] struct{ offset uintptr }

	// IIRFCR is the interrupt identification (read) and FIFO control
	// (write) register.
	IIRFCR[R Register] struct{ offset uintptr }

	// LCR is the line control register.
	LCR[R Register] struct{ offset uintptr }

	// MCR is the modem control register.
	MCR[R Register] struct{ offset uintptr }

	// LSR is the line status register.
	LSR[R Register] struct{ offset uintptr }

	// MSR is the modem status register.
	MSR[R Register] struct{ offset uintptr }
)

// Register indices, in units of the register width.
const (
	IndexRBRTHR = iota
	IndexIER
	IndexIIRFCR
	IndexLCR
	IndexMCR
	IndexLSR
	IndexMSR

	// NumRegisters is the number of registers addressed by a UART.
	NumRegisters
)

func (r RBRTHR[R]) Offset() uintptr { return r.offset }
func (r IER[R]) Offset() uintptr    { return r.offset }
func (r IIRFCR[R]) Offset() uintptr { return r.offset }
func (r LCR[R]) Offset() uintptr    { return r.offset }
func (r MCR[R]) Offset() uintptr    { return r.offset }
func (r LSR[R]) Offset() uintptr    { return r.offset }
func (r MSR[R]) Offset() uintptr    { return r.offset }
