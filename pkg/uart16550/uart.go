package uart16550

// UART is a 16550-compatible UART reached through an IO capability.
//
// The register offsets are fixed when the UART is created:
//
//	Index  Reg8  Reg32  Read            Write
//	0      0x00  0x00   RBR / DLL       THR / DLL
//	1      0x01  0x04   IER / DLM       IER / DLM
//	2      0x02  0x08   IIR             FCR
//	3      0x03  0x0C   LCR             LCR
//	4      0x04  0x10   MCR             MCR
//	5      0x05  0x14   LSR             -
//	6      0x06  0x18   MSR             -
//
// A UART holds no lock. Callers sharing one between goroutines, e.g. an
// interrupt handler and a polling loop, must serialize access themselves.
type UART[R Register] struct {
	rbrThr RBRTHR[R]
	ier    IER[R]
	iirFcr IIRFCR[R]
	lcr    LCR[R]
	mcr    MCR[R]
	lsr    LSR[R]
	msr    MSR[R]

	io IO[R]
}

// New creates a UART that accesses its registers through io.
func New[R Register](io IO[R]) *UART[R] {
	w := width[R]()
	return &UART[R]{
		rbrThr: RBRTHR[R]{offset: IndexRBRTHR * w},
		ier:    IER[R]{offset: IndexIER * w},
		iirFcr: IIRFCR[R]{offset: IndexIIRFCR * w},
		lcr:    LCR[R]{offset: IndexLCR * w},
		mcr:    MCR[R]{offset: IndexMCR * w},
		lsr:    LSR[R]{offset: IndexLSR * w},
		msr:    MSR[R]{offset: IndexMSR * w},
		io:     io,
	}
}

// IO returns the IO capability the UART was created with.
func (u *UART[R]) IO() IO[R] { return u.io }

func (u *UART[R]) RBRTHR() RBRTHR[R] { return u.rbrThr }
func (u *UART[R]) IER() IER[R]       { return u.ier }
func (u *UART[R]) IIRFCR() IIRFCR[R] { return u.iirFcr }
func (u *UART[R]) LCR() LCR[R]       { return u.lcr }
func (u *UART[R]) MCR() MCR[R]       { return u.mcr }
func (u *UART[R]) LSR() LSR[R]       { return u.lsr }
func (u *UART[R]) MSR() MSR[R]       { return u.msr }

// Offsets returns the byte offset of every register, in index order.
func (u *UART[R]) Offsets() [NumRegisters]uintptr {
	return [NumRegisters]uintptr{
		u.rbrThr.offset,
		u.ier.offset,
		u.iirFcr.offset,
		u.lcr.offset,
		u.mcr.offset,
		u.lsr.offset,
		u.msr.offset,
	}
}

// WriteDivisor programs the baud rate divisor latch.
//
// The latch aliases RBR/THR and IER while the divisor latch access bit is
// set, so the line control register is restored to exactly its previous
// value once both bytes have been written.
func (u *UART[R]) WriteDivisor(divisor uint16) {
	lcr := u.lcr.Read(u.io)
	u.lcr.Write(u.io, lcr.EnableDLAB())

	u.rbrThr.write(u.io, R(uint8(divisor)))
	u.ier.writeDivisor(u.io, R(uint8(divisor>>8)))

	u.lcr.Write(u.io, lcr)
}

// Read copies received characters into buf and returns how many were
// copied. The line status is polled once per character and Read stops at
// the first poll that finds no data, so it never waits for input.
func (u *UART[R]) Read(buf []byte) int {
	n := 0
	for i := range buf {
		if !u.lsr.Read(u.io).IsDataReady() {
			break
		}
		buf[i] = u.rbrThr.RxData(u.io)
		n++
	}
	return n
}

// Write queues characters from buf for transmission and returns how many
// were queued. The line status is polled once per character and Write
// stops at the first poll that finds the transmitter FIFO busy; callers
// retry the remainder.
func (u *UART[R]) Write(buf []byte) int {
	n := 0
	for _, c := range buf {
		if !u.lsr.Read(u.io).IsTransmitterFIFOEmpty() {
			break
		}
		u.rbrThr.TxData(u.io, c)
		n++
	}
	return n
}
