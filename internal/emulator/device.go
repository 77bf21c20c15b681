// Package emulator provides a software model of a 16550 UART that can
// stand in for real hardware behind the uart16550.IO capability.
package emulator

import (
	"sync"

	"github.com/thelolagemann/uart16550/internal/state"
	"github.com/thelolagemann/uart16550/pkg/log"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

const (
	// IndexSCR is the index of the scratch register, which the
	// emulator models though uart16550 does not expose it.
	IndexSCR = uart16550.NumRegisters

	// DefaultFIFODepth is the FIFO depth of a 16550A.
	DefaultFIFODepth = 16

	unmapped = 0xFF
)

// Device is a 16550 UART modelled in software. It implements
// uart16550.IO and is safe for concurrent use.
//
// The model covers the divisor latch aliasing of offsets 0 and 1, the
// receiver FIFO with its trigger level, the transmitter FIFO, sticky
// line status errors and interrupt identification for the line status,
// received data and transmitter holding register empty sources. Modem
// control and modem status are stored as raw bytes and raise no
// interrupts. Reading an unmapped offset returns 0xFF.
type Device[R uart16550.Register] struct {
	mu sync.Mutex

	ier      uart16550.InterruptTypes
	fcr      uart16550.FIFOControl
	lcr      uart16550.LineControl
	mcr      uart16550.ModemControl
	msr      uart16550.ModemStatus
	scr      uint8
	dll, dlm uint8

	rx     []byte
	rbr    uint8                // last character read, returned again when rx runs dry
	errors uart16550.LineStatus // sticky, cleared by reading the line status
	tx     []byte
	thri   bool // transmitter holding register empty interrupt pending

	config
}

var _ uart16550.IO[uart16550.Reg8] = (*Device[uart16550.Reg8])(nil)
var _ uart16550.IO[uart16550.Reg32] = (*Device[uart16550.Reg32])(nil)
var _ state.Stater = (*Device[uart16550.Reg8])(nil)

// New creates a Device in its power-on state.
func New[R uart16550.Register](opts ...Opt) *Device[R] {
	d := &Device[R]{
		config: config{
			fifoDepth: DefaultFIFODepth,
			logger:    log.NewNullLogger(),
		},
	}
	for _, opt := range opts {
		opt(&d.config)
	}
	d.Reset()
	return d
}

// Reset returns the device to its power-on state. Configuration set
// with options is kept.
func (d *Device[R]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ier, d.fcr, d.lcr, d.mcr, d.msr = 0, 0, 0, 0, 0
	d.scr, d.dll, d.dlm, d.rbr = 0, 0, 0, 0
	d.rx, d.tx = nil, nil
	d.errors = 0
	d.thri = false
}

// index converts a byte offset to a register index.
func (d *Device[R]) index(offset uintptr) (int, bool) {
	var r R
	w := r.Size()
	if offset%w != 0 || offset/w > IndexSCR {
		return 0, false
	}
	return int(offset / w), true
}

// ReadAt implements uart16550.IO.
func (d *Device[R]) ReadAt(offset uintptr) R {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, ok := d.index(offset)
	if !ok {
		d.logger.Debugf("emulator: read of unmapped offset 0x%02X", offset)
		return R(unmapped)
	}
	return R(d.read(i))
}

// WriteAt implements uart16550.IO.
func (d *Device[R]) WriteAt(offset uintptr, value R) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, ok := d.index(offset)
	if !ok {
		d.logger.Debugf("emulator: write of 0x%02X to unmapped offset 0x%02X", value.Value(), offset)
		return
	}
	d.write(i, value.Value())
}

func (d *Device[R]) read(i int) uint8 {
	switch i {
	case uart16550.IndexRBRTHR:
		if d.lcr.IsDLAB() {
			return d.dll
		}
		if len(d.rx) > 0 {
			d.rbr, d.rx = d.rx[0], d.rx[1:]
		}
		return d.rbr
	case uart16550.IndexIER:
		if d.lcr.IsDLAB() {
			return d.dlm
		}
		return uint8(d.ier)
	case uart16550.IndexIIRFCR:
		iir := d.identify()
		// reading the identification acknowledges a THR empty interrupt
		if p, ok := iir.Pending(); ok && p == uart16550.TransmitterHoldingRegisterEmpty {
			d.thri = false
		}
		return uint8(iir)
	case uart16550.IndexLCR:
		return uint8(d.lcr)
	case uart16550.IndexMCR:
		return uint8(d.mcr)
	case uart16550.IndexLSR:
		s := d.lineStatus()
		d.errors = 0
		return uint8(s)
	case uart16550.IndexMSR:
		return uint8(d.msr)
	case IndexSCR:
		return d.scr
	}
	return unmapped
}

func (d *Device[R]) write(i int, v uint8) {
	switch i {
	case uart16550.IndexRBRTHR:
		if d.lcr.IsDLAB() {
			d.dll = v
			return
		}
		d.transmit(v)
	case uart16550.IndexIER:
		if d.lcr.IsDLAB() {
			d.dlm = v
			return
		}
		prev := d.ier
		d.ier = uart16550.InterruptTypes(v & 0x0F)
		if !prev.THRE() && d.ier.THRE() && len(d.tx) == 0 {
			d.thri = true
		}
	case uart16550.IndexIIRFCR:
		d.writeFIFOControl(uart16550.FIFOControl(v))
	case uart16550.IndexLCR:
		prev := d.lcr
		d.lcr = uart16550.LineControl(v)
		if prev.IsDLAB() && !d.lcr.IsDLAB() {
			d.logger.Debugf("emulator: divisor latch set to %d", d.divisor())
		}
	case uart16550.IndexMCR:
		d.mcr = uart16550.ModemControl(v)
	case uart16550.IndexLSR, uart16550.IndexMSR:
		d.logger.Debugf("emulator: ignored write of 0x%02X to read-only register %d", v, i)
	case IndexSCR:
		d.scr = v
	}
}

func (d *Device[R]) writeFIFOControl(f uart16550.FIFOControl) {
	// the other bits only take effect with the enable bit set
	if !f.IsFIFOEnabled() {
		f = uart16550.DisabledFIFOControl()
	}
	toggled := f.IsFIFOEnabled() != d.fcr.IsFIFOEnabled()
	if toggled || f.IsResetRx() {
		d.rx = nil
	}
	if toggled || f.IsResetTx() {
		d.tx = nil
	}
	// the reset bits are self clearing
	d.fcr = f &^ uart16550.FIFOControl(0).ResetRx().ResetTx()
}

func (d *Device[R]) transmit(c uint8) {
	d.thri = false
	if d.txCapacity <= 0 {
		d.send([]byte{c})
		d.thri = true
		return
	}
	if len(d.tx) >= d.txCapacity {
		d.logger.Debugf("emulator: transmitter FIFO full, dropped 0x%02X", c)
		return
	}
	d.tx = append(d.tx, c)
}

func (d *Device[R]) send(p []byte) {
	if d.out == nil || len(p) == 0 {
		return
	}
	if _, err := d.out.Write(p); err != nil {
		d.logger.Errorf("emulator: output: %v", err)
	}
}

func (d *Device[R]) depth() int {
	if d.fcr.IsFIFOEnabled() {
		return d.fifoDepth
	}
	return 1
}

func (d *Device[R]) trigger() int {
	if !d.fcr.IsFIFOEnabled() {
		return 1
	}
	return min(d.fcr.Trigger().Bytes(), d.fifoDepth)
}

func (d *Device[R]) lineStatus() uart16550.LineStatus {
	s := d.errors
	if len(d.rx) > 0 {
		s |= uart16550.LSRDataReady
	}
	if len(d.tx) == 0 {
		s |= uart16550.LSRTransmitterFIFO | uart16550.LSRTransmitterEmpty
	}
	if d.fcr.IsFIFOEnabled() && s&(uart16550.LSRParityError|uart16550.LSRFramingError|uart16550.LSRBreakInterrupt) != 0 {
		s |= uart16550.LSRReceiverFIFOError
	}
	return s
}

// identify returns the highest priority pending interrupt. Data that
// sits below the trigger level is reported as a character timeout.
func (d *Device[R]) identify() uart16550.InterruptIdentification {
	fifos := d.fcr.IsFIFOEnabled()
	var p uart16550.PendingInterrupt
	switch {
	case d.ier.RLS() && d.errors.HasError():
		p = uart16550.ReceiverLineStatus
	case d.ier.RDA() && len(d.rx) >= d.trigger():
		p = uart16550.ReceivedDataAvailable
	case d.ier.RDA() && fifos && len(d.rx) > 0:
		p = uart16550.CharacterTimeout
	case d.ier.THRE() && d.thri:
		p = uart16550.TransmitterHoldingRegisterEmpty
	default:
		return uart16550.NewInterruptIdentification(0, false, fifos)
	}
	return uart16550.NewInterruptIdentification(p, true, fifos)
}

func (d *Device[R]) divisor() uint16 {
	return uint16(d.dlm)<<8 | uint16(d.dll)
}

// Push delivers received characters to the device, as if they had
// arrived on the line. Characters that do not fit in the receiver FIFO
// are lost and flag an overrun. It returns the number accepted.
func (d *Device[R]) Push(data []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, c := range data {
		if len(d.rx) >= d.depth() {
			d.errors |= uart16550.LSROverrunError
			d.logger.Debugf("emulator: receiver overrun, lost 0x%02X", c)
			continue
		}
		d.rx = append(d.rx, c)
		n++
	}
	return n
}

// InjectError flags line errors (parity, framing, break or overrun) as
// if they had been detected by the receiver. Other bits are ignored.
func (d *Device[R]) InjectError(s uart16550.LineStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors |= s & (uart16550.LSROverrunError | uart16550.LSRParityError |
		uart16550.LSRFramingError | uart16550.LSRBreakInterrupt)
}

// SetModemStatus sets the raw modem status value.
func (d *Device[R]) SetModemStatus(v uart16550.ModemStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.msr = v
}

// Flush sends every character held in the transmitter FIFO to the
// output and returns how many were sent.
func (d *Device[R]) Flush() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.tx)
	d.send(d.tx)
	d.tx = nil
	if n > 0 {
		d.thri = true
	}
	return n
}

// Divisor returns the value of the divisor latch.
func (d *Device[R]) Divisor() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.divisor()
}

// LineControl returns the line control register without going through
// the bus.
func (d *Device[R]) LineControl() uart16550.LineControl {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lcr
}

// Buffered returns the number of characters waiting in the receiver
// and transmitter FIFOs.
func (d *Device[R]) Buffered() (rx, tx int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rx), len(d.tx)
}

// Interrupt reports the level of the interrupt line.
func (d *Device[R]) Interrupt() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.identify().IsPending()
}
