package uart16550

import "fmt"

// Read reads the modem control register.
func (r MCR[R]) Read(io IO[R]) ModemControl {
	return ModemControl(io.ReadAt(r.offset).Value())
}

// Write writes the modem control register.
func (r MCR[R]) Write(io IO[R], v ModemControl) {
	io.WriteAt(r.offset, R(v))
}

// Read reads the modem status register.
func (r MSR[R]) Read(io IO[R]) ModemStatus {
	return ModemStatus(io.ReadAt(r.offset).Value())
}

// ModemControl is the raw modem control value. Its bits are not
// decoded; operate on the byte directly.
type ModemControl uint8

func (m ModemControl) String() string { return fmt.Sprintf("0x%02X", uint8(m)) }

// ModemStatus is the raw modem status value. Its bits are not decoded;
// operate on the byte directly.
type ModemStatus uint8

func (m ModemStatus) String() string { return fmt.Sprintf("0x%02X", uint8(m)) }
