package emulator

import (
	"github.com/thelolagemann/uart16550/internal/state"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

// Save implements the state.Stater interface.
//
// The values are saved in the following order:
//   - IER, FCR, LCR, MCR, MSR, SCR (uint8)
//   - DLL, DLM (uint8)
//   - last received character (uint8)
//   - sticky line errors (uint8)
//   - THR empty interrupt pending (bool)
//   - receiver FIFO ([]byte)
//   - transmitter FIFO ([]byte)
func (d *Device[R]) Save(s *state.State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s.Write8(uint8(d.ier))
	s.Write8(uint8(d.fcr))
	s.Write8(uint8(d.lcr))
	s.Write8(uint8(d.mcr))
	s.Write8(uint8(d.msr))
	s.Write8(d.scr)
	s.Write8(d.dll)
	s.Write8(d.dlm)
	s.Write8(d.rbr)
	s.Write8(uint8(d.errors))
	s.WriteBool(d.thri)
	s.WriteData(d.rx)
	s.WriteData(d.tx)
}

// Load implements the state.Stater interface. See Save for the order
// of the values.
func (d *Device[R]) Load(s *state.State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ier = uart16550.InterruptTypes(s.Read8())
	d.fcr = uart16550.FIFOControl(s.Read8())
	d.lcr = uart16550.LineControl(s.Read8())
	d.mcr = uart16550.ModemControl(s.Read8())
	d.msr = uart16550.ModemStatus(s.Read8())
	d.scr = s.Read8()
	d.dll = s.Read8()
	d.dlm = s.Read8()
	d.rbr = s.Read8()
	d.errors = uart16550.LineStatus(s.Read8())
	d.thri = s.ReadBool()
	d.rx = s.ReadData()
	d.tx = s.ReadData()
}
