package uart16550

// IO is the capability used to reach the UART's registers. It is
// implemented by the host, typically over a memory-mapped region.
//
// Offsets are byte offsets; for Reg32 they are multiples of 4.
//
// Nothing in this package serializes access, so an IO must be safe to
// call from multiple goroutines, and each call must be atomic with
// respect to the underlying bus.
type IO[R Register] interface {
	// ReadAt reads the register at offset.
	ReadAt(offset uintptr) R
	// WriteAt writes value to the register at offset.
	WriteAt(offset uintptr, value R)
}

// IOFuncs adapts a pair of functions to the IO interface.
type IOFuncs[R Register] struct {
	Read  func(offset uintptr) R
	Write func(offset uintptr, value R)
}

// ReadAt implements IO.
func (f IOFuncs[R]) ReadAt(offset uintptr) R { return f.Read(offset) }

// WriteAt implements IO.
func (f IOFuncs[R]) WriteAt(offset uintptr, value R) { f.Write(offset, value) }
