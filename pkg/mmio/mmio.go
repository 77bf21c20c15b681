//go:build linux

// Package mmio binds the uart16550.IO capability to a memory mapped
// register window, normally a physical address range of /dev/mem.
package mmio

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/thelolagemann/uart16550/pkg/log"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

// DefaultRegisters is the number of registers mapped by default: the
// seven UART registers and the scratch register.
const DefaultRegisters = uart16550.NumRegisters + 1

type options struct {
	registers int
	logger    log.Logger
}

// Opt is a function that modifies how a Region is opened.
type Opt func(o *options)

// WithRegisters maps n registers instead of DefaultRegisters.
func WithRegisters(n int) Opt {
	return func(o *options) {
		o.registers = n
	}
}

// WithLogger sets the logger used when opening and closing the region.
func WithLogger(l log.Logger) Opt {
	return func(o *options) {
		o.logger = l
	}
}

// Region is a mapped register window. It implements uart16550.IO and is
// safe for concurrent use; every access is a single load or store of
// the register width.
type Region[R uart16550.Register] struct {
	mu     sync.Mutex
	f      *os.File
	mem    []byte // page aligned mapping
	base   int    // start of the register window within mem
	length uintptr
	logger log.Logger
}

// Open maps the registers at byte address addr of the file at path.
// The address must be aligned to the register width.
func Open[R uart16550.Register](path string, addr int64, opts ...Opt) (*Region[R], error) {
	o := options{registers: DefaultRegisters, logger: log.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	var r R
	w := int64(r.Size())
	if addr < 0 || addr%w != 0 {
		return nil, fmt.Errorf("mmio: address 0x%X is not aligned to %d bytes", addr, w)
	}
	if o.registers < 1 {
		return nil, fmt.Errorf("mmio: invalid register count %d", o.registers)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: %w", err)
	}

	page := int64(os.Getpagesize())
	aligned := addr &^ (page - 1)
	base := int(addr - aligned)
	length := uintptr(int64(o.registers) * w)
	size := (int64(base) + int64(length) + page - 1) &^ (page - 1)

	mem, err := unix.Mmap(int(f.Fd()), aligned, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmio: mmap %s at 0x%X: %w", path, aligned, err)
	}
	o.logger.Debugf("mmio: mapped %d bytes of %s at 0x%X (registers at +0x%X)", size, path, aligned, base)

	return &Region[R]{
		f:      f,
		mem:    mem,
		base:   base,
		length: length,
		logger: o.logger,
	}, nil
}

// Close unmaps the region and closes the underlying file.
func (m *Region[R]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mem == nil {
		return nil
	}
	err := unix.Munmap(m.mem)
	m.mem = nil
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("mmio: close: %w", err)
	}
	m.logger.Debugf("mmio: unmapped %s", m.f.Name())
	return nil
}

// ptr returns the address of the register at offset. Offsets outside
// the mapped window, or access after Close, are programming errors.
func (m *Region[R]) ptr(offset uintptr) unsafe.Pointer {
	if m.mem == nil {
		panic("mmio: access to closed region")
	}
	var r R
	if offset%r.Size() != 0 || offset+r.Size() > m.length {
		panic(fmt.Sprintf("mmio: offset 0x%X outside %d byte register window", offset, m.length))
	}
	return unsafe.Pointer(&m.mem[m.base+int(offset)])
}

// ReadAt implements uart16550.IO.
func (m *Region[R]) ReadAt(offset uintptr) R {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.ptr(offset)
	var r R
	if r.Size() == 4 {
		return R(atomic.LoadUint32((*uint32)(p)))
	}
	return R(*(*uint8)(p))
}

// WriteAt implements uart16550.IO.
func (m *Region[R]) WriteAt(offset uintptr, value R) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.ptr(offset)
	if value.Size() == 4 {
		atomic.StoreUint32((*uint32)(p), uint32(value))
		return
	}
	*(*uint8)(p) = uint8(value)
}
