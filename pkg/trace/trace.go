// Package trace records the register accesses made through a
// uart16550.IO, for debugging host drivers and for asserting access
// sequences in tests.
package trace

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/uart16550/internal/state"
	"github.com/thelolagemann/uart16550/pkg/log"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

// Op is the direction of a register access.
type Op uint8

const (
	Read Op = iota
	Write
)

func (o Op) String() string {
	if o == Write {
		return "W"
	}
	return "R"
}

// Access is a single recorded register access.
type Access struct {
	Op     Op
	Offset uintptr
	Value  uint8 // significant low byte of the register
}

func (a Access) String() string {
	return fmt.Sprintf("%s 0x%02X=0x%02X", a.Op, a.Offset, a.Value)
}

// Recorder is a uart16550.IO that forwards every access to another IO
// and records it.
type Recorder[R uart16550.Register] struct {
	mu       sync.Mutex
	io       uart16550.IO[R]
	accesses []Access
	logger   log.Logger
}

type options struct {
	logger log.Logger
}

// Opt is a function that modifies a Recorder.
type Opt func(o *options)

// WithLogger logs each access at debug level.
func WithLogger(logger log.Logger) Opt {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns a Recorder forwarding to io.
func New[R uart16550.Register](io uart16550.IO[R], opts ...Opt) *Recorder[R] {
	o := options{logger: log.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Recorder[R]{io: io, logger: o.logger}
}

// ReadAt implements uart16550.IO.
func (r *Recorder[R]) ReadAt(offset uintptr) R {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.io.ReadAt(offset)
	r.record(Access{Op: Read, Offset: offset, Value: v.Value()})
	return v
}

// WriteAt implements uart16550.IO.
func (r *Recorder[R]) WriteAt(offset uintptr, value R) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.io.WriteAt(offset, value)
	r.record(Access{Op: Write, Offset: offset, Value: value.Value()})
}

func (r *Recorder[R]) record(a Access) {
	r.accesses = append(r.accesses, a)
	r.logger.Debugf("trace: %s", a)
}

// Accesses returns a copy of the recorded accesses, oldest first.
func (r *Recorder[R]) Accesses() []Access {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Access(nil), r.accesses...)
}

// Len returns the number of recorded accesses.
func (r *Recorder[R]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accesses)
}

// Reset discards the recorded accesses.
func (r *Recorder[R]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accesses = r.accesses[:0]
}

// Bytes encodes the recorded accesses as op, offset (uint32) and value
// per access, little-endian.
func (r *Recorder[R]) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := state.New()
	for _, a := range r.accesses {
		s.Write8(uint8(a.Op))
		s.Write32(uint32(a.Offset))
		s.Write8(a.Value)
	}
	return s.Bytes()
}

// Sum64 returns the xxhash of the encoded trace. Two runs of a driver
// performing the same register accesses produce the same sum.
func (r *Recorder[R]) Sum64() uint64 {
	return xxhash.Sum64(r.Bytes())
}
