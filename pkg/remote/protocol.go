// Package remote exposes a uart16550.IO over a websocket, so that a
// driver can run on one machine while the registers live on another
// (a BMC, a board farm host, or an emulator).
//
// Each request is one binary message:
//
//	Byte 0:   Op (0=Read, 1=Write)
//	Byte 1-4: Offset (uint32, little-endian)
//	Byte 5-8: Value (uint32, little-endian, ignored for reads)
//
// A read is answered with a 4 byte little-endian value, a write with an
// empty message once the register has been written.
package remote

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/thelolagemann/uart16550/pkg/log"
)

const (
	opRead  = 0
	opWrite = 1

	requestLen = 9
	replyLen   = 4

	// DefaultTimeout bounds each request/reply exchange.
	DefaultTimeout = 2 * time.Second
)

type request struct {
	op     uint8
	offset uint32
	value  uint32
}

func (r request) encode() []byte {
	b := make([]byte, requestLen)
	b[0] = r.op
	binary.LittleEndian.PutUint32(b[1:], r.offset)
	binary.LittleEndian.PutUint32(b[5:], r.value)
	return b
}

func decodeRequest(b []byte) (request, error) {
	if len(b) != requestLen {
		return request{}, fmt.Errorf("remote: request of %d bytes, want %d", len(b), requestLen)
	}
	r := request{
		op:     b[0],
		offset: binary.LittleEndian.Uint32(b[1:]),
		value:  binary.LittleEndian.Uint32(b[5:]),
	}
	if r.op != opRead && r.op != opWrite {
		return request{}, fmt.Errorf("remote: unknown op %d", r.op)
	}
	return r, nil
}

type options struct {
	timeout time.Duration
	logger  log.Logger
}

func newOptions(opts []Opt) options {
	o := options{timeout: DefaultTimeout, logger: log.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Opt is a function that modifies a Client or Handler.
type Opt func(o *options)

// WithTimeout sets the deadline applied to each exchange.
func WithTimeout(d time.Duration) Opt {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger for connection events and errors.
func WithLogger(l log.Logger) Opt {
	return func(o *options) {
		o.logger = l
	}
}
