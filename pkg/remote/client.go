package remote

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/thelolagemann/uart16550/pkg/log"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

// ErrClosed is latched by a Client once Close has been called.
var ErrClosed = errors.New("remote: client closed")

// Client is a uart16550.IO whose registers are reached through a
// Handler. Both ends must use the same register width.
//
// uart16550.IO cannot report failures, so the first transport error is
// latched: it is logged, returned by Err, reads return zero from then
// on and writes are discarded.
type Client[R uart16550.Register] struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	err     error
	timeout time.Duration
	logger  log.Logger
}

// Dial connects to the Handler at url, e.g. ws://host:8090/uart.
func Dial[R uart16550.Register](ctx context.Context, url string, opts ...Opt) (*Client[R], error) {
	o := newOptions(opts)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: dial %s: %w", url, err)
	}
	o.logger.Debugf("remote: connected to %s", url)
	return &Client[R]{conn: conn, timeout: o.timeout, logger: o.logger}, nil
}

// Err returns the latched error, if any.
func (c *Client[R]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close closes the connection.
func (c *Client[R]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if errors.Is(c.err, ErrClosed) {
		return nil
	}
	c.err = ErrClosed
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(c.timeout))
	return c.conn.Close()
}

// ReadAt implements uart16550.IO.
func (c *Client[R]) ReadAt(offset uintptr) R {
	c.mu.Lock()
	defer c.mu.Unlock()

	reply, ok := c.exchange(request{op: opRead, offset: uint32(offset)})
	if !ok {
		return 0
	}
	if len(reply) != replyLen {
		c.fail(fmt.Errorf("remote: read reply of %d bytes, want %d", len(reply), replyLen))
		return 0
	}
	return R(binary.LittleEndian.Uint32(reply))
}

// WriteAt implements uart16550.IO.
func (c *Client[R]) WriteAt(offset uintptr, value R) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.exchange(request{op: opWrite, offset: uint32(offset), value: uint32(value)})
}

// exchange sends req and waits for its reply. It must be called with
// c.mu held.
func (c *Client[R]) exchange(req request) ([]byte, bool) {
	if c.err != nil {
		return nil, false
	}
	deadline := time.Now().Add(c.timeout)
	c.conn.SetWriteDeadline(deadline)
	if err := c.conn.WriteMessage(websocket.BinaryMessage, req.encode()); err != nil {
		c.fail(err)
		return nil, false
	}
	c.conn.SetReadDeadline(deadline)
	_, reply, err := c.conn.ReadMessage()
	if err != nil {
		c.fail(err)
		return nil, false
	}
	return reply, true
}

func (c *Client[R]) fail(err error) {
	c.err = fmt.Errorf("remote: %w", err)
	c.logger.Errorf("%v", c.err)
}
