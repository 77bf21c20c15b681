package emulator

import (
	"io"

	"github.com/thelolagemann/uart16550/pkg/log"
)

type config struct {
	out        io.Writer
	fifoDepth  int
	txCapacity int
	logger     log.Logger
}

// Opt is a function that modifies the configuration of a Device.
type Opt func(c *config)

// WithOutput sets the writer that receives transmitted characters.
func WithOutput(w io.Writer) Opt {
	return func(c *config) {
		c.out = w
	}
}

// WithFIFODepth sets the depth of the receiver FIFO used while the
// FIFOs are enabled. The 16550A has 16 byte FIFOs.
func WithFIFODepth(n int) Opt {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.fifoDepth = n
	}
}

// WithTxCapacity holds transmitted characters in the transmitter FIFO
// until Flush is called, instead of sending them immediately. While
// characters are held the line status reports the transmitter as busy.
func WithTxCapacity(n int) Opt {
	return func(c *config) {
		c.txCapacity = n
	}
}

// WithLogger sets the logger used for device events.
func WithLogger(l log.Logger) Opt {
	return func(c *config) {
		c.logger = l
	}
}
