package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/thelolagemann/uart16550/pkg/remote"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

// sendTimeout bounds how long send retries a busy transmitter.
const sendTimeout = 2 * time.Second

var errUsage = errors.New("usage: uartctl [flags] <command> [args], see -h")

func execute[R uart16550.Register](c config, u *uart16550.UART[R], w io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch cmd, args := args[0], args[1:]; cmd {
	case "dump":
		dump(u, w)
		return nil
	case "divisor":
		if len(args) != 1 {
			return errUsage
		}
		d, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return fmt.Errorf("invalid divisor %q: %w", args[0], err)
		}
		u.WriteDivisor(uint16(d))
		c.logger.Infof("divisor set to %d", d)
		return nil
	case "send":
		if len(args) != 1 {
			return errUsage
		}
		return send(u, []byte(args[0]))
	case "recv":
		return recv(u, w)
	case "serve":
		c.logger.Infof("serving registers on %s/uart", c.listen)
		mux := http.NewServeMux()
		mux.Handle("/uart", remote.NewHandler[R](u.IO(), remote.WithLogger(c.logger)))
		return http.ListenAndServe(c.listen, mux)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// dump prints every register except RBR/THR, whose read would consume a
// received character.
func dump[R uart16550.Register](u *uart16550.UART[R], w io.Writer) {
	offsets := u.Offsets()
	bus := u.IO()
	fmt.Fprintf(w, "IER 0x%02X %s\n", offsets[uart16550.IndexIER], u.IER().Read(bus))
	fmt.Fprintf(w, "IIR 0x%02X %s\n", offsets[uart16550.IndexIIRFCR], u.IIRFCR().Read(bus))
	fmt.Fprintf(w, "LCR 0x%02X %s\n", offsets[uart16550.IndexLCR], u.LCR().Read(bus))
	fmt.Fprintf(w, "MCR 0x%02X %s\n", offsets[uart16550.IndexMCR], u.MCR().Read(bus))
	fmt.Fprintf(w, "LSR 0x%02X %s\n", offsets[uart16550.IndexLSR], u.LSR().Read(bus))
	fmt.Fprintf(w, "MSR 0x%02X %s\n", offsets[uart16550.IndexMSR], u.MSR().Read(bus))
}

func send[R uart16550.Register](u *uart16550.UART[R], p []byte) error {
	deadline := time.Now().Add(sendTimeout)
	for len(p) > 0 {
		n := u.Write(p)
		p = p[n:]
		if n == 0 {
			if time.Now().After(deadline) {
				return fmt.Errorf("transmitter busy, %d bytes not sent", len(p))
			}
			time.Sleep(time.Millisecond)
		}
	}
	return nil
}

func recv[R uart16550.Register](u *uart16550.UART[R], w io.Writer) error {
	buf := make([]byte, 64)
	for {
		n := u.Read(buf)
		if n == 0 {
			return nil
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
}
