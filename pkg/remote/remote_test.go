package remote

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/thelolagemann/uart16550/internal/emulator"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

func dial[R uart16550.Register](t *testing.T, dev *emulator.Device[R]) *Client[R] {
	t.Helper()
	srv := httptest.NewServer(NewHandler[R](dev))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial[R](ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), WithTimeout(5*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_Narrow(t *testing.T) {
	var out bytes.Buffer
	dev := emulator.New[uart16550.Reg8](emulator.WithOutput(&out))
	c := dial[uart16550.Reg8](t, dev)
	u := uart16550.New[uart16550.Reg8](c)

	u.LCR().Write(u.IO(), uart16550.NewLineControl(uart16550.CharLen8, uart16550.ParityNone, false))
	u.WriteDivisor(12)
	if dev.Divisor() != 12 {
		t.Errorf("expected divisor 12, got %d", dev.Divisor())
	}
	if dev.LineControl() != 0x03 {
		t.Errorf("expected LCR 0x03, got 0x%02X", uint8(dev.LineControl()))
	}

	if n := u.Write([]byte("remote")); n != 6 {
		t.Errorf("expected 6 bytes written, got %d", n)
	}
	if out.String() != "remote" {
		t.Errorf("expected remote, got %q", out.String())
	}

	u.IIRFCR().Write(u.IO(), uart16550.NewFIFOControl(uart16550.TriggerLevel1))
	dev.Push([]byte("ack"))
	buf := make([]byte, 8)
	if n := u.Read(buf); n != 3 || string(buf[:n]) != "ack" {
		t.Errorf("expected ack, got %q", buf[:n])
	}
	if err := c.Err(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestClient_Wide(t *testing.T) {
	dev := emulator.New[uart16550.Reg32]()
	c := dial[uart16550.Reg32](t, dev)
	u := uart16550.New[uart16550.Reg32](c)

	u.WriteDivisor(0xBEEF)
	if dev.Divisor() != 0xBEEF {
		t.Errorf("expected divisor 0xBEEF, got 0x%04X", dev.Divisor())
	}
	if s := u.LSR().Read(u.IO()); !s.IsTransmitterEmpty() {
		t.Errorf("expected transmitter empty, got %s", s)
	}
}

func TestClient_Closed(t *testing.T) {
	c := dial[uart16550.Reg8](t, emulator.New[uart16550.Reg8]())
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if v := c.ReadAt(5); v != 0 {
		t.Errorf("expected 0 from a closed client, got 0x%02X", uint8(v))
	}
	c.WriteAt(0, 'x')
	if !errors.Is(c.Err(), ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", c.Err())
	}
	if err := c.Close(); err != nil {
		t.Errorf("expected second close to succeed, got %v", err)
	}
}

func TestDial_Error(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Dial[uart16550.Reg8](ctx, "ws://127.0.0.1:1/uart"); err == nil {
		t.Errorf("expected dial error")
	}
}

func TestRequest(t *testing.T) {
	req := request{op: opWrite, offset: 0x14, value: 0xA5}
	got, err := decodeRequest(req.encode())
	if err != nil {
		t.Fatal(err)
	}
	if got != req {
		t.Errorf("expected %+v, got %+v", req, got)
	}
	if _, err := decodeRequest([]byte{0, 1}); err == nil {
		t.Errorf("expected error for short request")
	}
	bad := req.encode()
	bad[0] = 7
	if _, err := decodeRequest(bad); err == nil {
		t.Errorf("expected error for unknown op")
	}
}
