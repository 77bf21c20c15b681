package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/uart16550/internal/emulator"
	"github.com/thelolagemann/uart16550/pkg/log"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

func testConfig() config {
	return config{backend: "emulator", logger: log.NewNullLogger()}
}

func TestExecute(t *testing.T) {
	t.Run("divisor", func(t *testing.T) {
		dev := emulator.New[uart16550.Reg32]()
		u := uart16550.New[uart16550.Reg32](dev)
		if err := execute[uart16550.Reg32](testConfig(), u, &bytes.Buffer{}, []string{"divisor", "0x30"}); err != nil {
			t.Fatal(err)
		}
		if dev.Divisor() != 0x30 {
			t.Errorf("expected divisor 0x30, got 0x%04X", dev.Divisor())
		}
	})
	t.Run("divisor out of range", func(t *testing.T) {
		u := uart16550.New[uart16550.Reg8](emulator.New[uart16550.Reg8]())
		if err := execute[uart16550.Reg8](testConfig(), u, &bytes.Buffer{}, []string{"divisor", "70000"}); err == nil {
			t.Errorf("expected error for divisor 70000")
		}
	})
	t.Run("send", func(t *testing.T) {
		var out bytes.Buffer
		u := uart16550.New[uart16550.Reg8](emulator.New[uart16550.Reg8](emulator.WithOutput(&out)))
		if err := execute[uart16550.Reg8](testConfig(), u, &bytes.Buffer{}, []string{"send", "hello"}); err != nil {
			t.Fatal(err)
		}
		if out.String() != "hello" {
			t.Errorf("expected hello, got %q", out.String())
		}
	})
	t.Run("recv", func(t *testing.T) {
		dev := emulator.New[uart16550.Reg8]()
		dev.Push([]byte("x"))
		var out bytes.Buffer
		if err := execute[uart16550.Reg8](testConfig(), uart16550.New[uart16550.Reg8](dev), &out, []string{"recv"}); err != nil {
			t.Fatal(err)
		}
		if out.String() != "x" {
			t.Errorf("expected x, got %q", out.String())
		}
	})
	t.Run("dump", func(t *testing.T) {
		var out bytes.Buffer
		u := uart16550.New[uart16550.Reg32](emulator.New[uart16550.Reg32]())
		if err := execute[uart16550.Reg32](testConfig(), u, &out, []string{"dump"}); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if len(lines) != 6 {
			t.Fatalf("expected 6 registers, got %d", len(lines))
		}
		if lines[2] != "LCR 0x0C 5N1 break=false dlab=false" {
			t.Errorf("unexpected LCR line %q", lines[2])
		}
		if lines[4] != "LSR 0x14 thre|temt" {
			t.Errorf("unexpected LSR line %q", lines[4])
		}
	})
	t.Run("unknown", func(t *testing.T) {
		u := uart16550.New[uart16550.Reg8](emulator.New[uart16550.Reg8]())
		for _, args := range [][]string{nil, {"bogus"}, {"send"}, {"divisor"}} {
			if err := execute[uart16550.Reg8](testConfig(), u, &bytes.Buffer{}, args); err == nil {
				t.Errorf("expected error for %q", args)
			}
		}
	})
}

func TestOpen(t *testing.T) {
	c := testConfig()
	c.input = "a"
	io, closer, err := open[uart16550.Reg8](c)
	if err != nil {
		t.Fatal(err)
	}
	defer closer()
	buf := make([]byte, 4)
	if n := uart16550.New[uart16550.Reg8](io).Read(buf); string(buf[:n]) != "a" {
		t.Errorf("expected a, got %q", buf[:n])
	}

	c.backend = "floppy"
	if _, _, err := open[uart16550.Reg8](c); err == nil {
		t.Errorf("expected error for unknown backend")
	}
}

func TestOpen_State(t *testing.T) {
	c := testConfig()
	c.state = filepath.Join(t.TempDir(), "uart.state")
	c.input = "q"

	io, closer, err := open[uart16550.Reg8](c)
	if err != nil {
		t.Fatal(err)
	}
	uart16550.New[uart16550.Reg8](io).WriteDivisor(96)
	if err := closer(); err != nil {
		t.Fatal(err)
	}

	c.input = ""
	io, closer, err = open[uart16550.Reg8](c)
	if err != nil {
		t.Fatal(err)
	}
	defer closer()
	dev := io.(*emulator.Device[uart16550.Reg8])
	if dev.Divisor() != 96 {
		t.Errorf("expected divisor 96, got %d", dev.Divisor())
	}
	if rx, _ := dev.Buffered(); rx != 1 {
		t.Errorf("expected 1 buffered character, got %d", rx)
	}

	if err := os.WriteFile(c.state, []byte{0x01}, 0600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := open[uart16550.Reg8](c); err == nil {
		t.Errorf("expected error for truncated snapshot")
	}
}
