package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thelolagemann/uart16550/internal/emulator"
	"github.com/thelolagemann/uart16550/pkg/log"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

func TestRecorder_WriteDivisor(t *testing.T) {
	dev := emulator.New[uart16550.Reg8]()
	dev.WriteAt(3, 0x03) // 8N1, before recording
	rec := New[uart16550.Reg8](dev)
	u := uart16550.New[uart16550.Reg8](rec)

	u.WriteDivisor(12)

	want := []Access{
		{Read, 3, 0x03},
		{Write, 3, 0x83},
		{Write, 0, 12},
		{Write, 1, 0},
		{Write, 3, 0x03},
	}
	got := rec.Accesses()
	if len(got) != len(want) {
		t.Fatalf("expected %d accesses, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("access %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if dev.Divisor() != 12 {
		t.Errorf("expected divisor 12, got %d", dev.Divisor())
	}
}

func TestRecorder_WideOffsets(t *testing.T) {
	rec := New[uart16550.Reg32](emulator.New[uart16550.Reg32]())
	u := uart16550.New[uart16550.Reg32](rec)

	u.WriteDivisor(0x0102)
	for _, a := range rec.Accesses() {
		if a.Offset%4 != 0 {
			t.Errorf("expected word aligned offset, got %s", a)
		}
	}
	if a := rec.Accesses()[3]; a.Offset != 0x04 || a.Value != 0x01 {
		t.Errorf("expected divisor high byte at 0x04, got %s", a)
	}
}

func TestRecorder_Sum64(t *testing.T) {
	run := func() *Recorder[uart16550.Reg8] {
		rec := New[uart16550.Reg8](emulator.New[uart16550.Reg8]())
		u := uart16550.New[uart16550.Reg8](rec)
		u.WriteDivisor(1)
		u.Write([]byte("hi"))
		return rec
	}
	a, b := run(), run()
	if a.Sum64() != b.Sum64() {
		t.Errorf("expected identical runs to have identical sums")
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("expected identical encodings")
	}
	if len(a.Bytes()) != a.Len()*6 {
		t.Errorf("expected 6 bytes per access, got %d for %d", len(a.Bytes()), a.Len())
	}

	uart16550.New[uart16550.Reg8](b).Write([]byte("!"))
	if a.Sum64() == b.Sum64() {
		t.Errorf("expected sums to differ after another access")
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("expected empty trace after reset, got %d", b.Len())
	}
}

func TestRecorder_Logger(t *testing.T) {
	var buf bytes.Buffer
	rec := New[uart16550.Reg8](emulator.New[uart16550.Reg8](), WithLogger(log.NewWithWriter(&buf, true)))
	uart16550.New[uart16550.Reg8](rec).LSR().Read(rec)

	if !strings.Contains(buf.String(), "trace: R 0x05=0x60") {
		t.Errorf("expected line status read to be logged, got %q", buf.String())
	}
}
