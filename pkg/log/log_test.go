package log

import (
	"bytes"
	"testing"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false)
	l.Infof("divisor %d", 12)
	l.Debugf("hidden")
	l.Errorf("lost %d bytes", 3)

	want := "[INFO]\tdivisor 12\n[ERROR]\tlost 3 bytes\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	NewWithWriter(&buf, true).Debugf("lcr=0x%02X", 0x83)
	if buf.String() != "[DEBUG]\tlcr=0x83\n" {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	// must not panic
	l.Infof("x")
	l.Errorf("x")
	l.Debugf("x")
}
