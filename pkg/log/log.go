// Package log provides the small logging interface used by the UART
// host bindings and tools.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	mu    sync.Mutex
	out   io.Writer
	debug bool
}

// New returns a Logger writing to stdout. Debug messages are dropped.
func New() Logger {
	return &logger{out: os.Stdout}
}

// NewWithWriter returns a Logger writing to w. Debug messages are only
// written when debug is true.
func NewWithWriter(w io.Writer, debug bool) Logger {
	return &logger{out: w, debug: debug}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.printf("[INFO]\t", format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.printf("[ERROR]\t", format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.printf("[DEBUG]\t", format, args...)
}

func (l *logger) printf(prefix, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, prefix+format+"\n", args...)
}
