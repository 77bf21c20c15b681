package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thelolagemann/uart16550/internal/emulator"
	"github.com/thelolagemann/uart16550/internal/state"
	"github.com/thelolagemann/uart16550/pkg/remote"
	"github.com/thelolagemann/uart16550/pkg/trace"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

// open returns the IO for the configured backend and a function that
// releases it.
func open[R uart16550.Register](c config) (uart16550.IO[R], func() error, error) {
	switch c.backend {
	case "emulator":
		dev := emulator.New[R](emulator.WithOutput(os.Stdout), emulator.WithLogger(c.logger))
		if c.state == "" {
			dev.Push([]byte(c.input))
			return dev, func() error { return nil }, nil
		}
		if err := restore(dev, c.state); err != nil {
			return nil, nil, err
		}
		dev.Push([]byte(c.input))
		return dev, func() error {
			s := state.New()
			dev.Save(s)
			return s.SaveToFile(c.state)
		}, nil
	case "remote":
		client, err := remote.Dial[R](context.Background(), c.url, remote.WithLogger(c.logger))
		if err != nil {
			return nil, nil, err
		}
		return client, func() error {
			err := client.Err()
			client.Close()
			return err
		}, nil
	case "mmio":
		return openMMIO[R](c)
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", c.backend)
	}
}

func run[R uart16550.Register](c config, args []string) error {
	io, closer, err := open[R](c)
	if err != nil {
		return err
	}

	var rec *trace.Recorder[R]
	if c.trace {
		rec = trace.New[R](io, trace.WithLogger(c.logger))
		io = rec
	}

	err = execute[R](c, uart16550.New[R](io), os.Stdout, args)
	if rec != nil {
		c.logger.Infof("trace: %d accesses, fingerprint %016x", rec.Len(), rec.Sum64())
	}
	if cerr := closer(); err == nil {
		err = cerr
	}
	return err
}

// restore loads a device snapshot saved by a previous run. A missing
// file leaves the device in its power-on state.
func restore[R uart16550.Register](dev *emulator.Device[R], filename string) (err error) {
	s, err := state.FromFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			dev.Reset()
			err = fmt.Errorf("%s: truncated snapshot: %v", filename, r)
		}
	}()
	dev.Load(s)
	return nil
}
