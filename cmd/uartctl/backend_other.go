//go:build !linux

package main

import (
	"errors"

	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

func openMMIO[R uart16550.Register](c config) (uart16550.IO[R], func() error, error) {
	return nil, nil, errors.New("the mmio backend is only available on linux")
}
