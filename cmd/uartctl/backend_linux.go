package main

import (
	"github.com/thelolagemann/uart16550/pkg/mmio"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

func openMMIO[R uart16550.Register](c config) (uart16550.IO[R], func() error, error) {
	m, err := mmio.Open[R](c.dev, c.addr, mmio.WithLogger(c.logger))
	if err != nil {
		return nil, nil, err
	}
	return m, m.Close, nil
}
