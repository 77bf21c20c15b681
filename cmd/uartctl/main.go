package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/thelolagemann/uart16550/pkg/log"
	"github.com/thelolagemann/uart16550/pkg/uart16550"
)

type config struct {
	backend string
	dev     string
	addr    int64
	url     string
	listen  string
	input   string
	state   string
	trace   bool
	logger  log.Logger
}

func main() {
	backend := flag.String("backend", "emulator", "The register backend. Can be mmio, emulator or remote")
	width := flag.Int("width", 8, "The register width in bits. Can be 8 or 32")
	dev := flag.String("dev", "/dev/mem", "The memory device to map for the mmio backend")
	addr := flag.String("addr", "0x10000000", "The physical base address of the UART")
	url := flag.String("url", "ws://localhost:8090/uart", "The websocket URL for the remote backend")
	listen := flag.String("listen", ":8090", "The address to serve on")
	input := flag.String("input", "", "Characters the emulator has received before the command runs")
	stateFile := flag.String("state", "", "A file the emulator state is loaded from and saved to")
	trace := flag.Bool("trace", false, "Log every register access and a fingerprint of the access sequence")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Usage = usage
	flag.Parse()

	logger := log.NewWithWriter(os.Stderr, *verbose)
	base, err := strconv.ParseInt(*addr, 0, 64)
	if err != nil {
		logger.Errorf("invalid address %q: %v", *addr, err)
		os.Exit(2)
	}
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	c := config{
		backend: *backend,
		dev:     *dev,
		addr:    base,
		url:     *url,
		listen:  *listen,
		input:   *input,
		state:   *stateFile,
		trace:   *trace,
		logger:  logger,
	}
	switch *width {
	case 8:
		err = run[uart16550.Reg8](c, flag.Args())
	case 32:
		err = run[uart16550.Reg32](c, flag.Args())
	default:
		err = fmt.Errorf("unsupported register width %d", *width)
	}
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: uartctl [flags] <command> [args]

Commands:
  dump          print every register offset and its decoded value
  divisor N     program the baud rate divisor latch
  send TEXT     transmit TEXT
  recv          copy any received characters to stdout
  serve         expose the backend over websocket

Flags:
`)
	flag.PrintDefaults()
}
