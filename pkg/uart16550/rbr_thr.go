package uart16550

// RxData reads one received character from the receive buffer.
func (r RBRTHR[R]) RxData(io IO[R]) uint8 {
	return io.ReadAt(r.offset).Value()
}

// TxData writes one character to the transmit holding register.
func (r RBRTHR[R]) TxData(io IO[R], c uint8) {
	io.WriteAt(r.offset, R(c))
}

// write stores a raw register value, used for the divisor latch low
// byte while the access bit is set.
func (r RBRTHR[R]) write(io IO[R], v R) {
	io.WriteAt(r.offset, v)
}
