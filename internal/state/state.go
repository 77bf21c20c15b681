// Package state provides a little-endian byte encoder/decoder used to
// snapshot device models and to serialize register access traces.
package state

import (
	"fmt"
	"os"
)

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// State is a sequence of encoded values. Values must be read back in
// the order they were written.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
}

// New creates a new, empty state.
func New() *State {
	return &State{
		raw: make([]byte, 0, 64),
	}
}

// FromBytes creates a new state from the given bytes.
func FromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// FromFile loads a state previously written with SaveToFile.
func FromFile(filename string) (*State, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	return FromBytes(raw), nil
}

// Rewind resets the read position, allowing the state to be read
// from the beginning.
func (s *State) Rewind() {
	s.readPosition = 0
}

// Reset discards all written data.
func (s *State) Reset() {
	s.raw = s.raw[:0]
	s.readPosition = 0
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

// WriteData writes a length-prefixed byte slice.
func (s *State) WriteData(data []byte) {
	s.Write32(uint32(len(data)))
	s.raw = append(s.raw, data...)
}

// Remaining returns the number of bytes not yet read.
func (s *State) Remaining() int {
	return len(s.raw) - s.readPosition
}

func (s *State) need(n int) {
	if s.Remaining() < n {
		panic(fmt.Sprintf("state: short read: need %d bytes, have %d", n, s.Remaining()))
	}
}

func (s *State) Read8() uint8 {
	s.need(1)
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	s.need(2)
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) Read32() uint32 {
	s.need(4)
	value := uint32(s.raw[s.readPosition]) | uint32(s.raw[s.readPosition+1])<<8 | uint32(s.raw[s.readPosition+2])<<16 | uint32(s.raw[s.readPosition+3])<<24
	s.readPosition += 4
	return value
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

// ReadData reads a byte slice written by WriteData.
func (s *State) ReadData() []byte {
	n := int(s.Read32())
	s.need(n)
	data := append([]byte(nil), s.raw[s.readPosition:s.readPosition+n]...)
	s.readPosition += n
	return data
}

func (s *State) SaveToFile(filename string) error {
	return os.WriteFile(filename, s.raw, 0644)
}

func (s *State) Bytes() []byte {
	return s.raw
}
