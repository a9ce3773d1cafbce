package types

import "errors"

// ErrShortState is returned by State.Err when a read ran past
// the end of the raw state data.
var ErrShortState = errors.New("state: unexpected end of data")

// stateMagic prefixes every snapshot produced by NewState, so
// that foreign files are rejected before any component reads
// from them.
var stateMagic = [4]byte{'1', 'B', 'I', 'T'}

// stateVersion is bumped whenever a component changes the layout
// of its Save method.
const stateVersion = 1

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// State represents a snapshot of the synthesizer. Components
// append their fields in a fixed order on Save, and consume them
// in the same order on Load.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error  // first read error, sticky
}

// NewState creates a new, empty state carrying the snapshot header.
func NewState() *State {
	s := &State{raw: make([]byte, 0, 64)}
	s.WriteData(stateMagic[:])
	s.Write8(stateVersion)
	return s
}

// StateFromBytes creates a state from the given bytes, validating
// the snapshot header.
func StateFromBytes(raw []byte) (*State, error) {
	s := &State{raw: raw}
	var magic [4]byte
	s.ReadData(magic[:])
	if s.err != nil || magic != stateMagic {
		return nil, errors.New("state: not a snapshot")
	}
	if v := s.Read8(); v != stateVersion {
		return nil, errors.New("state: unsupported snapshot version")
	}
	return s, nil
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

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// need reports whether n more bytes can be read, recording
// ErrShortState otherwise.
func (s *State) need(n int) bool {
	if s.err != nil {
		return false
	}
	if s.readPosition+n > len(s.raw) {
		s.err = ErrShortState
		return false
	}
	return true
}

func (s *State) Read8() uint8 {
	if !s.need(1) {
		return 0
	}
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	if !s.need(2) {
		return 0
	}
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) Read32() uint32 {
	if !s.need(4) {
		return 0
	}
	value := uint32(s.raw[s.readPosition]) | uint32(s.raw[s.readPosition+1])<<8 | uint32(s.raw[s.readPosition+2])<<16 | uint32(s.raw[s.readPosition+3])<<24
	s.readPosition += 4
	return value
}

func (s *State) Read64() uint64 {
	lo := s.Read32()
	hi := s.Read32()
	return uint64(lo) | uint64(hi)<<32
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if !s.need(len(p)) {
		return
	}
	copy(p, s.raw[s.readPosition:])
	s.readPosition += len(p)
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

func (s *State) Bytes() []byte {
	return s.raw
}
