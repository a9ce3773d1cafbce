package synth

import (
	"sync/atomic"

	"github.com/thelolagemann/onebit/internal/params"
	"github.com/thelolagemann/onebit/internal/types"
)

const externalBit = 1 << 16

// Shared is the state read by the audio tick and written from the
// other contexts. Every field is a single word.
//
//	noteOn   written by the note receiver, read by the audio tick
//	pitch    written by the note receiver and the parameter update,
//	         read by the control tick; bit 16 marks external control
//	envGate  written by the control tick, read by the audio tick
//
// Pitch and the external flag share a word so that the parameter
// update can never overwrite a pitch set by the receiver.
type Shared struct {
	noteOn  atomic.Bool
	pitch   atomic.Uint32
	envGate atomic.Bool
}

// NewShared returns the power-on state: note on, gate open, and the
// initial knob pitch.
func NewShared() *Shared {
	s := &Shared{}
	s.noteOn.Store(true)
	s.envGate.Store(true)
	s.pitch.Store(params.InitialPitch)
	return s
}

// NoteOn reports whether a note is sounding.
func (s *Shared) NoteOn() bool {
	return s.noteOn.Load()
}

// SetNote turns the note on or off.
func (s *Shared) SetNote(on bool) {
	s.noteOn.Store(on)
}

// EnvGate returns the envelope gate.
func (s *Shared) EnvGate() bool {
	return s.envGate.Load()
}

// SetEnvGate publishes the envelope gate.
func (s *Shared) SetEnvGate(open bool) {
	s.envGate.Store(open)
}

// Pitch returns the current pitch.
func (s *Shared) Pitch() uint16 {
	return uint16(s.pitch.Load())
}

// External reports whether the note receiver owns the pitch.
func (s *Shared) External() bool {
	return s.pitch.Load()&externalBit != 0
}

// SetExternal hands the pitch over to the note receiver.
func (s *Shared) SetExternal() {
	for {
		old := s.pitch.Load()
		if old&externalBit != 0 || s.pitch.CompareAndSwap(old, old|externalBit) {
			return
		}
	}
}

// SetPitch sets the pitch, keeping the external flag.
func (s *Shared) SetPitch(p uint16) {
	for {
		old := s.pitch.Load()
		if s.pitch.CompareAndSwap(old, old&externalBit|uint32(p)) {
			return
		}
	}
}

// SetKnobPitch sets the pitch unless the note receiver owns it.
func (s *Shared) SetKnobPitch(p uint16) {
	for {
		old := s.pitch.Load()
		if old&externalBit != 0 || s.pitch.CompareAndSwap(old, uint32(p)) {
			return
		}
	}
}

var _ types.Stater = (*Shared)(nil)

func (s *Shared) Load(st *types.State) {
	s.noteOn.Store(st.ReadBool())
	s.pitch.Store(st.Read32())
	s.envGate.Store(st.ReadBool())
}

func (s *Shared) Save(st *types.State) {
	st.WriteBool(s.noteOn.Load())
	st.Write32(s.pitch.Load())
	st.WriteBool(s.envGate.Load())
}
