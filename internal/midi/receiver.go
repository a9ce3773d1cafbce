// Package midi implements the note receiver of the synthesizer: a byte
// oriented state machine fed from a serial line, which takes over the
// pitch from the front panel as soon as it sees a status byte.
package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/thelolagemann/onebit/internal/pitch"
	"github.com/thelolagemann/onebit/internal/types"
	"github.com/thelolagemann/onebit/pkg/log"
)

const (
	statusNoteOff     = 0x80
	statusNoteOn      = 0x90
	statusActiveSense = 0xFE
	statusStop        = 0xFC
	statusReset       = 0xFF

	noNote = 0xFF
)

type mode uint8

const (
	modeOther mode = iota
	modeNoteOff
	modeNoteOn
)

// Target is the synthesizer state driven by the Receiver.
type Target interface {
	// SetExternal hands the pitch over to the receiver. It is never
	// undone.
	SetExternal()
	SetPitch(uint16)
	SetNote(on bool)
}

// Receiver parses the note-control byte stream.
//
// A note-on or note-off status arms the receiver for two data bytes.
// Once both arrived the message is applied and the receiver re-arms
// for another pair (running status):
//
//	0x90 3C 7F 40 7F 3C 00
//	     ^^^^^ on 60
//	           ^^^^^ on 64
//	                 ^^^^^ 60 is not sounding, ignored
//
// Receive must not be called concurrently.
type Receiver struct {
	mode  mode
	left  int8
	buf   [2]byte
	last  uint8
	taken bool

	channel uint8
	omni    bool

	t   Target
	l   Listener
	log log.Logger
}

// Opt configures a Receiver.
type Opt func(r *Receiver)

// WithChannel listens on channel ch (0-15) only.
func WithChannel(ch uint8) Opt {
	return func(r *Receiver) {
		r.channel = ch & 0x0F
	}
}

// Omni listens on every channel.
func Omni() Opt {
	return func(r *Receiver) {
		r.omni = true
	}
}

// WithListener attaches a Listener.
func WithListener(l Listener) Opt {
	return func(r *Receiver) {
		r.l = l
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Opt {
	return func(r *Receiver) {
		r.log = l
	}
}

// NewReceiver returns a Receiver driving t. By default it listens on
// the first channel, and discards events.
func NewReceiver(t Target, opts ...Opt) *Receiver {
	r := &Receiver{
		last: noNote,
		t:    t,
		l:    nullListener{},
		log:  log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach replaces the Listener.
func (r *Receiver) Attach(l Listener) {
	if l == nil {
		l = nullListener{}
	}
	r.l = l
}

// External reports whether a status byte has been seen.
func (r *Receiver) External() bool {
	return r.taken
}

// LastNote returns the sounding note, if any.
func (r *Receiver) LastNote() (uint8, bool) {
	return r.last, r.last != noNote
}

func (r *Receiver) accepts(status, kind byte) bool {
	if status&0xF0 != kind {
		return false
	}
	return r.omni || status&0x0F == r.channel
}

// Receive feeds one byte into the receiver.
func (r *Receiver) Receive(b byte) {
	if b >= 0x80 {
		r.status(b)
		return
	}

	if r.left > 0 {
		r.buf[0] = r.buf[1]
		r.buf[1] = b
		r.left--
	}
	if r.left > 0 {
		return
	}

	switch r.mode {
	case modeNoteOff:
		r.apply(gomidi.NoteOff(0, r.buf[0]))
		r.left = 2
	case modeNoteOn:
		r.apply(gomidi.NoteOn(0, r.buf[0], r.buf[1]))
		r.left = 2
	}
}

func (r *Receiver) status(b byte) {
	if !r.taken {
		r.taken = true
		r.t.SetExternal()
		r.log.Infof("midi: external note control active")
	}

	switch {
	case r.accepts(b, statusNoteOff):
		r.mode, r.left = modeNoteOff, 2
	case r.accepts(b, statusNoteOn):
		r.mode, r.left = modeNoteOn, 2
	case b == statusActiveSense:
	case b == statusStop, b == statusReset:
		r.t.SetNote(false)
		r.l.Event(Event{Type: Stop})
		r.mode, r.left = modeOther, 0
	default:
		r.mode, r.left = modeOther, 0
	}
}

func (r *Receiver) apply(msg gomidi.Message) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		r.t.SetPitch(pitch.NotePeriod(key))
		r.t.SetNote(true)
		r.last = key
		r.l.Event(Event{Type: NoteOn, Note: key})
	case msg.GetNoteEnd(&ch, &key):
		if key != r.last {
			return
		}
		r.t.SetNote(false)
		r.last = noNote
		r.l.Event(Event{Type: NoteOff, Note: key})
	}
}

var _ types.Stater = (*Receiver)(nil)

func (r *Receiver) Load(s *types.State) {
	r.mode = mode(s.Read8())
	r.left = int8(s.Read8())
	s.ReadData(r.buf[:])
	r.last = s.Read8()
	r.taken = s.ReadBool()
}

func (r *Receiver) Save(s *types.State) {
	s.Write8(uint8(r.mode))
	s.Write8(uint8(r.left))
	s.WriteData(r.buf[:])
	s.Write8(r.last)
	s.WriteBool(r.taken)
}
