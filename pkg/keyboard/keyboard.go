// Package keyboard turns a terminal into a one-octave note keyboard,
// laid out like a piano on the home row:
//
//	 w e   t y u
//	a s d f g h j k
//
// z and x shift the octave, space stops the note and q quits.
package keyboard

import (
	"context"
	"errors"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/term"
)

var keyNotes = map[byte]uint8{
	'a': 0, 'w': 1, 's': 2, 'e': 3, 'd': 4, 'f': 5, 't': 6,
	'g': 7, 'y': 8, 'h': 9, 'u': 10, 'j': 11, 'k': 12,
}

const (
	defaultOctave = 4
	maxOctave     = 9
	velocity      = 100
	noNote        = -1
)

// ErrQuit is returned by Run when the quit key is pressed.
var ErrQuit = errors.New("keyboard: quit")

// Keyboard converts key presses into MIDI bytes. A terminal reports no
// key releases, so each note sounds until the next key.
type Keyboard struct {
	sink    func(b byte)
	channel uint8
	octave  int
	last    int
}

// New returns a Keyboard sending on channel 1.
func New(sink func(b byte)) *Keyboard {
	return &Keyboard{sink: sink, octave: defaultOctave, last: noNote}
}

// Octave returns the current octave.
func (k *Keyboard) Octave() int {
	return k.octave
}

func (k *Keyboard) send(msg midi.Message) {
	for _, b := range msg.Bytes() {
		k.sink(b)
	}
}

func (k *Keyboard) release() {
	if k.last != noNote {
		k.send(midi.NoteOff(k.channel, uint8(k.last)))
		k.last = noNote
	}
}

// Key handles one key press. It reports false for the quit key.
func (k *Keyboard) Key(c byte) bool {
	switch c {
	case 'q', 0x03: // ctrl-c
		k.release()
		return false
	case ' ':
		k.release()
		k.send(midi.Message{0xFC})
	case 'z':
		k.octave = max(k.octave-1, 0)
	case 'x':
		k.octave = min(k.octave+1, maxOctave)
	default:
		offset, ok := keyNotes[c]
		if !ok {
			return true
		}
		note := k.octave*12 + int(offset)
		if note > 127 {
			return true
		}
		k.release()
		k.send(midi.NoteOn(k.channel, uint8(note), velocity))
		k.last = note
	}
	return true
}

// Run puts f in raw mode and feeds its key presses to k until the
// quit key is pressed, ctx is done or f is closed.
func Run(ctx context.Context, f *os.File, k *Keyboard) error {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("keyboard: not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, state)

	keys := make(chan byte)
	errs := make(chan error, 1)
	go func() {
		var buf [1]byte
		for {
			if _, err := f.Read(buf[:]); err != nil {
				errs <- err
				return
			}
			keys <- buf[0]
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case c := <-keys:
			if !k.Key(c) {
				return ErrQuit
			}
		}
	}
}
