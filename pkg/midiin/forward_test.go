package midiin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gitlab.com/gomidi/midi/v2"
)

func TestForward(t *testing.T) {
	var got []byte
	sink := func(b byte) { got = append(got, b) }

	Forward(midi.NoteOn(0, 60, 100), sink)
	Forward(midi.NoteOff(0, 60), sink)
	Forward(midi.Message{0xFC}, sink)

	want := []byte{0x90, 60, 100, 0x80, 60, 0, 0xFC}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("forwarded bytes mismatch (-want +got):\n%s", diff)
	}
}
