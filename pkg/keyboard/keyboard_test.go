package keyboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKeyboard(t *testing.T) {
	var got []byte
	k := New(func(b byte) { got = append(got, b) })

	t.Run("note", func(t *testing.T) {
		got = nil
		k.Key('a')
		if diff := cmp.Diff([]byte{0x90, 48, 100}, got); diff != "" {
			t.Errorf("note-on mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("next note releases", func(t *testing.T) {
		got = nil
		k.Key('h')
		want := []byte{0x80, 48, 0, 0x90, 57, 100}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("octave", func(t *testing.T) {
		got = nil
		k.Key('x')
		k.Key('a')
		if k.Octave() != 5 || got[len(got)-2] != 60 {
			t.Errorf("expected C5 (60) in octave 5, got %v in octave %d", got, k.Octave())
		}
		for i := 0; i < 20; i++ {
			k.Key('z')
		}
		if k.Octave() != 0 {
			t.Errorf("expected the octave to stop at 0, got %d", k.Octave())
		}
	})
	t.Run("stop", func(t *testing.T) {
		got = nil
		k.Key(' ')
		want := []byte{0x80, 60, 0, 0xFC}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("unmapped", func(t *testing.T) {
		got = nil
		if !k.Key('!') || len(got) != 0 {
			t.Errorf("expected an unmapped key to be ignored, got %v", got)
		}
	})
	t.Run("quit", func(t *testing.T) {
		if k.Key('q') {
			t.Errorf("expected q to quit")
		}
	})
}
