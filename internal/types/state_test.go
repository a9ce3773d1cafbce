package types

import (
	"errors"
	"testing"
)

func TestState(t *testing.T) {
	s := NewState()
	s.Write8(0xAB)
	s.Write16(0x1234)
	s.Write32(0xDEADBEEF)
	s.Write64(1 << 40)
	s.WriteBool(true)
	s.WriteData([]byte{1, 2, 3})

	r, err := StateFromBytes(s.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if v := r.Read8(); v != 0xAB {
		t.Errorf("expected 0xAB, got 0x%02X", v)
	}
	if v := r.Read16(); v != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", v)
	}
	if v := r.Read32(); v != 0xDEADBEEF {
		t.Errorf("expected 0xDEADBEEF, got 0x%08X", v)
	}
	if v := r.Read64(); v != 1<<40 {
		t.Errorf("expected 1<<40, got %d", v)
	}
	if !r.ReadBool() {
		t.Errorf("expected true")
	}
	var data [3]byte
	r.ReadData(data[:])
	if data != [3]byte{1, 2, 3} {
		t.Errorf("expected [1 2 3], got %v", data)
	}
	if r.Err() != nil {
		t.Errorf("expected no error, got %v", r.Err())
	}

	t.Run("short", func(t *testing.T) {
		if v := r.Read16(); v != 0 {
			t.Errorf("expected 0 past the end, got %d", v)
		}
		if !errors.Is(r.Err(), ErrShortState) {
			t.Errorf("expected ErrShortState, got %v", r.Err())
		}
		// the error is sticky
		r.Read8()
		if !errors.Is(r.Err(), ErrShortState) {
			t.Errorf("expected the error to stick, got %v", r.Err())
		}
	})
}

func TestStateFromBytes(t *testing.T) {
	for name, raw := range map[string][]byte{
		"empty":   nil,
		"foreign": []byte("RIFF0000WAVE"),
		"version": {'1', 'B', 'I', 'T', stateVersion + 1},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := StateFromBytes(raw); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}
