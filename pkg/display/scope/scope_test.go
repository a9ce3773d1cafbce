package scope

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot/vg"
)

func TestTrace_WritePNG(t *testing.T) {
	var b bytes.Buffer
	tr := Samples("output", []int16{0, 16000, 16000, 0, 0, 16000})
	if err := tr.WritePNG(&b, 4*vg.Inch, 2*vg.Inch); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&b)
	if err != nil {
		t.Fatalf("expected a valid png, got %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Errorf("expected a non-empty image, got %v", img.Bounds())
	}
}

func TestTrace_Image(t *testing.T) {
	img, err := Trace{Title: "lfo", Values: []float64{1, 2, 3}}.Image(320, 200)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 200 {
		t.Errorf("expected 320x200, got %v", img.Bounds())
	}

	if _, err := (Trace{Title: "empty"}).Image(64, 64); err != nil {
		t.Errorf("expected an empty trace to draw, got %v", err)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	h.Add(1)
	h.Add(2)
	if diff := cmp.Diff([]float64{1, 2}, h.Values()); diff != "" {
		t.Errorf("partial window mismatch (-want +got):\n%s", diff)
	}
	h.Add(3)
	h.Add(4)
	if diff := cmp.Diff([]float64{2, 3, 4}, h.Values()); diff != "" {
		t.Errorf("full window mismatch (-want +got):\n%s", diff)
	}
}
