// Package scope draws the synthesizer's output and control signals as
// plots, for the display drivers and for offline renders.
package scope

import (
	"fmt"
	"image"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Trace is a titled series of values sampled at a fixed rate.
type Trace struct {
	Title  string
	XLabel string
	YLabel string
	Values []float64
	// YMin and YMax fix the vertical range when they differ.
	YMin, YMax float64
}

// Samples returns a Trace of PCM samples, on a full-scale axis.
func Samples(title string, samples []int16) Trace {
	v := make([]float64, len(samples))
	for i, s := range samples {
		v[i] = float64(s)
	}
	return Trace{
		Title:  title,
		XLabel: "Sample",
		YLabel: "Amplitude",
		Values: v,
		YMin:   -32768,
		YMax:   32767,
	}
}

// Plot builds the plot of t.
func (t Trace) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = t.Title
	p.X.Label.Text = t.XLabel
	p.Y.Label.Text = t.YLabel
	if t.YMin != t.YMax {
		p.Y.Min, p.Y.Max = t.YMin, t.YMax
	}

	xys := make(plotter.XYs, len(t.Values))
	for i, v := range t.Values {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	if len(xys) == 0 {
		return p, nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("scope: %w", err)
	}
	p.Add(line)
	return p, nil
}

// Draw renders t into img, using its whole bounds.
func (t Trace) Draw(img *image.RGBA) error {
	p, err := t.Plot()
	if err != nil {
		return err
	}
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))
	return nil
}

// Image renders t into a new image of the given size.
func (t Trace) Image(width, height int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := t.Draw(img); err != nil {
		return nil, err
	}
	return img, nil
}

// WritePNG writes t as a PNG of the given size, in inches.
func (t Trace) WritePNG(w io.Writer, width, height vg.Length) error {
	p, err := t.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("scope: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("scope: writing png: %w", err)
	}
	return nil
}

// History is a fixed-length window over a control signal, for live
// plots. It is not safe for concurrent use.
type History struct {
	values []float64
	next   int
	full   bool
}

// NewHistory returns a History of n values.
func NewHistory(n int) *History {
	return &History{values: make([]float64, n)}
}

// Add appends v, dropping the oldest value once full.
func (h *History) Add(v float64) {
	h.values[h.next] = v
	h.next++
	if h.next == len(h.values) {
		h.next = 0
		h.full = true
	}
}

// Values returns the window, oldest first.
func (h *History) Values() []float64 {
	if !h.full {
		return append([]float64(nil), h.values[:h.next]...)
	}
	out := make([]float64, 0, len(h.values))
	out = append(out, h.values[h.next:]...)
	return append(out, h.values[:h.next]...)
}
