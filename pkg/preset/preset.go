// Package preset reads and writes knob snapshots. A preset is a text
// file with one knob per line:
//
//	# slow wobble
//	pitch     = 512
//	lfo-freq  = 900
//	lfo-depth = 300
//
// Knobs may be named or numbered. Knobs a preset leaves out keep
// their current position when it is applied.
package preset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/pkg/utils"
)

// Preset is a set of knob positions.
type Preset struct {
	Name  string
	Knobs [adc.NumKnobs]uint16
	set   [adc.NumKnobs]bool
}

// Set records a position for knob k, clamped to the 10-bit range.
func (p *Preset) Set(k adc.Knob, v int) {
	p.Knobs[k] = uint16(utils.Clamp(0, v, adc.MaxValue))
	p.set[k] = true
}

// Has reports whether the preset sets knob k.
func (p *Preset) Has(k adc.Knob) bool {
	return p.set[k]
}

// Parse reads a preset from r.
func Parse(r io.Reader) (*Preset, error) {
	p := &Preset{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		name, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("preset: line %d: expected name = value", line)
		}
		k, err := adc.ParseKnob(name)
		if err != nil {
			return nil, fmt.Errorf("preset: line %d: %w", line, err)
		}
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("preset: line %d: %w", line, err)
		}
		p.Set(k, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return p, nil
}

// Load reads a preset file, which may be compressed.
func Load(filename string) (*Preset, error) {
	data, err := utils.LoadFile(filename)
	if err != nil {
		return nil, err
	}
	p, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	p.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return p, nil
}

// FromPanel captures every knob of panel.
func FromPanel(panel *adc.Panel) *Preset {
	p := &Preset{}
	for i, v := range panel.Values() {
		p.Set(adc.Knob(i), int(v))
	}
	return p
}

// Apply moves the knobs of panel to the positions set by the preset.
func (p *Preset) Apply(panel *adc.Panel) {
	for i, v := range p.Knobs {
		if p.set[i] {
			panel.Set(adc.Knob(i), int(v))
		}
	}
}

// WriteTo writes the preset in the format read by Parse.
func (p *Preset) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	if p.Name != "" {
		fmt.Fprintf(&b, "# %s\n", p.Name)
	}
	for i, v := range p.Knobs {
		if p.set[i] {
			fmt.Fprintf(&b, "%-9s = %d\n", adc.Knob(i), v)
		}
	}
	return b.WriteTo(w)
}
