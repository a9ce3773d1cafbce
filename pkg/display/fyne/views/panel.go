package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/internal/midi"
	"github.com/thelolagemann/onebit/internal/synth"
	"github.com/thelolagemann/onebit/pkg/control"
	"github.com/thelolagemann/onebit/pkg/display"
	"github.com/thelolagemann/onebit/pkg/display/event"
)

// Panel is the front panel: a slider per knob, the three lights and
// a line of readout.
type Panel struct {
	WindowedView
	Synth display.Synth

	sliders       [adc.NumKnobs]*widget.Slider
	lfo, env, pwr *led
	readout       *widget.Label
	note          *widget.Label
}

func (p *Panel) Title() string {
	return "Panel"
}

// Sync moves the sliders to the synthesizer's knob positions.
func (p *Panel) Sync() {
	for i, v := range p.Synth.Knobs() {
		if p.sliders[i] != nil {
			p.sliders[i].SetValue(float64(v))
		}
	}
}

func (p *Panel) Run(window fyne.Window, events <-chan event.Event) error {
	p.Window = window

	knobs := container.NewGridWithColumns(2)
	initial := p.Synth.Knobs()
	for i := range p.sliders {
		k := adc.Knob(i)
		s := widget.NewSlider(0, adc.MaxValue)
		s.Step = 1
		s.Value = float64(initial[i])
		s.OnChanged = func(v float64) {
			if resp := p.Synth.SendCommand(control.SetKnob(uint8(k), uint16(v))); resp.Error != nil {
				p.error(resp.Error)
			}
		}
		p.sliders[i] = s
		knobs.Add(bold(k.String()))
		knobs.Add(s)
	}

	p.lfo, p.env, p.pwr = newLED(), newLED(), newLED()
	lights := container.NewGridWithColumns(3,
		p.lfo.labelled("LFO"), p.env.labelled("ENV"), p.pwr.labelled("PWR"))

	p.readout = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	p.note = widget.NewLabelWithStyle("-", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})

	window.SetContent(container.NewBorder(
		newCard("lights", lights),
		container.NewBorder(nil, nil, nil, p.note, p.readout),
		nil, nil,
		newCard("knobs", container.NewPadded(knobs)),
	))
	window.Resize(fyne.NewSize(520, 480))

	go runUntilQuit(events, func(e event.Event) {
		switch e.Type {
		case event.Indicators:
			p.show(e.Data.(synth.Readout))
		case event.Note:
			n := e.Data.(midi.Event)
			p.note.SetText(n.String())
		}
	})

	return nil
}

func (p *Panel) show(r synth.Readout) {
	p.lfo.set(r.Lights.LFO)
	p.env.set(r.Lights.Envelope)
	p.pwr.set(r.Lights.Power)

	source := "knob"
	if r.External {
		source = "midi"
	}
	p.readout.SetText(fmt.Sprintf("%-8s lfo %-13s period %5d  pitch %5d (%s)",
		r.Waveform, r.LFOWaveform, r.Period, r.Pitch, source))
	p.readout.TextStyle.Bold = r.NoteOn
	p.readout.Refresh()
}
