//go:build !test

package views

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/onebit/pkg/control"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/utils"
)

// Preference keys.
const (
	PrefPresetDir = "presets.dir"
	PrefVolume    = "audio.volume"
)

type labelEntryWithButton struct {
}

func (l *labelEntryWithButton) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) != 3 {
		return
	}
	objects[0].Resize(fyne.NewSize(100, 30))
	objects[1].Resize(fyne.NewSize(size.Width-100-25, 30))
	objects[2].Resize(fyne.NewSize(30, 30))

	objects[0].Move(fyne.NewPos(0, 0))
	objects[1].Move(fyne.NewPos(110, 0))
	objects[2].Move(fyne.NewPos(size.Width-25, 0))
}

func (l *labelEntryWithButton) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(520, 35)
}

// Settings edits the persistent preferences: where the preset picker
// starts and the output volume.
type Settings struct {
	fyne.Preferences
	Controller control.Controller
	isAsking   bool
}

func (s *Settings) Title() string {
	return "Settings"
}

func (s *Settings) Run(window fyne.Window, events <-chan event.Event) error {
	settingsView := container.NewVBox()
	window.SetContent(settingsView)

	// preset directory (string with a file picker)
	presetDir := container.New(&labelEntryWithButton{})
	presetDirLabel := widget.NewLabel("Presets")
	presetDirLabel.TextStyle.Monospace = true
	presetDirPath := widget.NewEntry()
	presetDirPath.SetText(s.StringWithFallback(PrefPresetDir, "presets"))
	presetDirPath.OnChanged = func(dir string) {
		s.SetString(PrefPresetDir, dir)
	}

	presetDirButton := widget.NewButton("...", func() {
		// dirty hack to prevent the user from spamming the button
		if s.isAsking {
			return
		}

		s.isAsking = true
		defer func() {
			s.isAsking = false
		}()

		location, err := utils.AskForFile("Choose any preset in the directory", presetDirPath.Text)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		presetDirPath.SetText(filepath.Dir(location))
	})

	presetDir.Add(presetDirLabel)
	presetDir.Add(presetDirPath)
	presetDir.Add(presetDirButton)
	settingsView.Add(presetDir)

	// volume (slider applied immediately)
	volumeLabel := widget.NewLabel("")
	volume := widget.NewSlider(0, 1)
	volume.Step = 0.05
	volume.Value = s.FloatWithFallback(PrefVolume, 0.5)
	volumeLabel.SetText(fmt.Sprintf("Volume %3.0f%%", volume.Value*100))
	volume.OnChanged = func(v float64) {
		volumeLabel.SetText(fmt.Sprintf("Volume %3.0f%%", v*100))
		s.SetFloat(PrefVolume, v)
		if resp := s.Controller.SendCommand(control.SetVolume(v)); resp.Error != nil {
			dialog.ShowError(resp.Error, window)
		}
	}
	settingsView.Add(container.NewBorder(nil, nil, volumeLabel, nil, volume))

	go runUntilQuit(events, func(event.Event) {})
	return nil
}
