//go:build !test

// Package fyne implements a display.Driver showing the synthesizer's
// front panel in a desktop window.
package fyne

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/thelolagemann/onebit/pkg/control"
	"github.com/thelolagemann/onebit/pkg/display"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/display/fyne/themes"
	"github.com/thelolagemann/onebit/pkg/display/fyne/views"
	"github.com/thelolagemann/onebit/pkg/log"
	"github.com/thelolagemann/onebit/pkg/utils"
)

var (
	presetDir string
	showScope bool
)

func init() {
	display.Install("fyne", &Application{}, []display.DriverOption{
		{
			Name:        "presets",
			Default:     "",
			Value:       &presetDir,
			Description: "directory the preset picker starts in",
			Type:        "string",
		},
		{
			Name:        "scope",
			Default:     false,
			Value:       &showScope,
			Description: "open the scope window on start",
			Type:        "bool",
		},
	})
}

type fyneWindow struct {
	fyne.Window
	view   View
	events chan event.Event
}

// Application is the fyne display driver.
type Application struct {
	app   fyne.App
	synth display.Synth

	mainWindow fyne.Window
	panel      *views.Panel
	Log        *views.Log

	mu      sync.Mutex
	windows []*fyneWindow
}

// Initialize attaches the driver to s.
func (a *Application) Initialize(s display.Synth) {
	a.synth = s
	a.Logger()
}

// Logger returns the log shown in the Log window.
func (a *Application) Logger() log.Logger {
	if a.Log == nil {
		a.Log = &views.Log{}
	}
	return a.Log
}

// Start opens the front panel and blocks until it is closed.
func (a *Application) Start(events <-chan event.Event) error {
	a.app = app.NewWithID("onebit")
	a.app.Settings().SetTheme(themes.Default{})
	if presetDir == "" {
		presetDir = a.app.Preferences().StringWithFallback(views.PrefPresetDir, "presets")
	}

	a.mainWindow = a.app.NewWindow("onebit")
	a.mainWindow.SetMaster()

	a.panel = &views.Panel{Synth: a.synth}
	main := &fyneWindow{Window: a.mainWindow, view: a.panel, events: make(chan event.Event, 64)}
	a.windows = append(a.windows, main)
	if err := a.panel.Run(a.mainWindow, main.events); err != nil {
		return err
	}
	a.mainWindow.SetMainMenu(a.mainMenu())
	a.keyboard()

	if showScope {
		a.openWindowIfNotOpen(&views.Scope{})
	}

	// dispatch events to every open window
	go func() {
		for e := range events {
			switch e.Type {
			case event.Title:
				a.mainWindow.SetTitle("onebit | " + e.Data.(string))
				continue
			case event.Quit:
				a.app.Quit()
				return
			}
			a.mu.Lock()
			for _, w := range a.windows {
				select {
				case w.events <- e:
				default: // the window is behind, drop it
				}
			}
			a.mu.Unlock()
		}
	}()

	a.mainWindow.ShowAndRun()

	a.synth.SendCommand(control.Close)
	return nil
}

// Stop closes every window.
func (a *Application) Stop() error {
	if a.app != nil {
		a.app.Quit()
	}
	return nil
}

// newWindow creates a new window with the given name and provided
// view.
func (a *Application) newWindow(name string, view View) *fyneWindow {
	w := &fyneWindow{
		Window: a.app.NewWindow(name),
		view:   view,
		events: make(chan event.Event, 64),
	}
	a.mu.Lock()
	a.windows = append(a.windows, w)
	a.mu.Unlock()

	w.SetOnClosed(func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		// remove the window from the list of windows
		for i, win := range a.windows {
			if win == w {
				a.windows = append(a.windows[:i], a.windows[i+1:]...)
				break
			}
		}
		close(w.events)
	})
	return w
}

func (a *Application) openWindowIfNotOpen(view View) {
	a.mu.Lock()
	for _, w := range a.windows {
		if w.view.Title() == view.Title() {
			a.mu.Unlock()
			w.RequestFocus()
			return
		}
	}
	a.mu.Unlock()

	win := a.newWindow(view.Title(), view)
	if err := view.Run(win, win.events); err != nil {
		a.Log.Errorf("opening %s: %v", view.Title(), err)
		win.Close()
		return
	}
	win.Show()
}

func (a *Application) send(cmd control.CommandPacket) control.ResponsePacket {
	resp := a.synth.SendCommand(cmd)
	if resp.Error != nil {
		a.Log.Errorf("%s: %v", cmd.Command, resp.Error)
	}
	return resp
}

func (a *Application) mainMenu() *fyne.MainMenu {
	c := a.mainWindow.Canvas()

	loadPreset := NewCustomizedMenuItem("Load Preset...", func() {
		path, err := utils.AskForFile("Load preset", presetDir)
		if err != nil {
			return // cancelled
		}
		if resp := a.send(control.CommandPacket{Command: control.CommandLoadPreset, Data: []byte(path)}); resp.Error == nil {
			a.panel.Sync()
		}
	}, Shortcut(c, &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}))
	savePreset := fyne.NewMenuItem("Save Preset...", func() {
		resp := a.send(control.CommandPacket{Command: control.CommandSavePreset})
		if resp.Error == nil {
			a.panel.SaveFile(resp.Data, "preset.txt")
		}
	})
	saveState := NewCustomizedMenuItem("Save State...", func() {
		resp := a.send(control.CommandPacket{Command: control.CommandSaveState})
		if resp.Error == nil {
			a.panel.SaveFile(resp.Data, "state.1bit")
		}
	}, Shortcut(c, &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}))
	loadState := fyne.NewMenuItem("Load State...", func() {
		a.panel.OpenFile(func(b []byte) error {
			resp := a.send(control.CommandPacket{Command: control.CommandLoadState, Data: b})
			a.panel.Sync()
			return resp.Error
		})
	})
	settings := fyne.NewMenuItem("Settings", func() {
		a.openWindowIfNotOpen(&views.Settings{Preferences: a.app.Preferences(), Controller: a.synth})
	})
	fileMenu := fyne.NewMenu("File", loadPreset, savePreset, fyne.NewMenuItemSeparator(), saveState, loadState, fyne.NewMenuItemSeparator(), settings)

	pause := NewCustomizedMenuItem("Pause", func() {}, Checked(a.synth.Status().IsPaused(), func() {
		if a.synth.Status().IsPaused() {
			a.send(control.Resume)
		} else {
			a.send(control.Pause)
		}
	}))
	stop := fyne.NewMenuItem("Stop Note", func() {
		a.send(control.CommandPacket{Command: control.CommandNote, Data: []byte{0xFC}})
	})
	volume := fyne.NewMenuItem("Volume", nil)
	volume.ChildMenu = fyne.NewMenu("")
	for _, v := range []float64{0.25, 0.5, 0.75, 1} {
		v := v
		volume.ChildMenu.Items = append(volume.ChildMenu.Items, fyne.NewMenuItem(fmt.Sprintf("%.0f%%", v*100), func() {
			a.send(control.SetVolume(v))
		}))
	}
	synthMenu := fyne.NewMenu("Synth", pause, stop, volume)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Scope", func() { a.openWindowIfNotOpen(&views.Scope{}) }),
		fyne.NewMenuItem("Control", func() { a.openWindowIfNotOpen(&views.Control{}) }),
		fyne.NewMenuItem("Log", func() { a.openWindowIfNotOpen(a.Log) }),
	)

	return fyne.NewMainMenu(fileMenu, synthMenu, viewMenu)
}

// keyboard plays notes from the computer keyboard while the panel
// has focus, using the same layout as the terminal keyboard.
func (a *Application) keyboard() {
	desk, ok := a.mainWindow.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	held := -1
	desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
		offset, ok := keyNotes[e.Name]
		if !ok {
			return
		}
		note := 60 + offset
		if note == held {
			return
		}
		held = note
		a.send(control.CommandPacket{Command: control.CommandNote, Data: []byte{0x90, byte(note), 100}})
	})
	desk.SetOnKeyUp(func(e *fyne.KeyEvent) {
		offset, ok := keyNotes[e.Name]
		if !ok || 60+offset != held {
			return
		}
		held = -1
		a.send(control.CommandPacket{Command: control.CommandNote, Data: []byte{0x80, byte(60 + offset), 0}})
	})
}

var keyNotes = map[fyne.KeyName]int{
	fyne.KeyA: 0, fyne.KeyW: 1, fyne.KeyS: 2, fyne.KeyE: 3, fyne.KeyD: 4, fyne.KeyF: 5, fyne.KeyT: 6,
	fyne.KeyG: 7, fyne.KeyY: 8, fyne.KeyH: 9, fyne.KeyU: 10, fyne.KeyJ: 11, fyne.KeyK: 12,
}
