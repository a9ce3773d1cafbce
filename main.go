package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/thelolagemann/onebit/internal/synth"
	"github.com/thelolagemann/onebit/pkg/audio"
	"github.com/thelolagemann/onebit/pkg/control"
	"github.com/thelolagemann/onebit/pkg/display"
	"github.com/thelolagemann/onebit/pkg/display/event"
	_ "github.com/thelolagemann/onebit/pkg/display/fyne"
	_ "github.com/thelolagemann/onebit/pkg/display/web"
	"github.com/thelolagemann/onebit/pkg/keyboard"
	"github.com/thelolagemann/onebit/pkg/log"
	"github.com/thelolagemann/onebit/pkg/midiin"
	"github.com/thelolagemann/onebit/pkg/snapshot"

	"net/http"
	_ "net/http/pprof"
)

// sessionName names the snapshots taken on exit.
const sessionName = "session"

// scopeInterval is how often the scope is pushed to the display.
const scopeInterval = time.Second / 30

func main() {
	audioBackend := flag.String("audio", "sdl", "The audio backend to use. Can be "+strings.Join(audio.Backends(), ", "))
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, fyne, web or none")
	midiPort := flag.String("midi", "", "Listen for notes on the MIDI input port matching this name")
	listPorts := flag.Bool("ports", false, "List the MIDI input ports and exit")
	useKeyboard := flag.Bool("keyboard", false, "Play notes from the terminal keyboard")
	presetFile := flag.String("preset", "", "The preset file to load")
	poly := flag.Bool("poly", false, "Use the TIA poly bank instead of the pattern table")
	omni := flag.Bool("omni", false, "Listen for notes on every MIDI channel")
	channel := flag.Int("channel", 1, "The MIDI channel to listen on (1-16)")
	rate := flag.Int("rate", 44100, "The audio sample rate")
	volume := flag.Float64("volume", 0.5, "The output volume, from 0 to 1")
	snapshots := flag.String("snapshots", "", "Resume from and save session snapshots in this folder")
	debug := flag.Bool("debug", false, "Print debug messages")
	pprof := flag.String("pprof", "", "Serve pprof on this address")

	display.RegisterFlags()
	flag.Parse()

	var logger = log.New(*debug)

	if *listPorts {
		ports, err := midiin.Ports()
		if err != nil {
			logger.Fatal(err.Error())
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	if *pprof != "" {
		go func() {
			if err := http.ListenAndServe(*pprof, nil); err != nil {
				logger.Errorf("pprof: %v", err)
			}
		}()
	}

	var driver display.Driver
	if *displayDriver != "none" {
		if driver = display.GetDriver(*displayDriver); driver == nil {
			logger.Fatal("invalid display driver " + *displayDriver)
		}
		if l, ok := driver.(display.Logging); ok {
			logger = log.Multi(l.Logger(), logger)
		}
	}

	events := make(chan event.Event, 64)
	opts := []synth.Opt{
		synth.WithLogger(logger),
		synth.WithSampleRate(*rate),
		synth.WithVolume(*volume),
		synth.WithEvents(events),
	}
	if *poly {
		opts = append(opts, synth.WithPolyBank())
	}
	if *omni {
		opts = append(opts, synth.Omni())
	} else {
		if *channel < 1 || *channel > 16 {
			logger.Fatal(fmt.Sprintf("invalid MIDI channel %d", *channel))
		}
		opts = append(opts, synth.WithMIDIChannel(uint8(*channel-1)))
	}

	var store *snapshot.Store
	if *snapshots != "" {
		var err error
		if store, err = snapshot.NewStore(*snapshots); err != nil {
			logger.Fatal(err.Error())
		}
		b, path, err := store.Latest(sessionName)
		switch {
		case err != nil:
			logger.Errorf("reading snapshots: %v", err)
		case b != nil:
			logger.Infof("resuming from %s", path)
			opts = append(opts, synth.WithState(b))
		}
	}

	s, err := synth.New(opts...)
	if err != nil {
		logger.Fatal(err.Error())
	}

	if *presetFile != "" {
		resp := s.SendCommand(control.CommandPacket{Command: control.CommandLoadPreset, Data: []byte(*presetFile)})
		if resp.Error != nil {
			logger.Fatal(resp.Error.Error())
		}
	}

	player, err := audio.Open(*audioBackend, s)
	if err != nil {
		logger.Errorf("%v, falling back to silence", err)
		if player, err = audio.Open("none", s); err != nil {
			logger.Fatal(err.Error())
		}
	}
	if err := player.Play(); err != nil {
		logger.Fatal(err.Error())
	}
	defer player.Close()

	if *midiPort != "" {
		port, err := midiin.Open(*midiPort, s.Receive, logger)
		if err != nil {
			logger.Fatal(err.Error())
		}
		logger.Infof("listening on %s", port.Name())
		defer port.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *useKeyboard {
		go func() {
			err := keyboard.Run(ctx, os.Stdin, keyboard.New(s.Receive))
			if err != nil && !errors.Is(err, keyboard.ErrQuit) && !errors.Is(err, context.Canceled) {
				logger.Errorf("keyboard: %v", err)
			}
			stop()
		}()
	}

	// the display sees the synth's events, a periodic scope and a
	// final quit
	out := make(chan event.Event, 64)
	go func() {
		t := time.NewTicker(scopeInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				out <- event.Event{Type: event.Quit}
				return
			case e := <-events:
				select {
				case out <- e:
				default:
				}
			case <-t.C:
				select {
				case out <- event.Event{Type: event.Scope, Data: s.Scope()}:
				default:
				}
			}
		}
	}()

	if driver == nil {
		// drain until interrupted
		for e := range out {
			if e.Type == event.Quit {
				break
			}
		}
	} else {
		driver.Initialize(s)
		if err := driver.Start(out); err != nil {
			logger.Errorf("display: %v", err)
		}
		stop()
	}

	if store != nil {
		path, err := store.Save(sessionName, s.Save())
		if err != nil {
			logger.Errorf("saving snapshot: %v", err)
		} else {
			logger.Infof("saved %s", path)
		}
	}
	s.SendCommand(control.Close)
}
