package views

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/log"
)

// maxLogEntries is the number of lines the log window keeps.
const maxLogEntries = 20

var _ log.Logger = (*Log)(nil)

// Log collects log lines and shows the most recent ones. It can be
// attached to the synthesizer as a log.Logger.
type Log struct {
	sync.RWMutex

	entries []string
}

func (l *Log) Title() string {
	return "Log"
}

func (l *Log) add(prefix, format string, args ...interface{}) {
	l.Lock()
	defer l.Unlock()

	l.entries = append(l.entries, prefix+" "+fmt.Sprintf(format, args...))
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

func (l *Log) Infof(format string, args ...interface{}) {
	l.add("[INFO]", format, args...)
}

func (l *Log) Errorf(format string, args ...interface{}) {
	l.add("[ERROR]", format, args...)
}

func (l *Log) Debugf(format string, args ...interface{}) {
	l.add("[DEBUG]", format, args...)
}

func (l *Log) Fatal(str string) {
	l.add("[FATAL]", "%s", str)
}

// Entries returns the kept lines, oldest first.
func (l *Log) Entries() []string {
	l.RLock()
	defer l.RUnlock()
	return append([]string(nil), l.entries...)
}

func (l *Log) Run(window fyne.Window, events <-chan event.Event) error {
	text := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	window.SetContent(container.NewVScroll(text))
	window.Resize(fyne.NewSize(640, 320))

	// every event is a chance to catch up
	last := ""
	go runUntilQuit(events, func(event.Event) {
		s := strings.Join(l.Entries(), "\n")
		if s == last {
			return
		}
		last = s
		text.SetText(s)
	})

	return nil
}
