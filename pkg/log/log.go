package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	mu    sync.Mutex
	out   io.Writer
	debug bool
}

// New returns a Logger writing to stdout. Debug messages are only
// printed when debug is set.
func New(debug bool) Logger {
	return NewWriter(os.Stdout, debug)
}

// NewWriter returns a Logger writing to w.
func NewWriter(w io.Writer, debug bool) Logger {
	return &logger{out: w, debug: debug}
}

func (l *logger) printf(prefix, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, prefix+"\t"+format+"\n", args...)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.printf("[INFO]", format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.printf("[ERROR]", format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.printf("[DEBUG]", format, args...)
}

// Fatal prints str and exits the process.
func (l *logger) Fatal(str string) {
	l.printf("[FATAL]", "%s", str)
	os.Exit(1)
}
