package log

type multiLogger []Logger

// Multi returns a Logger that writes to every one of loggers. Fatal
// is only passed to the last logger, the others record it as an
// error first.
func Multi(loggers ...Logger) Logger {
	return multiLogger(loggers)
}

func (m multiLogger) Infof(format string, args ...interface{}) {
	for _, l := range m {
		l.Infof(format, args...)
	}
}

func (m multiLogger) Errorf(format string, args ...interface{}) {
	for _, l := range m {
		l.Errorf(format, args...)
	}
}

func (m multiLogger) Debugf(format string, args ...interface{}) {
	for _, l := range m {
		l.Debugf(format, args...)
	}
}

func (m multiLogger) Fatal(str string) {
	if len(m) == 0 {
		return
	}
	for _, l := range m[:len(m)-1] {
		l.Errorf("%s", str)
	}
	m[len(m)-1].Fatal(str)
}
