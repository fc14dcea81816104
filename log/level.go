package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

var disabled bool

// Disable turns off all logging, warnings and errors included.
func Disable() {
	disabled = true
	logrus.SetOutput(io.Discard)
}

// SetOutput sets the destination of all modules.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}
