package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

type Fields logrus.Fields

// Entry is a module log entry with fields evaluated only when the entry is
// actually emitted. A disabled module makes every Entry method a no-op.
type Entry struct {
	mod    Module
	fields [6]func() Fields
	nfield int
}

// at returns the logrus entry to emit at lvl, or nil if the module is
// disabled for lvl.
func (entry Entry) at(lvl Level) *logrus.Entry {
	if !entry.mod.Enabled(lvl) {
		return nil
	}

	all := logrus.Fields{"_mod": entry.mod.String()}
	for _, lf := range entry.fields[:entry.nfield] {
		for k, v := range lf() {
			all[k] = v
		}
	}
	return logrus.StandardLogger().WithFields(all)
}

func (entry Entry) WithFields(fields Fields) Entry {
	return entry.WithDelayedFields(func() Fields { return fields })
}

func (entry Entry) WithField(key string, value any) Entry {
	return entry.WithDelayedFields(func() Fields { return Fields{key: value} })
}

// WithError adds err as the "error" field.
func (entry Entry) WithError(err error) Entry {
	return entry.WithField(logrus.ErrorKey, err)
}

// WithDelayedFields adds fields computed by getfields when the entry is
// emitted. Fields added past capacity are dropped.
func (entry Entry) WithDelayedFields(getfields func() Fields) Entry {
	if entry.nfield < len(entry.fields) {
		entry.fields[entry.nfield] = getfields
		entry.nfield++
	}
	return entry
}

func (entry Entry) Debug(args ...any) {
	if e := entry.at(DebugLevel); e != nil {
		e.Debug(args...)
	}
}

func (entry Entry) Info(args ...any) {
	if e := entry.at(InfoLevel); e != nil {
		e.Info(args...)
	}
}

func (entry Entry) Warn(args ...any) {
	if e := entry.at(WarnLevel); e != nil {
		e.Warn(args...)
	}
}

func (entry Entry) Error(args ...any) {
	if e := entry.at(ErrorLevel); e != nil {
		e.Error(args...)
	}
}

func (entry Entry) Debugf(format string, args ...any) {
	if e := entry.at(DebugLevel); e != nil {
		e.Debugf(format, args...)
	}
}

func (entry Entry) Infof(format string, args ...any) {
	if e := entry.at(InfoLevel); e != nil {
		e.Infof(format, args...)
	}
}

func (entry Entry) Warnf(format string, args ...any) {
	if e := entry.at(WarnLevel); e != nil {
		e.Warnf(format, args...)
	}
}

func (entry Entry) Errorf(format string, args ...any) {
	if e := entry.at(ErrorLevel); e != nil {
		e.Errorf(format, args...)
	}
}

func (entry Entry) Fatalf(format string, args ...any) {
	if e := entry.at(FatalLevel); e != nil {
		e.Fatalf(format, args...)
	}
}
