// Package corelog provides the leveled logging wrapper used throughout
// slicecore (§7): a thin prefix convention over the standard library
// logger, matching the teacher's own stdlib-only logging (no structured
// logging library appears anywhere in the retrieved example corpus).
package corelog

import (
	"log"
	"os"
)

// Level selects which messages a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger wraps *log.Logger with a minimum level filter and bracketed
// level prefixes, e.g. "2026/07/31 12:00:00 [warn] ...".
type Logger struct {
	out *log.Logger
	min Level
}

// New constructs a Logger writing to os.Stderr at the given minimum level.
func New(min Level) *Logger {
	return &Logger{out: log.New(os.Stderr, "", log.LstdFlags), min: min}
}

func (l *Logger) log(level Level, format string, args []interface{}) {
	if l == nil || level < l.min {
		return
	}
	l.out.Printf("["+level.String()+"] "+format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(LevelDebug, format, args) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(LevelInfo, format, args) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(LevelWarn, format, args) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(LevelError, format, args) }
