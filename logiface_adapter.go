package coop

import "github.com/joeycumines/logiface"

// NewLogifaceLogger adapts a github.com/joeycumines/logiface Logger into
// this package's Logger interface, so a host that already runs logiface
// (e.g. via its zerolog, slog, or stumpy backend from the same author's
// ecosystem) can point a Scheduler straight at its existing pipeline
// instead of maintaining a second logging configuration.
//
// The teacher package only ever exercised logiface from its test suite; this
// bridges it into shipped code, translating each LogEntry into one
// logiface.Builder call via the generic Event type, the same conversion
// coverage_extra_test.go performs with typedLogger.Logger().
func NewLogifaceLogger(lg *logiface.Logger[logiface.Event]) Logger {
	return &logifaceLogger{lg: lg}
}

type logifaceLogger struct {
	lg *logiface.Logger[logiface.Event]
}

func (l *logifaceLogger) IsEnabled(level LogLevel) bool {
	return l.lg.Level() >= toLogifaceLevel(level)
}

func (l *logifaceLogger) Log(entry LogEntry) {
	b := l.lg.Build(toLogifaceLevel(entry.Level))
	if b == nil {
		return
	}
	if entry.Category != "" {
		b = b.Str("category", entry.Category)
	}
	if entry.Routine != "" {
		b = b.Str("routine", entry.Routine)
	}
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

// toLogifaceLevel maps this package's four levels onto logiface's syslog
// scale, following the same Debug/Info/Warning/Error bucketing
// logiface-slog and logiface-zerolog both use for their narrower backends.
func toLogifaceLevel(level LogLevel) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
