// Package workerlog provides a structured logger for code running inside a
// hosted component's goroutine body — the boundary the spec calls the child
// "process". It wraps github.com/rs/zerolog, a dependency the teacher
// project already declared but never imported from any .go file. The host
// and the built-in plugins in this repository do not use it.
package workerlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a minimal structured logger for component bodies.
type Logger struct {
	zl zerolog.Logger
}

// New creates a worker logger writing to w (os.Stderr if nil), tagged with
// the component's kind, type and id.
func New(w io.Writer, kind, componentType, id string) Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).With().
		Timestamp().
		Str("kind", kind).
		Str("type", componentType).
		Str("id", id).
		Logger()
	return Logger{zl: zl}
}

// Info logs an informational message.
func (l Logger) Info(msg string, fields map[string]any) {
	emit(l.zl.Info(), msg, fields)
}

// Warn logs a warning message.
func (l Logger) Warn(msg string, fields map[string]any) {
	emit(l.zl.Warn(), msg, fields)
}

// Error logs an error with its message.
func (l Logger) Error(err error, msg string, fields map[string]any) {
	emit(l.zl.Error().Err(err), msg, fields)
}

func emit(event *zerolog.Event, msg string, fields map[string]any) {
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
