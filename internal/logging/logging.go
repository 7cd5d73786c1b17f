// Package logging provides the orchestrator-side structured logger used by
// the pipeline, scheduler, stage executor and CLI. It wraps
// github.com/charmbracelet/log the way the teacher project's
// infrastructure/logging package does, carrying a run correlation id through
// context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cblog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the structured logging contract used throughout the engine.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// Options configures the charmbracelet/log-backed Logger.
type Options struct {
	Writer       io.Writer
	Level        string
	ReportCaller bool
	Formatter    cblog.Formatter
	Component    string
}

// charmLogger implements Logger.
type charmLogger struct {
	logger *cblog.Logger
	fields []interface{}
}

// New creates a configured Logger.
func New(opts Options) (Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	base := cblog.NewWithOptions(writer, cblog.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    opts.ReportCaller,
		Formatter:       opts.Formatter,
	})

	var fields []interface{}
	if opts.Component != "" {
		fields = append(fields, "component", opts.Component)
	}

	return &charmLogger{logger: base, fields: fields}, nil
}

func (l *charmLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.DebugLevel, msg, fields...)
}

func (l *charmLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.InfoLevel, msg, fields...)
}

func (l *charmLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.WarnLevel, msg, fields...)
}

func (l *charmLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.ErrorLevel, msg, fields...)
}

func (l *charmLogger) With(fields ...interface{}) Logger {
	next := make([]interface{}, 0, len(l.fields)+len(fields))
	next = append(next, l.fields...)
	next = append(next, fields...)
	return &charmLogger{logger: l.logger, fields: next}
}

func (l *charmLogger) log(ctx context.Context, level cblog.Level, msg string, fields ...interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	payload := mergeFields(l.fields, fields, RunID(ctx))

	switch level {
	case cblog.DebugLevel:
		l.logger.Debug(msg, payload...)
	case cblog.WarnLevel:
		l.logger.Warn(msg, payload...)
	case cblog.ErrorLevel:
		l.logger.Error(msg, payload...)
	default:
		l.logger.Info(msg, payload...)
	}
}

func mergeFields(base, additions []interface{}, runID string) []interface{} {
	store := make(map[string]interface{})
	order := make([]string, 0, len(base)/2+len(additions)/2+1)

	add := func(key string, value interface{}) {
		if key == "" {
			return
		}
		if _, ok := store[key]; !ok {
			order = append(order, key)
		}
		store[key] = value
	}

	process := func(values []interface{}) {
		for i := 0; i+1 < len(values); i += 2 {
			if key, ok := values[i].(string); ok {
				add(key, values[i+1])
			}
		}
	}

	process(base)
	process(additions)
	if runID != "" {
		add("run_id", runID)
	}

	out := make([]interface{}, 0, len(order)*2)
	for _, key := range order {
		out = append(out, key, store[key])
	}
	return out
}

type runIDKey struct{}

// WithRunID attaches a run correlation id to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID extracts the run correlation id, or "" if none is set.
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// NewRunID generates a fresh run correlation id.
func NewRunID() string {
	return uuid.NewString()
}

// RotatingWriter returns an io.Writer that rolls path over by size, age and
// backup count, via lumberjack. Callers pass it as Options.Writer when a log
// file path is configured.
func RotatingWriter(path string, maxSizeMB, maxBackups, maxAgeDays int) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
}

// NoOp returns a Logger that discards everything, used in tests.
func NoOp() Logger { return noOpLogger{} }

type noOpLogger struct{}

func (noOpLogger) Debug(context.Context, string, ...interface{}) {}
func (noOpLogger) Info(context.Context, string, ...interface{})  {}
func (noOpLogger) Warn(context.Context, string, ...interface{})  {}
func (noOpLogger) Error(context.Context, string, ...interface{}) {}
func (noOpLogger) With(...interface{}) Logger                    { return noOpLogger{} }
