package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/pipeweave/pipeweave/internal/appconfig"
	"github.com/pipeweave/pipeweave/internal/logging"
)

// AppContext bundles the long-lived services built once at startup and
// threaded through every subcommand.
type AppContext struct {
	Settings *appconfig.Settings
	Logger   logging.Logger

	logWriter io.Writer
}

// EnsureLogger (re)builds the logger at the given level against the writer
// chosen at startup. Called from the root command's PersistentPreRunE once
// -v flags are parsed, so verbosity can raise the level set in settings.
func (a *AppContext) EnsureLogger(level string) error {
	logger, err := logging.New(logging.Options{Writer: a.logWriter, Level: level})
	if err != nil {
		return err
	}
	a.Logger = logger
	return nil
}

// CommandContext returns the command's context (falling back to Background)
// together with a component-scoped logger.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, logging.Logger) {
	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}
	return ctx, a.LoggerFor(component)
}

// LoggerFor derives a child logger scoped to component.
func (a *AppContext) LoggerFor(component string) logging.Logger {
	if a == nil || a.Logger == nil {
		return logging.NoOp()
	}
	return a.Logger.With("component", component)
}
