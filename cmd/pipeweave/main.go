package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pipeweave/pipeweave/internal/appconfig"
	"github.com/pipeweave/pipeweave/internal/logging"
	"github.com/pipeweave/pipeweave/internal/metrics"
)

func main() {
	settings, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeweave: failed to load settings: %v\n", err)
		os.Exit(1)
	}

	writer := io.Writer(os.Stdout)
	if settings.LogFile != "" {
		path := appconfig.ExpandPath(settings.LogFile)
		writer = io.MultiWriter(os.Stdout, logging.RotatingWriter(
			path, settings.LogMaxSizeMB, settings.LogMaxBackups, settings.LogMaxAgeDays,
		))
	}

	logger, err := logging.New(logging.Options{Writer: writer, Level: settings.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeweave: failed to build logger: %v\n", err)
		os.Exit(1)
	}

	app := &AppContext{Settings: settings, Logger: logger, logWriter: writer}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if settings.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, settings.MetricsAddr); err != nil {
				logger.Error(ctx, "metrics server stopped", "error", err)
			}
		}()
	}

	rootCmd := newRootCmd(app)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
