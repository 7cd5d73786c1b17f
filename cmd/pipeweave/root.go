package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var verbosityLevels = []string{"error", "warn", "info", "debug"}

type rootFlags struct {
	verbosity int
	dryRun    bool
}

func (f *rootFlags) logLevel(defaultLevel string) string {
	if f.verbosity <= 0 {
		return defaultLevel
	}
	base := 0
	for i, level := range verbosityLevels {
		if strings.EqualFold(level, defaultLevel) {
			base = i
			break
		}
	}
	idx := base + f.verbosity
	if idx >= len(verbosityLevels) {
		idx = len(verbosityLevels) - 1
	}
	return verbosityLevels[idx]
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "pipeweave",
		Short:         "pipeweave gathers, aggregates and publishes data through a declarative pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.EnsureLogger(flags.logLevel(app.Settings.LogLevel))
		},
	}

	cmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", "increase log verbosity (-v, -vv, -vvv)")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "validate and print the plan without running any component")

	cmd.AddCommand(newRunCmd(app, flags))
	cmd.AddCommand(newScheduleCmd(app, flags))
	cmd.AddCommand(newPluginsCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
