package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pipeweave/pipeweave/internal/definition"
	"github.com/pipeweave/pipeweave/internal/logging"
	"github.com/pipeweave/pipeweave/internal/pipeline"
)

type runOptions struct {
	appLabel    string
	saveJournal bool
	values      valuesFlags
}

func newRunCmd(app *AppContext, root *rootFlags) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <definition>",
		Short: "Run a pipeline definition once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, app, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.appLabel, "app-label", "pipeweave", "label used for journal file names")
	cmd.Flags().BoolVar(&opts.saveJournal, "save-journal", true, "persist the run journal to disk")
	opts.values.register(cmd)

	return cmd
}

func runOnce(cmd *cobra.Command, app *AppContext, root *rootFlags, opts *runOptions, path string) error {
	ctx, logger := app.CommandContext(cmd, "run")

	values, err := opts.values.resolve()
	if err != nil {
		return err
	}

	doc, err := definition.Load(path, values)
	if err != nil {
		return err
	}

	runID := logging.NewRunID()
	ctx = logging.WithRunID(ctx, runID)

	name := pipelineName(path)

	if root.dryRun {
		printPlan(cmd, name, doc)
		return nil
	}

	p, err := pipeline.New(name, opts.appLabel, opts.saveJournal, doc, logger)
	if err != nil {
		return err
	}

	logger.Info(ctx, "starting pipeline run", "pipeline", name)
	j, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline %q failed: %w", name, err)
	}

	logger.Info(ctx, "pipeline run complete",
		"pipeline", name,
		"sources", len(j.Sources),
		"aggregators", len(j.Aggregators),
		"sinks", len(j.Sinks),
	)
	return nil
}

func pipelineName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printPlan(cmd *cobra.Command, name string, doc *definition.Document) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pipeline %q (dry run)\n", name)
	fmt.Fprintln(out, "sources:")
	for _, d := range doc.Sources {
		fmt.Fprintf(out, "  - %s (%s)\n", d.ID, d.Type)
	}
	fmt.Fprintln(out, "aggregators:")
	for _, d := range doc.Aggregators {
		fmt.Fprintf(out, "  - %s (%s)\n", d.ID, d.Type)
	}
	fmt.Fprintln(out, "sinks:")
	for _, d := range doc.Sinks {
		fmt.Fprintf(out, "  - %s (%s)\n", d.ID, d.Type)
	}
	if doc.Schedule != nil {
		fmt.Fprintf(out, "schedule: every %s\n", doc.Schedule.Frequency)
	}
}
