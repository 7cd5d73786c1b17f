package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipeweave/pipeweave/internal/definition"
	"github.com/pipeweave/pipeweave/internal/logging"
	"github.com/pipeweave/pipeweave/internal/pipeline"
	"github.com/pipeweave/pipeweave/internal/scheduler"
	"github.com/pipeweave/pipeweave/internal/schema"
)

type scheduleOptions struct {
	appLabel    string
	saveJournal bool
	values      valuesFlags
}

func newScheduleCmd(app *AppContext, root *rootFlags) *cobra.Command {
	opts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule <definition>",
		Short: "Run a pipeline definition repeatedly per its schedule block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, app, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.appLabel, "app-label", "pipeweave", "label used for journal file names")
	cmd.Flags().BoolVar(&opts.saveJournal, "save-journal", true, "persist each run's journal to disk")
	opts.values.register(cmd)

	return cmd
}

func runSchedule(cmd *cobra.Command, app *AppContext, root *rootFlags, opts *scheduleOptions, path string) error {
	ctx, logger := app.CommandContext(cmd, "schedule")

	values, err := opts.values.resolve()
	if err != nil {
		return err
	}

	doc, err := definition.Load(path, values)
	if err != nil {
		return err
	}
	if doc.Schedule == nil {
		return fmt.Errorf("schedule: definition %s has no schedule block", path)
	}

	name := pipelineName(path)

	schedOpts, err := buildSchedulerOptions(doc.Schedule)
	if err != nil {
		return err
	}

	if root.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "pipeline %q would run every %s (dry run, not scheduling)\n", name, schedOpts.Frequency)
		return nil
	}

	p, err := pipeline.New(name, opts.appLabel, opts.saveJournal, doc, logger)
	if err != nil {
		return err
	}

	runID := logging.NewRunID()
	ctx = logging.WithRunID(ctx, runID)

	s := scheduler.New(name, p, schedOpts, logger)
	logger.Info(ctx, "starting scheduler", "pipeline", name, "frequency", schedOpts.Frequency.String())

	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("scheduler for %q stopped: %w", name, err)
	}

	counts := s.Counts()
	logger.Info(ctx, "scheduler stopped", "pipeline", name, "passed", counts.Passed, "failed", counts.Failed, "missed", counts.Missed)
	fmt.Fprintf(cmd.OutOrStdout(), "scheduler stopped: passed=%d failed=%d missed=%d\n", counts.Passed, counts.Failed, counts.Missed)
	return nil
}

func buildSchedulerOptions(sched *definition.Schedule) (scheduler.Options, error) {
	seconds, err := schema.CoerceDurationSeconds(sched.Frequency)
	if err != nil {
		return scheduler.Options{}, fmt.Errorf("schedule: invalid frequency %q: %w", sched.Frequency, err)
	}

	opts := scheduler.Options{
		Frequency:     time.Duration(seconds.(int)) * time.Second,
		Samples:       sched.Samples,
		StopOnFailure: sched.StopOnFailure,
	}

	if sched.Start != nil {
		start := time.Unix(*sched.Start, 0)
		opts.Start = &start
	}

	return opts, nil
}
