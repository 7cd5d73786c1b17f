// Package scheduler implements the Scheduler (C6): repeated pipeline runs
// on a fixed frequency, with missed-tick catch-up, sample limits, and an
// optional absolute start time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/pipeweave/pipeweave/internal/journal"
	"github.com/pipeweave/pipeweave/internal/logging"
	"github.com/pipeweave/pipeweave/internal/metrics"
	pwerrors "github.com/pipeweave/pipeweave/pkg/errors"
)

// Runnable is the subset of Pipeline the scheduler drives.
type Runnable interface {
	Run(ctx context.Context) (*journal.Journal, error)
}

// Counts reports the scheduler's run totals.
type Counts struct {
	Passed int
	Failed int
	Missed int
}

// Options configures a Scheduler.
type Options struct {
	Frequency     time.Duration
	Samples       *int // nil means run forever
	Start         *time.Time
	StopOnFailure bool
}

// Scheduler drives repeated runs of a Runnable pipeline.
type Scheduler struct {
	pipeline Runnable
	name     string
	opts     Options
	logger   logging.Logger

	lastRun time.Time
	counts  Counts
}

// New creates a Scheduler for pipeline.
func New(name string, pipeline Runnable, opts Options, logger logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Scheduler{pipeline: pipeline, name: name, opts: opts, logger: logger}
}

// Counts returns a snapshot of the scheduler's run totals.
func (s *Scheduler) Counts() Counts {
	return s.counts
}

// Run drives the scheduler until it is done (samples reached), fails
// (stop_on_failure and a run failed), or ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	now := time.Now()

	if s.opts.Start != nil {
		if s.opts.Start.Before(now) {
			return fmt.Errorf("scheduler: invalid start time %s, must be in the future", s.opts.Start)
		}
		if err := sleepUntil(ctx, *s.opts.Start); err != nil {
			return err
		}
		s.lastRun = *s.opts.Start
	} else {
		s.lastRun = now
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if err := s.tickOnce(ctx); err != nil {
			return err
		}

		if s.samplesReached() {
			s.logger.Info(ctx, "scheduler collected requested samples, stopping",
				"pipeline", s.name, "passed", s.counts.Passed, "failed", s.counts.Failed, "missed", s.counts.Missed)
			return nil
		}

		if err := s.waitForNextTick(ctx); err != nil {
			return err
		}
	}
}

func (s *Scheduler) samplesReached() bool {
	return s.opts.Samples != nil && s.counts.Passed >= *s.opts.Samples
}

func (s *Scheduler) tickOnce(ctx context.Context) error {
	_, err := s.pipeline.Run(ctx)
	if err != nil {
		s.counts.Failed++
		metrics.SchedulerTicks.WithLabelValues(s.name, "failed").Inc()
		s.logger.Error(ctx, "pipeline run failed", "pipeline", s.name, "error", err)

		if s.opts.StopOnFailure {
			return pwerrors.NewSchedulerStopOnFailureError(err)
		}
		return nil
	}

	s.counts.Passed++
	metrics.SchedulerTicks.WithLabelValues(s.name, "passed").Inc()
	return nil
}

func (s *Scheduler) waitForNextTick(ctx context.Context) error {
	now := time.Now()
	target := s.lastRun.Add(s.opts.Frequency)

	if !target.After(now) {
		s.counts.Missed++
		metrics.SchedulerMissed.WithLabelValues(s.name).Inc()
		s.logger.Info(ctx, "next run missed, starting immediately", "pipeline", s.name)
		s.lastRun = now
		return nil
	}

	s.logger.Info(ctx, "scheduling next run", "pipeline", s.name, "in", target.Sub(now).String())
	if err := sleepUntil(ctx, target); err != nil {
		return err
	}
	s.lastRun = target
	return nil
}

// sleepUntil blocks until target or ctx is cancelled, whichever comes
// first, returning ctx.Err() if interrupted. This is the signal-interruptible
// sleep the scheduler needs to remain stoppable mid-wait.
func sleepUntil(ctx context.Context, target time.Time) error {
	d := time.Until(target)
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
