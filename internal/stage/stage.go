// Package stage implements the Stage Executor: runs a list of component
// hosts for one pipeline stage under a parallel or serial policy, folding
// each host's result into an accumulator and appending journal entries.
package stage

import (
	"context"
	"sort"

	"github.com/pipeweave/pipeweave/internal/host"
	"github.com/pipeweave/pipeweave/internal/journal"
	"github.com/pipeweave/pipeweave/internal/metrics"
	pwerrors "github.com/pipeweave/pipeweave/pkg/errors"
)

// Component pairs a Host with the static facts the executor needs about it
// that the Host itself doesn't track.
type Component struct {
	Host     *host.Host
	Index    int
	ID       string
	Type     string
	Optional bool
}

// Mutator folds a host's successful result into the accumulator.
type Mutator func(acc any, component Component, data any) any

// Runner runs one stage of components.
type Runner struct {
	Kind     string // "sources", "aggregators" or "sinks"
	Parallel bool
}

// Run executes components against acc using mutate to fold results,
// appending outcomes to j under r.Kind. On a fatal (non-optional) failure,
// every remaining host in the schedule is stopped and the error is
// returned wrapped in a StageAbortedError.
func (r Runner) Run(ctx context.Context, components []Component, acc any, mutate Mutator, j *journal.Journal) (any, error) {
	if len(components) == 0 {
		return acc, nil
	}

	schedule := make([]Component, len(components))
	copy(schedule, components)

	if r.Parallel {
		for _, c := range schedule {
			c.Host.Start(ctx)
		}
		sort.SliceStable(schedule, func(i, k int) bool {
			return host.Less(schedule[i].Host, schedule[k].Host)
		})
	}

	for i, c := range schedule {
		if !r.Parallel {
			c.Host.Start(ctx)
		}

		info, err := c.Host.Join()
		entry := journal.Entry{
			Index:     c.Index,
			ID:        c.ID,
			Kind:      r.Kind,
			ProcessID: info.ProcessID,
			Status:    info.Status,
			ExitCode:  info.ExitCode,
		}
		if info.Duration != nil {
			seconds := info.Duration.Seconds()
			entry.DurationSec = &seconds
			metrics.ComponentDuration.WithLabelValues(r.Kind, c.Type).Observe(seconds)
		}
		metrics.ComponentExecutionsTotal.WithLabelValues(r.Kind, c.Type, info.Status).Inc()

		if err != nil {
			j.Append(r.Kind, entry)

			if c.Optional {
				continue
			}

			for _, remaining := range schedule[i+1:] {
				remaining.Host.Stop()
			}
			return acc, pwerrors.NewStageAbortedError(r.Kind, err)
		}

		j.Append(r.Kind, entry)
		acc = mutate(acc, c, info.Data)
	}

	return acc, nil
}
