package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pipeweave/pipeweave/internal/journal"
	"github.com/stretchr/testify/require"
)

type countingPipeline struct {
	calls int
	fail  bool
}

func (p *countingPipeline) Run(ctx context.Context) (*journal.Journal, error) {
	p.calls++
	if p.fail {
		return nil, errors.New("boom")
	}
	return journal.New(), nil
}

func TestSchedulerStopsAtSampleCount(t *testing.T) {
	t.Parallel()

	p := &countingPipeline{}
	samples := 3
	s := New("test", p, Options{Frequency: time.Millisecond, Samples: &samples}, nil)

	err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, p.calls)
	require.Equal(t, 3, s.Counts().Passed)
}

func TestSchedulerStopOnFailure(t *testing.T) {
	t.Parallel()

	p := &countingPipeline{fail: true}
	s := New("test", p, Options{Frequency: time.Millisecond, StopOnFailure: true}, nil)

	err := s.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, s.Counts().Failed)
}

func TestSchedulerContinuesPastFailureWithoutStopOnFailure(t *testing.T) {
	t.Parallel()

	p := &countingPipeline{fail: true}
	samples := 2
	s := New("test", p, Options{Frequency: time.Millisecond, Samples: &samples}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_ = s.Run(ctx)
	require.GreaterOrEqual(t, p.calls, 1)
	require.Equal(t, 0, s.Counts().Passed)
}
