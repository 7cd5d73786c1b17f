package stage

import (
	"context"
	"errors"
	"testing"

	"github.com/pipeweave/pipeweave/internal/host"
	"github.com/pipeweave/pipeweave/internal/journal"
	"github.com/stretchr/testify/require"
)

func newComponent(id string, index int, optional bool, body host.Body) Component {
	return Component{
		Host:     host.New(id, optional, nil, body),
		Index:    index,
		ID:       id,
		Optional: optional,
	}
}

func TestRunnerAccumulatesSuccessfulSources(t *testing.T) {
	t.Parallel()

	good := newComponent("g", 0, false, func(ctx context.Context) (any, error) {
		return map[string]any{"n": 1}, nil
	})

	acc := map[string]any{}
	mutate := func(acc any, c Component, data any) any {
		m := acc.(map[string]any)
		m[c.ID] = data
		return m
	}

	runner := Runner{Kind: "sources", Parallel: true}
	result, err := runner.Run(context.Background(), []Component{good}, acc, mutate, journal.New())
	require.NoError(t, err)
	require.Equal(t, map[string]any{"g": map[string]any{"n": 1}}, result)
}

func TestRunnerOptionalFailureContinues(t *testing.T) {
	t.Parallel()

	good := newComponent("g", 0, false, func(ctx context.Context) (any, error) {
		return map[string]any{"n": 1}, nil
	})
	bad := newComponent("b", 1, true, func(ctx context.Context) (any, error) {
		return nil, errors.New("boom")
	})

	acc := map[string]any{}
	mutate := func(acc any, c Component, data any) any {
		m := acc.(map[string]any)
		m[c.ID] = data
		return m
	}

	j := journal.New()
	runner := Runner{Kind: "sources", Parallel: true}
	result, err := runner.Run(context.Background(), []Component{good, bad}, acc, mutate, j)
	require.NoError(t, err)

	m := result.(map[string]any)
	require.Contains(t, m, "g")
	require.NotContains(t, m, "b")
	require.Len(t, j.Sources, 2)
}

func TestRunnerFatalFailureAbortsStage(t *testing.T) {
	t.Parallel()

	bad := newComponent("b", 0, false, func(ctx context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	never := newComponent("n", 1, false, func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	j := journal.New()
	runner := Runner{Kind: "sources", Parallel: false}
	mutate := func(acc any, c Component, data any) any { return acc }

	_, err := runner.Run(context.Background(), []Component{bad, never}, map[string]any{}, mutate, j)
	require.Error(t, err)
}

func TestRunnerSkipsEmptyAggregatorStage(t *testing.T) {
	t.Parallel()

	j := journal.New()
	runner := Runner{Kind: "aggregators", Parallel: false}
	mutate := func(acc any, c Component, data any) any { return acc }

	acc, err := runner.Run(context.Background(), nil, "bundle", mutate, j)
	require.NoError(t, err)
	require.Equal(t, "bundle", acc)
	require.Empty(t, j.Aggregators)
}
