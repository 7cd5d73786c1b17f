package env

import (
	"context"
	"testing"

	"github.com/pipeweave/pipeweave/internal/schema"
	"github.com/stretchr/testify/require"
)

func TestCollectReadsDeclaredVariables(t *testing.T) {
	t.Setenv("PIPEWEAVE_ENV_TEST", "value")

	s := &Source{}
	c := schema.NewConfigurator()
	s.DeclareConfig(c)

	record, err := c.Validate("env", map[string]any{"names": []any{"PIPEWEAVE_ENV_TEST"}})
	require.NoError(t, err)

	data, err := s.Collect(context.Background(), record)
	require.NoError(t, err)
	require.Equal(t, "value", data["PIPEWEAVE_ENV_TEST"])
}
