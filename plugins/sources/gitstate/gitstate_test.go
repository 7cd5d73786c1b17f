package gitstate

import (
	"context"
	"testing"

	"github.com/pipeweave/pipeweave/internal/schema"
	"github.com/stretchr/testify/require"
)

func TestCollectFailsOnNonRepository(t *testing.T) {
	t.Parallel()

	s := &Source{}
	c := schema.NewConfigurator()
	s.DeclareConfig(c)

	record, err := c.Validate("gitstate", map[string]any{"path": t.TempDir()})
	require.NoError(t, err)

	_, err = s.Collect(context.Background(), record)
	require.Error(t, err)
}
