package sysmetrics

import (
	"context"
	"testing"

	"github.com/pipeweave/pipeweave/internal/schema"
	"github.com/stretchr/testify/require"
)

func TestMetadataReportsType(t *testing.T) {
	t.Parallel()

	s := &Source{}
	require.Equal(t, "sysmetrics", s.Metadata().Type)
}

func TestDeclareConfigDefaultsPath(t *testing.T) {
	t.Parallel()

	s := &Source{}
	c := schema.NewConfigurator()
	s.DeclareConfig(c)

	record, err := c.Validate("sysmetrics", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "/", record.String("path"))
}
