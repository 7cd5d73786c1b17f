package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPluginsListsRegisteredTypes(t *testing.T) {
	t.Parallel()

	out, err := execCommand(t, "plugins")
	require.NoError(t, err)
	require.Contains(t, out, "sources:")
	require.Contains(t, out, "- timestamp")
	require.Contains(t, out, "aggregators:")
	require.Contains(t, out, "sinks:")
	require.Contains(t, out, "- archive")
}
