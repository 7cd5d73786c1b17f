package journal

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendRoutesByStage(t *testing.T) {
	t.Parallel()

	j := New()
	j.Append("sources", Entry{ID: "g", Status: "succeeded"})
	j.Append("sinks", Entry{ID: "out", Status: "succeeded"})

	require.Len(t, j.Sources, 1)
	require.Len(t, j.Sinks, 1)
	require.Empty(t, j.Aggregators)
}

func TestSaveWritesPrettyJSON(t *testing.T) {
	j := New()
	j.Append("sources", Entry{ID: "g", Status: "succeeded"})

	path, err := Save(j, "pipeweave-test")
	require.NoError(t, err)
	defer os.Remove(path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Journal
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "g", decoded.Sources[0].ID)
	require.Contains(t, string(raw), "\n  ")
}
