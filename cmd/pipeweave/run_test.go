package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunExecutesPipelineAndWritesArchive(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "out.json")
	doc := writeDefinition(t, `
sources:
  - type: timestamp
    id: now
    config:
      epoch: true
sinks:
  - type: archive
    id: archive
    config:
      output: "`+output+`"
`)

	out, err := execCommand(t, "run", doc, "--save-journal=false")
	require.NoError(t, err)
	require.Contains(t, out, "")

	raw, err := os.ReadFile(output)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Contains(t, decoded, "now")

	entry, ok := decoded["now"].(map[string]any)
	require.True(t, ok)
	require.Len(t, entry, 1)
	require.Contains(t, entry, "epoch")
}

func TestRunDryRunPrintsPlanWithoutExecuting(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "out.json")
	doc := writeDefinition(t, `
sources:
  - type: timestamp
    id: now
sinks:
  - type: archive
    id: archive
    config:
      output: "`+output+`"
`)

	out, err := execCommand(t, "--dry-run", "run", doc)
	require.NoError(t, err)
	require.Contains(t, out, "dry run")
	require.Contains(t, out, "now (timestamp)")
	require.Contains(t, out, "archive (archive)")

	_, statErr := os.Stat(output)
	require.True(t, os.IsNotExist(statErr), "dry run must not execute the pipeline")
}

func TestRunFailsOnMissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := execCommand(t, "run", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
