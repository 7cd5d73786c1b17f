package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempDefinition(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValidDefinition(t *testing.T) {
	path := writeTempDefinition(t, `{
		"sources": [{"type": "env", "id": "e"}],
		"sinks": [{"type": "archive", "id": "a"}]
	}`)

	doc, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, doc.Sources, 1)
	require.Len(t, doc.Sinks, 1)
	require.Empty(t, doc.Aggregators)
}

func TestLoadRejectsMissingSources(t *testing.T) {
	path := writeTempDefinition(t, `{
		"sources": [],
		"sinks": [{"type": "archive", "id": "a"}]
	}`)

	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestLoadRejectsInvalidSlug(t *testing.T) {
	path := writeTempDefinition(t, `{
		"sources": [{"type": "env", "id": "1bad"}],
		"sinks": [{"type": "archive", "id": "a"}]
	}`)

	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestSubstituteEnvPlaceholder(t *testing.T) {
	t.Setenv("PIPEWEAVE_TEST_VAR", "hello")

	result, err := Substitute(`{"token": "{env.PIPEWEAVE_TEST_VAR}"}`, "/tmp/pipeline.json", nil)
	require.NoError(t, err)
	require.Contains(t, result, "hello")
}

func TestSubstitutePipelinePlaceholders(t *testing.T) {
	result, err := Substitute(`{"name": "{pipeline.name}"}`, "/tmp/myapp.json", nil)
	require.NoError(t, err)
	require.Contains(t, result, "myapp")
}

func TestMergeValuesFlagsWinOverFiles(t *testing.T) {
	merged := MergeValues(
		[]map[string]string{{"a": "file"}},
		map[string]string{"a": "flag"},
	)
	require.Equal(t, "flag", merged["a"])
}
