package logging

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerWithAddsFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Writer: &buf, Level: "debug"})
	require.NoError(t, err)

	child := log.With("component", "host")
	child.Info(context.Background(), "started", "id", "ts")

	require.Contains(t, buf.String(), "component=host")
	require.Contains(t, buf.String(), "id=ts")
}

func TestLoggerIncludesRunID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Writer: &buf, Level: "debug"})
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), "abc-123")
	log.Info(ctx, "running")

	require.Contains(t, buf.String(), "run_id=abc-123")
}

func TestNewRunIDIsUnique(t *testing.T) {
	t.Parallel()

	a := NewRunID()
	b := NewRunID()
	require.NotEqual(t, a, b)
}

func TestRotatingWriterWritesToConfiguredFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/pipeweave.log"
	w := RotatingWriter(path, 1, 1, 1)

	n, err := w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.Equal(t, 6, n)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(contents))
}
