package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pipeweave/pipeweave/internal/appconfig"
	"github.com/pipeweave/pipeweave/internal/logging"
)

func newTestApp() *AppContext {
	return &AppContext{
		Settings: &appconfig.Settings{LogLevel: "error"},
		Logger:   logging.NoOp(),
	}
}

func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newTestApp()
	cmd := newRootCmd(app)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeDefinition(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
