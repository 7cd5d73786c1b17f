package coverage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pipeweave/pipeweave/internal/schema"
	"github.com/stretchr/testify/require"
)

const sampleReport = `<?xml version="1.0"?>
<coverage line-rate="0.85" branch-rate="0.7" lines-valid="100" lines-covered="85">
</coverage>`

func TestCollectParsesCoberturaReport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "coverage.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o644))

	s := &Source{}
	c := schema.NewConfigurator()
	s.DeclareConfig(c)

	record, err := c.Validate("coverage", map[string]any{"file": path})
	require.NoError(t, err)

	data, err := s.Collect(context.Background(), record)
	require.NoError(t, err)
	require.Equal(t, 0.85, data["line_rate"])
	require.Equal(t, 85, data["lines_covered"])
}
