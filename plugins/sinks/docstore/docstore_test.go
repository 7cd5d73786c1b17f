package docstore

import (
	"context"
	"testing"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/schema"
	"github.com/stretchr/testify/require"
)

type fakeExecer struct {
	queries []string
}

func (f *fakeExecer) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	f.queries = append(f.queries, sql)
	return 1, nil
}

func TestDistributeInsertsBundleAsDocument(t *testing.T) {
	t.Parallel()

	data := bundle.New()
	data.Set("g", map[string]any{"n": 1})

	fake := &fakeExecer{}
	s := &Sink{dial: func(ctx context.Context, dsn string) (execer, error) { return fake, nil }}

	c := schema.NewConfigurator()
	s.DeclareConfig(c)
	record, err := c.Validate("docstore", map[string]any{
		"dsn":           "postgres://localhost/pipeweave",
		"pipeline_name": "nightly",
	})
	require.NoError(t, err)

	require.NoError(t, s.Distribute(context.Background(), record, data))
	require.Len(t, fake.queries, 1)
}

func TestDeclareConfigRejectsNonSlugTableName(t *testing.T) {
	t.Parallel()

	s := &Sink{}
	c := schema.NewConfigurator()
	s.DeclareConfig(c)

	_, err := c.Validate("docstore", map[string]any{
		"dsn":           "postgres://localhost/pipeweave",
		"pipeline_name": "nightly",
		"table":         "runs; DROP TABLE users;",
	})
	require.Error(t, err)
}
