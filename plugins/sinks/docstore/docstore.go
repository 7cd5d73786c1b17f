// Package docstore implements a sink that inserts the bundle as a JSONB
// document, via pgx, into a Postgres table, one new row per run carrying the
// pipeline name and run timestamp. Existing rows are never updated.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func tableSchema() *schema.Schema {
	return &schema.Schema{Type: schema.String, Regex: schema.SlugPattern}
}

func init() {
	registry.RegisterSink("docstore", func() plugin.Sink { return &Sink{} })
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

type poolExecer struct{ pool *pgxpool.Pool }

func (p poolExecer) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := p.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Sink inserts the bundle as a JSONB document.
type Sink struct {
	dial func(ctx context.Context, dsn string) (execer, error)
}

// Metadata describes this plugin.
func (s *Sink) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "docstore",
		Kind:        plugin.KindSink,
		Description: "Inserts the bundle as a JSONB document in Postgres",
	}
}

// DeclareConfig declares the "dsn", "table" and "pipeline_name" options.
func (s *Sink) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{Key: "dsn", Secret: true, Schema: &schema.Schema{Type: schema.String}})
	c.Declare(schema.Option{
		Key:      "table",
		Optional: true,
		Default:  "pipeweave_runs",
		Schema:   tableSchema(),
	})
	c.Declare(schema.Option{Key: "pipeline_name", Schema: &schema.Schema{Type: schema.String}})
}

// Distribute inserts the bundle as a new row of the configured table.
func (s *Sink) Distribute(ctx context.Context, cfg schema.Record, data bundle.Bundle) error {
	dial := s.dial
	if dial == nil {
		dial = func(ctx context.Context, dsn string) (execer, error) {
			pool, err := pgxpool.New(ctx, dsn)
			if err != nil {
				return nil, err
			}
			return poolExecer{pool: pool}, nil
		}
	}

	conn, err := dial(ctx, cfg.String("dsn"))
	if err != nil {
		return fmt.Errorf("docstore: connect: %w", err)
	}

	payload, err := json.Marshal(data.Map())
	if err != nil {
		return fmt.Errorf("docstore: marshal bundle: %w", err)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (pipeline_name, ran_at, payload) VALUES ($1, $2, $3)",
		cfg.String("table"),
	)
	if _, err := conn.Exec(ctx, query, cfg.String("pipeline_name"), time.Now().UTC(), payload); err != nil {
		return fmt.Errorf("docstore: insert: %w", err)
	}
	return nil
}
