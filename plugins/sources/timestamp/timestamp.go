// Package timestamp implements a source reporting the current time in one
// or more formats, used to exercise simple, fast-running pipelines in tests
// and examples.
package timestamp

import (
	"context"
	"fmt"
	"time"

	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSource("timestamp", func() plugin.Source { return &Source{} })
}

// Source reports the current time, with each output key gated on its own
// boolean option.
type Source struct{}

// Metadata describes this plugin.
func (s *Source) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "timestamp",
		Kind:        plugin.KindSource,
		Description: "Reports the current time as epoch seconds and/or ISO8601",
	}
}

// DeclareConfig declares the epoch, epochf and iso8601 toggles; at least one
// must be enabled.
func (s *Source) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{
		Key: "epoch", Optional: true, Default: true,
		Schema: &schema.Schema{Type: schema.Boolean},
	})
	c.Declare(schema.Option{
		Key: "epochf", Optional: true, Default: false,
		Schema: &schema.Schema{Type: schema.Boolean},
	})
	c.Declare(schema.Option{
		Key: "iso8601", Optional: true, Default: false,
		Schema: &schema.Schema{Type: schema.Boolean},
	})
	c.AddValidator(func(values map[string]any) error {
		if !values["epoch"].(bool) && !values["epochf"].(bool) && !values["iso8601"].(bool) {
			return fmt.Errorf("timestamp: at least one of epoch, epochf or iso8601 must be enabled")
		}
		return nil
	})
}

// Collect returns the current time in each enabled format.
func (s *Source) Collect(ctx context.Context, cfg schema.Record) (map[string]any, error) {
	now := time.Now()
	entry := map[string]any{}

	if cfg.Bool("epoch") {
		entry["epoch"] = int(now.Unix())
	}
	if cfg.Bool("epochf") {
		entry["epochf"] = float64(now.UnixNano()) / float64(time.Second)
	}
	if cfg.Bool("iso8601") {
		entry["iso8601"] = now.Truncate(time.Second).Format(time.RFC3339)
	}

	return entry, nil
}
