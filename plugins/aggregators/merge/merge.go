// Package merge implements an aggregator that merges a configured set of
// bundle keys into a new key. The top-level fields of each map value are
// copied, later keys overwriting earlier ones; nested maps are not merged
// recursively, and a non-map value is stored under its own key name.
package merge

import (
	"context"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterAggregator("merge", func() plugin.Aggregator { return &Aggregator{} })
}

// Aggregator merges a set of source keys into a new bundle key.
type Aggregator struct{}

// Metadata describes this plugin.
func (a *Aggregator) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "merge",
		Kind:        plugin.KindAggregator,
		Description: "Merges the top-level fields of a configured set of bundle keys into a new key",
	}
}

// DeclareConfig declares the "keys" and "into" options.
func (a *Aggregator) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{
		Key:    "keys",
		Schema: &schema.Schema{Type: schema.List, Elem: &schema.Schema{Type: schema.String}},
	})
	c.Declare(schema.Option{Key: "into", Schema: &schema.Schema{Type: schema.String, Regex: schema.SlugPattern}})
}

// Accumulate merges the configured keys into the "into" key.
func (a *Aggregator) Accumulate(ctx context.Context, cfg schema.Record, data bundle.Bundle) (bundle.Bundle, error) {
	rawKeys, _ := cfg.Get("keys").([]any)
	into := cfg.String("into")

	merged := make(map[string]any)
	for _, rawKey := range rawKeys {
		key, _ := rawKey.(string)
		if value, ok := data.Get(key); ok {
			if asMap, ok := value.(map[string]any); ok {
				for k, v := range asMap {
					merged[k] = v
				}
				continue
			}
			merged[key] = value
		}
	}

	data.Set(into, merged)
	return data, nil
}
