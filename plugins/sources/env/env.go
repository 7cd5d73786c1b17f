// Package env implements a source that collects environment variables
// matching a configured set of names.
package env

import (
	"context"
	"os"

	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSource("env", func() plugin.Source { return &Source{} })
}

// Source collects environment variable values into the bundle.
type Source struct{}

// Metadata describes this plugin.
func (s *Source) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "env",
		Kind:        plugin.KindSource,
		Description: "Collects environment variables matching the slug pattern",
	}
}

// DeclareConfig declares the "names" option: the list of environment
// variable names to collect.
func (s *Source) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{
		Key:    "names",
		Schema: &schema.Schema{Type: schema.List, Elem: &schema.Schema{Type: schema.String, Regex: schema.SlugPattern}},
	})
}

// Collect reads the configured environment variables.
func (s *Source) Collect(ctx context.Context, cfg schema.Record) (map[string]any, error) {
	raw, _ := cfg.Get("names").([]any)

	result := make(map[string]any, len(raw))
	for _, name := range raw {
		key, _ := name.(string)
		if key == "" {
			continue
		}
		result[key] = os.Getenv(key)
	}
	return result, nil
}
