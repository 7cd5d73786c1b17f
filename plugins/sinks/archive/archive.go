// Package archive implements a sink that writes the bundle to a JSON file.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSink("archive", func() plugin.Sink { return &Sink{} })
}

// Sink writes the bundle to a JSON file.
type Sink struct{}

// Metadata describes this plugin.
func (s *Sink) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "archive",
		Kind:        plugin.KindSink,
		Description: "Writes the bundle to a JSON file",
	}
}

// DeclareConfig declares the "output" and "override" options.
func (s *Sink) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{Key: "output", Schema: &schema.Schema{Type: schema.String}})
	c.Declare(schema.Option{
		Key:      "override",
		Optional: true,
		Default:  false,
		Schema:   &schema.Schema{Type: schema.Boolean},
	})
}

// Distribute writes the bundle to the configured output file.
func (s *Sink) Distribute(ctx context.Context, cfg schema.Record, data bundle.Bundle) error {
	output := cfg.String("output")

	if !cfg.Bool("override") {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("archive: %s already exists and override is false", output)
		}
	}

	payload, err := json.MarshalIndent(data.Map(), "", "  ")
	if err != nil {
		return fmt.Errorf("archive: marshal bundle: %w", err)
	}

	if err := os.WriteFile(output, payload, 0o644); err != nil {
		return fmt.Errorf("archive: write %s: %w", output, err)
	}
	return nil
}
