// Package template implements a sink that renders the bundle through a
// text/template template enriched with Masterminds/sprig helper functions.
package template

import (
	"context"
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSink("template", func() plugin.Sink { return &Sink{} })
}

// Sink renders the bundle through a user-supplied template.
type Sink struct{}

// Metadata describes this plugin.
func (s *Sink) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "template",
		Kind:        plugin.KindSink,
		Description: "Renders the bundle through a text/template template",
	}
}

// DeclareConfig declares the "template" and "output" options.
func (s *Sink) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{Key: "template", Schema: &schema.Schema{Type: schema.String}})
	c.Declare(schema.Option{Key: "output", Schema: &schema.Schema{Type: schema.String}})
}

// Distribute renders the configured template with the bundle as its data
// context and writes the result to the configured output file.
func (s *Sink) Distribute(ctx context.Context, cfg schema.Record, data bundle.Bundle) error {
	tmplSource, err := os.ReadFile(cfg.String("template"))
	if err != nil {
		return fmt.Errorf("template: read template: %w", err)
	}

	tmpl, err := template.New("sink").Funcs(sprig.TxtFuncMap()).Parse(string(tmplSource))
	if err != nil {
		return fmt.Errorf("template: parse template: %w", err)
	}

	out, err := os.Create(cfg.String("output"))
	if err != nil {
		return fmt.Errorf("template: create output: %w", err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data.Map()); err != nil {
		return fmt.Errorf("template: execute: %w", err)
	}
	return nil
}
