// Package dashboard implements a sink that renders the finished bundle as a
// bubbletea table. In interactive mode it runs the full program and waits
// for the operator to dismiss it; otherwise it prints a single static frame,
// which is what a scheduled or CI run wants.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSink("dashboard", func() plugin.Sink { return &Sink{} })
}

// Sink renders the bundle to a terminal dashboard.
type Sink struct {
	out    io.Writer
	runTea func(m model) error
}

// Metadata describes this plugin.
func (s *Sink) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "dashboard",
		Kind:        plugin.KindSink,
		Description: "Renders the bundle as a terminal dashboard",
	}
}

// DeclareConfig declares the "title" and "interactive" options.
func (s *Sink) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{
		Key:      "title",
		Optional: true,
		Default:  "Pipeline Results",
		Schema:   &schema.Schema{Type: schema.String},
	})
	c.Declare(schema.Option{
		Key:      "interactive",
		Optional: true,
		Default:  false,
		Schema:   &schema.Schema{Type: schema.Boolean},
	})
}

// Distribute renders the bundle, either as a single static frame or, when
// interactive is set, as a running program the operator dismisses with q.
func (s *Sink) Distribute(ctx context.Context, cfg schema.Record, data bundle.Bundle) error {
	m := newModel(cfg.String("title"), data.Map())

	if cfg.Bool("interactive") {
		run := s.runTea
		if run == nil {
			run = func(m model) error {
				_, err := tea.NewProgram(m).Run()
				return err
			}
		}
		return run(m)
	}

	out := s.out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintln(out, m.View())
	return err
}
