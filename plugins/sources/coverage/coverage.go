// Package coverage implements a source parsing a Cobertura-style XML
// coverage report. No coverage-report parsing library appears anywhere in
// the example pack, so this uses stdlib encoding/xml directly.
package coverage

import (
	"context"
	"encoding/xml"
	"os"

	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSource("coverage", func() plugin.Source { return &Source{} })
}

type coberturaReport struct {
	XMLName      xml.Name `xml:"coverage"`
	LineRate     float64  `xml:"line-rate,attr"`
	BranchRate   float64  `xml:"branch-rate,attr"`
	LinesValid   int      `xml:"lines-valid,attr"`
	LinesCovered int      `xml:"lines-covered,attr"`
}

// Source parses a Cobertura XML coverage report.
type Source struct{}

// Metadata describes this plugin.
func (s *Source) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "coverage",
		Kind:        plugin.KindSource,
		Description: "Parses a Cobertura-style XML coverage report",
	}
}

// DeclareConfig declares the "file" option: the path to the report.
func (s *Source) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{Key: "file", Schema: &schema.Schema{Type: schema.String}})
}

// Collect parses the configured coverage report.
func (s *Source) Collect(ctx context.Context, cfg schema.Record) (map[string]any, error) {
	data, err := os.ReadFile(cfg.String("file"))
	if err != nil {
		return nil, err
	}

	var report coberturaReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	return map[string]any{
		"line_rate":     report.LineRate,
		"branch_rate":   report.BranchRate,
		"lines_valid":   report.LinesValid,
		"lines_covered": report.LinesCovered,
	}, nil
}
