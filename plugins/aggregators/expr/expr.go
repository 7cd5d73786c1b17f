// Package expr implements an aggregator applying a small arithmetic
// mutation ("field op value") to a numeric, dot-addressed bundle field.
package expr

import (
	"context"
	"fmt"
	"strings"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterAggregator("expr", func() plugin.Aggregator { return &Aggregator{} })
}

// Aggregator applies a single arithmetic operation to a numeric field.
type Aggregator struct{}

// Metadata describes this plugin.
func (a *Aggregator) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "expr",
		Kind:        plugin.KindAggregator,
		Description: "Applies an arithmetic mutation to a numeric bundle field",
	}
}

// DeclareConfig declares the "field", "op" and "value" options. "field" is
// a dot-addressed path like "x.n" identifying a bundle key and a key
// within its map value.
func (a *Aggregator) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{Key: "field", Schema: &schema.Schema{Type: schema.String}})
	c.Declare(schema.Option{Key: "op", Schema: &schema.Schema{Type: schema.String, Allowed: []any{"add", "mul"}}})
	c.Declare(schema.Option{Key: "value", Schema: &schema.Schema{Type: schema.Float}})
}

// Accumulate applies the configured operation to the addressed field.
func (a *Aggregator) Accumulate(ctx context.Context, cfg schema.Record, data bundle.Bundle) (bundle.Bundle, error) {
	field := cfg.String("field")
	op := cfg.String("op")
	value := toFloat(cfg.Get("value"))

	bundleKey, nested, err := splitField(field)
	if err != nil {
		return data, err
	}

	raw, ok := data.Get(bundleKey)
	if !ok {
		return data, fmt.Errorf("expr: bundle has no key %q", bundleKey)
	}

	asMap, ok := raw.(map[string]any)
	if !ok {
		return data, fmt.Errorf("expr: bundle key %q is not a map", bundleKey)
	}

	current := toFloat(asMap[nested])
	switch op {
	case "add":
		asMap[nested] = current + value
	case "mul":
		asMap[nested] = current * value
	default:
		return data, fmt.Errorf("expr: unknown operator %q", op)
	}

	data.Set(bundleKey, asMap)
	return data, nil
}

func splitField(field string) (bundleKey, nested string, err error) {
	before, after, ok := strings.Cut(field, ".")
	if !ok {
		return "", "", fmt.Errorf("expr: field %q must be of the form key.subkey", field)
	}
	return before, after, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
