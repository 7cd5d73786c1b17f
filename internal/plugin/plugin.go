// Package plugin defines the Source, Aggregator and Sink contracts that
// built-in and external plugins implement, and the metadata every
// component exposes about itself.
package plugin

import (
	"context"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/schema"
)

// Kind identifies which of the three pipeline stages a component belongs to.
type Kind string

const (
	// KindSource identifies a data-producing component.
	KindSource Kind = "source"
	// KindAggregator identifies a bundle-transforming component.
	KindAggregator Kind = "aggregator"
	// KindSink identifies a bundle-consuming, side-effecting component.
	KindSink Kind = "sink"
)

// Metadata describes a registered plugin type, independent of any
// particular instance's configuration.
type Metadata struct {
	Type        string
	Kind        Kind
	Description string
}

// Source produces one bundle entry. It takes no input and must return a
// non-empty map; an empty or nil result is a SourceProducedInvalidError.
type Source interface {
	Metadata() Metadata
	DeclareConfig(c *schema.Configurator)
	Collect(ctx context.Context, cfg schema.Record) (map[string]any, error)
}

// Aggregator transforms the bundle produced by the sources stage.
type Aggregator interface {
	Metadata() Metadata
	DeclareConfig(c *schema.Configurator)
	Accumulate(ctx context.Context, cfg schema.Record, data bundle.Bundle) (bundle.Bundle, error)
}

// Sink consumes a private copy of the bundle to produce side effects. Its
// return value, if any, is discarded by the stage executor.
type Sink interface {
	Metadata() Metadata
	DeclareConfig(c *schema.Configurator)
	Distribute(ctx context.Context, cfg schema.Record, data bundle.Bundle) error
}

// SourceFactory constructs a fresh Source instance for one component
// descriptor. Plugins register a factory, not an instance, so every
// pipeline run gets its own component state.
type SourceFactory func() Source

// AggregatorFactory constructs a fresh Aggregator instance.
type AggregatorFactory func() Aggregator

// SinkFactory constructs a fresh Sink instance.
type SinkFactory func() Sink
