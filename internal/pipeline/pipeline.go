// Package pipeline implements the Pipeline (C5): wiring the three stages in
// order, owning the shared data bundle, and emitting the journal for one
// run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pipeweave/pipeweave/internal/bundle"
	"github.com/pipeweave/pipeweave/internal/definition"
	"github.com/pipeweave/pipeweave/internal/host"
	"github.com/pipeweave/pipeweave/internal/journal"
	"github.com/pipeweave/pipeweave/internal/logging"
	"github.com/pipeweave/pipeweave/internal/metrics"
	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/stage"
	pwerrors "github.com/pipeweave/pipeweave/pkg/errors"
)

// Pipeline wires sources, aggregators and sinks built from a definition
// document and owns the bundle that flows between them.
type Pipeline struct {
	name        string
	appLabel    string
	save        bool
	logger      logging.Logger
	sources     []boundSource
	aggregators []boundAggregator
	sinks       []boundSink
	executed    int
}

type boundSource struct {
	builtComponent
	impl plugin.Source
}

type boundAggregator struct {
	builtComponent
	impl plugin.Aggregator
}

type boundSink struct {
	builtComponent
	impl plugin.Sink
}

// New constructs a Pipeline from a parsed and validated definition document.
func New(name, appLabel string, saveJournal bool, doc *definition.Document, logger logging.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.NoOp()
	}

	p := &Pipeline{name: name, appLabel: appLabel, save: saveJournal, logger: logger}

	for i, desc := range doc.Sources {
		impl, err := registry.NewSource(desc.Type)
		if err != nil {
			return nil, err
		}
		built, err := buildComponent(p.logger, i, desc, impl.DeclareConfig)
		if err != nil {
			return nil, err
		}
		p.sources = append(p.sources, boundSource{builtComponent: built, impl: impl})
	}

	for i, desc := range doc.Aggregators {
		impl, err := registry.NewAggregator(desc.Type)
		if err != nil {
			return nil, err
		}
		built, err := buildComponent(p.logger, i, desc, impl.DeclareConfig)
		if err != nil {
			return nil, err
		}
		p.aggregators = append(p.aggregators, boundAggregator{builtComponent: built, impl: impl})
	}

	for i, desc := range doc.Sinks {
		impl, err := registry.NewSink(desc.Type)
		if err != nil {
			return nil, err
		}
		built, err := buildComponent(p.logger, i, desc, impl.DeclareConfig)
		if err != nil {
			return nil, err
		}
		p.sinks = append(p.sinks, boundSink{builtComponent: built, impl: impl})
	}

	return p, nil
}

// Run executes one pass of sources, aggregators then sinks, returning the
// resulting journal. If configured, the journal is also persisted to disk.
func (p *Pipeline) Run(ctx context.Context) (*journal.Journal, error) {
	p.executed++
	j := journal.New()
	started := time.Now()

	outcome := "passed"
	defer func() {
		metrics.RunsTotal.WithLabelValues(p.name, outcome).Inc()
		metrics.RunDuration.WithLabelValues(p.name).Observe(time.Since(started).Seconds())
	}()

	data, err := p.runSources(ctx, j)
	if err != nil {
		outcome = "failed"
		return j, err
	}

	data, err = p.runAggregators(ctx, data, j)
	if err != nil {
		outcome = "failed"
		return j, err
	}

	if err := p.runSinks(ctx, data, j); err != nil {
		outcome = "failed"
		return j, err
	}

	if p.save {
		path, err := journal.Save(j, p.appLabel)
		if err != nil {
			p.logger.Warn(ctx, "failed to save journal", "error", err)
		} else {
			p.logger.Info(ctx, "journal saved", "path", path)
		}
	}

	return j, nil
}

func (p *Pipeline) runSources(ctx context.Context, j *journal.Journal) (bundle.Bundle, error) {
	components := make([]stage.Component, len(p.sources))
	declaredOrder := make([]string, len(p.sources))
	for i, src := range p.sources {
		src := src
		body := func(ctx context.Context) (any, error) {
			data, err := src.impl.Collect(ctx, src.Config)
			if err != nil {
				return nil, err
			}
			if len(data) == 0 {
				return nil, pwerrors.NewSourceProducedInvalidError(src.ID)
			}
			return data, nil
		}
		components[i] = stage.Component{
			Host:     host.New(src.ID, src.Optional, src.Timeout, body),
			Index:    src.Index,
			ID:       src.ID,
			Type:     src.Type,
			Optional: src.Optional,
		}
		declaredOrder[i] = src.ID
	}

	acc := map[string]any{}
	mutate := func(acc any, c stage.Component, data any) any {
		m := acc.(map[string]any)
		m[c.ID] = data
		return m
	}

	runner := stage.Runner{Kind: "sources", Parallel: true}
	result, err := runner.Run(ctx, components, acc, mutate, j)
	if err != nil {
		return bundle.Bundle{}, err
	}

	b := bundle.New()
	for key, value := range result.(map[string]any) {
		b.Set(key, value)
	}
	return b.Reorder(declaredOrder), nil
}

func (p *Pipeline) runAggregators(ctx context.Context, data bundle.Bundle, j *journal.Journal) (bundle.Bundle, error) {
	if len(p.aggregators) == 0 {
		return data, nil
	}

	components := make([]stage.Component, len(p.aggregators))
	for i, agg := range p.aggregators {
		agg := agg
		body := func(ctx context.Context) (any, error) {
			return agg.impl.Accumulate(ctx, agg.Config, data)
		}
		components[i] = stage.Component{
			Host:     host.New(agg.ID, agg.Optional, agg.Timeout, body),
			Index:    agg.Index,
			ID:       agg.ID,
			Type:     agg.Type,
			Optional: agg.Optional,
		}
	}

	mutate := func(acc any, c stage.Component, result any) any {
		if b, ok := result.(bundle.Bundle); ok {
			data = b
		}
		return data
	}

	runner := stage.Runner{Kind: "aggregators", Parallel: false}
	_, err := runner.Run(ctx, components, data, mutate, j)
	if err != nil {
		return data, err
	}
	return data, nil
}

func (p *Pipeline) runSinks(ctx context.Context, data bundle.Bundle, j *journal.Journal) error {
	components := make([]stage.Component, len(p.sinks))
	for i, sink := range p.sinks {
		sink := sink
		sinkBundle, err := data.Clone()
		if err != nil {
			return fmt.Errorf("pipeline: clone bundle for sink %q: %w", sink.ID, err)
		}
		body := func(ctx context.Context) (any, error) {
			if err := sink.impl.Distribute(ctx, sink.Config, sinkBundle); err != nil {
				return nil, err
			}
			return struct{}{}, nil
		}
		components[i] = stage.Component{
			Host:     host.New(sink.ID, sink.Optional, sink.Timeout, body),
			Index:    sink.Index,
			ID:       sink.ID,
			Type:     sink.Type,
			Optional: sink.Optional,
		}
	}

	mutate := func(acc any, c stage.Component, result any) any { return acc }

	runner := stage.Runner{Kind: "sinks", Parallel: true}
	_, err := runner.Run(ctx, components, nil, mutate, j)
	return err
}
