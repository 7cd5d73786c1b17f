// Package registry implements the plugin registry: three per-kind
// factory registries populated by each plugin package's init(), mirroring
// the local decorator-registration pattern and precedence rule of the
// teacher's plugin registry, minus the dependency graph machinery this
// pipeline's flat source/aggregator/sink model has no use for.
package registry

import (
	"sort"
	"sync"

	"github.com/pipeweave/pipeweave/internal/plugin"
	pwerrors "github.com/pipeweave/pipeweave/pkg/errors"
)

var (
	mu          sync.RWMutex
	sources     = make(map[string]plugin.SourceFactory)
	aggregators = make(map[string]plugin.AggregatorFactory)
	sinks       = make(map[string]plugin.SinkFactory)
)

// RegisterSource registers a source factory under name. A later call with
// the same name replaces the earlier one, so local registrations always
// take precedence over whatever registered first.
func RegisterSource(name string, factory plugin.SourceFactory) {
	mu.Lock()
	defer mu.Unlock()
	sources[name] = factory
}

// RegisterAggregator registers an aggregator factory under name.
func RegisterAggregator(name string, factory plugin.AggregatorFactory) {
	mu.Lock()
	defer mu.Unlock()
	aggregators[name] = factory
}

// RegisterSink registers a sink factory under name.
func RegisterSink(name string, factory plugin.SinkFactory) {
	mu.Lock()
	defer mu.Unlock()
	sinks[name] = factory
}

// NewSource constructs a fresh Source instance for the registered type name.
func NewSource(name string) (plugin.Source, error) {
	mu.RLock()
	factory, ok := sources[name]
	mu.RUnlock()
	if !ok {
		return nil, pwerrors.NewUnknownComponentTypeError("source", name)
	}
	return factory(), nil
}

// NewAggregator constructs a fresh Aggregator instance for the registered
// type name.
func NewAggregator(name string) (plugin.Aggregator, error) {
	mu.RLock()
	factory, ok := aggregators[name]
	mu.RUnlock()
	if !ok {
		return nil, pwerrors.NewUnknownComponentTypeError("aggregator", name)
	}
	return factory(), nil
}

// NewSink constructs a fresh Sink instance for the registered type name.
func NewSink(name string) (plugin.Sink, error) {
	mu.RLock()
	factory, ok := sinks[name]
	mu.RUnlock()
	if !ok {
		return nil, pwerrors.NewUnknownComponentTypeError("sink", name)
	}
	return factory(), nil
}

// List returns the registered type names for kind, sorted.
func List(kind plugin.Kind) []string {
	mu.RLock()
	defer mu.RUnlock()

	var names []string
	switch kind {
	case plugin.KindSource:
		names = keysOfSource(sources)
	case plugin.KindAggregator:
		names = keysOfAggregator(aggregators)
	case plugin.KindSink:
		names = keysOfSink(sinks)
	}
	sort.Strings(names)
	return names
}

func keysOfSource(m map[string]plugin.SourceFactory) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysOfAggregator(m map[string]plugin.AggregatorFactory) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysOfSink(m map[string]plugin.SinkFactory) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// reset clears all registries; used only by tests to avoid cross-test
// pollution of the package-level registry state.
func reset() {
	sources = make(map[string]plugin.SourceFactory)
	aggregators = make(map[string]plugin.AggregatorFactory)
	sinks = make(map[string]plugin.SinkFactory)
}
