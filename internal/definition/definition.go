// Package definition parses and validates the pipeline definition document:
// the JSON or YAML file naming the sources, aggregators, sinks and optional
// schedule that make up one pipeline.
package definition

// ComponentDescriptor names one component instance within a pipeline
// definition: its registered type, its unique id, and its user config.
type ComponentDescriptor struct {
	Type     string         `json:"type" yaml:"type" validate:"required,slug"`
	ID       string         `json:"id" yaml:"id" validate:"required,slug"`
	Optional bool           `json:"optional" yaml:"optional"`
	Timeout  *string        `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Config   map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Schedule configures the optional Scheduler driving repeated runs. A nil
// Schedule on a Document means "run once".
type Schedule struct {
	Frequency     string `json:"frequency" yaml:"frequency" validate:"required"`
	Samples       *int   `json:"samples,omitempty" yaml:"samples,omitempty" validate:"omitempty,min=1"`
	Start         *int64 `json:"start,omitempty" yaml:"start,omitempty" validate:"omitempty,min=0"`
	StopOnFailure bool   `json:"stop_on_failure" yaml:"stop_on_failure"`
}

// Document is the full pipeline definition.
type Document struct {
	Schedule    *Schedule             `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Sources     []ComponentDescriptor `json:"sources" yaml:"sources" validate:"required,min=1,dive"`
	Aggregators []ComponentDescriptor `json:"aggregators" yaml:"aggregators" validate:"dive"`
	Sinks       []ComponentDescriptor `json:"sinks" yaml:"sinks" validate:"required,min=1,dive"`
}
