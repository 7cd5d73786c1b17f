// Package errors defines the error taxonomy shared by the config validator,
// plugin registry, component host, and stage executor.
package errors

import (
	"fmt"
	"strings"
)

// MissingOptionsError is raised when a component's config omits mandatory
// options declared by its Configurator.
type MissingOptionsError struct {
	Component string
	Keys      []string
}

func NewMissingOptionsError(component string, keys []string) error {
	return &MissingOptionsError{Component: component, Keys: keys}
}

func (e *MissingOptionsError) Error() string {
	return fmt.Sprintf(
		"component %q is missing mandatory configuration options %s\nHint: supply the listed keys in the component's config block",
		e.Component, strings.Join(e.Keys, ", "),
	)
}

// UnknownOptionsError is raised when a component's config contains keys that
// were never declared.
type UnknownOptionsError struct {
	Component string
	Keys      []string
}

func NewUnknownOptionsError(component string, keys []string) error {
	return &UnknownOptionsError{Component: component, Keys: keys}
}

func (e *UnknownOptionsError) Error() string {
	return fmt.Sprintf(
		"component %q has unknown configuration options %s\nHint: remove the listed keys or check for a typo against the plugin's declared options",
		e.Component, strings.Join(e.Keys, ", "),
	)
}

// InvalidConfigOptionError is raised when a declared option's value fails its
// schema.
type InvalidConfigOptionError struct {
	Component string
	Key       string
	Value     string
	Reason    string
}

func NewInvalidConfigOptionError(component, key, value, reason string) error {
	return &InvalidConfigOptionError{Component: component, Key: key, Value: value, Reason: reason}
}

func (e *InvalidConfigOptionError) Error() string {
	return fmt.Sprintf(
		"component %q has invalid configuration option %s = %s: %s\nHint: check the option's schema (type, range, or allowed values)",
		e.Component, e.Key, e.Value, e.Reason,
	)
}

// UnknownComponentTypeError is raised when a descriptor names a type with no
// registered factory.
type UnknownComponentTypeError struct {
	Kind string
	Type string
}

func NewUnknownComponentTypeError(kind, typ string) error {
	return &UnknownComponentTypeError{Kind: kind, Type: typ}
}

func (e *UnknownComponentTypeError) Error() string {
	return fmt.Sprintf(
		"unknown %s type %q\nHint: register a factory for this type before building the pipeline, or check for a typo",
		e.Kind, e.Type,
	)
}

// SourceProducedInvalidError is raised when a source returns an empty or
// non-mapping value.
type SourceProducedInvalidError struct {
	SourceID string
}

func NewSourceProducedInvalidError(sourceID string) error {
	return &SourceProducedInvalidError{SourceID: sourceID}
}

func (e *SourceProducedInvalidError) Error() string {
	return fmt.Sprintf(
		"source %q produced an empty or non-mapping result\nHint: sources must return a non-empty map[string]any",
		e.SourceID,
	)
}

// CrashError wraps a component execution that crashed (panicked) or was
// killed without producing a result.
type CrashError struct {
	ComponentID string
	Status      string // "crashed" or "killed"
	Cause       error
}

func NewCrashError(componentID, status string, cause error) error {
	return &CrashError{ComponentID: componentID, Status: status, Cause: cause}
}

func (e *CrashError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf(
			"component %q %s: %v\nHint: mark this component optional if occasional failures are acceptable",
			e.ComponentID, e.Status, e.Cause,
		)
	}
	return fmt.Sprintf(
		"component %q %s\nHint: mark this component optional if occasional failures are acceptable",
		e.ComponentID, e.Status,
	)
}

func (e *CrashError) Unwrap() error { return e.Cause }

// TimeExceededError wraps a component execution that timed out or hanged
// after termination was requested.
type TimeExceededError struct {
	ComponentID string
	Status      string // "timed_out" or "hanged"
}

func NewTimeExceededError(componentID, status string) error {
	return &TimeExceededError{ComponentID: componentID, Status: status}
}

func (e *TimeExceededError) Error() string {
	return fmt.Sprintf(
		"component %q %s\nHint: raise the component's timeout or mark it optional",
		e.ComponentID, e.Status,
	)
}

// StageAbortedError wraps a fatal, non-optional component failure that
// aborted an entire stage.
type StageAbortedError struct {
	Stage string
	Cause error
}

func NewStageAbortedError(stage string, cause error) error {
	return &StageAbortedError{Stage: stage, Cause: cause}
}

func (e *StageAbortedError) Error() string {
	return fmt.Sprintf(
		"%s stage aborted: %v\nHint: every other component of this stage was force-stopped",
		e.Stage, e.Cause,
	)
}

func (e *StageAbortedError) Unwrap() error { return e.Cause }

// SchedulerStopOnFailureError is raised by the scheduler when a run fails
// and StopOnFailure is set.
type SchedulerStopOnFailureError struct {
	Cause error
}

func NewSchedulerStopOnFailureError(cause error) error {
	return &SchedulerStopOnFailureError{Cause: cause}
}

func (e *SchedulerStopOnFailureError) Error() string {
	return fmt.Sprintf(
		"scheduler stopped after a failed run: %v\nHint: set stop_on_failure to false to keep scheduling past failures",
		e.Cause,
	)
}

func (e *SchedulerStopOnFailureError) Unwrap() error { return e.Cause }
