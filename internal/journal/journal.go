// Package journal records, per pipeline run, the execution outcome of every
// component and persists it as pretty-printed JSON.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Entry is one component's execution record within a journal.
type Entry struct {
	Index       int        `json:"index"`
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	ProcessID   int        `json:"process_id"`
	Status      string     `json:"status"`
	ExitCode    *int       `json:"exit_code,omitempty"`
	DurationSec *float64   `json:"duration_seconds,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
}

// Journal is the append-only record of one pipeline run.
type Journal struct {
	Sources     []Entry `json:"sources"`
	Aggregators []Entry `json:"aggregators"`
	Sinks       []Entry `json:"sinks"`
}

// New returns an empty Journal.
func New() *Journal {
	return &Journal{}
}

// Append adds entry to the named stage's entry list ("sources",
// "aggregators" or "sinks").
func (j *Journal) Append(stage string, entry Entry) {
	switch stage {
	case "sources":
		j.Sources = append(j.Sources, entry)
	case "aggregators":
		j.Aggregators = append(j.Aggregators, entry)
	case "sinks":
		j.Sinks = append(j.Sinks, entry)
	}
}

// Save pretty-prints the journal to a file under
// {tmp}/<appLabel>-journals/journal-<pid>-<uuid>.json and returns its path.
func Save(j *Journal, appLabel string) (string, error) {
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("%s-journals", appLabel))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("journal: create directory: %w", err)
	}

	name := fmt.Sprintf("journal-%d-%s.json", os.Getpid(), uuid.NewString())
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return "", fmt.Errorf("journal: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("journal: write %s: %w", path, err)
	}
	return path, nil
}
