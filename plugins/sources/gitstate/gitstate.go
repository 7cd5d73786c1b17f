// Package gitstate implements a source reporting the current git working
// tree's root, branch, revision and dirty status, the same go-git
// technique the teacher's repo plugin uses to inspect a working tree.
package gitstate

import (
	"context"

	git "github.com/go-git/go-git/v5"

	"github.com/pipeweave/pipeweave/internal/plugin"
	"github.com/pipeweave/pipeweave/internal/registry"
	"github.com/pipeweave/pipeweave/internal/schema"
)

func init() {
	registry.RegisterSource("gitstate", func() plugin.Source { return &Source{} })
}

// Source reports the VCS state of a configured working tree.
type Source struct{}

// Metadata describes this plugin.
func (s *Source) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Type:        "gitstate",
		Kind:        plugin.KindSource,
		Description: "Reports the root, branch, revision and dirty state of a git working tree",
	}
}

// DeclareConfig declares the "path" option: the working tree to inspect.
func (s *Source) DeclareConfig(c *schema.Configurator) {
	c.Declare(schema.Option{
		Key:      "path",
		Default:  ".",
		Optional: true,
		Schema:   &schema.Schema{Type: schema.String},
	})
}

// Collect reports the working tree's git state.
func (s *Source) Collect(ctx context.Context, cfg schema.Record) (map[string]any, error) {
	path := cfg.String("path")
	if path == "" {
		path = "."
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"root":  worktree.Filesystem.Root(),
		"rev":   head.Hash().String(),
		"dirty": !status.IsClean(),
	}
	if head.Name().IsBranch() {
		result["branch"] = head.Name().Short()
	}
	return result, nil
}
