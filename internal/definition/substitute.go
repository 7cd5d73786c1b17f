package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"
)

var placeholderPattern = regexp.MustCompile(`\{(env|pipeline|git)\.([A-Za-z_][A-Za-z0-9_]*)\}`)

// Substitute replaces {env.NAME}, {pipeline.{dir|ext|file|name}} and
// {git.{root|branch|rev}} placeholders in raw with their resolved values,
// the way the teacher's repo plugin resolves a working tree's git state,
// repurposed here as a text substitution pass over the definition document
// before it is parsed.
func Substitute(raw, definitionPath string, values map[string]string) (string, error) {
	var substituteErr error

	result := placeholderPattern.ReplaceAllStringFunc(raw, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		namespace, key := groups[1], groups[2]

		resolved, err := resolvePlaceholder(namespace, key, definitionPath, values)
		if err != nil {
			if substituteErr == nil {
				substituteErr = err
			}
			return match
		}
		return resolved
	})

	if substituteErr != nil {
		return "", substituteErr
	}
	return result, nil
}

func resolvePlaceholder(namespace, key, definitionPath string, values map[string]string) (string, error) {
	switch namespace {
	case "env":
		if !SlugPatternForEnv(key) {
			return "", fmt.Errorf("environment variable name %q does not match the slug pattern", key)
		}
		if v, ok := values[key]; ok {
			return v, nil
		}
		return os.Getenv(key), nil

	case "pipeline":
		abs, err := filepath.Abs(definitionPath)
		if err != nil {
			return "", err
		}
		switch key {
		case "dir":
			return filepath.Dir(abs), nil
		case "file":
			return filepath.Base(abs), nil
		case "name":
			return strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)), nil
		case "ext":
			return strings.TrimPrefix(filepath.Ext(abs), "."), nil
		default:
			return "", fmt.Errorf("unknown pipeline placeholder %q", key)
		}

	case "git":
		return resolveGitPlaceholder(key, definitionPath)

	default:
		return "", fmt.Errorf("unknown placeholder namespace %q", namespace)
	}
}

func resolveGitPlaceholder(key, definitionPath string) (string, error) {
	dir := filepath.Dir(definitionPath)
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("resolve git.%s: %w", key, err)
	}

	switch key {
	case "root":
		worktree, err := repo.Worktree()
		if err != nil {
			return "", err
		}
		return worktree.Filesystem.Root(), nil

	case "rev":
		head, err := repo.Head()
		if err != nil {
			return "", err
		}
		return head.Hash().String(), nil

	case "branch":
		head, err := repo.Head()
		if err != nil {
			return "", err
		}
		if !head.Name().IsBranch() {
			return "", fmt.Errorf("HEAD is detached, no branch name available")
		}
		return head.Name().Short(), nil

	default:
		return "", fmt.Errorf("unknown git placeholder %q", key)
	}
}

// SlugPatternForEnv reports whether name is a valid slug, the constraint
// the spec places on which environment variables substitution may expose.
func SlugPatternForEnv(name string) bool {
	return slugPattern.MatchString(name)
}
