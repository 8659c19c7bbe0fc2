package version

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/codeview/internal/core/config"
	"github.com/colonyops/codeview/internal/core/git"
	"github.com/colonyops/codeview/internal/core/logging"
)

// Loader builds versions from a git repository.
type Loader struct {
	git  git.Git
	tree config.TreeConfig
	log  zerolog.Logger
}

// NewLoader creates a loader that filters trees with cfg.
func NewLoader(g git.Git, cfg config.TreeConfig) *Loader {
	return &Loader{
		git:  g,
		tree: cfg,
		log:  logging.Component("version"),
	}
}

// Load lists the files at ref in dir and returns a version without an ID.
// Ignored paths are dropped and the rest are sorted in tree order.
func (l *Loader) Load(ctx context.Context, dir, ref string) (*Version, error) {
	commit, err := l.git.ResolveRef(ctx, dir, ref)
	if err != nil {
		return nil, err
	}

	paths, err := l.git.ListFiles(ctx, dir, ref)
	if err != nil {
		return nil, err
	}

	kept, err := l.filter(paths)
	if err != nil {
		return nil, err
	}
	SortPaths(kept)

	l.log.Debug().
		Str("ref", ref).
		Str("commit", commit).
		Int("files", len(kept)).
		Int("ignored", len(paths)-len(kept)).
		Msg("version loaded")

	name := filepath.Base(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		name = filepath.Base(abs)
	}

	return &Version{
		Name:        name,
		Ref:         ref,
		Commit:      commit,
		Dir:         dir,
		Paths:       kept,
		DefaultFile: DefaultFile(kept, l.tree.DefaultFile),
	}, nil
}

func (l *Loader) filter(paths []string) ([]string, error) {
	if len(l.tree.Ignore) == 0 {
		return slices.Clone(paths), nil
	}

	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		ignored, err := matchAny(l.tree.Ignore, p)
		if err != nil {
			return nil, err
		}
		if !ignored {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

func matchAny(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("match ignore pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// DefaultFile picks the initial selection: preferred when it is part of the
// tree, else the first path. An empty tree has no default.
func DefaultFile(paths []string, preferred string) string {
	if preferred != "" && slices.Contains(paths, preferred) {
		return preferred
	}
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}
