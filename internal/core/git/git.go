// Package git provides an abstraction for the read-only git operations the
// browser needs to load a version.
package git

import "context"

// Git defines git operations needed by codeview.
type Git interface {
	// ListFiles returns every file path tracked at ref, in git's order.
	ListFiles(ctx context.Context, dir, ref string) ([]string, error)
	// ShowFile returns the content of path at ref.
	ShowFile(ctx context.Context, dir, ref, path string) ([]byte, error)
	// GetDiff returns the unified diff between two refs.
	GetDiff(ctx context.Context, dir string, opts DiffOptions) (string, error)
	// ResolveRef returns the short commit SHA ref points at.
	ResolveRef(ctx context.Context, dir, ref string) (string, error)
}
