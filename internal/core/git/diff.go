package git

import (
	"context"
	"fmt"
)

// DiffMode specifies how the two refs of a comparison are combined.
type DiffMode int

const (
	// DiffRefs compares the two refs directly.
	DiffRefs DiffMode = iota
	// DiffMergeBase compares ref against its merge base with base.
	DiffMergeBase
)

// DiffOptions specifies options for retrieving a git diff.
type DiffOptions struct {
	Mode DiffMode
	Base string // the version being compared against
	Ref  string // the version being browsed
}

// GetDiff retrieves the unified diff described by opts.
func (e *Executor) GetDiff(ctx context.Context, dir string, opts DiffOptions) (string, error) {
	if opts.Base == "" || opts.Ref == "" {
		return "", fmt.Errorf("diff: %w", ErrEmptyRef)
	}

	var args []string

	switch opts.Mode {
	case DiffRefs:
		args = []string{"diff", "--no-color", "--no-ext-diff", opts.Base, opts.Ref}
	case DiffMergeBase:
		args = []string{"diff", "--no-color", "--no-ext-diff", opts.Base + "..." + opts.Ref}
	default:
		return "", fmt.Errorf("unknown diff mode: %d", opts.Mode)
	}

	out, err := e.exec.RunDir(ctx, dir, e.gitPath, args...)
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}

	return string(out), nil
}

// DescribeDiff returns a human-readable description of the comparison.
func DescribeDiff(opts DiffOptions) string {
	switch opts.Mode {
	case DiffRefs:
		return fmt.Sprintf("%s compared to %s", opts.Ref, opts.Base)
	case DiffMergeBase:
		return fmt.Sprintf("%s since %s", opts.Ref, opts.Base)
	default:
		return "unknown"
	}
}
