package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/colonyops/codeview/pkg/executil"
)

// ErrEmptyRef is returned when a ref argument is blank.
var ErrEmptyRef = errors.New("ref cannot be empty")

// Executor implements Git using the git command-line tool.
type Executor struct {
	gitPath string
	exec    executil.Executor
}

var _ Git = (*Executor)(nil)

// NewExecutor creates a new git executor with the specified git binary path.
func NewExecutor(gitPath string, exec executil.Executor) *Executor {
	return &Executor{gitPath: gitPath, exec: exec}
}

func (e *Executor) ListFiles(ctx context.Context, dir, ref string) ([]string, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}

	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "ls-tree", "-r", "--name-only", "-z", ref)
	if err != nil {
		return nil, fmt.Errorf("list files at %s: %w", ref, err)
	}

	return splitNul(out), nil
}

func (e *Executor) ShowFile(ctx context.Context, dir, ref, path string) ([]byte, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}

	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "show", ref+":"+path)
	if err != nil {
		return nil, fmt.Errorf("show %s at %s: %w", path, ref, err)
	}
	return out, nil
}

func (e *Executor) ResolveRef(ctx context.Context, dir, ref string) (string, error) {
	if ref == "" {
		return "", ErrEmptyRef
	}

	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "rev-parse", "--short", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", ref, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// splitNul splits NUL-terminated output, dropping the trailing empty entry.
func splitNul(out []byte) []string {
	out = bytes.TrimRight(out, "\x00")
	if len(out) == 0 {
		return nil
	}

	parts := bytes.Split(out, []byte{0})
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		paths = append(paths, string(p))
	}
	return paths
}
