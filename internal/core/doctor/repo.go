package doctor

import (
	"context"
	"fmt"

	"github.com/colonyops/codeview/internal/core/version"
)

// RepoCheck verifies that the ref resolves in the repository and that its
// tree has browsable files after ignore patterns apply.
type RepoCheck struct {
	loader *version.Loader
	dir    string
	ref    string
}

// NewRepoCheck creates a new repository check.
func NewRepoCheck(loader *version.Loader, dir, ref string) *RepoCheck {
	return &RepoCheck{loader: loader, dir: dir, ref: ref}
}

func (c *RepoCheck) Name() string {
	return "Repository"
}

func (c *RepoCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	v, err := c.loader.Load(ctx, c.dir, c.ref)
	if err != nil {
		result.add(c.ref, StatusFail, err.Error())
		return result
	}

	result.add(c.ref, StatusPass, fmt.Sprintf("%s at %s", v.Name, v.Commit))
	if len(v.Paths) == 0 {
		result.add("files", StatusWarn, "no files left after ignore patterns")
		return result
	}
	result.add("files", StatusPass, fmt.Sprintf("%d files, opens %s", len(v.Paths), v.DefaultFile))

	return result
}
