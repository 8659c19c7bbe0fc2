package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/colonyops/codeview/internal/core/linter"
)

// LintCheck verifies that a linter result file parses.
type LintCheck struct {
	path string
}

// NewLintCheck creates a new linter result check. An empty path passes.
func NewLintCheck(path string) *LintCheck {
	return &LintCheck{path: path}
}

func (c *LintCheck) Name() string {
	return "Linter Results"
}

func (c *LintCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.path == "" {
		result.add("result_file", StatusPass, "none configured")
		return result
	}

	f, err := os.Open(c.path)
	if err != nil {
		result.add(c.path, StatusFail, err.Error())
		return result
	}
	defer func() { _ = f.Close() }()

	res, err := linter.Load(f, c.path)
	if err != nil {
		result.add(c.path, StatusFail, err.Error())
		return result
	}

	counts := res.Counts()
	result.add(c.path, StatusPass, fmt.Sprintf("%d errors, %d warnings, %d notices",
		counts[linter.TypeError], counts[linter.TypeWarning], counts[linter.TypeNotice]))
	if len(res.Global) > 0 {
		result.add("unlocated", StatusWarn, fmt.Sprintf("%d messages have no file or line and are skipped by z/a", len(res.Global)))
	}

	return result
}
