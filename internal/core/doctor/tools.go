package doctor

import (
	"context"
	"os/exec"
	"strings"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that the git binary and the configured linter command
// are available on $PATH.
type ToolsCheck struct {
	gitPath       string
	linterCommand string
}

// NewToolsCheck creates a new tools check. An empty linterCommand skips the
// linter item.
func NewToolsCheck(gitPath, linterCommand string) *ToolsCheck {
	if gitPath == "" {
		gitPath = "git"
	}
	return &ToolsCheck{gitPath: gitPath, linterCommand: linterCommand}
}

func (c *ToolsCheck) Name() string {
	return "Tools"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if path, err := lookPathFunc(c.gitPath); err != nil {
		result.add(c.gitPath, StatusFail, "not found on PATH")
	} else {
		result.add(c.gitPath, StatusPass, path)
	}

	fields := strings.Fields(c.linterCommand)
	if len(fields) == 0 {
		return result
	}

	// The linter is optional; results can still come from a file.
	if path, err := lookPathFunc(fields[0]); err != nil {
		result.add(fields[0], StatusWarn, "linter command not found on PATH")
	} else {
		result.add(fields[0], StatusPass, path)
	}

	return result
}
