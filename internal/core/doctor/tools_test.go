package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubLookPath(t *testing.T, missing ...string) {
	t.Helper()
	orig := lookPathFunc
	t.Cleanup(func() { lookPathFunc = orig })

	lookPathFunc = func(file string) (string, error) {
		for _, m := range missing {
			if file == m {
				return "", &exec.Error{Name: file, Err: fmt.Errorf("not found")}
			}
		}
		return "/usr/bin/" + file, nil
	}
}

func TestToolsCheck_AllPresent(t *testing.T) {
	stubLookPath(t)

	result := NewToolsCheck("git", "addons-linter --output json .").Run(context.Background())

	assert.Equal(t, "Tools", result.Name)
	require.Len(t, result.Items, 2)

	assert.Equal(t, "git", result.Items[0].Label)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "/usr/bin/git", result.Items[0].Detail)

	assert.Equal(t, "addons-linter", result.Items[1].Label)
	assert.Equal(t, StatusPass, result.Items[1].Status)
}

func TestToolsCheck_GitMissing(t *testing.T) {
	stubLookPath(t, "git")

	result := NewToolsCheck("", "").Run(context.Background())

	require.Len(t, result.Items, 1, "no linter command configured")
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, "git", result.Items[0].Label)
}

func TestToolsCheck_LinterMissing(t *testing.T) {
	stubLookPath(t, "addons-linter")

	result := NewToolsCheck("git", "addons-linter .").Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
	assert.Contains(t, result.Items[1].Detail, "not found on PATH")
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Items: []CheckItem{{Status: StatusPass}, {Status: StatusWarn}}},
		{Items: []CheckItem{{Status: StatusFail}, {Status: StatusPass}}},
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
}
