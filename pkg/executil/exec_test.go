package executil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_StderrCappedAtMaxLen(t *testing.T) {
	longStderr := strings.Repeat("A", maxStderrLen*2)
	cmd, args := Sh(fmt.Sprintf("printf '%%s' '%s' >&2; exit 1", longStderr))

	_, err := (&RealExecutor{}).Run(context.Background(), cmd, args...)
	require.Error(t, err)

	assert.Contains(t, err.Error(), strings.Repeat("A", maxStderrLen))
	assert.NotContains(t, err.Error(), strings.Repeat("A", maxStderrLen+1))
}

func TestRealExecutor_PreservesExitError(t *testing.T) {
	cmd, args := Sh("echo 'error message' >&2; exit 2")

	_, err := (&RealExecutor{}).Run(context.Background(), cmd, args...)
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "error message")
}

func TestRealExecutor_StdoutOnly(t *testing.T) {
	cmd, args := Sh("echo out; echo err >&2")

	out, err := (&RealExecutor{}).Run(context.Background(), cmd, args...)
	require.NoError(t, err)
	assert.Equal(t, "out\n", string(out))
}

func TestRealExecutor_Run(t *testing.T) {
	exec := &RealExecutor{}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		out, err := exec.Run(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := exec.Run(ctx, "nonexistent-command-12345")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec nonexistent-command-12345")
	})

	t.Run("command fails", func(t *testing.T) {
		_, err := exec.Run(ctx, "false")
		require.Error(t, err)
	})
}

func TestRealExecutor_RunDir(t *testing.T) {
	exec := &RealExecutor{}
	ctx := context.Background()

	t.Run("runs in specified directory", func(t *testing.T) {
		dir := t.TempDir()
		out, err := exec.RunDir(ctx, dir, "pwd")
		require.NoError(t, err)
		assert.Contains(t, string(out), dir)
	})

	t.Run("invalid directory", func(t *testing.T) {
		_, err := exec.RunDir(ctx, "/nonexistent-dir-12345", "pwd")
		require.Error(t, err)
	})
}

func TestRecordingExecutor(t *testing.T) {
	t.Run("records commands", func(t *testing.T) {
		exec := &RecordingExecutor{}
		ctx := context.Background()

		_, _ = exec.Run(ctx, "git", "ls-tree", "HEAD")
		_, _ = exec.RunDir(ctx, "/tmp/repo", "git", "show", "HEAD:a.js")

		require.Len(t, exec.Commands, 2)
		assert.Equal(t, "git", exec.Commands[0].Cmd)
		assert.Equal(t, []string{"ls-tree", "HEAD"}, exec.Commands[0].Args)
		assert.Empty(t, exec.Commands[0].Dir)
		assert.Equal(t, "/tmp/repo", exec.Commands[1].Dir)
	})

	t.Run("subcommand output wins over command output", func(t *testing.T) {
		exec := &RecordingExecutor{
			Outputs: map[string][]byte{
				"git":      []byte("generic"),
				"git show": []byte("file body"),
			},
		}
		ctx := context.Background()

		out, err := exec.Run(ctx, "git", "show", "HEAD:a.js")
		require.NoError(t, err)
		assert.Equal(t, "file body", string(out))

		out, err = exec.Run(ctx, "git", "status")
		require.NoError(t, err)
		assert.Equal(t, "generic", string(out))
	})

	t.Run("returns configured error", func(t *testing.T) {
		expectedErr := errors.New("command failed")
		exec := &RecordingExecutor{
			Errors: map[string]error{"git diff": expectedErr},
		}

		_, err := exec.Run(context.Background(), "git", "diff", "a", "b")
		assert.ErrorIs(t, err, expectedErr)

		_, err = exec.Run(context.Background(), "git", "status")
		assert.NoError(t, err)
	})

	t.Run("reset clears commands", func(t *testing.T) {
		exec := &RecordingExecutor{}
		_, _ = exec.Run(context.Background(), "git", "status")
		exec.Reset()
		assert.Empty(t, exec.Commands)
	})
}
