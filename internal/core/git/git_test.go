package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeview/pkg/executil"
)

func TestExecutor_ListFiles(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git ls-tree": []byte("manifest.json\x00lib/a b.js\x00lib/main.js\x00"),
		},
	}

	paths, err := NewExecutor("git", rec).ListFiles(context.Background(), "/repo", "v1.0")
	require.NoError(t, err)

	assert.Equal(t, []string{"manifest.json", "lib/a b.js", "lib/main.js"}, paths)
	require.Len(t, rec.Commands, 1)
	assert.Equal(t, []string{"ls-tree", "-r", "--name-only", "-z", "v1.0"}, rec.Commands[0].Args)
}

func TestExecutor_ListFiles_Empty(t *testing.T) {
	rec := &executil.RecordingExecutor{}

	paths, err := NewExecutor("git", rec).ListFiles(context.Background(), "/repo", "HEAD")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestExecutor_ListFiles_EmptyRef(t *testing.T) {
	_, err := NewExecutor("git", &executil.RecordingExecutor{}).ListFiles(context.Background(), "/repo", "")
	assert.ErrorIs(t, err, ErrEmptyRef)
}

func TestExecutor_ShowFile(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git show": []byte("{}\n")},
	}

	out, err := NewExecutor("/usr/bin/git", rec).ShowFile(context.Background(), "/repo", "HEAD", "manifest.json")
	require.NoError(t, err)

	assert.Equal(t, "{}\n", string(out))
	assert.Equal(t, "/usr/bin/git", rec.Commands[0].Cmd)
	assert.Equal(t, []string{"show", "HEAD:manifest.json"}, rec.Commands[0].Args)
}

func TestExecutor_ShowFile_Error(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Errors: map[string]error{"git show": errors.New("path does not exist")},
	}

	_, err := NewExecutor("git", rec).ShowFile(context.Background(), "/repo", "HEAD", "gone.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "show gone.js at HEAD")
}

func TestExecutor_ResolveRef(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git rev-parse": []byte("abc1234\n")},
	}

	sha, err := NewExecutor("git", rec).ResolveRef(context.Background(), "/repo", "v1.0")
	require.NoError(t, err)

	assert.Equal(t, "abc1234", sha)
	assert.Equal(t, []string{"rev-parse", "--short", "v1.0^{commit}"}, rec.Commands[0].Args)
}
