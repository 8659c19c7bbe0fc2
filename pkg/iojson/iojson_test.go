package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]int{"errors": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"errors\": 2\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalError(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)})
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"json_error"`)
}

func TestFileReader_OpenFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "lint.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"messages":[]}`), 0o644))

	fr := &FileReader{fileFlagValue: p}
	rc, name, err := fr.Open()
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	assert.Equal(t, p, name)
}

func TestFileReader_OpenMissing(t *testing.T) {
	fr := &FileReader{fileFlagValue: filepath.Join(t.TempDir(), "missing.json")}

	_, _, err := fr.Open()
	assert.Error(t, err)
}
