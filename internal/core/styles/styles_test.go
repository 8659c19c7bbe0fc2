package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsNonDecreasing(t, names)
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)
	assert.Equal(t, p.Primary, ColorPrimary)
	assert.Equal(t, p, CurrentPalette)
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, "#c0caf5", *cfg.Document.Color)
	require.NotNil(t, cfg.Link.Color)
	assert.Equal(t, "#7dcfff", *cfg.Link.Color)
}

func TestIsLight(t *testing.T) {
	assert.True(t, isLight(themes["solarized-light"].Background))
	assert.False(t, isLight(themes[DefaultTheme].Background))
	assert.False(t, isLight(nil))
}

func TestFileIcon(t *testing.T) {
	assert.Equal(t, IconFileJS, FileIcon("lib/background.js"))
	assert.Equal(t, IconFileJSON, FileIcon("manifest.JSON"))
	assert.Equal(t, IconFileDefault, FileIcon("LICENSE"))
}

func TestMessageIcon(t *testing.T) {
	assert.Equal(t, IconError, MessageIcon("error"))
	assert.Equal(t, IconWarning, MessageIcon("warning"))
	assert.Equal(t, IconNotice, MessageIcon("notice"))
}
