package browse

import (
	"context"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeview/internal/core/browse"
	"github.com/colonyops/codeview/internal/core/compare"
	"github.com/colonyops/codeview/internal/core/config"
	"github.com/colonyops/codeview/internal/core/git"
	"github.com/colonyops/codeview/internal/core/linter"
	"github.com/colonyops/codeview/internal/core/nav"
	"github.com/colonyops/codeview/internal/core/version"
	"github.com/colonyops/codeview/pkg/tuitest"
)

type fakeGit struct {
	files map[string]string
	shown []string
}

func (f *fakeGit) ListFiles(context.Context, string, string) ([]string, error) {
	var paths []string
	for p := range f.files {
		paths = append(paths, p)
	}
	return paths, nil
}

func (f *fakeGit) ShowFile(_ context.Context, _, ref, path string) ([]byte, error) {
	f.shown = append(f.shown, ref+":"+path)
	content, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: not found", path)
	}
	return []byte(content), nil
}

func (f *fakeGit) GetDiff(context.Context, string, git.DiffOptions) (string, error) {
	return "", nil
}

func (f *fakeGit) ResolveRef(context.Context, string, string) (string, error) {
	return "abc1234", nil
}

func testVersion() *version.Version {
	return &version.Version{
		Name:        "addon",
		Ref:         "HEAD",
		Commit:      "abc1234",
		Dir:         "/repo",
		Paths:       []string{"lib/a.js", "lib/b.js", "manifest.json"},
		DefaultFile: "manifest.json",
	}
}

func newTestModel(t *testing.T) (Model, *fakeGit) {
	t.Helper()
	return newTestModelWith(t, func(*Options) {})
}

func newTestModelWith(t *testing.T, configure func(*Options)) (Model, *fakeGit) {
	t.Helper()
	cfg := config.DefaultConfig()
	g := &fakeGit{files: map[string]string{
		"lib/a.js":      "var a = 1;\nvar b = 2;\n",
		"lib/b.js":      "b();\n",
		"manifest.json": "{}\n",
	}}

	opts := Options{
		Config: &cfg,
		Dir:    "/repo",
		Ref:    "HEAD",
		Git:    g,
	}
	configure(&opts)

	m := New(opts)
	m, _ = update(t, m, tuitest.WindowSize(120, 40))
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// loaded feeds the version into m and completes the first file fetch.
func loaded(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := update(t, m, versionLoadedMsg{version: testVersion()})
	require.NotNil(t, cmd, "selected file is fetched")
	m, _ = update(t, m, cmd())
	return m
}

func TestModel_WindowTitle(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, "Browse add-on version", m.View().WindowTitle)

	m = loaded(t, m)
	v := m.View()
	assert.Equal(t, "Browse addon: HEAD", v.WindowTitle)
	assert.True(t, v.AltScreen)
}

func TestModel_LoadFetchesSelectedFile(t *testing.T) {
	m, g := newTestModel(t)
	m = loaded(t, m)

	assert.Equal(t, []string{"abc1234:manifest.json"}, g.shown)
	state := m.Store().FileState(m.versionID, "manifest.json")
	assert.Equal(t, browse.FileLoaded, state.Status)
	assert.Equal(t, "{}\n", string(state.Content))
}

func TestModel_BinaryFileShowsPlaceholder(t *testing.T) {
	m, g := newTestModel(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	g.files["icon.png"] = string(png)

	v := testVersion()
	v.Paths = append(v.Paths, "icon.png")
	version.SortPaths(v.Paths)
	v.DefaultFile = "icon.png"

	m, cmd := update(t, m, versionLoadedMsg{version: v})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	view := tuitest.StripANSI(m.code.view())
	assert.Contains(t, view, "Binary file (image/png, 24 B)")
	assert.NotContains(t, view, "PNG")
	assert.Empty(t, m.code.rows)
}

func TestModel_FetchFailureIsNotRetried(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, versionLoadedMsg{version: testVersion()})

	m, cmd := update(t, m, fileLoadedMsg{versionID: m.versionID, path: "manifest.json", err: fmt.Errorf("boom")})
	assert.Nil(t, cmd)
	assert.Equal(t, browse.FileAborted, m.Store().FileState(m.versionID, "manifest.json").Status)
}

func TestModel_FileKeys(t *testing.T) {
	m, g := newTestModel(t)
	m = loaded(t, m)

	m, cmd := update(t, m, tuitest.KeyPress('k'))
	assert.Equal(t, "lib/b.js", m.Store().SelectedPath(m.versionID))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Contains(t, g.shown, "abc1234:lib/b.js")
	assert.True(t, m.Store().IsExpanded(m.versionID, "lib"))

	m, _ = update(t, m, tuitest.KeyPress('j'))
	assert.Equal(t, "manifest.json", m.Store().SelectedPath(m.versionID))

	m, cmd = update(t, m, tuitest.KeyPress('j'))
	assert.Equal(t, "manifest.json", m.Store().SelectedPath(m.versionID), "last file clamps")
	assert.Nil(t, cmd, "loaded files are not fetched again")
}

func TestModel_ModifiedKeysReachPanels(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, tuitest.KeyWithMod('k', tea.ModCtrl))
	assert.Equal(t, "manifest.json", m.Store().SelectedPath(m.versionID))
}

func TestModel_ToggleSidePanel(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)
	m, _ = update(t, m, tuitest.KeyTab())
	require.Equal(t, FocusFileTree, m.focused)

	m, _ = update(t, m, tuitest.KeyPress('h'))
	assert.False(t, m.Store().SidePanelVisible())
	assert.Equal(t, FocusCode, m.focused)

	m, _ = update(t, m, tuitest.KeyPress('h'))
	assert.True(t, m.Store().SidePanelVisible())
}

func TestModel_TreeSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)
	m, _ = update(t, m, tuitest.KeyTab())

	m, _ = update(t, m, tuitest.KeyUp())
	m, _ = update(t, m, tuitest.KeyEnter())
	assert.True(t, m.Store().IsExpanded(m.versionID, "lib"))

	m, _ = update(t, m, tuitest.KeyDown())
	m, cmd := update(t, m, tuitest.KeyEnter())
	assert.Equal(t, "lib/a.js", m.Store().SelectedPath(m.versionID))
	assert.Equal(t, FocusCode, m.focused)
	assert.NotNil(t, cmd)
}

func TestModel_MessageKeysShowDetail(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	result := linter.NewResult([]linter.Message{
		{UID: "m1", Type: linter.TypeError, Code: "NO_VAR", Message: "Avoid var", File: "lib/a.js", Line: 2},
	})
	m, _ = update(t, m, lintLoadedMsg{result: result})

	m, cmd := update(t, m, tuitest.KeyPress('z'))
	loc := m.Store().Location()
	assert.Equal(t, "lib/a.js", loc.Query.Get(nav.QueryPath))
	assert.Equal(t, "m1", loc.Query.Get(nav.QueryMessageUID))
	assert.Equal(t, "#L2", loc.Hash)
	assert.True(t, m.detail.active())

	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 1, m.code.focused)

	m, _ = update(t, m, tuitest.KeyPress('j'))
	assert.False(t, m.detail.active(), "leaving the message clears the detail")
}

const manifestDiff = `diff --git a/manifest.json b/manifest.json
index 1111111..2222222 100644
--- a/manifest.json
+++ b/manifest.json
@@ -1 +1,2 @@
 {}
+{"name": "addon"}
`

func TestModel_MergeBaseComparison(t *testing.T) {
	m, _ := newTestModelWith(t, func(o *Options) {
		o.Compare = "main"
		o.MergeBase = true
	})
	assert.Equal(t, git.DiffOptions{Mode: git.DiffMergeBase, Base: "main", Ref: "HEAD"}, m.diffOptions())

	m = loaded(t, m)
	c, err := compare.Parse("main", "HEAD", manifestDiff)
	require.NoError(t, err)
	m, _ = update(t, m, comparisonLoadedMsg{comparison: c})
	require.True(t, m.diffAvailable())

	m, _ = update(t, m, tuitest.KeyPress('n'))
	assert.Equal(t, "#D1", m.Store().Location().Hash)

	bar := tuitest.StripANSI(m.renderStatusBar())
	assert.Contains(t, bar, "HEAD since main, 1 files changed")
	assert.Contains(t, bar, "change 1/1")
}

func TestModel_UnknownStartPathFallsBackToDefault(t *testing.T) {
	m, g := newTestModelWith(t, func(o *Options) {
		loc, err := nav.ParseLocation("/browse/1/?path=gone.js#L3")
		require.NoError(t, err)
		o.Location = loc
	})
	m = loaded(t, m)

	assert.Equal(t, "manifest.json", m.Store().SelectedPath(m.versionID))
	assert.Empty(t, m.Store().Location().Hash)
	assert.Equal(t, []string{"abc1234:manifest.json"}, g.shown)
	assert.Contains(t, m.errMsg, "gone.js is not part of this version")
}

func TestModel_LastFileKeepsMessageSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	result := linter.NewResult([]linter.Message{
		{UID: "m1", Type: linter.TypeWarning, Message: "Missing key", File: "manifest.json", Line: 1},
	})
	m, _ = update(t, m, lintLoadedMsg{result: result})

	m, _ = update(t, m, tuitest.KeyPress('z'))
	require.Equal(t, "m1", m.Store().Location().Query.Get(nav.QueryMessageUID))

	m, _ = update(t, m, tuitest.KeyPress('j'))
	loc := m.Store().Location()
	assert.Equal(t, "manifest.json", loc.Query.Get(nav.QueryPath))
	assert.Equal(t, "m1", loc.Query.Get(nav.QueryMessageUID))
	assert.Equal(t, "#L1", loc.Hash)
	assert.True(t, m.detail.active())
}

func TestModel_DiffShortcutsDisabledWithoutComparison(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	assert.False(t, m.diffAvailable())
	view := tuitest.StripANSI(m.render())
	assert.Contains(t, view, "Keyboard shortcuts")
}

func TestModel_QuitReleasesNavigator(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, 1, m.surface.ListenerCount())

	m, cmd := update(t, m, tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, 0, m.surface.ListenerCount())
	assert.Error(t, m.ctx.Err())
}
