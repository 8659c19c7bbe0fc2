// Package browse is the terminal code browser: a file tree, a code view and a
// side panel with keyboard shortcuts or the selected linter message. All
// navigation keys go through the key surface where the navigator listens.
package browse

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/codeview/internal/core/browse"
	"github.com/colonyops/codeview/internal/core/compare"
	"github.com/colonyops/codeview/internal/core/config"
	"github.com/colonyops/codeview/internal/core/git"
	"github.com/colonyops/codeview/internal/core/linter"
	"github.com/colonyops/codeview/internal/core/logging"
	"github.com/colonyops/codeview/internal/core/nav"
	"github.com/colonyops/codeview/internal/core/styles"
	"github.com/colonyops/codeview/internal/core/version"
	"github.com/colonyops/codeview/pkg/executil"
)

const (
	defaultWindowTitle = "Browse add-on version"
	infoPanelMaxHeight = 14
)

// FocusedPanel represents which panel has keyboard focus.
type FocusedPanel int

const (
	FocusFileTree FocusedPanel = iota
	FocusCode
)

// Options configures the browser.
type Options struct {
	Config   *config.Config
	Dir      string
	Ref      string
	Compare  string // base ref; empty disables diff mode
	Lint     LintSource
	Location nav.Location
	Git      git.Git
	Exec     executil.Executor
	Registry *version.Registry

	// MergeBase compares Ref against its merge base with Compare instead of
	// Compare itself.
	MergeBase bool
}

// pendingChanges collects store changes between two syncs.
type pendingChanges struct {
	location bool
	tree     bool
	content  bool
}

func (p *pendingChanges) record(c browse.Change) {
	switch c.Kind {
	case browse.ChangeLocation, browse.ChangeVersion:
		p.location = true
		p.content = true
	case browse.ChangeTree:
		p.tree = true
	case browse.ChangeSidePanel:
		p.tree = true
		p.content = true
	case browse.ChangeFile, browse.ChangeComparison, browse.ChangeLint:
		p.content = true
	}
}

// Model is the main browser model.
type Model struct {
	opts      Options
	ctx       context.Context
	cancel    context.CancelFunc
	log       zerolog.Logger
	versionID int

	store   *browse.Store
	surface *nav.KeySurface
	release func()
	pending *pendingChanges
	loader  *version.Loader

	tree        *fileTree
	code        *codeView
	detail      *messageDetail
	highlighter highlighter

	focused  FocusedPanel
	width    int
	height   int
	errMsg   string
	quitting bool
}

// New creates the browser and mounts its navigator. The returned model owns
// the navigator until it quits.
func New(opts Options) Model {
	if opts.Registry == nil {
		opts.Registry = version.NewRegistry()
	}
	cfg := opts.Config

	ctx, cancel := context.WithCancel(context.Background())
	versionID := opts.Registry.Reserve()
	store := browse.NewStore(opts.Location, cfg.TUI.SidePanelVisible())
	surface := nav.NewKeySurface()

	navigator := nav.NewNavigator(nav.Deps{
		VersionID:  versionID,
		Tree:       store,
		Compare:    store,
		Messages:   store,
		Location:   store,
		Emitter:    store,
		LineAnchor: LineAnchor,
	})

	log := logging.Version("tui", versionID)
	release, err := navigator.Mount(surface)
	if err != nil {
		log.Error().Err(err).Msg("mount navigator")
		release = func() {}
	}

	pending := &pendingChanges{}
	store.Subscribe(pending.record)

	code := newCodeView()
	detail := newMessageDetail()

	return Model{
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		log:         log,
		versionID:   versionID,
		store:       store,
		surface:     surface,
		release:     release,
		pending:     pending,
		loader:      version.NewLoader(opts.Git, cfg.Tree),
		tree:        &fileTree{icons: cfg.TUI.IconsEnabled()},
		code:        &code,
		detail:      &detail,
		highlighter: newHighlighter(cfg.TUI.HighlightEnabled(), styles.ChromaStyle(cfg.TUI.Theme)),
		focused:     FocusCode,
		width:       80,
		height:      24,
	}
}

// Store exposes the browser state.
func (m Model) Store() *browse.Store {
	return m.store
}

// Init starts loading the version, the comparison and linter results.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadVersionCmd(m.ctx, m.loader, m.opts.Dir, m.opts.Ref)}

	if m.opts.Compare != "" {
		cmds = append(cmds, loadComparisonCmd(m.ctx, m.opts.Git, m.opts.Dir, m.diffOptions()))
	}
	if !m.opts.Lint.empty() {
		cmds = append(cmds, loadLintCmd(m.ctx, m.opts.Exec, m.opts.Dir, m.opts.Lint))
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.pending.content = true
		return m, m.sync()

	case versionLoadedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Could not load version: %v", msg.err)
			m.log.Error().Err(msg.err).Msg("load version")
			return m, nil
		}
		m.opts.Registry.Put(m.versionID, msg.version)
		m.store.LoadVersion(msg.version)
		if p := m.store.Location().Query.Get(nav.QueryPath); p != "" && !msg.version.HasPath(p) {
			m.errMsg = fmt.Sprintf("%s is not part of this version", p)
			m.log.Warn().Str("path", p).Msg("requested path not found")
			m.store.Emit(nav.GoToFile{Path: msg.version.DefaultFile, VersionID: m.versionID})
		}
		return m, m.sync()

	case fileLoadedMsg:
		if msg.err != nil {
			m.store.AbortFetchFile(msg.versionID, msg.path, msg.err)
		} else {
			m.store.LoadFile(msg.versionID, msg.path, msg.content)
		}
		return m, m.sync()

	case comparisonLoadedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Could not load comparison: %v", msg.err)
			m.log.Error().Err(msg.err).Msg("load comparison")
			return m, nil
		}
		m.store.SetComparison(msg.comparison)
		return m, m.sync()

	case lintLoadedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Could not load linter messages: %v", msg.err)
			m.log.Error().Err(msg.err).Msg("load linter result")
			return m, nil
		}
		m.store.SetLintResult(msg.result)
		return m, m.sync()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m.quit()
		}

		if m.surface.Fire(keyEvent(msg)) {
			return m, m.sync()
		}
		return m.handlePanelKey(msg)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.release()
	m.cancel()
	m.quitting = true
	return m, tea.Quit
}

// handlePanelKey handles keys the navigator did not consume.
func (m Model) handlePanelKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focused == FocusCode && m.store.SidePanelVisible() {
			m.focused = FocusFileTree
		} else {
			m.focused = FocusCode
		}
		return m, nil
	case "shift+down":
		m.detail.viewport.ScrollDown(1)
		return m, nil
	case "shift+up":
		m.detail.viewport.ScrollUp(1)
		return m, nil
	}

	if m.focused == FocusFileTree && m.store.SidePanelVisible() {
		return m.handleTreeKey(msg)
	}

	switch msg.String() {
	case "g", "home":
		m.code.viewport.GotoTop()
		return m, nil
	case "G", "shift+g", "end":
		m.code.viewport.GotoBottom()
		return m, nil
	}
	return m, m.code.update(msg)
}

func (m Model) handleTreeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	rows := m.treeRows()

	switch msg.String() {
	case "up":
		m.tree.move(rows, -1)
	case "down":
		m.tree.move(rows, 1)
	case "enter", "space", " ":
		row, ok := m.tree.current(rows)
		if !ok {
			return m, nil
		}
		if row.Dir {
			m.store.ToggleDir(m.versionID, row.Path)
			return m, nil
		}
		m.store.Emit(nav.GoToFile{Path: row.Path, VersionID: m.versionID})
		m.focused = FocusCode
		return m, m.sync()
	}
	return m, nil
}

// sync brings the panels in line with the store and starts fetching the
// selected file when its content is not loaded, loading or aborted.
func (m *Model) sync() tea.Cmd {
	if !m.store.IsTreeLoaded(m.versionID) {
		return nil
	}

	var cmd tea.Cmd
	selected := m.store.SelectedPath(m.versionID)
	if selected != "" && m.store.ShouldFetch(m.versionID, selected) {
		v, _ := m.store.Version(m.versionID)
		ref := v.Commit
		if ref == "" {
			ref = v.Ref
		}
		m.store.BeginFetchFile(m.versionID, selected)
		cmd = fetchFileCmd(m.ctx, m.opts.Git, v.Dir, ref, m.versionID, selected)
	}

	p := *m.pending
	*m.pending = pendingChanges{}

	if !m.store.SidePanelVisible() {
		m.focused = FocusCode
	}
	if p.location || p.tree {
		m.tree.follow(m.treeRows(), selected)
	}
	if p.content || p.location {
		m.refreshCode(selected)
		m.refreshDetail()
	}
	return cmd
}

func (m *Model) refreshCode(path string) {
	if path == "" {
		m.code.setMessage("This version has no files.")
		return
	}

	state := m.store.FileState(m.versionID, path)
	switch state.Status {
	case browse.FileUnloaded, browse.FileLoading:
		m.code.setMessage("Loading " + path + "…")
		return
	case browse.FileAborted:
		m.code.setMessage(styles.StatusErrorStyle.Render(fmt.Sprintf("Could not load %s: %v", path, state.Err)))
		return
	}

	if label, ok := binaryLabel(state.Content); ok {
		m.code.setMessage(styles.TextMutedStyle.Render(label))
		return
	}

	loc := m.store.Location()
	comparison := m.store.Comparison()
	fileDiff, _ := comparison.File(path)

	rows := buildCodeRows(codeInput{
		Path:        path,
		Content:     string(state.Content),
		Diff:        fileDiff,
		DiffMode:    comparison != nil,
		Messages:    m.store.LintResult().ForFile(path),
		SelectedUID: loc.Query.Get(nav.QueryMessageUID),
	}, m.highlighter)

	m.code.setRows(rows)
	if anchor := strings.TrimPrefix(loc.Hash, "#"); anchor != "" {
		m.code.scrollTo(anchor)
	} else {
		m.code.viewport.GotoTop()
	}
}

func (m *Model) refreshDetail() {
	uid := m.store.Location().Query.Get(nav.QueryMessageUID)
	msg, ok := m.store.LintResult().ByUID(uid)
	if !ok {
		m.detail.clear()
		return
	}
	m.detail.show(msg)
}

func (m Model) treeRows() []treeRow {
	return buildTreeRows(m.store.PathList(m.versionID), m.expanded)
}

func (m Model) expanded(dir string) bool {
	return m.store.IsExpanded(m.versionID, dir)
}

// layout sizes the panels for the current window.
func (m *Model) layout() {
	codeWidth, bodyHeight := m.mainSize()
	infoHeight := m.infoHeight(bodyHeight)

	// Panel borders take one cell on every side.
	m.code.setSize(codeWidth-2, bodyHeight-infoHeight-2)
	m.detail.setSize(codeWidth-2, infoHeight-3)
}

func (m Model) mainSize() (width, height int) {
	height = max(m.height-1, 3)
	width = m.width
	if m.store.SidePanelVisible() {
		width -= m.treeWidth()
	}
	return max(width, 10), height
}

func (m Model) treeWidth() int {
	return m.width * m.opts.Config.TUI.TreeWidth / 100
}

func (m Model) infoHeight(bodyHeight int) int {
	return min(infoPanelMaxHeight, max(bodyHeight/3, 5))
}

// WindowTitle names the version once it is loaded.
func (m Model) WindowTitle() string {
	v, ok := m.opts.Registry.Get(m.versionID)
	if !ok {
		return defaultWindowTitle
	}
	return fmt.Sprintf("Browse %s: %s", v.Name, v.Ref)
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	m.layout()

	v := tea.NewView(m.render())
	v.AltScreen = true
	v.WindowTitle = m.WindowTitle()
	return v
}

func (m Model) render() string {
	codeWidth, bodyHeight := m.mainSize()
	infoHeight := m.infoHeight(bodyHeight)

	codeStyle := styles.PanelStyle
	if m.focused == FocusCode || !m.store.SidePanelVisible() {
		codeStyle = styles.PanelFocusedStyle
	}
	codePanel := codeStyle.
		Width(codeWidth).
		Height(bodyHeight - infoHeight).
		Render(m.code.view())

	var info string
	if m.detail.active() {
		info = m.detail.view()
	} else {
		info = renderShortcuts(shortcutBindings(m.diffAvailable()), codeWidth-2)
	}
	infoPanel := styles.PanelStyle.
		Width(codeWidth).
		Height(infoHeight).
		Render(info)

	main := lipgloss.JoinVertical(lipgloss.Left, codePanel, infoPanel)

	body := main
	if m.store.SidePanelVisible() {
		treeStyle := styles.PanelStyle
		if m.focused == FocusFileTree {
			treeStyle = styles.PanelFocusedStyle
		}
		treeWidth := m.treeWidth()
		tree := m.tree.view(
			m.treeRows(),
			m.store.SelectedPath(m.versionID),
			m.expanded,
			treeWidth-2,
			bodyHeight-2,
			m.focused == FocusFileTree,
		)
		treePanel := treeStyle.Width(treeWidth).Height(bodyHeight).Render(tree)
		body = lipgloss.JoinHorizontal(lipgloss.Top, treePanel, main)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// diffAvailable reports whether the selected file has comparison data.
func (m Model) diffAvailable() bool {
	return m.store.CompareInfo(m.versionID, m.store.SelectedPath(m.versionID)) != nil
}

func (m Model) renderStatusBar() string {
	var left string
	if v, ok := m.opts.Registry.Get(m.versionID); ok {
		left = fmt.Sprintf("%s@%s (%s)  %s", v.Name, v.Ref, v.Commit, m.store.SelectedPath(m.versionID))
	} else {
		left = "Loading version…"
	}

	if c := m.store.Comparison(); c != nil {
		left += fmt.Sprintf("  %s, %d files changed", git.DescribeDiff(m.diffOptions()), len(c.Paths()))
		if pos := m.changePosition(); pos != "" {
			left += "  " + pos
		}
	}
	if res := m.store.LintResult(); res != nil {
		left += "  " + lintSummary(res)
	}

	right := "tab focus • ↑/↓ scroll • q quit"
	rightStyle := styles.StatusBarStyle
	if m.errMsg != "" {
		right = m.errMsg
		rightStyle = styles.StatusErrorStyle
	}

	leftView := styles.StatusBarStyle.Render(left)
	rightView := rightStyle.Render(right)
	spacing := max(m.width-lipgloss.Width(leftView)-lipgloss.Width(rightView), 0)

	return leftView + strings.Repeat(" ", spacing) + rightView
}

func (m Model) diffOptions() git.DiffOptions {
	mode := git.DiffRefs
	if m.opts.MergeBase {
		mode = git.DiffMergeBase
	}
	return git.DiffOptions{Mode: mode, Base: m.opts.Compare, Ref: m.opts.Ref}
}

// changePosition reports which change block of the selected file the location
// points at, as "change 2/5".
func (m Model) changePosition() string {
	anchor := strings.TrimPrefix(m.store.Location().Hash, "#")
	if !compare.IsAnchor(anchor) {
		return ""
	}
	info := m.store.CompareInfo(m.versionID, m.store.SelectedPath(m.versionID))
	if info == nil {
		return ""
	}
	i := slices.Index(info.Diff, anchor)
	if i < 0 {
		return ""
	}
	return fmt.Sprintf("change %d/%d", i+1, len(info.Diff))
}

func lintSummary(res *linter.Result) string {
	counts := res.Counts()
	return fmt.Sprintf("%s %d  %s %d  %s %d",
		styles.MessageErrorStyle.Render(styles.IconError), counts[linter.TypeError],
		styles.MessageWarningStyle.Render(styles.IconWarning), counts[linter.TypeWarning],
		styles.MessageNoticeStyle.Render(styles.IconNotice), counts[linter.TypeNotice],
	)
}
