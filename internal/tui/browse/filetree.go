package browse

import (
	"path"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/codeview/internal/core/styles"
)

// treeRow is one visible line of the file tree.
type treeRow struct {
	Path  string
	Name  string
	Depth int
	Dir   bool
}

// buildTreeRows lays out paths, given in tree traversal order, as visible
// rows. Contents of collapsed folders are skipped.
func buildTreeRows(paths []string, expanded func(dir string) bool) []treeRow {
	var rows []treeRow
	emitted := map[string]bool{}

	visible := func(p string) bool {
		for d := path.Dir(p); d != "."; d = path.Dir(d) {
			if !expanded(d) {
				return false
			}
		}
		return true
	}

	for _, p := range paths {
		parts := strings.Split(p, "/")
		for i := 1; i < len(parts); i++ {
			dir := strings.Join(parts[:i], "/")
			if emitted[dir] {
				continue
			}
			emitted[dir] = true
			if visible(dir) {
				rows = append(rows, treeRow{Path: dir, Name: parts[i-1], Depth: i - 1, Dir: true})
			}
		}
		if visible(p) {
			rows = append(rows, treeRow{Path: p, Name: parts[len(parts)-1], Depth: len(parts) - 1})
		}
	}
	return rows
}

// fileTree is the cursor state of the tree panel. Rows are rebuilt from the
// store on every render.
type fileTree struct {
	cursor int
	offset int
	icons  bool
}

// follow moves the cursor onto p when it is visible.
func (t *fileTree) follow(rows []treeRow, p string) {
	for i, r := range rows {
		if r.Path == p {
			t.cursor = i
			return
		}
	}
}

func (t *fileTree) move(rows []treeRow, delta int) {
	t.cursor = max(0, min(t.cursor+delta, len(rows)-1))
}

func (t *fileTree) current(rows []treeRow) (treeRow, bool) {
	if t.cursor < 0 || t.cursor >= len(rows) {
		return treeRow{}, false
	}
	return rows[t.cursor], true
}

func (t *fileTree) view(rows []treeRow, selected string, expanded func(string) bool, width, height int, focused bool) string {
	if height <= 0 {
		return ""
	}

	t.cursor = max(0, min(t.cursor, len(rows)-1))
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+height {
		t.offset = t.cursor - height + 1
	}

	lines := make([]string, 0, height)
	for i := t.offset; i < len(rows) && len(lines) < height; i++ {
		r := rows[i]
		line := strings.Repeat("  ", r.Depth) + t.label(r, expanded)

		style := styles.TreeFileStyle
		switch {
		case r.Dir:
			style = styles.TreeDirStyle
		case r.Path == selected:
			style = styles.TreeSelectedStyle
		}
		if focused && i == t.cursor {
			style = style.Inherit(styles.TreeCursorStyle)
		}
		lines = append(lines, style.Width(width).MaxWidth(width).Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (t *fileTree) label(r treeRow, expanded func(string) bool) string {
	if !t.icons {
		if r.Dir {
			if expanded(r.Path) {
				return "▾ " + r.Name
			}
			return "▸ " + r.Name
		}
		return "  " + r.Name
	}

	if r.Dir {
		if expanded(r.Path) {
			return styles.IconFolderOpen + " " + r.Name
		}
		return styles.IconFolderClosed + " " + r.Name
	}
	return styles.FileIcon(r.Name) + r.Name
}
