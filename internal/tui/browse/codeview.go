package browse

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/codeview/internal/core/compare"
	"github.com/colonyops/codeview/internal/core/linter"
	"github.com/colonyops/codeview/internal/core/styles"
)

// codeRow is one rendered line of the code view. Anchors lists every anchor
// that scrolls to this row.
type codeRow struct {
	Text    string
	Anchors []string
}

// codeInput is everything needed to lay out one file.
type codeInput struct {
	Path        string
	Content     string
	Diff        *compare.FileDiff // nil outside diff mode or for unchanged files
	DiffMode    bool
	Messages    []linter.Message
	SelectedUID string
}

// buildCodeRows renders the file as numbered rows. In diff mode with a
// changed file the hunks are shown instead of the full content.
func buildCodeRows(in codeInput, hl highlighter) []codeRow {
	byLine := map[int][]linter.Message{}
	for _, m := range in.Messages {
		byLine[m.Line] = append(byLine[m.Line], m)
	}

	if in.Diff != nil {
		return buildDiffRows(in, byLine)
	}

	lines := hl.lines(in.Path, in.Content)
	width := len(strconv.Itoa(len(lines)))
	rows := make([]codeRow, 0, len(lines))

	for i, text := range lines {
		n := i + 1
		row := codeRow{
			Anchors: []string{LineAnchor(in.Path, n, in.DiffMode)},
		}
		row.Text = gutter(n, width, byLine[n], in.SelectedUID) + " " + text
		rows = append(rows, row)
	}
	return rows
}

func buildDiffRows(in codeInput, byLine map[int][]linter.Message) []codeRow {
	var rows []codeRow
	if in.Diff.Binary {
		return []codeRow{{Text: styles.HunkHeaderStyle.Render("Binary file changed")}}
	}

	width := 4
	for hi, hunk := range in.Diff.Hunks {
		if hi > 0 || (len(hunk) > 0 && firstLine(hunk) > 1) {
			rows = append(rows, codeRow{Text: styles.HunkHeaderStyle.Render("⋯")})
		}
		for _, l := range hunk {
			row := codeRow{}
			if l.Anchor != "" {
				row.Anchors = append(row.Anchors, l.Anchor)
			}

			var marker, text string
			switch l.Kind {
			case compare.LineAdded:
				marker, text = "+", styles.LineAddedStyle.Render(l.Text)
			case compare.LineRemoved:
				marker, text = "-", styles.LineRemovedStyle.Render(l.Text)
			default:
				marker, text = " ", l.Text
			}

			if l.NewLine > 0 {
				row.Anchors = append(row.Anchors, LineAnchor(in.Path, l.NewLine, true))
				row.Text = gutter(l.NewLine, width, byLine[l.NewLine], in.SelectedUID)
			} else {
				row.Text = styles.LineNumberStyle.Render(strings.Repeat(" ", width+2))
			}
			row.Text += " " + marker + " " + text
			rows = append(rows, row)
		}
	}
	return rows
}

func firstLine(hunk []compare.Line) int {
	for _, l := range hunk {
		if l.NewLine > 0 {
			return l.NewLine
		}
	}
	return 0
}

// gutter renders the line number column with a marker for linter messages.
func gutter(n, width int, msgs []linter.Message, selectedUID string) string {
	num := fmt.Sprintf("%*d", width, n)
	if len(msgs) == 0 {
		return styles.LineNumberStyle.Render(num) + "  "
	}

	selected := false
	for _, m := range msgs {
		if m.UID == selectedUID {
			selected = true
		}
	}

	marker := styles.MessageStyle(msgs[0].Type).Render(styles.MessageIcon(msgs[0].Type))
	if selected {
		return styles.LineNumberActiveStyle.Render(num) + " " + marker
	}
	return styles.LineNumberStyle.Render(num) + " " + marker
}

// codeView is the scrollable code panel.
type codeView struct {
	viewport viewport.Model
	rows     []codeRow
	anchors  map[string]int
	focused  int // row of the location hash, -1 for none
}

func newCodeView() codeView {
	return codeView{
		viewport: viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
		focused:  -1,
	}
}

func (c *codeView) setSize(width, height int) {
	c.viewport.SetWidth(max(width, 1))
	c.viewport.SetHeight(max(height, 1))
}

func (c *codeView) setRows(rows []codeRow) {
	c.rows = rows
	c.anchors = make(map[string]int, len(rows))
	for i, r := range rows {
		for _, a := range r.Anchors {
			if _, dup := c.anchors[a]; !dup {
				c.anchors[a] = i
			}
		}
	}
	c.render()
}

func (c *codeView) setMessage(text string) {
	c.rows = nil
	c.anchors = nil
	c.focused = -1
	c.viewport.SetContent(text)
	c.viewport.GotoTop()
}

// scrollTo focuses the row of anchor and keeps it in the upper third of the
// panel. A diff line outside every hunk focuses the closest line shown.
// Unknown anchors clear the focus and leave the offset alone.
func (c *codeView) scrollTo(anchor string) bool {
	i, ok := c.anchors[anchor]
	if !ok {
		i, ok = c.nearestDiffLine(anchor)
	}
	if !ok {
		c.focused = -1
		c.render()
		return false
	}
	c.focused = i
	c.render()
	c.viewport.SetYOffset(max(i-c.viewport.Height()/3, 0))
	return true
}

// nearestDiffLine finds the row of the new-side line closest to a diff line
// anchor. Ties go to the earlier line.
func (c *codeView) nearestDiffLine(anchor string) (int, bool) {
	line, ok := parseLineAnchor(anchor, diffLineAnchorPrefix)
	if !ok {
		return 0, false
	}

	best, bestDist := -1, 0
	for i, r := range c.rows {
		for _, a := range r.Anchors {
			n, ok := parseLineAnchor(a, diffLineAnchorPrefix)
			if !ok {
				continue
			}
			if d := max(n-line, line-n); best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	return best, best >= 0
}

func (c *codeView) render() {
	lines := make([]string, len(c.rows))
	for i, r := range c.rows {
		if i == c.focused {
			lines[i] = styles.LineFocusedStyle.Render(r.Text)
			continue
		}
		lines[i] = r.Text
	}
	c.viewport.SetContent(strings.Join(lines, "\n"))
}

func (c *codeView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

func (c *codeView) view() string {
	return c.viewport.View()
}
