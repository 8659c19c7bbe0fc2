package browse

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/codeview/internal/core/linter"
	"github.com/colonyops/codeview/internal/core/styles"
)

// messageDetail shows the selected linter message with its markdown
// description.
type messageDetail struct {
	uid      string
	viewport viewport.Model
	width    int
}

func newMessageDetail() messageDetail {
	return messageDetail{
		viewport: viewport.New(viewport.WithWidth(40), viewport.WithHeight(8)),
	}
}

func (d *messageDetail) setSize(width, height int) {
	resized := width != d.width
	d.width = width
	d.viewport.SetWidth(max(width, 1))
	d.viewport.SetHeight(max(height, 1))
	if resized {
		d.uid = ""
	}
}

// show renders msg unless it is already displayed.
func (d *messageDetail) show(msg linter.Message) {
	if msg.UID == d.uid {
		return
	}
	d.uid = msg.UID

	header := fmt.Sprintf("%s %s",
		styles.MessageStyle(msg.Type).Render(styles.MessageIcon(msg.Type)+" "+strings.ToUpper(msg.Type)),
		styles.KeyStyle.Render(msg.Code),
	)
	location := styles.DividerStyle.Render(fmt.Sprintf("%s:%d", msg.File, msg.Line))
	if !msg.Located() {
		location = styles.DividerStyle.Render("applies to the whole version")
	}

	body := renderMarkdown(msg.Message, string(msg.Description), d.width)
	d.viewport.SetContent(strings.Join([]string{header, location, "", body}, "\n"))
	d.viewport.GotoTop()
}

func (d *messageDetail) clear() {
	d.uid = ""
	d.viewport.SetContent("")
}

func (d *messageDetail) active() bool {
	return d.uid != ""
}

func (d *messageDetail) view() string {
	title := styles.PanelTitleStyle.Render("Linter message")
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		title += styles.DividerStyle.Render(fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100))
	}
	return title + "\n" + d.viewport.View()
}

// renderMarkdown renders the message title and description. Rendering errors
// fall back to the raw text.
func renderMarkdown(title, description string, width int) string {
	src := "**" + title + "**"
	if description != "" {
		src += "\n\n" + description
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(width-2, 20)),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return title + "\n\n" + description
	}

	out, err := renderer.Render(src)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return title + "\n\n" + description
	}
	return strings.TrimSpace(out)
}
