package browse

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/codeview/internal/core/nav"
	"github.com/colonyops/codeview/internal/core/styles"
)

// shortcutBindings builds the help bindings of the navigation keys. Aliases
// share the binding of their primary key and are not listed on their own.
// Diff keys are disabled when the current file has no comparison.
func shortcutBindings(diffAvailable bool) []key.Binding {
	shortcuts := nav.Shortcuts()
	bindings := make([]key.Binding, 0, len(shortcuts))

	for _, s := range shortcuts {
		keys := append([]string{s.Key}, nav.AliasesOf(s.Key)...)
		b := key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(s.Key, s.Description),
		)
		if nav.IsDiffIntent(s.Intent) {
			b.SetEnabled(diffAvailable)
		}
		bindings = append(bindings, b)
	}
	return bindings
}

// renderShortcuts lists the bindings one per line.
func renderShortcuts(bindings []key.Binding, width int) string {
	lines := []string{styles.PanelTitleStyle.Render("Keyboard shortcuts")}

	for _, b := range bindings {
		h := b.Help()
		keyStyle, descStyle := styles.ShortcutKeyStyle, styles.ShortcutDescStyle
		if !b.Enabled() {
			keyStyle, descStyle = styles.ShortcutDisabledStyle, styles.ShortcutDisabledStyle
		}
		line := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Desc)
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(line))
	}

	return strings.Join(lines, "\n")
}
