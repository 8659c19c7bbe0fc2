// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	KeyStyle           lipgloss.Style
	DividerStyle       lipgloss.Style
	TextMutedStyle     lipgloss.Style
	TextSuccessStyle   lipgloss.Style
	TextWarningStyle   lipgloss.Style
	TextErrorStyle     lipgloss.Style

	// Panels.
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
	StatusBarStyle    lipgloss.Style
	StatusErrorStyle  lipgloss.Style

	// File tree.
	TreeDirStyle      lipgloss.Style
	TreeFileStyle     lipgloss.Style
	TreeSelectedStyle lipgloss.Style
	TreeCursorStyle   lipgloss.Style

	// Code view.
	LineNumberStyle       lipgloss.Style
	LineNumberActiveStyle lipgloss.Style
	LineAddedStyle        lipgloss.Style
	LineRemovedStyle      lipgloss.Style
	LineFocusedStyle      lipgloss.Style
	HunkHeaderStyle       lipgloss.Style

	// Linter messages.
	MessageErrorStyle   lipgloss.Style
	MessageWarningStyle lipgloss.Style
	MessageNoticeStyle  lipgloss.Style

	// Shortcuts panel.
	ShortcutKeyStyle      lipgloss.Style
	ShortcutDescStyle     lipgloss.Style
	ShortcutDisabledStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	KeyStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	TextWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface)
	PanelFocusedStyle = PanelStyle.BorderForeground(p.Primary)
	PanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Padding(0, 1)

	TreeDirStyle = lipgloss.NewStyle().Foreground(p.Primary)
	TreeFileStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TreeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	TreeCursorStyle = lipgloss.NewStyle().Background(p.Surface)

	LineNumberStyle = lipgloss.NewStyle().Foreground(p.Muted)
	LineNumberActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	LineAddedStyle = lipgloss.NewStyle().Foreground(p.Success)
	LineRemovedStyle = lipgloss.NewStyle().Foreground(p.Error)
	LineFocusedStyle = lipgloss.NewStyle().Background(p.Surface)
	HunkHeaderStyle = lipgloss.NewStyle().Foreground(p.Secondary).Italic(true)

	MessageErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Error)
	MessageWarningStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	MessageNoticeStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)

	ShortcutKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	ShortcutDescStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	ShortcutDisabledStyle = lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true)
}

// MessageStyle returns the marker style for a linter message type.
func MessageStyle(kind string) lipgloss.Style {
	switch kind {
	case "error":
		return MessageErrorStyle
	case "warning":
		return MessageWarningStyle
	default:
		return MessageNoticeStyle
	}
}

func init() {
	SetTheme(themes[DefaultTheme])
}
