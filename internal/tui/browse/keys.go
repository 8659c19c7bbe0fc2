package browse

import (
	"unicode"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/codeview/internal/core/nav"
)

// keyEvent converts a terminal key press into the event fired on the key
// surface. Printable keys use their character; an upper-case letter counts as
// shift-qualified even when the terminal does not report the modifier.
func keyEvent(msg tea.KeyPressMsg) *nav.KeyEvent {
	k := tea.Key(msg)

	evt := &nav.KeyEvent{
		Alt:   k.Mod.Contains(tea.ModAlt),
		Ctrl:  k.Mod.Contains(tea.ModCtrl),
		Meta:  k.Mod.Contains(tea.ModMeta) || k.Mod.Contains(tea.ModSuper),
		Shift: k.Mod.Contains(tea.ModShift),
	}

	if unicode.IsPrint(k.Code) {
		evt.Key = string(k.Code)
		if unicode.IsUpper(k.Code) {
			evt.Shift = true
		}
	} else {
		evt.Key = msg.String()
	}
	return evt
}
