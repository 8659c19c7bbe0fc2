// Package nav implements relative keyboard navigation for the code browser.
//
// A key press is resolved fresh on every event: the reviewer's position is
// derived from the current location, a ring computes the adjacent target, and
// a single request is emitted to the state store. Nothing is cached between
// presses.
package nav

// Intent is a navigation action independent of the key that produced it.
type Intent string

const (
	IntentPreviousFile    Intent = "previous-file"
	IntentNextFile        Intent = "next-file"
	IntentPreviousDiff    Intent = "previous-diff"
	IntentNextDiff        Intent = "next-diff"
	IntentPreviousMessage Intent = "previous-message"
	IntentNextMessage     Intent = "next-message"
	IntentExpandTree      Intent = "expand-tree"
	IntentCollapseTree    Intent = "collapse-tree"
	IntentToggleSidePanel Intent = "toggle-side-panel"
)

// Direction selects which neighbour a ring resolves.
type Direction int

const (
	Previous Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Next {
		return "next"
	}
	return "previous"
}

// Direction returns the ring direction of a relative intent.
// Structural intents report ok=false.
func (i Intent) Direction() (Direction, bool) {
	switch i {
	case IntentPreviousFile, IntentPreviousDiff, IntentPreviousMessage:
		return Previous, true
	case IntentNextFile, IntentNextDiff, IntentNextMessage:
		return Next, true
	default:
		return 0, false
	}
}
