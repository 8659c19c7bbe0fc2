package nav

import (
	"maps"
	"slices"
)

// Message is the part of a linter finding the message ring navigates by.
type Message struct {
	UID  string
	Path string
	Line int
}

// MessageMap indexes messages by path, then by line. Messages sharing a line
// keep their stored order.
type MessageMap map[string]map[int][]Message

// Add appends msg under its path and line.
func (m MessageMap) Add(msg Message) {
	lines, ok := m[msg.Path]
	if !ok {
		lines = make(map[int][]Message)
		m[msg.Path] = lines
	}
	lines[msg.Line] = append(lines[msg.Line], msg)
}

// FlattenMessages orders every message reachable from pathList: files in list
// order, lines ascending, stored order within a line.
func FlattenMessages(pathList []string, messages MessageMap) []Message {
	var out []Message
	for _, path := range pathList {
		lines := messages[path]
		for _, line := range slices.Sorted(maps.Keys(lines)) {
			out = append(out, lines[line]...)
		}
	}
	return out
}

// MessageRing moves to the previous or next linter message across all files.
// Without a current message, or with one that no longer exists, next lands on
// the first message and previous on the last. Navigation clamps at both ends.
func MessageRing(ctx RingContext, pos Position, dir Direction) (Target, error) {
	flat := FlattenMessages(ctx.PathList, ctx.Messages)
	if len(flat) == 0 {
		return Target{}, ErrInapplicable
	}

	idx := -1
	if pos.MessageUID != "" {
		idx = slices.IndexFunc(flat, func(m Message) bool { return m.UID == pos.MessageUID })
	}

	var target Message
	switch {
	case idx < 0 && dir == Next:
		target = flat[0]
	case idx < 0:
		target = flat[len(flat)-1]
	case dir == Next:
		target = flat[min(idx+1, len(flat)-1)]
	default:
		target = flat[max(idx-1, 0)]
	}

	var anchor string
	if ctx.LineAnchor != nil {
		anchor = ctx.LineAnchor(target.Path, target.Line, ctx.compareInfo(target.Path) != nil)
	}

	return Target{
		Kind:       TargetMessage,
		Path:       target.Path,
		Anchor:     anchor,
		MessageUID: target.UID,
	}, nil
}
