package nav

import "errors"

var (
	// ErrPathNotInTree is returned when the current path is not part of the
	// version's path list.
	ErrPathNotInTree = errors.New("current file not in tree")
	// ErrInapplicable is returned when the data a ring needs is absent.
	ErrInapplicable = errors.New("intent not applicable")
	// ErrNoTarget is returned when a ring has nowhere to go.
	ErrNoTarget = errors.New("no navigation target")
)

// TargetKind identifies which request a target resolves to.
type TargetKind int

const (
	TargetFile TargetKind = iota
	TargetDiff
	TargetMessage
)

// Target is where a ring decided to move.
type Target struct {
	Kind         TargetKind
	Path         string
	Anchor       string
	MessageUID   string
	PreserveHash bool
}

// CompareInfo holds the ordered hunk anchors of one file in an active
// comparison. A nil *CompareInfo means no comparison is active.
type CompareInfo struct {
	Diff []string
}

// CodeLineAnchorGetter maps a code line to the anchor used by the renderer.
type CodeLineAnchorGetter func(path string, line int, diff bool) string

// RingContext is the read-only data a ring resolves against.
type RingContext struct {
	PathList []string
	// Compare returns the comparison info of a path, nil when diff mode is off.
	Compare    func(path string) *CompareInfo
	Messages   MessageMap
	LineAnchor CodeLineAnchorGetter
}

func (c RingContext) compareInfo(path string) *CompareInfo {
	if c.Compare == nil {
		return nil
	}
	return c.Compare(path)
}

// Ring resolves the adjacent target from a position.
type Ring func(ctx RingContext, pos Position, dir Direction) (Target, error)
