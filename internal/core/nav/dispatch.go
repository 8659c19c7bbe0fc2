package nav

import "fmt"

// Request is a state transition emitted for an accepted key press.
type Request interface {
	request()
}

// GoToFile selects a file.
type GoToFile struct {
	Path      string
	VersionID int
}

// GoToDiffAnchor selects a file and moves to a diff anchor. PreserveHash keeps
// the anchor in the location when the file changes.
type GoToDiffAnchor struct {
	Path         string
	Anchor       string
	VersionID    int
	PreserveHash bool
}

// GoToMessage selects a file and focuses a linter message.
type GoToMessage struct {
	Path      string
	Anchor    string
	UID       string
	VersionID int
}

// ExpandTree expands every folder of a version's tree.
type ExpandTree struct {
	VersionID int
}

// CollapseTree collapses every folder of a version's tree.
type CollapseTree struct {
	VersionID int
}

// ToggleSidePanel shows or hides the main side panel.
type ToggleSidePanel struct{}

func (GoToFile) request()        {}
func (GoToDiffAnchor) request()  {}
func (GoToMessage) request()     {}
func (ExpandTree) request()      {}
func (CollapseTree) request()    {}
func (ToggleSidePanel) request() {}

// Emitter receives requests. The state store implements it.
type Emitter interface {
	Emit(Request)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Request)

// Emit calls f(r).
func (f EmitterFunc) Emit(r Request) { f(r) }

// Dispatch emits exactly one request for intent. Relative intents need the
// resolved target; structural intents ignore it.
func Dispatch(e Emitter, versionID int, intent Intent, target Target) error {
	switch intent {
	case IntentExpandTree:
		e.Emit(ExpandTree{VersionID: versionID})
	case IntentCollapseTree:
		e.Emit(CollapseTree{VersionID: versionID})
	case IntentToggleSidePanel:
		e.Emit(ToggleSidePanel{})
	default:
		req, err := targetRequest(versionID, target)
		if err != nil {
			return err
		}
		e.Emit(req)
	}
	return nil
}

func targetRequest(versionID int, t Target) (Request, error) {
	switch t.Kind {
	case TargetFile:
		return GoToFile{Path: t.Path, VersionID: versionID}, nil
	case TargetDiff:
		return GoToDiffAnchor{
			Path:         t.Path,
			Anchor:       t.Anchor,
			VersionID:    versionID,
			PreserveHash: t.PreserveHash,
		}, nil
	case TargetMessage:
		return GoToMessage{
			Path:      t.Path,
			Anchor:    t.Anchor,
			UID:       t.MessageUID,
			VersionID: versionID,
		}, nil
	default:
		return nil, fmt.Errorf("unknown target kind %d", t.Kind)
	}
}
