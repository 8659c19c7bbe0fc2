package nav

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/codeview/internal/core/logging"
)

// ErrAlreadyMounted is returned when a navigator is mounted twice.
var ErrAlreadyMounted = errors.New("navigator already mounted")

// TreeSource exposes the loaded file tree of a version.
type TreeSource interface {
	IsTreeLoaded(versionID int) bool
	PathList(versionID int) []string
	DefaultPath(versionID int) string
}

// CompareSource exposes per-file comparison info. It returns nil when no
// comparison is active.
type CompareSource interface {
	CompareInfo(versionID int, path string) *CompareInfo
}

// MessageSource exposes the linter message index.
type MessageSource interface {
	MessageMap() MessageMap
}

// LocationSource exposes the current location.
type LocationSource interface {
	Location() Location
}

// Deps are the collaborators a Navigator reads from and emits to.
// Compare and Messages may be nil; their rings are then inert.
type Deps struct {
	VersionID  int
	Tree       TreeSource
	Compare    CompareSource
	Messages   MessageSource
	Location   LocationSource
	Emitter    Emitter
	LineAnchor CodeLineAnchorGetter
}

// Navigator turns key presses into navigation requests.
type Navigator struct {
	deps Deps
	log  zerolog.Logger

	mu      sync.Mutex
	mounted bool
}

// NewNavigator creates a navigator. It does nothing until mounted.
func NewNavigator(deps Deps) *Navigator {
	return &Navigator{
		deps: deps,
		log:  logging.Version("nav", deps.VersionID),
	}
}

// Mount registers the navigator's keydown listener on s. The returned release
// function removes it; calling release more than once is safe.
func (n *Navigator) Mount(s Surface) (release func(), err error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.mounted {
		return nil, ErrAlreadyMounted
	}

	id := s.AddKeydownListener(n.HandleKey)
	n.mounted = true

	return sync.OnceFunc(func() {
		s.RemoveKeydownListener(id)
		n.mu.Lock()
		n.mounted = false
		n.mu.Unlock()
	}), nil
}

// Mounted reports whether the navigator currently holds a listener.
func (n *Navigator) Mounted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.mounted
}

// HandleKey is the keydown listener. Modified presses and unknown keys are
// left alone. Supported keys are always consumed, but only act once the
// version's tree is loaded.
func (n *Navigator) HandleKey(evt *KeyEvent) {
	if evt.HasModifier() {
		return
	}

	binding, ok := LookupKey(evt.Key)
	if !ok {
		return
	}
	evt.PreventDefault()

	if !n.deps.Tree.IsTreeLoaded(n.deps.VersionID) {
		n.log.Debug().Str("key", evt.Key).Msg("tree not loaded, ignoring key")
		return
	}

	n.run(binding.Intent)
}

func (n *Navigator) run(intent Intent) {
	var target Target

	if dir, relative := intent.Direction(); relative {
		pos := ResolvePosition(n.location(), n.deps.Tree.DefaultPath(n.deps.VersionID))

		t, err := ringFor(intent)(n.ringContext(), pos, dir)
		if err != nil {
			n.log.Debug().
				Err(err).
				Str("intent", string(intent)).
				Str("path", pos.Path).
				Msg("intent dropped")
			return
		}
		target = t
	}

	if err := Dispatch(n.deps.Emitter, n.deps.VersionID, intent, target); err != nil {
		n.log.Error().Err(err).Str("intent", string(intent)).Msg("dispatch failed")
	}
}

func (n *Navigator) location() Location {
	if n.deps.Location == nil {
		return Location{}
	}
	return n.deps.Location.Location()
}

func (n *Navigator) ringContext() RingContext {
	ctx := RingContext{
		PathList:   n.deps.Tree.PathList(n.deps.VersionID),
		LineAnchor: n.deps.LineAnchor,
	}
	if n.deps.Compare != nil {
		ctx.Compare = func(path string) *CompareInfo {
			return n.deps.Compare.CompareInfo(n.deps.VersionID, path)
		}
	}
	if n.deps.Messages != nil {
		ctx.Messages = n.deps.Messages.MessageMap()
	}
	return ctx
}

func ringFor(intent Intent) Ring {
	switch intent {
	case IntentPreviousDiff, IntentNextDiff:
		return DiffRing
	case IntentPreviousMessage, IntentNextMessage:
		return MessageRing
	default:
		return FileRing
	}
}
