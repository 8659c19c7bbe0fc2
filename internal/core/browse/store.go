// Package browse holds the state of the code browser: loaded versions, file
// contents, tree expansion, the active comparison, linter results and the
// current location. It applies navigation requests and tells subscribers
// what changed.
package browse

import (
	"fmt"
	"path"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/codeview/internal/core/compare"
	"github.com/colonyops/codeview/internal/core/linter"
	"github.com/colonyops/codeview/internal/core/logging"
	"github.com/colonyops/codeview/internal/core/nav"
	"github.com/colonyops/codeview/internal/core/version"
)

// ChangeKind says which part of the state changed.
type ChangeKind int

const (
	ChangeVersion ChangeKind = iota
	ChangeFile
	ChangeTree
	ChangeLocation
	ChangeComparison
	ChangeLint
	ChangeSidePanel
)

// Change describes a single state change.
type Change struct {
	Kind      ChangeKind
	VersionID int
	Path      string
}

// Subscriber is a callback invoked on every change.
type Subscriber func(Change)

// FileStatus is the fetch state of a file's content.
type FileStatus int

const (
	FileUnloaded FileStatus = iota
	FileLoading
	FileLoaded
	FileAborted
)

func (s FileStatus) String() string {
	switch s {
	case FileLoading:
		return "loading"
	case FileLoaded:
		return "loaded"
	case FileAborted:
		return "aborted"
	default:
		return "unloaded"
	}
}

// FileState is the content of one file of a version.
type FileState struct {
	Status  FileStatus
	Content []byte
	Err     error
}

type versionState struct {
	version  *version.Version
	files    map[string]*FileState
	dirs     []string
	expanded map[string]bool
}

// Store is the browser state. It implements every source the navigator reads
// and nav.Emitter. It is safe for use from the Bubble Tea Update loop and from
// tests; subscribers run inline after the lock is released.
type Store struct {
	mu          sync.RWMutex
	versions    map[int]*versionState
	comparison  *compare.Comparison
	lint        *linter.Result
	location    nav.Location
	sidePanel   bool
	subscribers []Subscriber
	log         zerolog.Logger
}

var _ interface {
	nav.TreeSource
	nav.CompareSource
	nav.MessageSource
	nav.LocationSource
	nav.Emitter
} = (*Store)(nil)

// NewStore creates a store starting at loc.
func NewStore(loc nav.Location, showSidePanel bool) *Store {
	return &Store{
		versions:  make(map[int]*versionState),
		location:  loc.Clone(),
		sidePanel: showSidePanel,
		log:       logging.Component("store"),
	}
}

// Subscribe registers a callback that will be invoked on every change.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) publish(changes ...Change) {
	s.mu.RLock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, c := range changes {
		for _, fn := range subs {
			fn(c)
		}
	}
}

// LoadVersion stores a loaded version. v.ID must be set. The folders leading
// to the selected file are expanded.
func (s *Store) LoadVersion(v *version.Version) {
	s.mu.Lock()
	vs := &versionState{
		version:  v,
		files:    make(map[string]*FileState),
		dirs:     collectDirs(v.Paths),
		expanded: make(map[string]bool),
	}
	s.versions[v.ID] = vs
	expandParents(vs.expanded, s.selectedPathLocked(v.ID))
	s.mu.Unlock()

	s.log.Debug().Int("version_id", v.ID).Int("files", len(v.Paths)).Msg("version stored")
	s.publish(Change{Kind: ChangeVersion, VersionID: v.ID})
}

// Version returns the loaded version for id.
func (s *Store) Version(id int) (*version.Version, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vs, ok := s.versions[id]
	if !ok {
		return nil, false
	}
	return vs.version, true
}

// IsTreeLoaded reports whether the version's file tree is available.
func (s *Store) IsTreeLoaded(versionID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.versions[versionID]
	return ok
}

// PathList returns the version's paths in tree traversal order.
func (s *Store) PathList(versionID int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if vs, ok := s.versions[versionID]; ok {
		return vs.version.Paths
	}
	return nil
}

// DefaultPath returns the path selected when the location names none.
func (s *Store) DefaultPath(versionID int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if vs, ok := s.versions[versionID]; ok {
		return vs.version.DefaultFile
	}
	return ""
}

// SelectedPath returns the path in the location, or the default path.
func (s *Store) SelectedPath(versionID int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedPathLocked(versionID)
}

func (s *Store) selectedPathLocked(versionID int) string {
	if p := s.location.Query.Get(nav.QueryPath); p != "" {
		return p
	}
	if vs, ok := s.versions[versionID]; ok {
		return vs.version.DefaultFile
	}
	return ""
}

// FileState returns the fetch state of path.
func (s *Store) FileState(versionID int, path string) FileState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if vs, ok := s.versions[versionID]; ok {
		if fs, ok := vs.files[path]; ok {
			return *fs
		}
	}
	return FileState{}
}

// ShouldFetch reports whether path's content still needs fetching: it is not
// loaded, not being loaded and not aborted.
func (s *Store) ShouldFetch(versionID int, path string) bool {
	return s.FileState(versionID, path).Status == FileUnloaded
}

// BeginFetchFile marks path as loading.
func (s *Store) BeginFetchFile(versionID int, path string) {
	s.setFile(versionID, path, FileState{Status: FileLoading})
}

// LoadFile stores the content of path.
func (s *Store) LoadFile(versionID int, path string, content []byte) {
	s.setFile(versionID, path, FileState{Status: FileLoaded, Content: content})
}

// AbortFetchFile records that fetching path failed. It is not retried.
func (s *Store) AbortFetchFile(versionID int, path string, err error) {
	s.log.Warn().Err(err).Int("version_id", versionID).Str("path", path).Msg("file fetch aborted")
	s.setFile(versionID, path, FileState{Status: FileAborted, Err: err})
}

func (s *Store) setFile(versionID int, path string, fs FileState) {
	s.mu.Lock()
	vs, ok := s.versions[versionID]
	if ok {
		vs.files[path] = &fs
	}
	s.mu.Unlock()

	if !ok {
		s.log.Error().Int("version_id", versionID).Str("path", path).Msg("file update for unknown version")
		return
	}
	s.publish(Change{Kind: ChangeFile, VersionID: versionID, Path: path})
}

// Dirs returns every folder of the version's tree.
func (s *Store) Dirs(versionID int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if vs, ok := s.versions[versionID]; ok {
		return vs.dirs
	}
	return nil
}

// IsExpanded reports whether dir is open in the tree.
func (s *Store) IsExpanded(versionID int, dir string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if vs, ok := s.versions[versionID]; ok {
		return vs.expanded[dir]
	}
	return false
}

// ToggleDir opens or closes one folder.
func (s *Store) ToggleDir(versionID int, dir string) {
	s.updateTree(versionID, func(vs *versionState) {
		vs.expanded[dir] = !vs.expanded[dir]
	})
}

// ExpandTree opens every folder.
func (s *Store) ExpandTree(versionID int) {
	s.updateTree(versionID, func(vs *versionState) {
		for _, d := range vs.dirs {
			vs.expanded[d] = true
		}
	})
}

// CollapseTree closes every folder.
func (s *Store) CollapseTree(versionID int) {
	s.updateTree(versionID, func(vs *versionState) {
		clear(vs.expanded)
	})
}

func (s *Store) updateTree(versionID int, fn func(*versionState)) {
	s.mu.Lock()
	vs, ok := s.versions[versionID]
	if ok {
		fn(vs)
	}
	s.mu.Unlock()

	if ok {
		s.publish(Change{Kind: ChangeTree, VersionID: versionID})
	}
}

// SetComparison installs the active comparison. nil turns diff mode off.
func (s *Store) SetComparison(c *compare.Comparison) {
	s.mu.Lock()
	s.comparison = c
	s.mu.Unlock()
	s.publish(Change{Kind: ChangeComparison})
}

// Comparison returns the active comparison, nil when diff mode is off.
func (s *Store) Comparison() *compare.Comparison {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.comparison
}

// CompareInfo returns the diff anchors of path, nil when diff mode is off.
func (s *Store) CompareInfo(versionID int, path string) *nav.CompareInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.versions[versionID]; !ok {
		return nil
	}
	return s.comparison.Info(path)
}

// SetLintResult installs linter results.
func (s *Store) SetLintResult(r *linter.Result) {
	s.mu.Lock()
	s.lint = r
	s.mu.Unlock()
	s.publish(Change{Kind: ChangeLint})
}

// LintResult returns the linter results, nil when none are loaded.
func (s *Store) LintResult() *linter.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lint
}

// MessageMap indexes the located linter messages.
func (s *Store) MessageMap() nav.MessageMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lint.MessageMap()
}

// Location returns a copy of the current location.
func (s *Store) Location() nav.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.location.Clone()
}

// SetLocation replaces the current location.
func (s *Store) SetLocation(loc nav.Location) {
	s.mu.Lock()
	s.location = loc.Clone()
	s.mu.Unlock()
	s.publish(Change{Kind: ChangeLocation})
}

// SidePanelVisible reports whether the main side panel is shown.
func (s *Store) SidePanelVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidePanel
}

// Emit applies a navigation request.
func (s *Store) Emit(req nav.Request) {
	switch r := req.(type) {
	case nav.GoToFile:
		// Re-selecting the current file, as happens at either end of the file
		// list, keeps the hash and message.
		if s.SelectedPath(r.VersionID) == r.Path {
			return
		}
		s.goTo(r.VersionID, r.Path, func(loc *nav.Location, _ bool) {
			loc.Hash = ""
			loc.Query.Del(nav.QueryMessageUID)
		})
	case nav.GoToDiffAnchor:
		s.goTo(r.VersionID, r.Path, func(loc *nav.Location, samePath bool) {
			loc.Hash = ""
			if samePath || r.PreserveHash {
				loc.Hash = "#" + r.Anchor
			}
			loc.Query.Del(nav.QueryMessageUID)
		})
	case nav.GoToMessage:
		s.goTo(r.VersionID, r.Path, func(loc *nav.Location, _ bool) {
			loc.Hash = ""
			if r.Anchor != "" {
				loc.Hash = "#" + r.Anchor
			}
			loc.Query.Set(nav.QueryMessageUID, r.UID)
		})
	case nav.ExpandTree:
		s.ExpandTree(r.VersionID)
	case nav.CollapseTree:
		s.CollapseTree(r.VersionID)
	case nav.ToggleSidePanel:
		s.mu.Lock()
		s.sidePanel = !s.sidePanel
		s.mu.Unlock()
		s.publish(Change{Kind: ChangeSidePanel})
	default:
		s.log.Error().Str("request", fmt.Sprintf("%T", req)).Msg("unknown request")
	}
}

// goTo selects path and lets update adjust the rest of the location.
func (s *Store) goTo(versionID int, p string, update func(loc *nav.Location, samePath bool)) {
	s.mu.Lock()
	loc := s.location.Clone()
	samePath := s.selectedPathLocked(versionID) == p

	if loc.Pathname == "" {
		loc.Pathname = fmt.Sprintf("/browse/%d/", versionID)
	}
	loc.Query.Set(nav.QueryPath, p)
	update(&loc, samePath)
	s.location = loc

	treeChanged := false
	if vs, ok := s.versions[versionID]; ok {
		treeChanged = expandParents(vs.expanded, p)
	}
	s.mu.Unlock()

	changes := []Change{{Kind: ChangeLocation, VersionID: versionID, Path: p}}
	if treeChanged {
		changes = append(changes, Change{Kind: ChangeTree, VersionID: versionID})
	}
	s.publish(changes...)
}

// collectDirs returns every ancestor folder of paths, in first-seen order.
func collectDirs(paths []string) []string {
	seen := map[string]bool{}
	var dirs []string
	for _, p := range paths {
		for d := path.Dir(p); d != "." && d != "/"; d = path.Dir(d) {
			if seen[d] {
				break
			}
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// expandParents opens the folders leading to p and reports whether any was
// closed.
func expandParents(expanded map[string]bool, p string) bool {
	changed := false
	for d := path.Dir(p); d != "." && d != "/" && p != ""; d = path.Dir(d) {
		if !expanded[d] {
			expanded[d] = true
			changed = true
		}
	}
	return changed
}
