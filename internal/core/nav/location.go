package nav

import (
	"net/url"
	"strings"
)

// Query parameter names read from the location.
const (
	QueryPath       = "path"
	QueryMessageUID = "messageUid"
)

// Location is the externally owned address of the current view: a route
// path, query parameters and a hash fragment.
type Location struct {
	Pathname string
	Query    url.Values
	Hash     string
}

// ParseLocation parses a "/route?query#hash" string.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, err
	}
	loc := Location{
		Pathname: u.Path,
		Query:    u.Query(),
	}
	if u.Fragment != "" {
		loc.Hash = "#" + u.Fragment
	}
	return loc, nil
}

// String renders the location back into "/route?query#hash" form.
func (l Location) String() string {
	var sb strings.Builder
	sb.WriteString(l.Pathname)
	if q := l.Query.Encode(); q != "" {
		sb.WriteString("?")
		sb.WriteString(q)
	}
	sb.WriteString(l.Hash)
	return sb.String()
}

// Clone returns a copy whose query can be modified independently.
func (l Location) Clone() Location {
	c := l
	c.Query = url.Values{}
	for k, v := range l.Query {
		c.Query[k] = append([]string(nil), v...)
	}
	return c
}

// Position is the reviewer's current place, derived from a Location.
// Empty DiffAnchor and MessageUID mean "none".
type Position struct {
	Path       string
	DiffAnchor string
	MessageUID string
}

// ResolvePosition extracts the current position from loc. The path falls back
// to defaultPath when the location carries none. No validation is done here;
// each ring checks applicability against its own data.
func ResolvePosition(loc Location, defaultPath string) Position {
	pos := Position{
		Path:       loc.Query.Get(QueryPath),
		DiffAnchor: strings.TrimPrefix(loc.Hash, "#"),
		MessageUID: loc.Query.Get(QueryMessageUID),
	}
	if pos.Path == "" {
		pos.Path = defaultPath
	}
	return pos
}
