// Package linter loads addons-linter results and indexes the messages by file
// and line for the message ring.
package linter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/colonyops/codeview/internal/core/nav"
)

// Message types reported by the linter.
const (
	TypeError   = "error"
	TypeWarning = "warning"
	TypeNotice  = "notice"
)

// Message is a single linter finding. File and Line are empty/zero for
// findings that are not tied to a code line.
type Message struct {
	UID         string      `json:"uid"`
	Type        string      `json:"type"`
	Code        string      `json:"code"`
	Message     string      `json:"message"`
	Description Description `json:"description"`
	File        string      `json:"file"`
	Line        int         `json:"line"`
	Column      int         `json:"column"`
}

// Located reports whether the message points at a code line.
func (m Message) Located() bool {
	return m.File != "" && m.Line > 0
}

// Description is linter markdown. The linter emits it either as a string or
// as a list of paragraphs.
type Description string

// UnmarshalJSON accepts a string, a list of strings or null.
func (d *Description) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Description(s)
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("description must be a string or list of strings: %w", err)
	}
	*d = Description(strings.Join(parts, "\n\n"))
	return nil
}

// ParseError reports a malformed linter result.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse linter result %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrNoMessages is returned when a document has none of the known message keys.
var ErrNoMessages = errors.New("no messages key")

// document covers both shapes the linter produces: a flat list with a type on
// each message, or one list per type.
type document struct {
	Messages *[]Message `json:"messages"`
	Errors   []Message  `json:"errors"`
	Warnings []Message  `json:"warnings"`
	Notices  []Message  `json:"notices"`
}

// Result is a loaded linter run.
type Result struct {
	// Messages in linter order, located and global alike.
	Messages []Message
	// Global holds the messages not tied to a code line. They are shown in the
	// UI but are not part of the message ring.
	Global []Message

	byUID map[string]int
}

// Load reads a linter result. source names the input in errors.
func Load(r io.Reader, source string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read linter result: %w", err)
	}
	return Parse(data, source)
}

// Parse decodes a linter result.
func Parse(data []byte, source string) (*Result, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	var msgs []Message
	switch {
	case doc.Messages != nil:
		msgs = *doc.Messages
	case doc.Errors != nil || doc.Warnings != nil || doc.Notices != nil:
		msgs = append(msgs, withType(doc.Errors, TypeError)...)
		msgs = append(msgs, withType(doc.Warnings, TypeWarning)...)
		msgs = append(msgs, withType(doc.Notices, TypeNotice)...)
	default:
		return nil, &ParseError{Source: source, Err: ErrNoMessages}
	}

	return NewResult(msgs), nil
}

// NewResult indexes msgs. Messages without a uid get a random one so they can
// be addressed by the location.
func NewResult(msgs []Message) *Result {
	res := &Result{
		Messages: make([]Message, 0, len(msgs)),
		byUID:    make(map[string]int, len(msgs)),
	}

	for _, m := range msgs {
		if m.UID == "" {
			m.UID = uuid.NewString()
		}
		if m.Type == "" {
			m.Type = TypeNotice
		}
		if _, dup := res.byUID[m.UID]; dup {
			continue
		}
		res.byUID[m.UID] = len(res.Messages)
		res.Messages = append(res.Messages, m)
		if !m.Located() {
			res.Global = append(res.Global, m)
		}
	}
	return res
}

func withType(msgs []Message, typ string) []Message {
	for i := range msgs {
		msgs[i].Type = typ
	}
	return msgs
}

// ByUID returns the message with uid.
func (r *Result) ByUID(uid string) (Message, bool) {
	if r == nil {
		return Message{}, false
	}
	i, ok := r.byUID[uid]
	if !ok {
		return Message{}, false
	}
	return r.Messages[i], true
}

// ForFile returns the located messages of a file.
func (r *Result) ForFile(path string) []Message {
	if r == nil {
		return nil
	}
	var out []Message
	for _, m := range r.Messages {
		if m.File == path && m.Located() {
			out = append(out, m)
		}
	}
	return out
}

// MessageMap indexes the located messages for the message ring.
func (r *Result) MessageMap() nav.MessageMap {
	mm := nav.MessageMap{}
	if r == nil {
		return mm
	}
	for _, m := range r.Messages {
		if m.Located() {
			mm.Add(nav.Message{UID: m.UID, Path: m.File, Line: m.Line})
		}
	}
	return mm
}

// Counts returns the number of messages per type.
func (r *Result) Counts() map[string]int {
	counts := map[string]int{}
	if r == nil {
		return counts
	}
	for _, m := range r.Messages {
		counts[m.Type]++
	}
	return counts
}
