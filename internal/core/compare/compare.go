// Package compare turns a unified diff between two versions into per-file
// change blocks. Each block gets a diff anchor ("D1", "D2", ...) that the
// diff ring walks in order.
package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/colonyops/codeview/internal/core/nav"
)

// AnchorPrefix starts every diff anchor.
const AnchorPrefix = "D"

// LineKind classifies a rendered diff line.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Line is one line of a file's diff. OldLine and NewLine are 1-based and zero
// when the line does not exist on that side. Anchor is set on the first line
// of each change block.
type Line struct {
	Kind    LineKind
	Text    string
	OldLine int
	NewLine int
	Anchor  string
}

// Block is a contiguous run of added or removed lines.
type Block struct {
	Anchor string
	// NewStart is the new-side line the block starts at. For pure deletions
	// it is the line following the removed run.
	NewStart  int
	Additions int
	Deletions int
}

// FileDiff is the comparison of one file.
type FileDiff struct {
	Path    string
	OldPath string
	New     bool
	Deleted bool
	Binary  bool
	Blocks  []Block
	// Hunks holds the lines of each hunk, in order.
	Hunks [][]Line
}

// Anchors returns the file's diff anchors in order.
func (f *FileDiff) Anchors() []string {
	anchors := make([]string, len(f.Blocks))
	for i, b := range f.Blocks {
		anchors[i] = b.Anchor
	}
	return anchors
}

// Block returns the block with anchor.
func (f *FileDiff) Block(anchor string) (Block, bool) {
	for _, b := range f.Blocks {
		if b.Anchor == anchor {
			return b, true
		}
	}
	return Block{}, false
}

// Stats returns the total added and removed line counts.
func (f *FileDiff) Stats() (additions, deletions int) {
	for _, b := range f.Blocks {
		additions += b.Additions
		deletions += b.Deletions
	}
	return additions, deletions
}

// Comparison is the parsed diff between a base and the browsed version.
type Comparison struct {
	Base  string
	Ref   string
	files map[string]*FileDiff
	order []string
}

// Parse reads a unified git diff.
func Parse(base, ref, diff string) (*Comparison, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(diff))
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	c := &Comparison{
		Base:  base,
		Ref:   ref,
		files: make(map[string]*FileDiff, len(files)),
	}
	for _, f := range files {
		fd := buildFileDiff(f)
		if _, dup := c.files[fd.Path]; !dup {
			c.order = append(c.order, fd.Path)
		}
		c.files[fd.Path] = fd
	}
	return c, nil
}

// Paths returns the changed paths in diff order.
func (c *Comparison) Paths() []string {
	return c.order
}

// File returns the diff of path, if it changed.
func (c *Comparison) File(path string) (*FileDiff, bool) {
	if c == nil {
		return nil, false
	}
	f, ok := c.files[path]
	return f, ok
}

// Info returns the ring data for path. A nil comparison yields nil; an
// unchanged path yields an empty, non-nil info.
func (c *Comparison) Info(path string) *nav.CompareInfo {
	if c == nil {
		return nil
	}
	f, ok := c.files[path]
	if !ok {
		return &nav.CompareInfo{Diff: []string{}}
	}
	return &nav.CompareInfo{Diff: f.Anchors()}
}

func buildFileDiff(f *gitdiff.File) *FileDiff {
	fd := &FileDiff{
		Path:    f.NewName,
		OldPath: f.OldName,
		New:     f.IsNew,
		Deleted: f.IsDelete,
		Binary:  f.IsBinary,
	}
	if fd.Path == "" {
		fd.Path = f.OldName
	}
	if fd.Binary {
		return fd
	}

	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, fd.appendFragment(frag))
	}
	return fd
}

// appendFragment converts a fragment into lines and records its change
// blocks on fd.
func (fd *FileDiff) appendFragment(frag *gitdiff.TextFragment) []Line {
	oldLine := int(frag.OldPosition)
	newLine := int(frag.NewPosition)
	// Pure additions to an empty file report position 0.
	if oldLine == 0 {
		oldLine = 1
	}
	if newLine == 0 {
		newLine = 1
	}

	lines := make([]Line, 0, len(frag.Lines))
	inBlock := false

	for _, l := range frag.Lines {
		text := strings.TrimSuffix(l.Line, "\n")

		if l.Op == gitdiff.OpContext {
			inBlock = false
			lines = append(lines, Line{Kind: LineContext, Text: text, OldLine: oldLine, NewLine: newLine})
			oldLine++
			newLine++
			continue
		}

		line := Line{Text: text}
		if !inBlock {
			inBlock = true
			anchor := AnchorPrefix + strconv.Itoa(len(fd.Blocks)+1)
			fd.Blocks = append(fd.Blocks, Block{Anchor: anchor, NewStart: newLine})
			line.Anchor = anchor
		}
		block := &fd.Blocks[len(fd.Blocks)-1]

		switch l.Op {
		case gitdiff.OpAdd:
			line.Kind = LineAdded
			line.NewLine = newLine
			block.Additions++
			newLine++
		case gitdiff.OpDelete:
			line.Kind = LineRemoved
			line.OldLine = oldLine
			block.Deletions++
			oldLine++
		}
		lines = append(lines, line)
	}
	return lines
}

// IsAnchor reports whether s has the shape of a diff anchor.
func IsAnchor(s string) bool {
	n, ok := strings.CutPrefix(s, AnchorPrefix)
	if !ok || n == "" {
		return false
	}
	i, err := strconv.Atoi(n)
	return err == nil && i > 0
}
