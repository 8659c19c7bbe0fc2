package browse

import (
	"strconv"
	"strings"
)

// Line anchor prefixes. Plain views number lines of the file; diff views
// number lines of the new side.
const (
	lineAnchorPrefix     = "L"
	diffLineAnchorPrefix = "N"
)

// LineAnchor returns the anchor of a code line. Anchors are per file; the
// path is part of the location, not the anchor.
func LineAnchor(_ string, line int, diff bool) string {
	if diff {
		return diffLineAnchorPrefix + strconv.Itoa(line)
	}
	return lineAnchorPrefix + strconv.Itoa(line)
}

// parseLineAnchor returns the line number of an anchor with the given prefix.
func parseLineAnchor(anchor, prefix string) (int, bool) {
	n, ok := strings.CutPrefix(anchor, prefix)
	if !ok {
		return 0, false
	}
	line, err := strconv.Atoi(n)
	return line, err == nil && line > 0
}
