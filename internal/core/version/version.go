// Package version loads browsable versions of a repository: the file tree at a
// ref, filtered and ordered the way the file tree displays it.
package version

import (
	"cmp"
	"slices"
	"strings"
)

// Version is one browsable snapshot of a repository.
type Version struct {
	ID          int
	Name        string // repository display name
	Ref         string // ref as requested by the user
	Commit      string // short commit SHA the ref resolved to
	Dir         string // repository directory
	Paths       []string
	DefaultFile string
}

// HasPath reports whether path is part of the version's tree.
func (v *Version) HasPath(path string) bool {
	_, found := slices.BinarySearchFunc(v.Paths, path, ComparePaths)
	return found
}

// SortPaths orders paths in tree traversal order: depth first, and within a
// directory, sub-directories before files, each group sorted by name.
func SortPaths(paths []string) {
	slices.SortFunc(paths, ComparePaths)
}

// ComparePaths compares two slash-separated paths in tree traversal order.
func ComparePaths(a, b string) int {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")

	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		aDir := i < len(as)-1
		bDir := i < len(bs)-1
		if aDir != bDir {
			if aDir {
				return -1
			}
			return 1
		}
		return cmp.Compare(as[i], bs[i])
	}
	return cmp.Compare(len(as), len(bs))
}
