package nav

import "slices"

// RelativePath returns the path adjacent to currentPath in traversal order.
// Navigation clamps at both ends: moving past the first or last entry returns
// that entry again.
func RelativePath(pathList []string, currentPath string, dir Direction) (string, error) {
	idx := slices.Index(pathList, currentPath)
	if idx < 0 {
		return "", ErrPathNotInTree
	}

	switch dir {
	case Next:
		idx = min(idx+1, len(pathList)-1)
	default:
		idx = max(idx-1, 0)
	}
	return pathList[idx], nil
}

// FileRing moves to the previous or next file.
func FileRing(ctx RingContext, pos Position, dir Direction) (Target, error) {
	path, err := RelativePath(ctx.PathList, pos.Path, dir)
	if err != nil {
		return Target{}, err
	}
	return Target{Kind: TargetFile, Path: path}, nil
}
