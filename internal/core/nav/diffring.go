package nav

import "slices"

// DiffRing moves to the previous or next diff anchor. It needs an active
// comparison for the current file. When the current file's anchors are
// exhausted it crosses into neighbouring files, skipping files without
// changes, and lands on the first (next) or last (previous) anchor there.
// With nothing left in that direction it stays on the current anchor.
func DiffRing(ctx RingContext, pos Position, dir Direction) (Target, error) {
	info := ctx.compareInfo(pos.Path)
	if info == nil {
		return Target{}, ErrInapplicable
	}

	idx := -1
	if pos.DiffAnchor != "" {
		idx = slices.Index(info.Diff, pos.DiffAnchor)
	}

	if idx < 0 {
		if dir == Previous {
			return Target{}, ErrNoTarget
		}
		if len(info.Diff) > 0 {
			return diffTarget(pos.Path, info.Diff[0], false), nil
		}
		// Nothing in this file yet; look further along.
		return crossDiff(ctx, pos, dir, "")
	}

	switch dir {
	case Next:
		if idx+1 < len(info.Diff) {
			return diffTarget(pos.Path, info.Diff[idx+1], false), nil
		}
	default:
		if idx > 0 {
			return diffTarget(pos.Path, info.Diff[idx-1], false), nil
		}
	}

	return crossDiff(ctx, pos, dir, info.Diff[idx])
}

// crossDiff walks files in dir until one with anchors is found. fallback is
// the anchor to stay on when the walk reaches the end of the path list.
func crossDiff(ctx RingContext, pos Position, dir Direction, fallback string) (Target, error) {
	current := pos.Path
	for {
		next, err := RelativePath(ctx.PathList, current, dir)
		if err != nil {
			return Target{}, err
		}
		if next == current {
			break
		}
		current = next

		info := ctx.compareInfo(current)
		if info == nil || len(info.Diff) == 0 {
			continue
		}
		anchor := info.Diff[0]
		if dir == Previous {
			anchor = info.Diff[len(info.Diff)-1]
		}
		return diffTarget(current, anchor, true), nil
	}

	if fallback == "" {
		return Target{}, ErrNoTarget
	}
	return diffTarget(pos.Path, fallback, false), nil
}

func diffTarget(path, anchor string, crossed bool) Target {
	return Target{
		Kind:         TargetDiff,
		Path:         path,
		Anchor:       anchor,
		PreserveHash: crossed,
	}
}
