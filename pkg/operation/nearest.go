package operation

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// OrderNearest orders points greedily by nearest neighbour: it starts at
// the first point and repeatedly moves to the closest unvisited one. Ties
// go to the point that came first in the input. It does not backtrack, so
// the tour is short but not optimal.
func OrderNearest(points []v2.Vec) []v2.Vec {
	if len(points) == 0 {
		return nil
	}
	remaining := make([]v2.Vec, len(points))
	copy(remaining, points)

	ordered := make([]v2.Vec, 0, len(points))
	last := remaining[0]
	ordered = append(ordered, last)
	remaining = remaining[1:]

	for len(remaining) > 0 {
		i := pickNearest(last, remaining)
		last = remaining[i]
		ordered = append(ordered, last)
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return ordered
}

// pickNearest returns the index of the first point in candidates closest
// to from.
func pickNearest(from v2.Vec, candidates []v2.Vec) int {
	best := 0
	bestDist := from.Sub(candidates[0]).Length()
	for i := 1; i < len(candidates); i++ {
		if d := from.Sub(candidates[i]).Length(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
