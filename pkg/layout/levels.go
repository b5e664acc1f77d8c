package layout

import (
	"cmp"
	"slices"
)

// Interval is a half-open span [Start, End) to be stacked.
type Interval struct {
	ID         string
	Start, End float64
}

// Overlaps reports whether two half-open intervals intersect.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// ComputeLevels assigns each interval the lowest level on which it overlaps
// nothing already placed. Intervals are placed by ascending start, longer
// intervals first on ties, then by ID, so the result is deterministic for a
// given set of intervals regardless of input order.
func ComputeLevels(intervals []Interval) map[string]int {
	sorted := slices.Clone(intervals)
	slices.SortFunc(sorted, func(a, b Interval) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(b.End-b.Start, a.End-a.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	// Placement is in start order, so a level is free for iv exactly when
	// everything on it ends at or before iv.Start.
	var ends []float64
	levels := make(map[string]int, len(sorted))
	for _, iv := range sorted {
		level := -1
		for l, end := range ends {
			if end <= iv.Start {
				level = l
				break
			}
		}
		if level < 0 {
			level = len(ends)
			ends = append(ends, iv.End)
		} else {
			ends[level] = iv.End
		}
		levels[iv.ID] = level
	}
	return levels
}
