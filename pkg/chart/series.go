// Package chart computes chart layouts: axis ticks, calendar axes,
// histogram bins and curves, pie segments and pie label placement.
//
// Everything here is synchronous and free of I/O. Drawing is left to the
// caller; see pkg/chartfile for the SVG and PNG renderers.
package chart

import (
	"math"
	"sort"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Entry is one observation of a series.
type Entry struct {
	Position   string  // date ("2024-03-01") or category name
	Value      float64
	Annotation string
}

// Series is an ordered set of entries sharing a name.
type Series struct {
	Name    string
	Entries []Entry
}

// Sorted returns a copy of the series ordered by position. Positions are
// compared as dates when every position parses as one, lexically otherwise.
func (s Series) Sorted() Series {
	out := Series{Name: s.Name, Entries: make([]Entry, len(s.Entries))}
	copy(out.Entries, s.Entries)

	days := make([]int, len(out.Entries))
	dated := len(out.Entries) > 0
	for i, e := range out.Entries {
		t, err := ParseDate(e.Position)
		if err != nil {
			dated = false
			break
		}
		days[i] = DayIndex(t)
	}

	if dated {
		idx := make([]int, len(out.Entries))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return days[idx[a]] < days[idx[b]] })
		sorted := make([]Entry, len(idx))
		for i, j := range idx {
			sorted[i] = out.Entries[j]
		}
		out.Entries = sorted
		return out
	}

	sort.SliceStable(out.Entries, func(a, b int) bool {
		return out.Entries[a].Position < out.Entries[b].Position
	})
	return out
}

// Values returns the finite values of the series in entry order.
func (s Series) Values() []float64 {
	vals := make([]float64, 0, len(s.Entries))
	for _, e := range s.Entries {
		if isFinite(e.Value) {
			vals = append(vals, e.Value)
		}
	}
	return vals
}

// Categories returns the distinct positions across all series in first-seen
// order after sorting each series.
func Categories(series []Series) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, s := range series {
		for _, e := range s.Sorted().Entries {
			if !seen[e.Position] {
				seen[e.Position] = true
				cats = append(cats, e.Position)
			}
		}
	}
	return cats
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
