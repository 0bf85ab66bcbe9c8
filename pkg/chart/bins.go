package chart

import (
	"math"
	"sort"
)

// MaxBins bounds the number of bins a BinSet may hold.
const MaxBins = 10000

// BinOptions configures histogram binning. Width takes priority over Count;
// when both are zero the bin count is derived automatically.
type BinOptions struct {
	Width float64 // explicit bin width
	Count int     // explicit bin count
}

// Validate rejects negative or non-finite settings.
func (o BinOptions) Validate() error {
	if o.Width < 0 || !isFinite(o.Width) {
		return invalidArg("bin width", o.Width, "must be a finite value >= 0")
	}
	if o.Count < 0 || o.Count > MaxBins {
		return invalidArg("bin count", o.Count, "must be in [0,%d]", MaxBins)
	}
	return nil
}

// ValidateFor also rejects an explicit width that would split the range of
// values into more than MaxBins bins.
func (o BinOptions) ValidateFor(values []float64) error {
	if err := o.Validate(); err != nil {
		return err
	}
	lo, hi, ok := extent(values)
	if !ok || o.Width <= 0 {
		return nil
	}
	if n := (hi - lo) / o.Width; n > MaxBins {
		return invalidArg("bin width", o.Width, "gives %.0f bins over [%g,%g], limit %d", n, lo, hi, MaxBins)
	}
	return nil
}

// BinSet holds evenly spaced bin edges.
type BinSet struct {
	Edges []float64 // len == Count()+1
	Width float64
}

// Count returns the number of bins.
func (b BinSet) Count() int {
	if len(b.Edges) < 2 {
		return 0
	}
	return len(b.Edges) - 1
}

// Min returns the first edge.
func (b BinSet) Min() float64 {
	if len(b.Edges) == 0 {
		return 0
	}
	return b.Edges[0]
}

// Max returns the last edge.
func (b BinSet) Max() float64 {
	if len(b.Edges) == 0 {
		return 0
	}
	return b.Edges[len(b.Edges)-1]
}

// Centers returns the midpoint of each bin.
func (b BinSet) Centers() []float64 {
	n := b.Count()
	centers := make([]float64, n)
	for i := 0; i < n; i++ {
		centers[i] = (b.Edges[i] + b.Edges[i+1]) / 2
	}
	return centers
}

// ComputeBins derives bin edges for data spanning [min, max]. An explicit
// width wins, then an explicit count. Neither yields more than MaxBins bins;
// a width too fine for the range is widened. Otherwise the range is widened to a
// nice axis domain and split by Sturges' rule, or into 10-20 bins aligned
// with the axis interval when dataCount is zero.
func ComputeBins(min, max float64, dataCount int, opts BinOptions) BinSet {
	if !isFinite(min) || !isFinite(max) {
		return BinSet{}
	}
	if min > max {
		min, max = max, min
	}
	span := max - min
	if math.IsInf(span, 0) {
		return BinSet{}
	}

	switch {
	case opts.Width > 0:
		width := opts.Width
		if span/width > MaxBins {
			// too fine for the range; widen to the bin limit
			width = span / MaxBins
		}
		count := int(math.Ceil(span/width - 1e-9))
		if count < 1 {
			count = 1
		}
		bins := evenBins(min, width, count)
		if bins.Edges[count] < max {
			bins.Edges[count] = max
		}
		return bins

	case opts.Count > 0:
		count := opts.Count
		if count > MaxBins {
			count = MaxBins
		}
		if span <= 0 {
			span = float64(count)
		}
		bins := evenBins(min, span/float64(count), count)
		bins.Edges[count] = min + span
		return bins
	}

	interval := niceInterval(span)
	lo := floorTo(min, interval)
	hi := ceilTo(max, interval)
	if hi <= lo {
		hi = lo + interval
	}

	var count int
	if dataCount > 0 {
		count = sturges(dataCount)
	} else {
		count = alignedBinCount(int(math.Round((hi - lo) / interval)))
	}

	bins := evenBins(lo, (hi-lo)/float64(count), count)
	bins.Edges[count] = hi
	return bins
}

// sturges returns ceil(log2(n) + 1).
func sturges(n int) int {
	c := int(math.Ceil(math.Log2(float64(n)) + 1))
	if c < 1 {
		c = 1
	}
	return c
}

// alignedBinCount picks a count in [10,20] that divides evenly into, or is
// divided evenly by, the number of axis steps.
func alignedBinCount(steps int) int {
	if steps < 1 {
		steps = 1
	}
	for c := 10; c <= 20; c++ {
		if c%steps == 0 || steps%c == 0 {
			return c
		}
	}
	return 10
}

func evenBins(start, width float64, count int) BinSet {
	edges := make([]float64, count+1)
	for i := range edges {
		edges[i] = start + float64(i)*width
	}
	return BinSet{Edges: edges, Width: width}
}

// Frequencies counts values per bin. Bins are half-open [lo, hi) except the
// last, which also includes its upper edge. Values outside the edges are
// ignored.
func Frequencies(values, edges []float64) []int {
	if len(edges) < 2 {
		return nil
	}
	n := len(edges) - 1
	freqs := make([]int, n)
	lo, hi := edges[0], edges[n]

	for _, v := range values {
		if !isFinite(v) || v < lo || v > hi {
			continue
		}
		i := sort.SearchFloat64s(edges, v)
		if i >= len(edges) || edges[i] != v {
			i--
		}
		if i >= n {
			i = n - 1
		}
		freqs[i]++
	}
	return freqs
}

// Histogram bins values and counts them.
func Histogram(values []float64, opts BinOptions) (BinSet, []int) {
	lo, hi, ok := extent(values)
	n := 0
	for _, v := range values {
		if isFinite(v) {
			n++
		}
	}
	if !ok {
		lo, hi = 0, 0
	}
	bins := ComputeBins(lo, hi, n, opts)
	return bins, Frequencies(values, bins.Edges)
}
