package chart

import (
	"errors"
	"math"
	"testing"
)

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestComputeBinsExplicitWidth(t *testing.T) {
	bins := ComputeBins(0, 100, 50, BinOptions{Width: 10})

	want := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	if !floatsEqual(bins.Edges, want) {
		t.Errorf("Edges = %v, want %v", bins.Edges, want)
	}
	if bins.Width != 10 || bins.Count() != 10 {
		t.Errorf("Expected 10 bins of width 10, got %d of %v", bins.Count(), bins.Width)
	}
}

func TestComputeBinsWidthRoundsUp(t *testing.T) {
	bins := ComputeBins(0, 95, 5, BinOptions{Width: 10})
	if bins.Count() != 10 || bins.Max() != 100 {
		t.Errorf("Expected 10 bins up to 100, got %d up to %v", bins.Count(), bins.Max())
	}
}

func TestComputeBinsExplicitCount(t *testing.T) {
	bins := ComputeBins(0, 10, 3, BinOptions{Count: 4})

	want := []float64{0, 2.5, 5, 7.5, 10}
	if !floatsEqual(bins.Edges, want) {
		t.Errorf("Edges = %v, want %v", bins.Edges, want)
	}
}

func TestComputeBinsWidthBeatsCount(t *testing.T) {
	bins := ComputeBins(0, 100, 10, BinOptions{Width: 25, Count: 7})
	if bins.Count() != 4 {
		t.Errorf("Explicit width should win, got %d bins", bins.Count())
	}
}

func TestComputeBinsSturges(t *testing.T) {
	bins := ComputeBins(3, 97, 100, BinOptions{})

	if bins.Min() != 0 || bins.Max() != 100 {
		t.Errorf("Expected nice domain [0,100], got [%v,%v]", bins.Min(), bins.Max())
	}
	if bins.Count() != 8 {
		t.Errorf("Sturges for 100 values should give 8 bins, got %d", bins.Count())
	}
	if bins.Width != 12.5 {
		t.Errorf("Expected width 12.5, got %v", bins.Width)
	}
}

func TestComputeBinsNoData(t *testing.T) {
	bins := ComputeBins(0, 40, 0, BinOptions{})
	if bins.Count() != 10 || bins.Width != 4 {
		t.Errorf("Expected 10 bins of width 4, got %d of %v", bins.Count(), bins.Width)
	}

	empty, freqs := Histogram(nil, BinOptions{})
	if empty.Count() < 10 || empty.Count() > 20 {
		t.Errorf("Empty histogram should have 10-20 bins, got %d", empty.Count())
	}
	for _, f := range freqs {
		if f != 0 {
			t.Errorf("Empty histogram has non-zero frequency: %v", freqs)
		}
	}
}

func TestComputeBinsMonotonic(t *testing.T) {
	cases := []struct {
		min, max float64
		n        int
		opts     BinOptions
	}{
		{5, 5, 1, BinOptions{}},
		{5, 5, 3, BinOptions{Count: 3}},
		{5, 5, 3, BinOptions{Width: 2}},
		{-12.5, 310, 1000, BinOptions{}},
		{100, 0, 10, BinOptions{}},
	}

	for _, c := range cases {
		bins := ComputeBins(c.min, c.max, c.n, c.opts)
		if bins.Count() < 1 {
			t.Errorf("%+v: no bins", c)
			continue
		}
		for i := 1; i < len(bins.Edges); i++ {
			if bins.Edges[i] <= bins.Edges[i-1] {
				t.Errorf("%+v: edges not increasing: %v", c, bins.Edges)
				break
			}
			if math.Abs((bins.Edges[i]-bins.Edges[i-1])-bins.Width) > 1e-6 {
				t.Errorf("%+v: uneven edges: %v", c, bins.Edges)
				break
			}
		}
		lo, hi := math.Min(c.min, c.max), math.Max(c.min, c.max)
		if bins.Min() > lo || bins.Max() < hi {
			t.Errorf("%+v: edges %v do not cover [%v,%v]", c, bins.Edges, lo, hi)
		}
	}
}

func TestFrequencies(t *testing.T) {
	edges := []float64{0, 10, 20, 30}
	values := []float64{0, 5, 10, 19.99, 20, 30, 31, -1, math.NaN()}

	freqs := Frequencies(values, edges)

	want := []int{2, 2, 2}
	for i := range want {
		if freqs[i] != want[i] {
			t.Errorf("freqs[%d] = %d, want %d (all: %v)", i, freqs[i], want[i], freqs)
		}
	}

	sum := 0
	for _, f := range freqs {
		sum += f
	}
	if sum != 6 {
		t.Errorf("Expected 6 values counted inside [0,30], got %d", sum)
	}
}

func TestHistogramKeepsMaximum(t *testing.T) {
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 100}
	bins, freqs := Histogram(values, BinOptions{})

	sum := 0
	for _, f := range freqs {
		sum += f
	}
	if sum != len(values) {
		t.Errorf("Expected every value counted, got %d of %d", sum, len(values))
	}
	if freqs[len(freqs)-1] < 1 {
		t.Errorf("Maximum value dropped: bins %v freqs %v", bins.Edges, freqs)
	}
}

func TestBinOptionsValidate(t *testing.T) {
	if err := (BinOptions{Width: -1}).Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative width, got %v", err)
	}
	if err := (BinOptions{Count: -2}).Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative count, got %v", err)
	}
	if err := (BinOptions{}).Validate(); err != nil {
		t.Errorf("Zero options should be valid, got %v", err)
	}
}

func TestBinOptionsLimit(t *testing.T) {
	if err := (BinOptions{Count: MaxBins}).Validate(); err != nil {
		t.Errorf("Count of MaxBins should be valid, got %v", err)
	}
	if err := (BinOptions{Count: 1000000000}).Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for a huge count, got %v", err)
	}

	values := []float64{0, 5e11, 1e12}
	if err := (BinOptions{Width: 1e-9}).ValidateFor(values); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for a width giving 1e21 bins, got %v", err)
	}
	if err := (BinOptions{Width: 1e9}).ValidateFor(values); err != nil {
		t.Errorf("A width giving 1000 bins should be valid, got %v", err)
	}
	if err := (BinOptions{Width: 1e-9}).ValidateFor(nil); err != nil {
		t.Errorf("No values should be valid, got %v", err)
	}
}

func TestComputeBinsTinyWidth(t *testing.T) {
	values := []float64{0, 5e11, 1e12}
	bins, freqs := Histogram(values, BinOptions{Width: 1e-9})

	if bins.Count() < 1 || bins.Count() > MaxBins+1 {
		t.Fatalf("Expected at most %d bins, got %d", MaxBins, bins.Count())
	}
	if bins.Min() != 0 || bins.Max() < 1e12 {
		t.Errorf("Bins should cover [0,1e12], got [%v,%v]", bins.Min(), bins.Max())
	}
	sum := 0
	for _, f := range freqs {
		sum += f
	}
	if sum != len(values) {
		t.Errorf("Expected every value counted, got %d of %d", sum, len(values))
	}
	if freqs[len(freqs)-1] != 1 {
		t.Errorf("Maximum value should land in the last bin, got %d", freqs[len(freqs)-1])
	}
}

func TestComputeBinsHugeCount(t *testing.T) {
	bins := ComputeBins(0, 1, 3, BinOptions{Count: 1000000000})
	if bins.Count() != MaxBins {
		t.Errorf("Expected the count clamped to %d, got %d", MaxBins, bins.Count())
	}
	if bins.Max() != 1 {
		t.Errorf("Last edge = %v, want 1", bins.Max())
	}
}

func TestBinCenters(t *testing.T) {
	bins := ComputeBins(0, 30, 3, BinOptions{Width: 10})
	if !floatsEqual(bins.Centers(), []float64{5, 15, 25}) {
		t.Errorf("Centers = %v", bins.Centers())
	}
}
