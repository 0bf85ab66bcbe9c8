package chart

import (
	"math"
	"testing"
)

func TestLinearTicksEmpty(t *testing.T) {
	s := LinearTicks(nil, false)
	if s.Max != 0 || len(s.Labels) != 0 {
		t.Errorf("Expected degenerate scale, got %+v", s)
	}
	if !s.Empty() {
		t.Error("Empty() should be true")
	}

	s = LinearTicks([]float64{math.NaN()}, false)
	if !s.Empty() {
		t.Errorf("NaN-only input should give an empty scale, got %+v", s)
	}
}

func TestLinearTicksIntervals(t *testing.T) {
	tests := []struct {
		name         string
		values       []float64
		wantInterval float64
		wantMax      float64
		wantCount    int
	}{
		{"small range", []float64{3, 17, 29}, 1, 29, 30},
		{"range 30", []float64{0, 30}, 1, 30, 31},
		{"five step", []float64{0, 95}, 5, 95, 20},
		{"decade", []float64{0, 123}, 10, 130, 14},
		{"two step", []float64{12, 4000}, 200, 4000, 21},
		{"half decade", []float64{12, 6000}, 500, 6000, 13},
		{"exact decade", []float64{0, 1000}, 100, 1000, 11},
		{"grouped thousands", []float64{0, 5000}, 200, 5000, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := LinearTicks(tt.values, false)
			if s.Interval != tt.wantInterval {
				t.Errorf("Interval = %v, want %v", s.Interval, tt.wantInterval)
			}
			if s.Max != tt.wantMax {
				t.Errorf("Max = %v, want %v", s.Max, tt.wantMax)
			}
			if len(s.Labels) != tt.wantCount {
				t.Errorf("len(Labels) = %d, want %d: %v", len(s.Labels), tt.wantCount, s.Labels)
			}
		})
	}
}

func TestLinearTicksNegativeMinimum(t *testing.T) {
	s := LinearTicks([]float64{-45, 250}, false)

	if s.Min != -45 {
		t.Errorf("Axis should start at the true minimum, got %v", s.Min)
	}
	if s.Interval != 20 {
		t.Errorf("Expected interval 20, got %v", s.Interval)
	}
	if s.Labels[0] != -45 {
		t.Errorf("First label should be -45, got %v", s.Labels[0])
	}
	if last := s.Labels[len(s.Labels)-1]; last < 250 {
		t.Errorf("Last label %v does not cover 250", last)
	}
}

func TestLinearTicksAppendsCeiling(t *testing.T) {
	s := LinearTicks([]float64{-3.5, 10}, false)

	want := []float64{-3.5, -2.5, -1.5, -0.5, 0.5, 1.5, 2.5, 3.5, 4.5, 5.5, 6.5, 7.5, 8.5, 9.5, 10}
	if len(s.Labels) != len(want) {
		t.Fatalf("Expected %d labels, got %d: %v", len(want), len(s.Labels), s.Labels)
	}
	for i := range want {
		if math.Abs(s.Labels[i]-want[i]) > 1e-9 {
			t.Errorf("Labels[%d] = %v, want %v", i, s.Labels[i], want[i])
		}
	}
}

func TestLinearTicksInvariants(t *testing.T) {
	inputs := [][]float64{
		{0},
		{42},
		{-7},
		{-1000, -10},
		{0.2, 0.9},
		{1, 31},
		{5, 1e6},
		{-123456, 98765},
		{17, 17, 17},
		{3.3, 299.9, 150},
		{0, 1e12},
		{-1e17, -1e17 + 32},
		{0, 10000.0000005},
	}

	for _, values := range inputs {
		s := LinearTicks(values, false)
		lo, hi, _ := extent(values)

		for i := 1; i < len(s.Labels); i++ {
			if s.Labels[i] <= s.Labels[i-1] {
				t.Errorf("%v: labels not strictly increasing: %v", values, s.Labels)
				break
			}
		}
		if s.Labels[0] > math.Min(0, lo) {
			t.Errorf("%v: first label %v above %v", values, s.Labels[0], math.Min(0, lo))
		}
		if s.Labels[len(s.Labels)-1] < hi {
			t.Errorf("%v: last label %v below max %v", values, s.Labels[len(s.Labels)-1], hi)
		}
		if len(s.Labels) > 32 {
			t.Errorf("%v: %d labels, expected a bounded count", values, len(s.Labels))
		}
		if hi-math.Min(0, lo) <= 30 && s.Interval != 1 {
			t.Errorf("%v: range <= 30 should use interval 1, got %v", values, s.Interval)
		}
	}
}

func TestLinearTicksBeyondFloatPrecision(t *testing.T) {
	// steps of 2 vanish next to 1e17, whose float spacing is 16
	s := LinearTicks([]float64{-1e17, -1e17 + 32}, false)

	want := []float64{-1e17, -1e17 + 32}
	if len(s.Labels) != len(want) {
		t.Fatalf("Labels = %v, want %v", s.Labels, want)
	}
	for i := range want {
		if s.Labels[i] != want[i] {
			t.Errorf("Labels[%d] = %v, want %v", i, s.Labels[i], want[i])
		}
	}
}

func TestLinearTicksCeilingNoise(t *testing.T) {
	s := LinearTicks([]float64{0, 10000.0000005}, false)

	last := s.Labels[len(s.Labels)-1]
	if last != 11000 || s.Max != 11000 {
		t.Errorf("Expected the axis to close at 11000, got last %v max %v", last, s.Max)
	}
	if s.Labels[len(s.Labels)-2] != 10000 {
		t.Errorf("Labels = %v", s.Labels)
	}
}

func TestLinearTicksPercent(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		wantMax   float64
		wantCount int
	}{
		{"half", []float64{0.25, 0.5}, 100, 11},
		{"float noise", []float64{0.3}, 100, 11},
		{"over one", []float64{1.234}, 130, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := LinearTicks(tt.values, true)
			if s.Interval != 10 {
				t.Errorf("Percent interval = %v, want 10", s.Interval)
			}
			if s.Max != tt.wantMax {
				t.Errorf("Max = %v, want %v", s.Max, tt.wantMax)
			}
			if s.Max < 100 {
				t.Errorf("Percent max below 100: %v", s.Max)
			}
			if len(s.Labels) != tt.wantCount {
				t.Errorf("len(Labels) = %d, want %d", len(s.Labels), tt.wantCount)
			}
		})
	}
}

func TestTickScaleTexts(t *testing.T) {
	s := LinearTicks([]float64{0.42}, true)
	texts := s.Texts(FormatPercentGrouped)
	if texts[0] != "0%" || texts[4] != "40%" || texts[len(texts)-1] != "100%" {
		t.Errorf("Unexpected percent texts: %v", texts)
	}

	g := LinearTicks([]float64{0, 5000}, false)
	texts = g.Texts(FormatGrouped)
	if texts[len(texts)-1] != "5,000" {
		t.Errorf("Expected 5,000, got %s", texts[len(texts)-1])
	}
}

func TestSeriesTicks(t *testing.T) {
	series := []Series{
		{Name: "a", Entries: []Entry{{Position: "x", Value: 10}, {Position: "y", Value: 40}}},
		{Name: "b", Entries: []Entry{{Position: "x", Value: 85}}},
	}
	s := SeriesTicks(series, FormatGrouped)
	if s.Max != 85 || s.Interval != 5 {
		t.Errorf("Expected max 85 interval 5, got max %v interval %v", s.Max, s.Interval)
	}

	if got := SeriesTicks(nil, FormatGrouped); !got.Empty() {
		t.Errorf("Expected empty scale without series, got %+v", got)
	}
}

func TestTickScaleRatio(t *testing.T) {
	s := LinearTicks([]float64{0, 200}, false)
	if r := s.Ratio(100); math.Abs(r-0.5) > 1e-9 {
		t.Errorf("Ratio(100) = %v, want 0.5", r)
	}
	if r := (TickScale{}).Ratio(5); r != 0 {
		t.Errorf("Degenerate scale ratio = %v, want 0", r)
	}
}
