package chart

import "math"

// TickScale describes a linear value axis.
type TickScale struct {
	Min      float64   // first label
	Max      float64   // rounded ceiling
	Interval float64   // step between consecutive labels
	Labels   []float64 // strictly increasing
	Percent  bool      // labels are percentage points
}

// Empty reports whether the scale carries no labels.
func (s TickScale) Empty() bool {
	return len(s.Labels) == 0
}

// Ratio maps v into [0,1] across the scale. A degenerate scale maps
// everything to 0.
func (s TickScale) Ratio(v float64) float64 {
	span := s.Max - s.Min
	if span <= 0 || !isFinite(v) {
		return 0
	}
	if s.Percent {
		v *= 100
	}
	return (v - s.Min) / span
}

// Texts renders the labels with f. Percentage scales render through a
// percent format so a label of 40 becomes "40%".
func (s TickScale) Texts(f NumberFormat) []string {
	texts := make([]string, len(s.Labels))
	for i, v := range s.Labels {
		if s.Percent {
			pf := f
			if !pf.IsPercent() {
				pf = FormatPercentPlain
			}
			texts[i] = pf.Format(v / 100)
			continue
		}
		texts[i] = f.Format(v)
	}
	return texts
}

// SeriesTicks builds the value axis for every series sharing it, taking the
// percent hint from f.
func SeriesTicks(series []Series, f NumberFormat) TickScale {
	var values []float64
	for _, s := range series {
		values = append(values, s.Values()...)
	}
	return LinearTicks(values, f.IsPercent())
}

// LinearTicks computes a zero-based axis over values. With percent set the
// values are ratios and the axis is laid out in percentage points with a
// fixed interval of 10 and a ceiling of at least 100.
func LinearTicks(values []float64, percent bool) TickScale {
	minValue, maxValue, ok := extent(values)
	if !ok {
		return TickScale{Percent: percent}
	}
	if percent {
		minValue = roundTo(minValue*100, 9)
		maxValue = roundTo(maxValue*100, 9)
	}

	rangeMin := math.Min(0, minValue)

	var interval, ceiling float64
	if percent {
		interval = 10
		ceiling = math.Max(100, ceilTo(maxValue, interval))
	} else {
		interval = niceInterval(maxValue - rangeMin)
		ceiling = ceilTo(maxValue, interval)
	}
	if math.IsInf(ceiling-rangeMin, 0) || math.IsNaN(ceiling) {
		// no finite ceiling near the float64 limit
		return TickScale{Percent: percent}
	}

	labels := tickLabels(rangeMin, interval, ceiling)
	if last := labels[len(labels)-1]; maxValue > last+1e-9 {
		next := ceiling
		if next <= last {
			// ceiling rounded just below the maximum
			next = last + interval
		}
		if next > last {
			labels = append(labels, next)
			ceiling = next
		}
	}

	return TickScale{
		Min:      rangeMin,
		Max:      ceiling,
		Interval: interval,
		Labels:   labels,
		Percent:  percent,
	}
}

// tickLabels steps from lo to hi by interval. When interval is below the
// float64 spacing at lo the steps collapse, and only the ends are kept.
func tickLabels(lo, interval, hi float64) []float64 {
	n := int(math.Floor((hi-lo)/interval + 1e-9))
	labels := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		v := lo + float64(i)*interval
		if i > 0 && v <= labels[i-1] {
			if hi > lo {
				return []float64{lo, hi}
			}
			return []float64{lo}
		}
		labels = append(labels, v)
	}
	return labels
}

// niceInterval applies the 1/2/5-per-decade rule for roughly ten labels.
// Spans up to 30 use a unit interval.
func niceInterval(span float64) float64 {
	if span <= 30 {
		return 1
	}
	ideal := span / 10
	magnitude := math.Pow(10, math.Floor(math.Log10(ideal)+1e-9))
	switch {
	case ideal > 5*magnitude:
		return 5 * magnitude
	case ideal > 2*magnitude:
		return 2 * magnitude
	}
	return magnitude
}

// ceilTo rounds v up to a multiple of step, tolerating float noise.
func ceilTo(v, step float64) float64 {
	r := math.Ceil(v/step-1e-9) * step
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

// floorTo rounds v down to a multiple of step, tolerating float noise.
func floorTo(v, step float64) float64 {
	r := math.Floor(v/step+1e-9) * step
	if r == 0 {
		return 0
	}
	return r
}

// extent returns the finite min and max of values.
func extent(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}
