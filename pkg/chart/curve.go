// Smooth curves over histogram frequencies.
// Catmull-Rom tangents converted to cubic Bézier segments.

package chart

import "math"

// CurveSmoothing scales the Catmull-Rom tangents.
const CurveSmoothing = 0.3

// Bezier is one cubic segment: start, two control points, end.
type Bezier struct {
	P0, C1, C2, P1 Point
}

// SmoothCurve fits cubic segments through points. The tangent leaving
// points[i] follows points[i+1]-points[i-1]; endpoints stand in for their
// own missing neighbours.
func SmoothCurve(points []Point) []Bezier {
	if len(points) < 2 {
		return nil
	}

	last := len(points) - 1
	curve := make([]Bezier, 0, last)
	for i := 0; i < last; i++ {
		p0 := points[maxInt(0, i-1)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[minInt(last, i+2)]

		curve = append(curve, Bezier{
			P0: p1,
			C1: Point{
				X: p1.X + (p2.X-p0.X)*CurveSmoothing,
				Y: p1.Y + (p2.Y-p0.Y)*CurveSmoothing,
			},
			C2: Point{
				X: p2.X - (p3.X-p1.X)*CurveSmoothing,
				Y: p2.Y - (p3.Y-p1.Y)*CurveSmoothing,
			},
			P1: p2,
		})
	}
	return curve
}

// HistogramCurve smooths the bin-centre/frequency points in normalized
// plot coordinates: x across the bin edges, y as a fraction of the
// largest frequency, both in [0,1].
func HistogramCurve(bins BinSet, freqs []int) []Bezier {
	centers := bins.Centers()
	if len(centers) == 0 || len(freqs) != len(centers) {
		return nil
	}

	maxFreq := 0
	for _, f := range freqs {
		if f > maxFreq {
			maxFreq = f
		}
	}
	span := bins.Max() - bins.Min()

	points := make([]Point, len(centers))
	for i, c := range centers {
		var x, y float64
		if span > 0 {
			x = (c - bins.Min()) / span
		}
		if maxFreq > 0 {
			y = float64(freqs[i]) / float64(maxFreq)
		}
		points[i] = Point{x, y}
	}
	return SmoothCurve(points)
}

// Eval returns the point at t ∈ [0,1] on the segment.
func (b Bezier) Eval(t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return Point{
		X: mt3*b.P0.X + 3*mt2*t*b.C1.X + 3*mt*t2*b.C2.X + t3*b.P1.X,
		Y: mt3*b.P0.Y + 3*mt2*t*b.C1.Y + 3*mt*t2*b.C2.Y + t3*b.P1.Y,
	}
}

// EvaluateCurve computes the point at parameter t ∈ [0,1] across all segments.
func EvaluateCurve(curve []Bezier, t float64) Point {
	if len(curve) == 0 {
		return Point{}
	}
	t = math.Max(0, math.Min(1, t))

	segment := int(t * float64(len(curve)))
	if segment >= len(curve) {
		segment = len(curve) - 1
	}
	localT := t*float64(len(curve)) - float64(segment)
	return curve[segment].Eval(localT)
}

// SampleCurve flattens the curve into a polyline with steps points per
// segment plus the final endpoint.
func SampleCurve(curve []Bezier, steps int) []Point {
	if len(curve) == 0 {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	points := make([]Point, 0, len(curve)*steps+1)
	for _, seg := range curve {
		for i := 0; i < steps; i++ {
			points = append(points, seg.Eval(float64(i)/float64(steps)))
		}
	}
	return append(points, curve[len(curve)-1].P1)
}

// CurveLength approximates the length of a curve by sampling.
func CurveLength(curve []Bezier) float64 {
	points := SampleCurve(curve, 32)
	length := 0.0
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		length += math.Sqrt(dx*dx + dy*dy)
	}
	return length
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
