package chart

import (
	"math"
	"sort"
)

// Label distances beyond the pie radius.
const (
	DirectLabelGap = 20
	LeaderLabelGap = 30
)

// LabelBound is the footprint of one pie label, centred on its anchor.
type LabelBound struct {
	X, Y          float64 // centre
	Width, Height float64
	Angle         float64 // label angle in [0,360), offsets included
	Segment       int     // index into the segment list
}

// Rect returns the footprint as a Rect.
func (b LabelBound) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// ResolveResult reports the outcome of a collision pass. Success false
// means collisions remain after the iteration budget; it is not an error.
type ResolveResult struct {
	Success    bool
	Iterations int
}

// LabelAnchor returns where seg's label is centred when drawn at angle.
func LabelAnchor(seg PieSegment, angle float64, g PieGeometry, opts PieOptions) Point {
	gap := float64(DirectLabelGap)
	if opts.UsesLeader(seg) {
		gap = LeaderLabelGap
	}
	return g.PolarPoint(g.Radius+gap, angle)
}

// LabelBounds computes every label footprint. offsets may be nil; otherwise
// offsets[i] is added to segment i's mid-angle.
func LabelBounds(segs []PieSegment, offsets []float64, g PieGeometry, opts PieOptions, m TextMeasurer) []LabelBound {
	bounds := make([]LabelBound, len(segs))
	for i, seg := range segs {
		angle := seg.MidAngle()
		if i < len(offsets) {
			angle += offsets[i]
		}
		angle = normalizeAngle(angle)
		anchor := LabelAnchor(seg, angle, g, opts)
		bounds[i] = LabelBound{
			X:       anchor.X,
			Y:       anchor.Y,
			Width:   m.TextWidth(LabelText(seg, opts), opts.FontSize),
			Height:  opts.FontSize * LineHeight,
			Angle:   angle,
			Segment: i,
		}
	}
	return bounds
}

// Collides reports whether two label footprints, each grown by padding,
// overlap on both axes.
func Collides(a, b LabelBound, padding float64) bool {
	return RectOverlap(a.Rect().Pad(padding), b.Rect().Pad(padding)) > 0
}

// CollidingPairs lists every colliding pair as index pairs with i < j.
func CollidingPairs(bounds []LabelBound, padding float64) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(bounds); i++ {
		for j := i + 1; j < len(bounds); j++ {
			if Collides(bounds[i], bounds[j], padding) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

func inSeamWindow(angle, half float64) bool {
	return angle >= 360-half || angle <= half
}

func inBottomWindow(angle, half float64) bool {
	return math.Abs(angle-180) <= half
}

// topMergeCandidates finds colliding pairs touching the seam window and
// picks the smaller segment of each. When the smaller one already is the
// aggregate, its partner is picked instead.
func topMergeCandidates(segs []PieSegment, bounds []LabelBound, opts PieOptions) (candidates []int, collided bool) {
	picked := make(map[int]bool)
	for _, pair := range CollidingPairs(bounds, opts.Padding) {
		i, j := pair[0], pair[1]
		if !inSeamWindow(bounds[i].Angle, opts.TopWindow) && !inSeamWindow(bounds[j].Angle, opts.TopWindow) {
			continue
		}
		collided = true

		small, other := j, i
		if segs[i].Percentage < segs[j].Percentage {
			small, other = i, j
		}
		if segs[small].Others {
			small = other
		}
		if segs[small].Others {
			continue
		}
		picked[small] = true
	}

	for i := range picked {
		candidates = append(candidates, i)
	}
	sort.Ints(candidates)
	return candidates, collided
}

// ResolveTop runs the near-top merge pass. While labels collide inside the
// seam window, the smaller segment of each colliding pair is merged into
// "Others" and the pie is laid out again. The data before the first merge
// is kept as a snapshot for Restore.
func (p *Pie) ResolveTop(g PieGeometry, m TextMeasurer) ResolveResult {
	if p.Total() <= 0 {
		return ResolveResult{Success: true}
	}
	for iter := 0; iter < p.opts.TopIterations; iter++ {
		bounds := LabelBounds(p.segments, nil, g, p.opts, m)
		candidates, collided := topMergeCandidates(p.segments, bounds, p.opts)
		if !collided {
			return ResolveResult{Success: true, Iterations: iter}
		}
		if len(candidates) == 0 {
			return ResolveResult{Success: false, Iterations: iter}
		}
		if p.snapshot == nil {
			p.Snapshot()
		}
		// indexes come from p.segments, so Merge cannot fail
		_ = p.Merge(candidates)
	}

	bounds := LabelBounds(p.segments, nil, g, p.opts, m)
	_, collided := topMergeCandidates(p.segments, bounds, p.opts)
	return ResolveResult{Success: !collided, Iterations: p.opts.TopIterations}
}

// bottomShifts picks, for each colliding pair in the bottom window, the
// label with the larger adjusted angle. Equal angles go to the segment whose
// own mid-angle is closer to 180°.
func bottomShifts(segs []PieSegment, bounds []LabelBound, opts PieOptions) []int {
	picked := make(map[int]bool)
	for _, pair := range CollidingPairs(bounds, opts.Padding) {
		i, j := pair[0], pair[1]
		ai, aj := bounds[i].Angle, bounds[j].Angle
		if !inBottomWindow(ai, opts.BottomWindow) && !inBottomWindow(aj, opts.BottomWindow) {
			continue
		}

		shift := j
		switch {
		case ai > aj:
			shift = i
		case ai == aj:
			di := math.Abs(normalizeAngle(segs[i].MidAngle()) - 180)
			dj := math.Abs(normalizeAngle(segs[j].MidAngle()) - 180)
			if di < dj {
				shift = i
			}
		}
		picked[shift] = true
	}

	shifts := make([]int, 0, len(picked))
	for i := range picked {
		shifts = append(shifts, i)
	}
	sort.Ints(shifts)
	return shifts
}

// ResolveBottomOffsets runs the near-bottom offset pass over segs starting
// from zero offsets. Each iteration pushes the clockwise label of every
// colliding pair around 180° one step further clockwise.
func ResolveBottomOffsets(segs []PieSegment, g PieGeometry, opts PieOptions, m TextMeasurer) ([]float64, ResolveResult) {
	offsets := make([]float64, len(segs))
	for iter := 0; iter < opts.BottomIterations; iter++ {
		bounds := LabelBounds(segs, offsets, g, opts, m)
		shifts := bottomShifts(segs, bounds, opts)
		if len(shifts) == 0 {
			return offsets, ResolveResult{Success: true, Iterations: iter}
		}
		for _, i := range shifts {
			offsets[i] += opts.BottomStep
		}
	}

	bounds := LabelBounds(segs, offsets, g, opts, m)
	success := len(bottomShifts(segs, bounds, opts)) == 0
	return offsets, ResolveResult{Success: success, Iterations: opts.BottomIterations}
}

// ResolveBottom runs the near-bottom pass and stores the resulting offsets.
func (p *Pie) ResolveBottom(g PieGeometry, m TextMeasurer) ResolveResult {
	offsets, res := ResolveBottomOffsets(p.segments, g, p.opts, m)
	p.offsets = offsets
	return res
}

// Resolve runs the near-top pass followed by the near-bottom pass.
func (p *Pie) Resolve(g PieGeometry, m TextMeasurer) (top, bottom ResolveResult) {
	top = p.ResolveTop(g, m)
	bottom = p.ResolveBottom(g, m)
	return top, bottom
}

// LabelBounds returns the current label footprints with stored offsets.
func (p *Pie) LabelBounds(g PieGeometry, m TextMeasurer) []LabelBound {
	return LabelBounds(p.segments, p.offsets, g, p.opts, m)
}
