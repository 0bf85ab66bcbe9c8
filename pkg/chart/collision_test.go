package chart

import (
	"math"
	"testing"
)

var testGeometry = PieGeometry{CX: 200, CY: 200, Radius: 100}

func TestCollidesPadding(t *testing.T) {
	a := LabelBound{X: 0, Y: 0, Width: 20, Height: 10}
	b := LabelBound{X: 25, Y: 0, Width: 20, Height: 10}

	// edges 5 apart: clear without padding, overlapping once each side grows by 5
	if Collides(a, b, 0) {
		t.Error("Boxes 5 apart should not collide without padding")
	}
	if !Collides(a, b, 5) {
		t.Error("Boxes 5 apart should collide with padding 5")
	}

	touching := LabelBound{X: 20, Y: 0, Width: 20, Height: 10}
	if Collides(a, touching, 0) {
		t.Error("Touching boxes should not collide")
	}
	if !Collides(a, a, 0) {
		t.Error("A box should collide with itself")
	}
}

func TestLabelAnchorGap(t *testing.T) {
	opts := DefaultPieOptions()

	direct := LabelAnchor(PieSegment{Percentage: 50}, 90, testGeometry, opts)
	if math.Abs(direct.X-320) > 1e-9 || math.Abs(direct.Y-200) > 1e-9 {
		t.Errorf("Direct anchor at 90° = %+v, want (320,200)", direct)
	}

	leader := LabelAnchor(PieSegment{Percentage: 2}, 0, testGeometry, opts)
	if math.Abs(leader.X-200) > 1e-9 || math.Abs(leader.Y-70) > 1e-9 {
		t.Errorf("Leader anchor at 0° = %+v, want (200,70)", leader)
	}

	bottom := testGeometry.PolarPoint(100, 180)
	if math.Abs(bottom.X-200) > 1e-9 || math.Abs(bottom.Y-300) > 1e-9 {
		t.Errorf("PolarPoint at 180° = %+v, want (200,300)", bottom)
	}
}

func TestLabelBoundsSize(t *testing.T) {
	opts := DefaultPieOptions()
	opts.LabelFormat = LabelCategory
	segs, err := LayoutPie([]float64{1}, []string{"abc"}, opts)
	if err != nil {
		t.Fatalf("LayoutPie failed: %v", err)
	}

	bounds := LabelBounds(segs, []float64{30}, testGeometry, opts, ApproxMeasurer{})
	if math.Abs(bounds[0].Width-21.6) > 1e-9 {
		t.Errorf("Width = %v, want 21.6", bounds[0].Width)
	}
	if math.Abs(bounds[0].Height-12*LineHeight) > 1e-9 {
		t.Errorf("Height = %v, want %v", bounds[0].Height, 12*LineHeight)
	}
	if math.Abs(bounds[0].Angle-210) > 1e-9 {
		t.Errorf("Angle = %v, want 210 (mid 180 plus offset 30)", bounds[0].Angle)
	}
}

func TestResolveTopMergesIntoOthers(t *testing.T) {
	pie, err := NewPie([]float64{96, 2, 2}, []string{"Big", "A", "B"}, DefaultPieOptions())
	if err != nil {
		t.Fatalf("NewPie failed: %v", err)
	}

	res := pie.ResolveTop(testGeometry, ApproxMeasurer{})
	if !res.Success || res.Iterations != 2 {
		t.Errorf("ResolveTop = %+v, want success after 2 iterations", res)
	}

	segs := pie.Segments()
	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments after merging, got %d", len(segs))
	}
	if segs[0].Label != "Big" || segs[0].Value != 96 {
		t.Errorf("Unexpected first segment: %+v", segs[0])
	}
	others := segs[1]
	if others.Label != DefaultOthersLabel || others.Value != 4 || others.Percentage != 4 {
		t.Errorf("Unexpected aggregate: %+v", others)
	}
	if math.Abs(others.MidAngle()-352.8) > 1e-9 {
		t.Errorf("Aggregate mid-angle = %v, want 352.8", others.MidAngle())
	}
	if pie.Total() != 100 {
		t.Errorf("Merging changed the total: %v", pie.Total())
	}

	if !pie.HasSnapshot() {
		t.Fatal("Expected a snapshot after merging")
	}
	pie.Restore()
	values, labels := pie.Data()
	if len(values) != 3 || labels[0] != "Big" || labels[1] != "A" || labels[2] != "B" {
		t.Errorf("Restore gave %v %v", values, labels)
	}
}

func TestResolveTopNoCollision(t *testing.T) {
	pie, err := NewPie([]float64{50, 50}, []string{"left", "right"}, DefaultPieOptions())
	if err != nil {
		t.Fatalf("NewPie failed: %v", err)
	}

	res := pie.ResolveTop(testGeometry, ApproxMeasurer{})
	if !res.Success || res.Iterations != 0 {
		t.Errorf("ResolveTop = %+v, want immediate success", res)
	}
	if pie.HasSnapshot() {
		t.Error("No merge should mean no snapshot")
	}

	// a second run over a resolved pie changes nothing
	before := pie.Segments()
	pie.ResolveTop(testGeometry, ApproxMeasurer{})
	after := pie.Segments()
	if len(before) != len(after) {
		t.Errorf("Second ResolveTop changed the layout")
	}
}

func TestResolveTopZeroTotal(t *testing.T) {
	pie, err := NewPie([]float64{0, 0, 0}, []string{"a", "b", "c"}, DefaultPieOptions())
	if err != nil {
		t.Fatalf("NewPie failed: %v", err)
	}
	res := pie.ResolveTop(testGeometry, ApproxMeasurer{})
	if !res.Success || len(pie.Segments()) != 3 {
		t.Errorf("Zero-total pie should be left alone, got %+v with %d segments", res, len(pie.Segments()))
	}
}

func bottomPie(t *testing.T, opts PieOptions) *Pie {
	t.Helper()
	opts.StartAngle = 170
	pie, err := NewPie([]float64{48, 2, 2, 48}, []string{"A", "B", "C", "D"}, opts)
	if err != nil {
		t.Fatalf("NewPie failed: %v", err)
	}
	return pie
}

func TestResolveBottomShiftsClockwise(t *testing.T) {
	pie := bottomPie(t, DefaultPieOptions())

	segs := pie.Segments()
	wantOrder := []string{"A", "D", "B", "C"}
	for i, seg := range segs {
		if seg.Label != wantOrder[i] {
			t.Fatalf("segs[%d] = %q, want %q", i, seg.Label, wantOrder[i])
		}
	}

	res := pie.ResolveBottom(testGeometry, ApproxMeasurer{})
	if !res.Success || res.Iterations != 9 {
		t.Errorf("ResolveBottom = %+v, want success after 9 iterations", res)
	}

	offsets := pie.Offsets()
	want := []float64{0, 0, 0, 18}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("offsets = %v, want %v", offsets, want)
			break
		}
	}

	bounds := pie.LabelBounds(testGeometry, ApproxMeasurer{})
	if pairs := CollidingPairs(bounds, pie.Options().Padding); len(pairs) != 0 {
		t.Errorf("Labels still collide: %v", pairs)
	}
}

func TestResolveBottomBudgetExhausted(t *testing.T) {
	opts := DefaultPieOptions()
	opts.BottomIterations = 3
	pie := bottomPie(t, opts)

	res := pie.ResolveBottom(testGeometry, ApproxMeasurer{})
	if res.Success || res.Iterations != 3 {
		t.Errorf("ResolveBottom = %+v, want failure after 3 iterations", res)
	}
	if got := pie.Offsets()[3]; got != 6 {
		t.Errorf("Expected offset 6 after 3 shifts, got %v", got)
	}
}

func TestResolveBottomResetsOffsets(t *testing.T) {
	pie := bottomPie(t, DefaultPieOptions())

	pie.ResolveBottom(testGeometry, ApproxMeasurer{})
	first := pie.Offsets()
	pie.ResolveBottom(testGeometry, ApproxMeasurer{})
	second := pie.Offsets()

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Repeated ResolveBottom gave %v then %v", first, second)
			break
		}
	}
}

func TestResolveRunsBothPasses(t *testing.T) {
	pie, err := NewPie([]float64{96, 2, 2}, []string{"Big", "A", "B"}, DefaultPieOptions())
	if err != nil {
		t.Fatalf("NewPie failed: %v", err)
	}
	top, bottom := pie.Resolve(testGeometry, ApproxMeasurer{})
	if !top.Success || !bottom.Success {
		t.Errorf("Resolve = %+v, %+v", top, bottom)
	}
	if len(pie.Offsets()) != len(pie.Segments()) {
		t.Error("Offsets should match the merged segment count")
	}
}
