package chart

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// LabelFormat selects the fields shown in a pie label.
type LabelFormat int

const (
	LabelCategory             LabelFormat = iota // "Tokyo"
	LabelPercent                                 // "12.3%"
	LabelValue                                   // "1,234"
	LabelCategoryPercent                         // "Tokyo 12.3%"
	LabelCategoryValue                           // "Tokyo 1,234"
	LabelCategoryValuePercent                    // "Tokyo 1,234 (12.3%)"
)

var labelFormatNames = map[string]LabelFormat{
	"category":               LabelCategory,
	"percent":                LabelPercent,
	"value":                  LabelValue,
	"category_percent":       LabelCategoryPercent,
	"category_value":         LabelCategoryValue,
	"category_value_percent": LabelCategoryValuePercent,
}

// ParseLabelFormat resolves a label format name such as "category_percent".
func ParseLabelFormat(s string) (LabelFormat, error) {
	f, ok := labelFormatNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LabelCategory, invalidArg("label format", s, "unknown format")
	}
	return f, nil
}

func (f LabelFormat) String() string {
	for name, v := range labelFormatNames {
		if v == f {
			return name
		}
	}
	return "LabelFormat(" + strconv.Itoa(int(f)) + ")"
}

// LabelPlacement selects how far outside the pie a label sits.
type LabelPlacement int

const (
	PlacementAuto   LabelPlacement = iota // leader lines for small segments only
	PlacementDirect                       // always next to the segment
	PlacementLeader                       // always with a leader line
)

// ParseLabelPlacement resolves "auto", "direct" or "leader".
func ParseLabelPlacement(s string) (LabelPlacement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PlacementAuto, nil
	case "direct":
		return PlacementDirect, nil
	case "leader":
		return PlacementLeader, nil
	}
	return PlacementAuto, invalidArg("label placement", s, "must be auto, direct or leader")
}

// DefaultOthersLabel names the synthetic aggregate segment.
const DefaultOthersLabel = "その他"

// Labels always treated as the aggregate segment, whatever OthersLabel says.
var othersFallbacks = []string{"その他", "Others"}

// PieOptions configures pie layout and label resolution. Assemble it from
// DefaultPieOptions field by field, then Validate.
type PieOptions struct {
	StartAngle     float64 // degrees clockwise from 12 o'clock
	OthersLabel    string
	LabelFormat    LabelFormat
	ValueFormat    NumberFormat
	Placement      LabelPlacement
	SmallThreshold float64 // percentage at or below which a segment gets a leader line
	FontSize       float64
	Padding        float64 // added on every side of a label box before collision tests

	TopWindow     float64 // half-width of the seam window around 0°
	TopIterations int

	BottomWindow     float64 // half-width of the window around 180°
	BottomIterations int
	BottomStep       float64 // degrees added per shift
}

// DefaultPieOptions returns the standard layout parameters.
func DefaultPieOptions() PieOptions {
	return PieOptions{
		StartAngle:       0,
		OthersLabel:      DefaultOthersLabel,
		LabelFormat:      LabelCategoryPercent,
		ValueFormat:      FormatGrouped,
		Placement:        PlacementAuto,
		SmallThreshold:   5,
		FontSize:         12,
		Padding:          5,
		TopWindow:        20,
		TopIterations:    10,
		BottomWindow:     15,
		BottomIterations: 20,
		BottomStep:       2,
	}
}

// Validate checks every field against its allowed range.
func (o PieOptions) Validate() error {
	switch {
	case !isFinite(o.StartAngle):
		return invalidArg("start angle", o.StartAngle, "must be finite")
	case o.LabelFormat < LabelCategory || o.LabelFormat > LabelCategoryValuePercent:
		return invalidArg("label format", int(o.LabelFormat), "unknown format")
	case o.ValueFormat < FormatPlain || o.ValueFormat > FormatPercentPlain:
		return invalidArg("value format", int(o.ValueFormat), "unknown format")
	case o.Placement < PlacementAuto || o.Placement > PlacementLeader:
		return invalidArg("label placement", int(o.Placement), "unknown placement")
	case o.SmallThreshold < 0 || o.SmallThreshold > 100:
		return invalidArg("small threshold", o.SmallThreshold, "must be within [0,100]")
	case o.FontSize <= 0:
		return invalidArg("font size", o.FontSize, "must be > 0")
	case o.Padding < 0:
		return invalidArg("padding", o.Padding, "must be >= 0")
	case o.TopWindow <= 0 || o.TopWindow > 180:
		return invalidArg("top window", o.TopWindow, "must be within (0,180]")
	case o.TopIterations < 1:
		return invalidArg("top iterations", o.TopIterations, "must be >= 1")
	case o.BottomWindow <= 0 || o.BottomWindow > 180:
		return invalidArg("bottom window", o.BottomWindow, "must be within (0,180]")
	case o.BottomIterations < 1:
		return invalidArg("bottom iterations", o.BottomIterations, "must be >= 1")
	case o.BottomStep <= 0:
		return invalidArg("bottom step", o.BottomStep, "must be > 0")
	}
	return nil
}

// IsOthers reports whether label names the aggregate segment.
func (o PieOptions) IsOthers(label string) bool {
	if o.OthersLabel != "" && label == o.OthersLabel {
		return true
	}
	for _, f := range othersFallbacks {
		if label == f {
			return true
		}
	}
	return false
}

// UsesLeader reports whether seg's label is placed with a leader line.
func (o PieOptions) UsesLeader(seg PieSegment) bool {
	switch o.Placement {
	case PlacementDirect:
		return false
	case PlacementLeader:
		return true
	}
	return seg.Percentage <= o.SmallThreshold
}

// PieSegment is one wedge. Angles are degrees clockwise from 12 o'clock.
type PieSegment struct {
	Value      float64
	Label      string
	StartAngle float64
	EndAngle   float64
	Percentage float64 // one decimal place
	Others     bool
}

// Sweep returns the angular size of the segment.
func (s PieSegment) Sweep() float64 {
	return s.EndAngle - s.StartAngle
}

// MidAngle returns the angle halfway through the segment.
func (s PieSegment) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// LabelText renders the segment label according to opts.LabelFormat.
func LabelText(seg PieSegment, opts PieOptions) string {
	pct := formatPercentage(seg.Percentage)
	val := opts.ValueFormat.Format(seg.Value)
	switch opts.LabelFormat {
	case LabelPercent:
		return pct
	case LabelValue:
		return val
	case LabelCategoryPercent:
		return seg.Label + " " + pct
	case LabelCategoryValue:
		return seg.Label + " " + val
	case LabelCategoryValuePercent:
		return seg.Label + " " + val + " (" + pct + ")"
	}
	return seg.Label
}

type pieEntry struct {
	value float64
	label string
}

// LayoutPie assigns angles. Only finite, non-negative values are kept; the
// rest are sorted by descending value with the "Others" entry last, then
// laid out from opts.StartAngle. Sweeps total 360° when the sum is positive.
func LayoutPie(values []float64, labels []string, opts PieOptions) ([]PieSegment, error) {
	if len(values) != len(labels) {
		return nil, invalidArg("labels", len(labels), "have %d values but %d labels", len(values), len(labels))
	}

	entries := make([]pieEntry, 0, len(values))
	total := 0.0
	for i, v := range values {
		if !isFinite(v) || v < 0 {
			continue
		}
		entries = append(entries, pieEntry{v, labels[i]})
		total += v
	}

	sort.SliceStable(entries, func(a, b int) bool {
		oa, ob := opts.IsOthers(entries[a].label), opts.IsOthers(entries[b].label)
		if oa != ob {
			return ob
		}
		return entries[a].value > entries[b].value
	})

	segs := make([]PieSegment, len(entries))
	angle := opts.StartAngle
	for i, e := range entries {
		var sweep, pct float64
		if total > 0 {
			sweep = e.value / total * 360
			pct = roundTo(e.value/total*100, 1)
		}
		segs[i] = PieSegment{
			Value:      e.value,
			Label:      e.label,
			StartAngle: angle,
			EndAngle:   angle + sweep,
			Percentage: pct,
			Others:     opts.IsOthers(e.label),
		}
		angle += sweep
	}
	if total > 0 && len(segs) > 0 {
		segs[len(segs)-1].EndAngle = opts.StartAngle + 360
	}
	return segs, nil
}

// MergeSnapshot holds the data of a pie before any "Others" merge.
type MergeSnapshot struct {
	Values []float64
	Labels []string
}

// Pie owns a category list and its segment layout. The layout is rebuilt
// whenever the data changes. A Pie is not safe for concurrent mutation.
type Pie struct {
	opts     PieOptions
	values   []float64
	labels   []string
	segments []PieSegment
	offsets  []float64
	snapshot *MergeSnapshot
}

// NewPie validates opts and lays out the data.
func NewPie(values []float64, labels []string, opts PieOptions) (*Pie, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := &Pie{opts: opts}
	if err := p.SetData(values, labels); err != nil {
		return nil, err
	}
	return p, nil
}

// SetData replaces the category list, discarding offsets and any snapshot.
func (p *Pie) SetData(values []float64, labels []string) error {
	if err := p.setData(values, labels); err != nil {
		return err
	}
	p.snapshot = nil
	return nil
}

func (p *Pie) setData(values []float64, labels []string) error {
	segs, err := LayoutPie(values, labels, p.opts)
	if err != nil {
		return err
	}
	p.values = append([]float64(nil), values...)
	p.labels = append([]string(nil), labels...)
	p.segments = segs
	p.offsets = make([]float64, len(segs))
	return nil
}

// Options returns the options the pie was built with.
func (p *Pie) Options() PieOptions {
	return p.opts
}

// Segments returns a copy of the current layout.
func (p *Pie) Segments() []PieSegment {
	return append([]PieSegment(nil), p.segments...)
}

// Data returns copies of the current values and labels.
func (p *Pie) Data() ([]float64, []string) {
	return append([]float64(nil), p.values...), append([]string(nil), p.labels...)
}

// Total sums the laid-out segment values.
func (p *Pie) Total() float64 {
	total := 0.0
	for _, s := range p.segments {
		total += s.Value
	}
	return total
}

// Offsets returns the per-segment label angle offsets from the last
// ResolveBottom.
func (p *Pie) Offsets() []float64 {
	return append([]float64(nil), p.offsets...)
}

// Snapshot captures the current data so a later Restore can undo merges.
func (p *Pie) Snapshot() {
	values, labels := p.Data()
	p.snapshot = &MergeSnapshot{Values: values, Labels: labels}
}

// HasSnapshot reports whether Restore has something to restore.
func (p *Pie) HasSnapshot() bool {
	return p.snapshot != nil
}

// Restore reinstates the snapshot and lays the pie out again. It reports
// false when no snapshot exists.
func (p *Pie) Restore() bool {
	if p.snapshot == nil {
		return false
	}
	snap := p.snapshot
	p.snapshot = nil
	// snapshot data already passed LayoutPie once
	_ = p.setData(snap.Values, snap.Labels)
	return true
}

// Merge folds the segments at the given indexes into the "Others" segment,
// which is created if needed and always placed last, and lays the pie out
// again. Any existing aggregate entries are combined into one.
func (p *Pie) Merge(indices []int) error {
	marked := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(p.segments) {
			return invalidArg("segment index", i, "out of range [0,%d)", len(p.segments))
		}
		marked[i] = true
	}
	if len(marked) == 0 {
		return nil
	}

	values := make([]float64, 0, len(p.segments))
	labels := make([]string, 0, len(p.segments))
	othersLabel := p.opts.OthersLabel
	if othersLabel == "" {
		othersLabel = DefaultOthersLabel
	}
	foundOthers := false
	othersValue := 0.0

	for i, s := range p.segments {
		switch {
		case s.Others:
			if !foundOthers {
				othersLabel = s.Label
				foundOthers = true
			}
			othersValue += s.Value
		case marked[i]:
			othersValue += s.Value
		default:
			values = append(values, s.Value)
			labels = append(labels, s.Label)
		}
	}
	values = append(values, othersValue)
	labels = append(labels, othersLabel)

	return p.setData(values, labels)
}

// normalizeAngle maps a into [0,360).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
