// Chart layout assembly.
// Turns a config plus series into pixel-space geometry shared by the SVG,
// PNG and terminal renderers.

package chartfile

import (
	"fmt"
	"math"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
)

// Spacing in pixels.
const (
	marginOuter = 16
	tickLength  = 5
	labelGap    = 6
	maxXTicks   = 12 // histogram edge labels before thinning
)

// PlotArea is the rectangle enclosed by the axes.
type PlotArea struct {
	Left, Top, Right, Bottom float64
}

func (a PlotArea) Width() float64  { return a.Right - a.Left }
func (a PlotArea) Height() float64 { return a.Bottom - a.Top }

// AxisTick is a label placed along an axis. Pos is the pixel coordinate
// along the axis; X ticks may carry a second line.
type AxisTick struct {
	Pos   float64
	Lines []string
}

// Note is an annotation anchored to a data point.
type Note struct {
	At   chart.Point
	Text string
}

// SeriesPath is one series in pixel coordinates.
type SeriesPath struct {
	Name   string
	Color  colorful.Color
	Points []chart.Point
	Notes  []Note
}

// BarRect is a filled bar. X, Y is the top-left corner.
type BarRect struct {
	X, Y, W, H float64
	Color      colorful.Color
}

// Wedge is one coloured pie segment.
type Wedge struct {
	Segment chart.PieSegment
	Color   colorful.Color
}

// PieLabel is a placed pie label with its optional leader line.
type PieLabel struct {
	Text     string
	Bound    chart.LabelBound
	Leader   bool
	From, To chart.Point
}

// PieChart carries the pie model, its geometry and the resolver outcome.
type PieChart struct {
	Pie      *chart.Pie
	Geometry chart.PieGeometry
	Top      chart.ResolveResult
	Bottom   chart.ResolveResult
	Wedges   []Wedge
	Labels   []PieLabel
}

// ChartLayout is a fully positioned chart.
type ChartLayout struct {
	Config   Config
	Width    float64
	Height   float64
	FontSize float64
	Format   chart.NumberFormat
	Plot     PlotArea

	YScale chart.TickScale
	YTicks []AxisTick
	XTicks []AxisTick

	Calendar   *chart.CalendarAxis // date x-axis, nil otherwise
	Categories []string            // category x-axis, nil otherwise

	Series []SeriesPath
	Bars   []BarRect

	Bins        chart.BinSet
	Frequencies []int
	Curve       []chart.Bezier // pixel coordinates

	Pie *PieChart
}

// Layout positions every element of the chart described by cfg. A nil
// measurer falls back to chart.ApproxMeasurer.
func Layout(cfg Config, series []chart.Series, m chart.TextMeasurer) (*ChartLayout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		m = chart.ApproxMeasurer{}
	}

	var data []chart.Series
	for _, s := range series {
		if len(s.Entries) > 0 {
			data = append(data, s.Sorted())
		}
	}
	if len(data) == 0 {
		return nil, ErrNoData
	}

	f, _ := cfg.NumberFormat()
	l := &ChartLayout{
		Config:   cfg,
		Width:    float64(cfg.Width),
		Height:   float64(cfg.Height),
		FontSize: cfg.Font.Size,
		Format:   f,
	}

	var err error
	switch cfg.Type {
	case TypeLine:
		err = l.layoutXY(data, m, false)
	case TypeBar:
		err = l.layoutXY(data, m, true)
	case TypeHistogram:
		err = l.layoutHistogram(data, m)
	case TypePie:
		err = l.layoutPie(data[0], m)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownChartType, cfg.Type)
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (l *ChartLayout) lineHeight() float64 {
	return l.FontSize * chart.LineHeight
}

func (l *ChartLayout) titleHeight() float64 {
	if l.Config.Title == "" {
		return 0
	}
	return l.FontSize * 1.5 * chart.LineHeight
}

// plotArea reserves room for the y labels on the left and xLines lines of
// x labels underneath.
func (l *ChartLayout) plotArea(yTexts []string, xLines int, m chart.TextMeasurer) PlotArea {
	left := marginOuter + maxTextWidth(yTexts, l.FontSize, m) + labelGap + tickLength
	if l.Config.Axis.YTitle != "" {
		left += l.lineHeight() + labelGap
	}
	bottom := l.Height - marginOuter - float64(xLines)*l.lineHeight() - labelGap - tickLength
	if l.Config.Axis.XTitle != "" {
		bottom -= l.lineHeight() + labelGap
	}
	return PlotArea{
		Left:   left,
		Top:    marginOuter + l.titleHeight() + l.lineHeight()/2,
		Right:  l.Width - marginOuter,
		Bottom: bottom,
	}
}

// yPos maps an axis value (in label units) to a pixel row.
func (l *ChartLayout) yPos(label float64) float64 {
	span := l.YScale.Max - l.YScale.Min
	if span <= 0 {
		return l.Plot.Bottom
	}
	return l.Plot.Bottom - (label-l.YScale.Min)/span*l.Plot.Height()
}

// yValue maps a data value to a pixel row.
func (l *ChartLayout) yValue(v float64) float64 {
	return l.Plot.Bottom - l.YScale.Ratio(v)*l.Plot.Height()
}

func (l *ChartLayout) buildYTicks(texts []string) {
	l.YTicks = make([]AxisTick, len(l.YScale.Labels))
	for i, v := range l.YScale.Labels {
		l.YTicks[i] = AxisTick{Pos: l.yPos(v), Lines: []string{texts[i]}}
	}
}

func (l *ChartLayout) layoutXY(data []chart.Series, m chart.TextMeasurer, bars bool) error {
	l.YScale = chart.SeriesTicks(data, l.Format)
	yTexts := l.YScale.Texts(l.Format)

	dated := false
	switch l.Config.XAxisMode() {
	case AxisDate:
		dated = true
	case AxisAuto:
		dated = allDates(data)
	}

	xLines := 1
	if dated {
		xLines = 2
	}
	l.Plot = l.plotArea(yTexts, xLines, m)
	l.buildYTicks(yTexts)

	var xOf func(position string) float64
	var band float64
	if dated {
		cal, err := chart.NewCalendarAxis(data)
		if err != nil {
			return err
		}
		l.Calendar = cal
		xOf = func(position string) float64 {
			t, _ := chart.ParseDate(position)
			return l.Plot.Left + cal.Position(float64(chart.DayIndex(t)), l.Plot.Width())
		}
		band = l.Plot.Width() / (cal.ExtendedMax - cal.ExtendedMin)
		for _, tick := range cal.Ticks {
			l.XTicks = append(l.XTicks, AxisTick{
				Pos:   l.Plot.Left + cal.Position(float64(tick.Day), l.Plot.Width()),
				Lines: []string{tick.FirstLine, tick.SecondLine},
			})
		}
	} else {
		l.Categories = chart.Categories(data)
		index := make(map[string]int, len(l.Categories))
		band = l.Plot.Width() / float64(len(l.Categories))
		for i, c := range l.Categories {
			index[c] = i
			l.XTicks = append(l.XTicks, AxisTick{
				Pos:   l.Plot.Left + (float64(i)+0.5)*band,
				Lines: []string{c},
			})
		}
		xOf = func(position string) float64 {
			return l.Plot.Left + (float64(index[position])+0.5)*band
		}
	}

	colors := Palette(len(data))
	base := l.yValue(0)
	barWidth := band * 0.8 / float64(len(data))
	for s, series := range data {
		path := SeriesPath{Name: series.Name, Color: colors[s]}
		for _, e := range series.Entries {
			if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
				continue
			}
			p := chart.Point{X: xOf(e.Position), Y: l.yValue(e.Value)}
			path.Points = append(path.Points, p)
			if e.Annotation != "" {
				path.Notes = append(path.Notes, Note{At: p, Text: e.Annotation})
			}
			if bars {
				l.Bars = append(l.Bars, BarRect{
					X:     p.X - band*0.4 + float64(s)*barWidth,
					Y:     math.Min(p.Y, base),
					W:     barWidth,
					H:     math.Abs(base - p.Y),
					Color: colors[s],
				})
			}
		}
		l.Series = append(l.Series, path)
	}
	return nil
}

func allDates(data []chart.Series) bool {
	for _, s := range data {
		for _, e := range s.Entries {
			if _, err := chart.ParseDate(e.Position); err != nil {
				return false
			}
		}
	}
	return true
}

func (l *ChartLayout) layoutHistogram(data []chart.Series, m chart.TextMeasurer) error {
	var values []float64
	for _, s := range data {
		values = append(values, s.Values()...)
	}
	if len(values) == 0 {
		return ErrNoData
	}

	opts := l.Config.BinOptions()
	if err := opts.ValidateFor(values); err != nil {
		return err
	}
	l.Bins, l.Frequencies = chart.Histogram(values, opts)
	counts := make([]float64, len(l.Frequencies))
	for i, f := range l.Frequencies {
		counts[i] = float64(f)
	}
	l.YScale = chart.LinearTicks(counts, false)
	yTexts := l.YScale.Texts(chart.FormatGrouped)

	l.Plot = l.plotArea(yTexts, 1, m)
	l.buildYTicks(yTexts)

	span := l.Bins.Max() - l.Bins.Min()
	xOf := func(v float64) float64 {
		if span <= 0 {
			return l.Plot.Left
		}
		return l.Plot.Left + (v-l.Bins.Min())/span*l.Plot.Width()
	}

	step := int(math.Ceil(float64(len(l.Bins.Edges)) / maxXTicks))
	for i, edge := range l.Bins.Edges {
		if i%step != 0 && i != len(l.Bins.Edges)-1 {
			continue
		}
		l.XTicks = append(l.XTicks, AxisTick{Pos: xOf(edge), Lines: []string{formatEdge(edge, l.Format)}})
	}

	color := Palette(1)[0]
	base := l.yValue(0)
	for i, f := range l.Frequencies {
		x0, x1 := xOf(l.Bins.Edges[i]), xOf(l.Bins.Edges[i+1])
		y := l.yValue(float64(f))
		l.Bars = append(l.Bars, BarRect{X: x0, Y: y, W: x1 - x0, H: base - y, Color: color})
	}

	if l.Config.Histogram.Smooth {
		maxFreq := 0
		for _, f := range l.Frequencies {
			if f > maxFreq {
				maxFreq = f
			}
		}
		toPixel := func(p chart.Point) chart.Point {
			return chart.Point{
				X: l.Plot.Left + p.X*l.Plot.Width(),
				Y: l.yValue(p.Y * float64(maxFreq)),
			}
		}
		for _, seg := range chart.HistogramCurve(l.Bins, l.Frequencies) {
			l.Curve = append(l.Curve, chart.Bezier{
				P0: toPixel(seg.P0),
				C1: toPixel(seg.C1),
				C2: toPixel(seg.C2),
				P1: toPixel(seg.P1),
			})
		}
	}
	return nil
}

// formatEdge renders a bin edge, keeping up to two decimals when the edge
// is fractional.
func formatEdge(v float64, f chart.NumberFormat) string {
	if f.IsPercent() || v == math.Round(v) {
		return f.Format(v)
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func (l *ChartLayout) layoutPie(series chart.Series, m chart.TextMeasurer) error {
	opts, err := l.Config.PieOptions()
	if err != nil {
		return err
	}

	values := make([]float64, len(series.Entries))
	labels := make([]string, len(series.Entries))
	for i, e := range series.Entries {
		values[i] = e.Value
		labels[i] = e.Position
	}
	pie, err := chart.NewPie(values, labels, opts)
	if err != nil {
		return err
	}

	// leave room for the widest label on either side
	var texts []string
	for _, seg := range pie.Segments() {
		texts = append(texts, chart.LabelText(seg, opts))
	}
	labelW := maxTextWidth(texts, opts.FontSize, m)
	top := marginOuter + l.titleHeight()
	avail := math.Min(l.Width-2*marginOuter, l.Height-top-marginOuter)
	radius := math.Min(
		(l.Width-2*marginOuter)/2-chart.LeaderLabelGap-labelW,
		(l.Height-top-marginOuter)/2-chart.LeaderLabelGap-opts.FontSize*chart.LineHeight,
	)
	if radius < avail/6 {
		radius = avail / 6
	}

	l.Plot = PlotArea{Left: marginOuter, Top: top, Right: l.Width - marginOuter, Bottom: l.Height - marginOuter}
	l.Pie = &PieChart{
		Pie: pie,
		Geometry: chart.PieGeometry{
			CX:     l.Width / 2,
			CY:     top + (l.Height-top-marginOuter)/2,
			Radius: radius,
		},
	}
	if l.Config.Pie.Resolve {
		l.Pie.Top, l.Pie.Bottom = pie.Resolve(l.Pie.Geometry, m)
	}
	l.Pie.refresh(m)
	return nil
}

// ToggleMerge undoes the "Others" merge when a snapshot exists, or runs the
// resolver passes again otherwise. It reports whether the pie is merged
// afterwards.
func (p *PieChart) ToggleMerge(m chart.TextMeasurer) bool {
	merged := false
	if p.Pie.HasSnapshot() {
		p.Pie.Restore()
		p.Top = chart.ResolveResult{Success: true}
		p.Bottom = p.Pie.ResolveBottom(p.Geometry, m)
	} else {
		p.Top, p.Bottom = p.Pie.Resolve(p.Geometry, m)
		merged = p.Pie.HasSnapshot()
	}
	p.refresh(m)
	return merged
}

// refresh rebuilds wedges and labels from the pie state.
func (p *PieChart) refresh(m chart.TextMeasurer) {
	opts := p.Pie.Options()
	segs := p.Pie.Segments()
	colors := Palette(len(segs))

	p.Wedges = make([]Wedge, len(segs))
	for i, seg := range segs {
		c := colors[i]
		if seg.Others {
			c = colorOthers
		}
		p.Wedges[i] = Wedge{Segment: seg, Color: c}
	}

	bounds := p.Pie.LabelBounds(p.Geometry, m)
	p.Labels = make([]PieLabel, len(bounds))
	for i, b := range bounds {
		seg := segs[b.Segment]
		label := PieLabel{
			Text:   chart.LabelText(seg, opts),
			Bound:  b,
			Leader: opts.UsesLeader(seg),
		}
		if label.Leader {
			label.From = p.Geometry.PolarPoint(p.Geometry.Radius, b.Angle)
			label.To = p.Geometry.PolarPoint(p.Geometry.Radius+chart.LeaderLabelGap/2, b.Angle)
		}
		p.Labels[i] = label
	}
}

func maxTextWidth(texts []string, size float64, m chart.TextMeasurer) float64 {
	w := 0.0
	for _, t := range texts {
		w = math.Max(w, m.TextWidth(t, size))
	}
	return w
}
