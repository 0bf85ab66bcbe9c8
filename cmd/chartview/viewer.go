package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
	"github.com/ha1tch/chart-toolkit/pkg/chartfile"
)

// Nominal pixel size of one terminal cell. Layouts are computed in pixels
// and mapped back to cells.
const (
	cellW = 8.0
	cellH = 16.0
)

var (
	styleDefault = tcell.StyleDefault
	styleAxis    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// cellMeasurer measures text in terminal columns.
var cellMeasurer = chart.MeasureFunc(func(text string, _ float64) float64 {
	return float64(runewidth.StringWidth(text)) * cellW
})

// Viewer holds the screen and the current layout.
type Viewer struct {
	screen tcell.Screen
	cfg    chartfile.Config
	series []chart.Series
	layout *chartfile.ChartLayout
	status string
	err    error
}

func (v *Viewer) run() {
	v.relayout()
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.relayout()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		}
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'r':
			v.toggleMerge()
		}
	}
	return false
}

// relayout fits the chart to the screen, leaving the last row for status.
func (v *Viewer) relayout() {
	cols, rows := v.screen.Size()
	cfg := v.cfg
	cfg.Width = maxInt(cols, 10) * int(cellW)
	cfg.Height = maxInt(rows-1, 5) * int(cellH)
	cfg.Font.Size = cellH / chart.LineHeight

	l, err := chartfile.Layout(cfg, v.series, cellMeasurer)
	if err != nil {
		v.layout = nil
		v.status = err.Error()
		return
	}
	v.layout = l
	v.status = ""
}

func (v *Viewer) toggleMerge() {
	if v.layout == nil || v.layout.Pie == nil {
		v.status = "merge only applies to pie charts"
		return
	}
	if v.layout.Pie.ToggleMerge(cellMeasurer) {
		v.status = "merged small labels"
	} else {
		v.status = "restored all categories"
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()

	if v.layout != nil {
		if v.layout.Pie != nil {
			v.drawPie(v.layout.Pie)
		} else {
			v.drawAxes()
			v.drawBars()
			v.drawSeries()
		}
		if t := v.layout.Config.Title; t != "" {
			v.drawString((cols-runewidth.StringWidth(t))/2, 0, t, styleDefault.Bold(true))
		}
	}

	status := v.status
	style := styleStatus
	if v.layout == nil {
		style = styleError
	} else if status == "" {
		status = v.summary()
	}
	v.drawString(0, rows-1, fitText(status+"  (q quit, r merge/restore)", cols), style)
}

func (v *Viewer) summary() string {
	l := v.layout
	if l.Pie != nil {
		return fmt.Sprintf("pie: %d segments, top %s, bottom %s",
			len(l.Pie.Wedges), resultText(l.Pie.Top), resultText(l.Pie.Bottom))
	}
	if l.Calendar != nil {
		return fmt.Sprintf("%s: %d days, %s labels", l.Config.Type, l.Calendar.Span+1, l.Calendar.Mode)
	}
	return fmt.Sprintf("%s: %d series", l.Config.Type, len(l.Series))
}

func resultText(r chart.ResolveResult) string {
	if r.Success {
		return fmt.Sprintf("ok (%d)", r.Iterations)
	}
	return fmt.Sprintf("unresolved (%d)", r.Iterations)
}

// toCell maps layout pixels to a terminal cell.
func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / cellW)), int(math.Floor(y / cellH))
}

func (v *Viewer) drawAxes() {
	p := v.layout.Plot
	left, top := toCell(p.Left, p.Top)
	right, bottom := toCell(p.Right, p.Bottom)

	for y := top; y < bottom; y++ {
		v.screen.SetContent(left, y, '│', nil, styleAxis)
	}
	for x := left + 1; x <= right; x++ {
		v.screen.SetContent(x, bottom, '─', nil, styleAxis)
	}
	v.screen.SetContent(left, bottom, '└', nil, styleAxis)

	for _, t := range v.layout.YTicks {
		_, y := toCell(0, t.Pos)
		label := t.Lines[0]
		v.drawString(left-1-runewidth.StringWidth(label), y, label, styleDefault)
		v.screen.SetContent(left, y, '┤', nil, styleAxis)
	}

	// skip x labels that would overwrite the previous one
	next := 0
	for _, t := range v.layout.XTicks {
		x, _ := toCell(t.Pos, 0)
		width := 0
		for _, line := range t.Lines {
			width = maxInt(width, runewidth.StringWidth(line))
		}
		start := x - width/2
		if start < next {
			continue
		}
		v.screen.SetContent(x, bottom, '┴', nil, styleAxis)
		for i, line := range t.Lines {
			v.drawString(x-runewidth.StringWidth(line)/2, bottom+1+i, line, styleDefault)
		}
		next = start + width + 1
	}
}

func (v *Viewer) drawBars() {
	for _, b := range v.layout.Bars {
		x0, y0 := toCell(b.X, b.Y)
		x1, y1 := toCell(b.X+b.W, b.Y+b.H)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		style := styleDefault.Foreground(tcellColor(b.Color))
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				v.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}
}

func (v *Viewer) drawSeries() {
	l := v.layout
	if l.Config.Type == chartfile.TypeLine {
		for _, s := range l.Series {
			style := styleDefault.Foreground(tcellColor(s.Color))
			v.drawPolyline(s.Points, '·', style)
			for _, p := range s.Points {
				x, y := toCell(p.X, p.Y)
				v.screen.SetContent(x, y, '●', nil, style)
			}
		}
	}
	if len(l.Curve) > 0 {
		v.drawPolyline(chart.SampleCurve(l.Curve, 8), '•', styleDefault.Bold(true))
	}
}

// drawPolyline steps along each segment one cell at a time.
func (v *Viewer) drawPolyline(pts []chart.Point, r rune, style tcell.Style) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := toCell(pts[i-1].X, pts[i-1].Y)
		x1, y1 := toCell(pts[i].X, pts[i].Y)
		steps := maxInt(absInt(x1-x0), absInt(y1-y0))
		for s := 0; s <= steps; s++ {
			t := 0.0
			if steps > 0 {
				t = float64(s) / float64(steps)
			}
			x := int(math.Round(float64(x0) + t*float64(x1-x0)))
			y := int(math.Round(float64(y0) + t*float64(y1-y0)))
			v.screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (v *Viewer) drawPie(p *chartfile.PieChart) {
	g := p.Geometry
	x0, y0 := toCell(g.CX-g.Radius, g.CY-g.Radius)
	x1, y1 := toCell(g.CX+g.Radius, g.CY+g.Radius)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			// sample the cell centre
			dx := (float64(x)+0.5)*cellW - g.CX
			dy := (float64(y)+0.5)*cellH - g.CY
			if dx*dx+dy*dy > g.Radius*g.Radius {
				continue
			}
			i := wedgeAt(p.Wedges, cellAngle(dx, dy))
			if i < 0 {
				continue
			}
			v.screen.SetContent(x, y, '█', nil, styleDefault.Foreground(tcellColor(p.Wedges[i].Color)))
		}
	}

	for _, lb := range p.Labels {
		if lb.Leader {
			v.drawPolyline([]chart.Point{lb.From, lb.To}, '·', styleAxis)
		}
		x, y := toCell(lb.Bound.X, lb.Bound.Y)
		v.drawString(x-runewidth.StringWidth(lb.Text)/2, y, lb.Text, styleDefault)
	}
}

// cellAngle returns the angle of an offset from the pie centre in degrees
// clockwise from 12 o'clock.
func cellAngle(dx, dy float64) float64 {
	a := math.Atan2(dx, -dy) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// wedgeAt returns the index of the wedge covering angle, or -1.
func wedgeAt(wedges []chartfile.Wedge, angle float64) int {
	for i, w := range wedges {
		sweep := w.Segment.Sweep()
		if sweep <= 0 {
			continue
		}
		rel := math.Mod(angle-w.Segment.StartAngle, 360)
		if rel < 0 {
			rel += 360
		}
		if rel < sweep || sweep >= 360 {
			return i
		}
	}
	return -1
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fitText truncates s to width terminal columns.
func fitText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
