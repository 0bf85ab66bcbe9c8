package chartfile

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
)

// RenderSVG writes the chart as a standalone SVG document.
func RenderSVG(w io.Writer, l *ChartLayout) error {
	var buf bytes.Buffer
	writeSVG(&buf, l)
	_, err := w.Write(buf.Bytes())
	return err
}

// SVGString renders the chart to an SVG string.
func SVGString(l *ChartLayout) string {
	var buf bytes.Buffer
	writeSVG(&buf, l)
	return buf.String()
}

func writeSVG(w io.Writer, l *ChartLayout) {
	canvas := svg.New(w)
	canvas.Start(l.Config.Width, l.Config.Height)
	canvas.Rect(0, 0, l.Config.Width, l.Config.Height, "fill:"+colorBackground.Hex())

	fs := l.FontSize
	canvas.Gstyle(fmt.Sprintf("font-family:sans-serif;font-size:%.0fpx;fill:%s", fs, colorText.Hex()))

	if l.Config.Title != "" {
		canvas.Title(l.Config.Title)
		canvas.Text(l.Config.Width/2, px(marginOuter+fs*1.5), l.Config.Title,
			fmt.Sprintf("text-anchor:middle;font-size:%.0fpx;font-weight:bold", fs*1.5))
	}

	if l.Pie != nil {
		svgPie(canvas, l)
	} else {
		svgAxes(canvas, l)
		svgBars(canvas, l)
		if l.Config.Type == TypeLine {
			svgLines(canvas, l)
		}
		svgCurve(canvas, l)
	}

	canvas.Gend()
	canvas.End()
}

func px(v float64) int {
	return int(math.Round(v))
}

func fill(c colorful.Color) string {
	return "fill:" + c.Hex()
}

func svgAxes(canvas *svg.SVG, l *ChartLayout) {
	p := l.Plot
	lh := l.lineHeight()

	// grid first so the axes draw over it
	grid := "stroke:" + colorGrid.Hex() + ";stroke-width:1"
	if l.Config.Axis.GridY {
		for _, t := range l.YTicks {
			canvas.Line(px(p.Left), px(t.Pos), px(p.Right), px(t.Pos), grid)
		}
	}
	if l.Config.Axis.GridX {
		for _, t := range l.XTicks {
			canvas.Line(px(t.Pos), px(p.Top), px(t.Pos), px(p.Bottom), grid)
		}
	}

	axis := "stroke:" + colorAxis.Hex() + ";stroke-width:1"
	canvas.Line(px(p.Left), px(p.Top), px(p.Left), px(p.Bottom), axis)
	canvas.Line(px(p.Left), px(p.Bottom), px(p.Right), px(p.Bottom), axis)

	for _, t := range l.YTicks {
		canvas.Line(px(p.Left-tickLength), px(t.Pos), px(p.Left), px(t.Pos), axis)
		canvas.Text(px(p.Left-tickLength-labelGap), px(t.Pos+l.FontSize*0.35), t.Lines[0], "text-anchor:end")
	}
	for _, t := range l.XTicks {
		canvas.Line(px(t.Pos), px(p.Bottom), px(t.Pos), px(p.Bottom+tickLength), axis)
		for i, line := range t.Lines {
			if line == "" {
				continue
			}
			y := p.Bottom + tickLength + labelGap + l.FontSize*0.8 + float64(i)*lh
			canvas.Text(px(t.Pos), px(y), line, "text-anchor:middle")
		}
	}

	if l.Config.Axis.XTitle != "" {
		y := l.Height - marginOuter
		canvas.Text(px((p.Left+p.Right)/2), px(y), l.Config.Axis.XTitle, "text-anchor:middle")
	}
	if l.Config.Axis.YTitle != "" {
		x := marginOuter + l.FontSize
		y := (p.Top + p.Bottom) / 2
		canvas.TranslateRotate(px(x), px(y), -90)
		canvas.Text(0, 0, l.Config.Axis.YTitle, "text-anchor:middle")
		canvas.Gend()
	}
}

func svgBars(canvas *svg.SVG, l *ChartLayout) {
	for _, b := range l.Bars {
		if b.H <= 0 || b.W <= 0 {
			continue
		}
		canvas.Rect(px(b.X), px(b.Y), maxInt(1, px(b.W)), maxInt(1, px(b.H)),
			fill(b.Color)+";stroke:"+colorBackground.Hex()+";stroke-width:1")
	}
}

func svgLines(canvas *svg.SVG, l *ChartLayout) {
	for _, s := range l.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]int, len(s.Points))
		ys := make([]int, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = px(p.X), px(p.Y)
		}
		canvas.Polyline(xs, ys, "fill:none;stroke-width:2;stroke:"+s.Color.Hex())
		for _, p := range s.Points {
			canvas.Circle(px(p.X), px(p.Y), 3, fill(s.Color))
		}
		for _, n := range s.Notes {
			canvas.Text(px(n.At.X), px(n.At.Y-8), n.Text,
				fmt.Sprintf("text-anchor:middle;font-size:%.0fpx;fill:%s", l.FontSize*0.85, colorAxis.Hex()))
		}
	}
}

func svgCurve(canvas *svg.SVG, l *ChartLayout) {
	if len(l.Curve) == 0 {
		return
	}
	var d strings.Builder
	fmt.Fprintf(&d, "M%.1f,%.1f", l.Curve[0].P0.X, l.Curve[0].P0.Y)
	for _, seg := range l.Curve {
		fmt.Fprintf(&d, " C%.1f,%.1f %.1f,%.1f %.1f,%.1f",
			seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.P1.X, seg.P1.Y)
	}
	canvas.Path(d.String(), "fill:none;stroke-width:2;stroke:"+colorText.Hex())
}

func svgPie(canvas *svg.SVG, l *ChartLayout) {
	g := l.Pie.Geometry
	for _, w := range l.Pie.Wedges {
		if d := wedgePath(g, w.Segment); d != "" {
			canvas.Path(d, fill(w.Color)+";stroke:"+colorBackground.Hex()+";stroke-width:1")
		}
	}

	leader := "stroke:" + colorAxis.Hex() + ";stroke-width:1"
	for _, lb := range l.Pie.Labels {
		if lb.Leader {
			canvas.Line(px(lb.From.X), px(lb.From.Y), px(lb.To.X), px(lb.To.Y), leader)
		}
		canvas.Text(px(lb.Bound.X), px(lb.Bound.Y+l.FontSize*0.35), lb.Text, "text-anchor:middle")
	}
}

// wedgePath draws a segment as centre, arc, centre. A full circle needs two
// arcs because a single arc with identical endpoints draws nothing.
func wedgePath(g chart.PieGeometry, seg chart.PieSegment) string {
	sweep := seg.Sweep()
	if sweep <= 0 {
		return ""
	}
	r := g.Radius
	start := g.PolarPoint(r, seg.StartAngle)
	if sweep >= 360-1e-9 {
		opposite := g.PolarPoint(r, seg.StartAngle+180)
		return fmt.Sprintf("M%.2f,%.2f A%.2f,%.2f 0 1,1 %.2f,%.2f A%.2f,%.2f 0 1,1 %.2f,%.2f Z",
			start.X, start.Y, r, r, opposite.X, opposite.Y, r, r, start.X, start.Y)
	}
	end := g.PolarPoint(r, seg.EndAngle)
	large := 0
	if sweep > 180 {
		large = 1
	}
	return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d,1 %.2f,%.2f Z",
		g.CX, g.CY, start.X, start.Y, r, r, large, end.X, end.Y)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
