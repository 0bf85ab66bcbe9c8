// Native PNG rendering.
// Mirrors the SVG renderer using Go's image packages.

package chartfile

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Supersample int                 // render scale before downsampling (0 = 4)
	Measurer    *chart.FontMeasurer // glyph source (nil = Go Regular)
}

// DefaultPNGOptions returns 4x supersampling with the built-in font.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Supersample: 4}
}

// rasterContext holds the large image and its scale. One rasterizer is
// reused for every shape, sized to the shape's bounding box.
type rasterContext struct {
	img    *image.RGBA
	scale  float64
	fonts  *chart.FontMeasurer
	raster *vector.Rasterizer
}

// RenderPNG renders the chart to PNG. The chart is drawn at Supersample
// times its size and scaled down for smooth edges.
func RenderPNG(w io.Writer, l *ChartLayout, opts PNGOptions) error {
	img, err := RenderImage(l, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// RenderImage renders the chart to an in-memory image.
func RenderImage(l *ChartLayout, opts PNGOptions) (*image.RGBA, error) {
	scale := opts.Supersample
	if scale <= 0 {
		scale = 4
	}
	fonts := opts.Measurer
	if fonts == nil {
		var err error
		if fonts, err = chart.NewFontMeasurer(nil); err != nil {
			return nil, err
		}
	}

	width, height := l.Config.Width, l.Config.Height
	large := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	ctx := &rasterContext{img: large, scale: float64(scale), fonts: fonts}
	if err := ctx.render(l); err != nil {
		return nil, err
	}

	final := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return final, nil
}

func (c *rasterContext) render(l *ChartLayout) error {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	if l.Config.Title != "" {
		if err := c.text(l.Width/2, marginOuter+l.FontSize*1.2, l.Config.Title, l.FontSize*1.5, colorText, alignCenter); err != nil {
			return err
		}
	}

	if l.Pie != nil {
		return c.pie(l)
	}

	if err := c.axes(l); err != nil {
		return err
	}
	for _, b := range l.Bars {
		if b.W > 0 && b.H > 0 {
			c.fillRect(b.X, b.Y, b.W, b.H, b.Color)
		}
	}
	if l.Config.Type == TypeLine {
		for _, s := range l.Series {
			c.polyline(s.Points, 2, s.Color)
			for _, p := range s.Points {
				c.fillCircle(p.X, p.Y, 3, s.Color)
			}
			for _, n := range s.Notes {
				if err := c.text(n.At.X, n.At.Y-8, n.Text, l.FontSize*0.85, colorAxis, alignCenter); err != nil {
					return err
				}
			}
		}
	}
	if len(l.Curve) > 0 {
		c.polyline(chart.SampleCurve(l.Curve, 16), 2, colorText)
	}
	return nil
}

func (c *rasterContext) axes(l *ChartLayout) error {
	p := l.Plot
	if l.Config.Axis.GridY {
		for _, t := range l.YTicks {
			c.line(p.Left, t.Pos, p.Right, t.Pos, 1, colorGrid)
		}
	}
	if l.Config.Axis.GridX {
		for _, t := range l.XTicks {
			c.line(t.Pos, p.Top, t.Pos, p.Bottom, 1, colorGrid)
		}
	}
	c.line(p.Left, p.Top, p.Left, p.Bottom, 1, colorAxis)
	c.line(p.Left, p.Bottom, p.Right, p.Bottom, 1, colorAxis)

	for _, t := range l.YTicks {
		c.line(p.Left-tickLength, t.Pos, p.Left, t.Pos, 1, colorAxis)
		if err := c.text(p.Left-tickLength-labelGap, t.Pos+l.FontSize*0.35, t.Lines[0], l.FontSize, colorText, alignRight); err != nil {
			return err
		}
	}
	for _, t := range l.XTicks {
		c.line(t.Pos, p.Bottom, t.Pos, p.Bottom+tickLength, 1, colorAxis)
		for i, line := range t.Lines {
			if line == "" {
				continue
			}
			y := p.Bottom + tickLength + labelGap + l.FontSize*0.8 + float64(i)*l.lineHeight()
			if err := c.text(t.Pos, y, line, l.FontSize, colorText, alignCenter); err != nil {
				return err
			}
		}
	}
	if l.Config.Axis.XTitle != "" {
		if err := c.text((p.Left+p.Right)/2, l.Height-marginOuter, l.Config.Axis.XTitle, l.FontSize, colorText, alignCenter); err != nil {
			return err
		}
	}
	if l.Config.Axis.YTitle != "" {
		x := marginOuter + l.FontSize
		if err := c.textVertical(x, (p.Top+p.Bottom)/2, l.Config.Axis.YTitle, l.FontSize, colorText); err != nil {
			return err
		}
	}
	return nil
}

func (c *rasterContext) pie(l *ChartLayout) error {
	g := l.Pie.Geometry
	for _, w := range l.Pie.Wedges {
		c.fillWedge(g, w.Segment, w.Color)
	}
	for _, lb := range l.Pie.Labels {
		if lb.Leader {
			c.line(lb.From.X, lb.From.Y, lb.To.X, lb.To.Y, 1, colorAxis)
		}
		if err := c.text(lb.Bound.X, lb.Bound.Y+l.FontSize*0.35, lb.Text, l.FontSize, colorText, alignCenter); err != nil {
			return err
		}
	}
	return nil
}

// fillPolygon fills a closed polygon given in chart pixels. Only the
// polygon's bounding box is rasterized.
func (c *rasterContext) fillPolygon(pts []chart.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		x, y := p.X*c.scale, p.Y*c.scale
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}

	if c.raster == nil {
		c.raster = vector.NewRasterizer(box.Dx(), box.Dy())
	} else {
		c.raster.Reset(box.Dx(), box.Dy())
	}
	z := c.raster
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z.MoveTo(float32(pts[0].X*c.scale-ox), float32(pts[0].Y*c.scale-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X*c.scale-ox), float32(p.Y*c.scale-oy))
	}
	z.ClosePath()
	z.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

func (c *rasterContext) fillRect(x, y, w, h float64, col color.Color) {
	c.fillPolygon([]chart.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, col)
}

func (c *rasterContext) fillCircle(cx, cy, r float64, col color.Color) {
	g := chart.PieGeometry{CX: cx, CY: cy, Radius: r}
	pts := make([]chart.Point, 0, 24)
	for a := 0.0; a < 360; a += 15 {
		pts = append(pts, g.PolarPoint(r, a))
	}
	c.fillPolygon(pts, col)
}

// fillWedge approximates the arc with a point every degree.
func (c *rasterContext) fillWedge(g chart.PieGeometry, seg chart.PieSegment, col color.Color) {
	sweep := seg.Sweep()
	if sweep <= 0 {
		return
	}
	steps := int(math.Ceil(sweep))
	pts := make([]chart.Point, 0, steps+2)
	if sweep < 360 {
		pts = append(pts, chart.Point{X: g.CX, Y: g.CY})
	}
	for i := 0; i <= steps; i++ {
		a := seg.StartAngle + sweep*float64(i)/float64(steps)
		pts = append(pts, g.PolarPoint(g.Radius, a))
	}
	c.fillPolygon(pts, col)
}

// line strokes a segment as a thin quad; width is in chart pixels.
func (c *rasterContext) line(x1, y1, x2, y2, width float64, col color.Color) {
	dx, dy := x2-x1, y2-y1
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1e-9 {
		return
	}
	nx, ny := -dy/dist*width/2, dx/dist*width/2
	c.fillPolygon([]chart.Point{
		{X: x1 + nx, Y: y1 + ny},
		{X: x2 + nx, Y: y2 + ny},
		{X: x2 - nx, Y: y2 - ny},
		{X: x1 - nx, Y: y1 - ny},
	}, col)
}

func (c *rasterContext) polyline(pts []chart.Point, width float64, col color.Color) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, col)
	}
	// round joins
	if len(pts) > 2 {
		for _, p := range pts[1 : len(pts)-1] {
			c.fillCircle(p.X, p.Y, width/2, col)
		}
	}
}

type textAlign int

const (
	alignLeft textAlign = iota
	alignCenter
	alignRight
)

// text draws a string with its baseline at y.
func (c *rasterContext) text(x, y float64, s string, size float64, col color.Color, align textAlign) error {
	face, err := c.fonts.Face(size * c.scale)
	if err != nil {
		return fmt.Errorf("draw text: %w", err)
	}
	width := font.MeasureString(face, s)
	dot := fixed.Point26_6{
		X: fixed.Int26_6(x * c.scale * 64),
		Y: fixed.Int26_6(y * c.scale * 64),
	}
	switch align {
	case alignCenter:
		dot.X -= width / 2
	case alignRight:
		dot.X -= width
	}

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(s)
	return nil
}

// textVertical draws s reading bottom to top, centred on y, with its
// baseline at x. font.Drawer only draws horizontally, so the string is
// drawn into a strip that is then turned a quarter counter-clockwise.
func (c *rasterContext) textVertical(x, y float64, s string, size float64, col color.Color) error {
	face, err := c.fonts.Face(size * c.scale)
	if err != nil {
		return fmt.Errorf("draw text: %w", err)
	}
	width := font.MeasureString(face, s).Ceil()
	if width <= 0 {
		return nil
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	strip := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(s)

	// strip (sx, sy) lands at (sy, width-1-sx)
	rotated := image.NewRGBA(image.Rect(0, 0, height, width))
	for sy := 0; sy < height; sy++ {
		for sx := 0; sx < width; sx++ {
			rotated.SetRGBA(sy, width-1-sx, strip.RGBAAt(sx, sy))
		}
	}

	left := int(math.Round(x*c.scale)) - ascent
	top := int(math.Round(y*c.scale)) - width/2
	draw.Draw(c.img, rotated.Bounds().Add(image.Pt(left, top)), rotated, image.Point{}, draw.Over)
	return nil
}
