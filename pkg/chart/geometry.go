// Geometric utilities for label placement.

package chart

import "math"

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X, Y float64 // Center
	W, H float64 // Full width and height
}

// Pad grows the rectangle by p on every side.
func (r Rect) Pad(p float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W + 2*p, H: r.H + 2*p}
}

// Left, Top, Right and Bottom return the edges.
func (r Rect) Left() float64   { return r.X - r.W/2 }
func (r Rect) Top() float64    { return r.Y - r.H/2 }
func (r Rect) Right() float64  { return r.X + r.W/2 }
func (r Rect) Bottom() float64 { return r.Y + r.H/2 }

// RectOverlap returns the overlap area between two rectangles.
// Returns 0 if they don't overlap.
func RectOverlap(a, b Rect) float64 {
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)

	overlapX := (a.W/2 + b.W/2) - dx
	overlapY := (a.H/2 + b.H/2) - dy

	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// PieGeometry places a pie on the drawing surface.
type PieGeometry struct {
	CX, CY float64 // centre
	Radius float64
}

// PolarPoint returns the point at distance r from the centre at angle
// degrees clockwise from 12 o'clock (the -90° screen rotation applied).
func (g PieGeometry) PolarPoint(r, angle float64) Point {
	rad := angle * math.Pi / 180
	return Point{
		X: g.CX + r*math.Sin(rad),
		Y: g.CY - r*math.Cos(rad),
	}
}
