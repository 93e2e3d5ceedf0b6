package model

// Point represents a 2D point in page space (top-left origin, y grows downward)
type Point struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle in page space.
// X0/Y0 is the top-left corner, X1/Y1 the bottom-right corner.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRect creates a rectangle from two corners, in any order
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}.Normalize()
}

// Normalize swaps coordinates so that X0 <= X1 and Y0 <= Y1
func (r Rect) Normalize() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: (r.X0 + r.X1) / 2,
		Y: (r.Y0 + r.Y1) / 2,
	}
}

// Contains checks if a point is inside the rectangle (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 &&
		p.Y >= r.Y0 && p.Y <= r.Y1
}

// ShrinkVertical moves the top edge down and the bottom edge up by dy
func (r Rect) ShrinkVertical(dy float64) Rect {
	return Rect{X0: r.X0, Y0: r.Y0 + dy, X1: r.X1, Y1: r.Y1 - dy}
}

// Above returns the part of bounds lying above r's top edge, full width
func (r Rect) Above(bounds Rect) Rect {
	return Rect{X0: bounds.X0, Y0: bounds.Y0, X1: bounds.X1, Y1: r.Y0}
}

// LeftOf returns the part of bounds within r's vertical band and left of r
func (r Rect) LeftOf(bounds Rect) Rect {
	return Rect{X0: bounds.X0, Y0: r.Y0, X1: r.X0, Y1: r.Y1}
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
