package model

import "math"

// Point is a position in PDF user space.
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned box anchored at its lower left corner, as PDF
// coordinates grow upward.
type BBox struct {
	X, Y          float64
	Width, Height float64
}

func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

func (b BBox) Left() float64   { return b.X }
func (b BBox) Right() float64  { return b.X + b.Width }
func (b BBox) Bottom() float64 { return b.Y }
func (b BBox) Top() float64    { return b.Y + b.Height }

// IsEmpty reports a box without area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Union returns the smallest box holding both. Empty boxes are ignored, so
// a cell can grow from the zero value.
func (b BBox) Union(other BBox) BBox {
	switch {
	case b.IsEmpty():
		return other
	case other.IsEmpty():
		return b
	}
	x0, y0 := math.Min(b.Left(), other.Left()), math.Min(b.Bottom(), other.Bottom())
	x1, y1 := math.Max(b.Right(), other.Right()), math.Max(b.Top(), other.Top())
	return BBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Matrix is the affine transform [a b c d e f] of the PDF operators cm
// and Tm, mapping (x, y) to (ax+cy+e, bx+dy+f).
type Matrix [6]float64

func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

// Transform maps p through m.
func (m Matrix) Transform(p Point) Point {
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Point{X: a*p.X + c*p.Y + e, Y: b*p.X + d*p.Y + f}
}

// Multiply returns m x n: applying the result equals applying m, then n.
func (m Matrix) Multiply(n Matrix) Matrix {
	var r Matrix
	r[0] = m[0]*n[0] + m[1]*n[2]
	r[1] = m[0]*n[1] + m[1]*n[3]
	r[2] = m[2]*n[0] + m[3]*n[2]
	r[3] = m[2]*n[1] + m[3]*n[3]
	r[4] = m[4]*n[0] + m[5]*n[2] + n[4]
	r[5] = m[4]*n[1] + m[5]*n[3] + n[5]
	return r
}
