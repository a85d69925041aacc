// Package geometry provides basic geometric types used throughout the application.
package geometry

import "image"

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt creates a new PointInt.
func Pt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// Add returns the sum of two points.
func (p PointInt) Add(other PointInt) PointInt {
	return PointInt{X: p.X + other.X, Y: p.Y + other.Y}
}

// Mul scales both coordinates by a factor.
func (p PointInt) Mul(factor int) PointInt {
	return PointInt{X: p.X * factor, Y: p.Y * factor}
}

// Manhattan returns the taxicab distance to another point.
func (p PointInt) Manhattan(other PointInt) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Image converts to an image.Point.
func (p PointInt) Image() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// Less orders points row-major (by Y, then X).
func (p PointInt) Less(other PointInt) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// RectFromPoints returns the normalized rectangle spanned by two corners.
func RectFromPoints(a, b PointInt) RectInt {
	x1, x2 := minmax(a.X, b.X)
	y1, y2 := minmax(a.Y, b.Y)
	return RectInt{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// TopLeft returns the top-left corner.
func (r RectInt) TopLeft() PointInt {
	return PointInt{X: r.X, Y: r.Y}
}

// BottomRight returns the exclusive bottom-right corner.
func (r RectInt) BottomRight() PointInt {
	return PointInt{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Empty reports whether the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects returns true if this rectangle intersects with another.
func (r RectInt) Intersects(other RectInt) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// Scale multiplies position and size by a factor.
func (r RectInt) Scale(factor int) RectInt {
	return RectInt{X: r.X * factor, Y: r.Y * factor, Width: r.Width * factor, Height: r.Height * factor}
}

// Image converts to an image.Rectangle.
func (r RectInt) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
// Each point is treated as a single cell, so the result always has
// positive size when points is non-empty.
func BoundingBox(points []PointInt) RectInt {
	if len(points) == 0 {
		return RectInt{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return RectInt{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minmax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
