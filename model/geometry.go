package model

import "math"

// Point represents a 2D point in page coordinates.
type Point struct {
	X, Y float64
}

// BBox represents an axis-aligned bounding box (rectangle).
type BBox struct {
	X      float64 // Left
	Y      float64 // Bottom (PDF coordinate system)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from an origin and dimensions.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// BBoxFromCorners creates a bounding box from two opposite corners
// (x0,y0)-(x1,y1), in either order. Interpreters that report corner
// coordinates can use this directly.
func BBoxFromCorners(x0, y0, x1, y1 float64) BBox {
	x := math.Min(x0, x1)
	y := math.Min(y0, y1)
	return BBox{X: x, Y: y, Width: math.Abs(x1 - x0), Height: math.Abs(y1 - y0)}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Y
}

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 {
	return b.Y + b.Height
}

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Top() < other.Bottom() ||
		b.Bottom() > other.Top())
}

// HorizontalOverlap returns the width of the X range shared by both boxes,
// or 0 if their horizontal extents are disjoint.
func (b BBox) HorizontalOverlap(other BBox) float64 {
	overlap := math.Min(b.Right(), other.Right()) - math.Max(b.Left(), other.Left())
	if overlap < 0 {
		return 0
	}
	return overlap
}

// VerticalOverlap returns the height of the Y range shared by both boxes,
// or 0 if their vertical extents are disjoint.
func (b BBox) VerticalOverlap(other BBox) float64 {
	overlap := math.Min(b.Top(), other.Top()) - math.Max(b.Bottom(), other.Bottom())
	if overlap < 0 {
		return 0
	}
	return overlap
}

// VerticalOverlapRatio returns the shared Y range as a fraction of the
// shorter box's height, between 0 and 1. Boxes side by side on a page
// (columns) have a ratio near 1; stacked boxes have a ratio of 0.
func (b BBox) VerticalOverlapRatio(other BBox) float64 {
	minHeight := math.Min(b.Height, other.Height)
	if minHeight <= 0 {
		return 0
	}
	return b.VerticalOverlap(other) / minHeight
}

// IsDegenerate reports whether the box carries no usable geometry: zero or
// negative area, or any non-finite coordinate. Degenerate boxes come from
// corrupted content streams and are dropped rather than positioned.
func (b BBox) IsDegenerate() bool {
	if !isFinite(b.X) || !isFinite(b.Y) || !isFinite(b.Width) || !isFinite(b.Height) {
		return true
	}
	return b.Width <= 0 || b.Height <= 0
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
