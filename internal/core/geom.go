// Package core provides fundamental types and utilities for the simulation.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle in integer grid space (tiles or screen cells).
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Within reports whether r lies entirely inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y && r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Scale converts a grid-space rectangle to pixel space.
// Panics on a non-positive unit size.
func (r Rect) Scale(unit float64) Rectf {
	mustUnit(unit)
	return Rectf{
		X: float64(r.X) * unit,
		Y: float64(r.Y) * unit,
		W: float64(r.W) * unit,
		H: float64(r.H) * unit,
	}
}

// Rectf is an axis-aligned rectangle in pixel space.
type Rectf struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rectf) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rectf) Bottom() float64 { return r.Y + r.H }

// Pos returns the top-left corner.
func (r Rectf) Pos() Vec2 { return Vec2{X: r.X, Y: r.Y} }

// Moved returns the rectangle translated by d.
func (r Rectf) Moved(d Vec2) Rectf {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Center returns the center point of the rectangle.
func (r Rectf) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether two rectangles share interior area.
// Touching edges do not count as overlap.
func (r Rectf) Overlaps(other Rectf) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// ContainsPoint reports whether p is inside the rectangle (closed-open).
func (r Rectf) ContainsPoint(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// TileSpan returns the grid cells covered by the rectangle.
// Spans are closed-open, so an edge lying exactly on a cell boundary does not
// cover the next cell. A degenerate rectangle still covers the cell of its origin.
func (r Rectf) TileSpan(unit float64) Rect {
	mustUnit(unit)
	x0, x1 := SpanCells(r.X, r.W, unit)
	y0, y1 := SpanCells(r.Y, r.H, unit)
	return Rect{X: x0, Y: y0, W: x1 - x0 + 1, H: y1 - y0 + 1}
}

// SpanCells returns the first and last cell index covered by [lo, lo+size).
func SpanCells(lo, size, unit float64) (first, last int) {
	first = int(math.Floor(lo / unit))
	last = int(math.Ceil((lo+size)/unit)) - 1
	if last < first {
		last = first
	}
	return first, last
}

func mustUnit(unit float64) {
	if !(unit > 0) {
		panic(fmt.Sprintf("core: non-positive unit size %v", unit))
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
