// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It has no external dependencies (no
// Bubble Tea) to keep game logic pure and testable.
package core

import (
	"errors"
	"fmt"
)

// ErrNegativeSize is returned by Rect.Validate for a rectangle with a
// negative width or height.
var ErrNegativeSize = errors.New("negative rectangle size")

// Vec is a 2D point or displacement in world units.
type Vec struct {
	X, Y float64
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Validate reports ErrNegativeSize when the width or height is negative.
func (r Rect) Validate() error {
	if r.W < 0 || r.H < 0 {
		return fmt.Errorf("rect %v: %w", r, ErrNegativeSize)
	}
	return nil
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// SetRight moves the rectangle so its right edge sits at x.
func (r *Rect) SetRight(x float64) {
	r.X = x - r.W
}

// SetBottom moves the rectangle so its bottom edge sits at y.
func (r *Rect) SetBottom(y float64) {
	r.Y = y - r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Inflate returns a copy grown by dx horizontally and dy vertically,
// keeping the same center.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{X: r.X - dx/2, Y: r.Y - dy/2, W: r.W + dx, H: r.H + dy}
}

// Translate returns a copy moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// String renders the rectangle for log lines.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
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

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
