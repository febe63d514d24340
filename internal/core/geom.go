// Package core provides fundamental geometry and screen types shared by the
// dungeon generator, the flow field and the terminal front-ends.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// generation logic pure and testable.
package core

import (
	"fmt"
	"math"
)

// Rect represents an axis-aligned rectangle on the integer grid.
// X/Y is the minimum corner (south-west in world space), W/H the extent.
type Rect struct {
	X, Y int // Minimum corner position
	W, H int // Width and depth
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the last covered column.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the last covered row.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Inflate grows the rectangle by n units on every side.
func (r Rect) Inflate(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB separating-axis detection.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to one side of the other
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

// Center returns the exact center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: float64(r.X) + float64(r.W)/2, Y: float64(r.Y) + float64(r.H)/2}
}

// Coord is an integer grid coordinate.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns c - other.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Vec returns the coordinate as a float vector.
func (c Coord) Vec() Vec2 {
	return Vec2{X: float64(c.X), Y: float64(c.Y)}
}

// Chebyshev returns the 8-connected step distance to another coordinate.
func (c Coord) Chebyshev(other Coord) int {
	return Max(Abs(c.X-other.X), Abs(c.Y-other.Y))
}

// Vec2 is a 2D float vector. It is a comparable value, so two vectors are
// equal exactly when their positions are.
type Vec2 struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// String returns a string representation of the vector.
func (v Vec2) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// SqrLen returns the squared length of v.
func (v Vec2) SqrLen() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.SqrLen())
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Floor returns the grid cell containing v.
func (v Vec2) Floor() Coord {
	return Coord{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// Less orders vectors by X, then Y.
func (v Vec2) Less(o Vec2) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	return v.Y < o.Y
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

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
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
