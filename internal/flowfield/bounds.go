package flowfield

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Bounds is an inclusive rectangle of cells, Lower..Upper on both axes.
type Bounds struct {
	Lower core.Coord `json:"lower"`
	Upper core.Coord `json:"upper"`
}

// NewBounds creates bounds from two corners.
func NewBounds(lower, upper core.Coord) Bounds {
	return Bounds{Lower: lower, Upper: upper}
}

// Size returns the number of cells along each axis. It is only meaningful
// when Cells reports ok.
func (b Bounds) Size() core.Coord {
	return core.C(b.Upper.X-b.Lower.X+1, b.Upper.Y-b.Lower.Y+1)
}

// Valid reports whether Lower does not exceed Upper on either axis.
func (b Bounds) Valid() bool {
	return b.Lower.X <= b.Upper.X && b.Lower.Y <= b.Upper.Y
}

// Contains reports whether c lies inside the bounds.
func (b Bounds) Contains(c core.Coord) bool {
	return c.X >= b.Lower.X && c.X <= b.Upper.X && c.Y >= b.Lower.Y && c.Y <= b.Upper.Y
}

// Cells returns the number of cells covered. ok is false for empty bounds
// and for regions whose cell count does not fit in an int.
func (b Bounds) Cells() (n int, ok bool) {
	if !b.Valid() {
		return 0, false
	}
	w, okW := span(b.Lower.X, b.Upper.X)
	h, okH := span(b.Lower.Y, b.Upper.Y)
	if !okW || !okH {
		return 0, false
	}
	hi, lo := bits.Mul64(w, h)
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// Area returns the number of cells covered, or 0 when Cells is not ok.
func (b Bounds) Area() int {
	n, _ := b.Cells()
	return n
}

// span counts lo..hi inclusively without overflowing. hi must not be below lo.
func span(lo, hi int) (uint64, bool) {
	n := uint64(hi) - uint64(lo) + 1
	if n == 0 || n > math.MaxInt {
		return 0, false
	}
	return n, true
}

// index returns the row-major offset of c. c must be inside the bounds.
func (b Bounds) index(c core.Coord) int {
	return (c.X - b.Lower.X) + (c.Y-b.Lower.Y)*b.Size().X
}

// String returns a string representation of the bounds.
func (b Bounds) String() string {
	return fmt.Sprintf("%v..%v", b.Lower, b.Upper)
}

// BoundsFor returns the smallest bounds covering every cell in cells and
// dest, grown by margin on every side.
func BoundsFor(cells []core.Coord, dest core.Coord, margin int) Bounds {
	b := Bounds{Lower: dest, Upper: dest}
	for _, c := range cells {
		b.Lower.X = core.Min(b.Lower.X, c.X)
		b.Lower.Y = core.Min(b.Lower.Y, c.Y)
		b.Upper.X = core.Max(b.Upper.X, c.X)
		b.Upper.Y = core.Max(b.Upper.Y, c.Y)
	}
	b.Lower = b.Lower.Sub(core.C(margin, margin))
	b.Upper = b.Upper.Add(core.C(margin, margin))
	return b
}
