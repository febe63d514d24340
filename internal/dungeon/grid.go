package dungeon

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Cell is the classification of one grid cell.
type Cell uint8

const (
	CellNone Cell = iota
	CellRoom
	CellHallway
)

// String returns a human-readable name for the cell class.
func (c Cell) String() string {
	switch c {
	case CellNone:
		return "None"
	case CellRoom:
		return "Room"
	case CellHallway:
		return "Hallway"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Grid is a square of Diameter*Diameter cells covering world coordinates
// [-Radius, Radius) on both axes. Grid coordinates are world coordinates
// shifted by +Radius. Cells is row-major: index = x + y*Diameter.
type Grid struct {
	Radius   int
	Diameter int
	Cells    []Cell
}

// NewGrid creates an empty grid for the given radius.
func NewGrid(radius int) *Grid {
	d := 2 * radius
	return &Grid{
		Radius:   radius,
		Diameter: d,
		Cells:    make([]Cell, d*d),
	}
}

// index returns the flat offset of grid cell (x, y).
func (g *Grid) index(x, y int) int {
	return x + y*g.Diameter
}

// InBounds reports whether (x, y) is a valid grid coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Diameter && y >= 0 && y < g.Diameter
}

// At returns the class of grid cell (x, y), or CellNone when out of bounds.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return CellNone
	}
	return g.Cells[g.index(x, y)]
}

// Set classifies grid cell (x, y). Out-of-bounds coordinates are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.Cells[g.index(x, y)] = c
}

// Count returns how many cells carry the given class.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.Cells {
		if v == c {
			n++
		}
	}
	return n
}

// WorldToCell converts a world position to grid coordinates. ok is false when
// the position falls outside the grid.
func (g *Grid) WorldToCell(world core.Vec2) (cell core.Coord, ok bool) {
	cell = core.C(
		int(math.Floor(world.X))+g.Radius,
		int(math.Floor(world.Y))+g.Radius,
	)
	return cell, g.InBounds(cell.X, cell.Y)
}

// CellToWorld returns the world position of the south-west corner of grid
// cell (x, y).
func (g *Grid) CellToWorld(x, y int) core.Coord {
	return core.C(x-g.Radius, y-g.Radius)
}
