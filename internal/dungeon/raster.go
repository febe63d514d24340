package dungeon

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Rasterize builds a grid of the given radius with rooms and corridors
// stamped onto it.
func Rasterize(rooms []Room, corridors []Edge, radius int) *Grid {
	g := NewGrid(radius)
	StampRooms(g, rooms)
	StampCorridors(g, corridors)
	return g
}

// StampRooms marks every cell covered by a room as CellRoom.
func StampRooms(g *Grid, rooms []Room) {
	for _, r := range rooms {
		b := r.Bounds()
		b.X += g.Radius
		b.Y += g.Radius
		for y := b.Y; y < b.Bottom(); y++ {
			for x := b.X; x < b.Right(); x++ {
				g.Set(x, y, CellRoom)
			}
		}
	}
}

// StampCorridors marks every cell a corridor segment passes through as
// CellHallway. Room cells are never downgraded.
func StampCorridors(g *Grid, corridors []Edge) {
	shift := core.V(float64(g.Radius), float64(g.Radius))
	for _, e := range corridors {
		Supercover(e.A.Add(shift), e.B.Add(shift), func(c core.Coord) {
			if g.At(c.X, c.Y) != CellRoom {
				g.Set(c.X, c.Y, CellHallway)
			}
		})
	}
}

// Supercover walks the unit cells crossed by segment a-b (Amanatides–Woo
// traversal) and calls visit for each one, starting with the cell holding a
// and ending with the cell holding b. When the segment passes exactly through
// a cell corner, both side cells sharing that corner are visited too.
func Supercover(a, b core.Vec2, visit func(core.Coord)) {
	cell := a.Floor()
	end := b.Floor()
	visit(cell)

	stepX, tMaxX, tDeltaX := traversalAxis(a.X, b.X, cell.X)
	stepY, tMaxY, tDeltaY := traversalAxis(a.Y, b.Y, cell.Y)

	for cell != end {
		moveX := cell.X != end.X
		moveY := cell.Y != end.Y
		if moveX && moveY {
			switch {
			case tMaxX < tMaxY:
				moveY = false
			case tMaxY < tMaxX:
				moveX = false
			default:
				visit(core.C(cell.X+stepX, cell.Y))
				visit(core.C(cell.X, cell.Y+stepY))
			}
		}
		if moveX {
			cell.X += stepX
			tMaxX += tDeltaX
		}
		if moveY {
			cell.Y += stepY
			tMaxY += tDeltaY
		}
		visit(cell)
	}
}

// traversalAxis returns the step direction, the segment parameter of the
// first cell border crossed, and the parameter distance between borders along
// one axis.
func traversalAxis(from, to float64, cell int) (step int, tMax, tDelta float64) {
	d := to - from
	switch {
	case d > 0:
		return 1, (float64(cell+1) - from) / d, 1 / d
	case d < 0:
		return -1, (from - float64(cell)) / -d, 1 / -d
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}
