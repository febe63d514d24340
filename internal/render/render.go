// Package render draws dungeon layouts into core.Screen buffers.
// It knows nothing about terminals; the platform layer styles the result.
package render

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/flowfield"
)

// Glyphs used for map cells and markers.
const (
	GlyphNone    = ' '
	GlyphRoom    = '.'
	GlyphHallway = '#'
	GlyphAgent   = '@'
	GlyphTarget  = 'X'
)

// arrows is indexed like flowfield.Neighbors.
var arrows = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Glyph returns the rune and color for a grid cell.
func Glyph(c dungeon.Cell) (rune, core.Color) {
	switch c {
	case dungeon.CellRoom:
		return GlyphRoom, core.ColorRoom
	case dungeon.CellHallway:
		return GlyphHallway, core.ColorHallway
	default:
		return GlyphNone, core.ColorDefault
	}
}

// Arrow returns the arrow for a flow step, or 0 for the zero step.
func Arrow(step core.Coord) rune {
	for i, n := range flowfield.Neighbors {
		if n == step {
			return arrows[i]
		}
	}
	return 0
}

// Overlay holds everything drawn on top of the map.
type Overlay struct {
	Flow      *flowfield.Snapshot // nil hides arrows
	FlowCells bool                // draw arrows on empty cells too
	CellSize  float64             // flow cell size in world units, 0 means 1
	Agents    []core.Vec2
	Target    *core.Vec2
}

// flowCell returns the flow cell holding the centre of a world cell.
func (ov Overlay) flowCell(world core.Coord) core.Coord {
	if ov.CellSize <= 0 || ov.CellSize == 1 {
		return world
	}
	return core.V(float64(world.X)+0.5, float64(world.Y)+0.5).Scale(1 / ov.CellSize).Floor()
}

// Camera maps world cells onto a screen area. North is up.
type Camera struct {
	Center core.Coord // world cell shown in the middle of Area
	Area   core.Rect  // screen region to draw into
}

// CenteredCamera returns a camera over area looking at the world origin.
func CenteredCamera(area core.Rect) Camera {
	return Camera{Area: area}
}

// World returns the world cell under screen position (col, row) of the area.
func (c Camera) World(col, row int) core.Coord {
	return core.C(c.Center.X-c.Area.W/2+col, c.Center.Y+(c.Area.H-1)/2-row)
}

// Screen returns the screen position of a world cell and whether it is
// inside the area.
func (c Camera) Screen(world core.Coord) (x, y int, ok bool) {
	col := world.X - c.Center.X + c.Area.W/2
	row := c.Center.Y + (c.Area.H-1)/2 - world.Y
	if col < 0 || col >= c.Area.W || row < 0 || row >= c.Area.H {
		return 0, 0, false
	}
	return c.Area.X + col, c.Area.Y + row, true
}

// Follow moves the camera so that world stays at least margin cells inside
// the area.
func (c *Camera) Follow(world core.Coord, margin int) {
	halfW := c.Area.W/2 - margin
	halfH := c.Area.H/2 - margin
	if halfW < 0 {
		halfW = 0
	}
	if halfH < 0 {
		halfH = 0
	}
	c.Center.X = core.Clamp(c.Center.X, world.X-halfW, world.X+halfW)
	c.Center.Y = core.Clamp(c.Center.Y, world.Y-halfH, world.Y+halfH)
}

// Draw renders layout and overlay into scr through cam. Cells outside the
// grid are left untouched.
func Draw(scr *core.Screen, layout *dungeon.Layout, ov Overlay, cam Camera) {
	g := layout.Grid
	for row := 0; row < cam.Area.H; row++ {
		for col := 0; col < cam.Area.W; col++ {
			world := cam.World(col, row)
			cell, ok := g.WorldToCell(world.Vec())
			if !ok {
				continue
			}
			kind := g.At(cell.X, cell.Y)
			r, color := Glyph(kind)
			if ov.Flow != nil && (kind != dungeon.CellNone || ov.FlowCells) {
				if step, ok := ov.Flow.Vector(ov.flowCell(world)); ok {
					if a := Arrow(step); a != 0 {
						r, color = a, core.ColorFlow
					}
				}
			}
			scr.SetColored(cam.Area.X+col, cam.Area.Y+row, r, color)
		}
	}

	for _, a := range ov.Agents {
		if x, y, ok := cam.Screen(a.Floor()); ok {
			scr.SetColored(x, y, GlyphAgent, core.ColorAgent)
		}
	}
	if ov.Target != nil {
		if x, y, ok := cam.Screen(ov.Target.Floor()); ok {
			scr.SetColored(x, y, GlyphTarget, core.ColorTarget)
		}
	}
}

// Layout renders the whole grid with north at the top and no overlay.
func Layout(layout *dungeon.Layout) *core.Screen {
	return LayoutWithOverlay(layout, Overlay{})
}

// LayoutWithOverlay renders the whole grid plus overlay.
func LayoutWithOverlay(layout *dungeon.Layout, ov Overlay) *core.Screen {
	d := layout.Grid.Diameter
	scr := core.NewScreen(d, d)
	Draw(scr, layout, ov, GridCamera(layout.Grid))
	return scr
}

// GridCamera returns a camera that shows exactly the grid of g. The grid
// spans [-R, R) on both axes, so the origin sits at column R, row R-1.
func GridCamera(g *dungeon.Grid) Camera {
	return CenteredCamera(core.NewRect(0, 0, g.Diameter, g.Diameter))
}
