package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/flowfield"
)

// smallLayout is a 4x4 grid with a room cell in the south-west corner and a
// hallway cell in the north-east corner.
func smallLayout() *dungeon.Layout {
	g := dungeon.NewGrid(2)
	g.Set(0, 0, dungeon.CellRoom)
	g.Set(3, 3, dungeon.CellHallway)
	return &dungeon.Layout{Grid: g}
}

func TestLayoutNorthUp(t *testing.T) {
	scr := Layout(smallLayout())

	assert.Equal(t, "   #\n    \n    \n.   ", scr.String())
	assert.Equal(t, core.ColorRoom, scr.GetCell(0, 3).Color)
	assert.Equal(t, core.ColorHallway, scr.GetCell(3, 0).Color)
}

func TestArrow(t *testing.T) {
	tests := []struct {
		step core.Coord
		want rune
	}{
		{core.C(0, 1), '↑'},
		{core.C(1, 1), '↗'},
		{core.C(1, 0), '→'},
		{core.C(1, -1), '↘'},
		{core.C(0, -1), '↓'},
		{core.C(-1, -1), '↙'},
		{core.C(-1, 0), '←'},
		{core.C(-1, 1), '↖'},
		{core.C(0, 0), 0},
		{core.C(2, 0), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Arrow(tt.step), "step %v", tt.step)
	}
}

func TestGlyph(t *testing.T) {
	r, c := Glyph(dungeon.CellRoom)
	assert.Equal(t, GlyphRoom, r)
	assert.Equal(t, core.ColorRoom, c)

	r, _ = Glyph(dungeon.CellHallway)
	assert.Equal(t, GlyphHallway, r)

	r, c = Glyph(dungeon.CellNone)
	assert.Equal(t, GlyphNone, r)
	assert.Equal(t, core.ColorDefault, c)
}

func TestFlowOverlay(t *testing.T) {
	snap, err := flowfield.Build(core.C(1, 1), flowfield.NewBounds(core.C(-2, -2), core.C(1, 1)))
	require.NoError(t, err)

	scr := LayoutWithOverlay(smallLayout(), Overlay{Flow: snap})
	assert.Equal(t, '↗', scr.Get(0, 3), "room cell points at the destination")
	assert.Equal(t, '#', scr.Get(3, 0), "destination keeps its glyph")
	assert.Equal(t, ' ', scr.Get(1, 1), "empty cells stay blank")

	scr = LayoutWithOverlay(smallLayout(), Overlay{Flow: snap, FlowCells: true})
	assert.Equal(t, '→', scr.Get(1, 1))
	assert.Equal(t, core.ColorFlow, scr.GetCell(1, 1).Color)
}

func TestMarkers(t *testing.T) {
	target := core.V(0.5, 0.5)
	scr := LayoutWithOverlay(smallLayout(), Overlay{
		Agents: []core.Vec2{core.V(-1.5, 1.2), core.V(40, 40)},
		Target: &target,
	})

	assert.Equal(t, GlyphTarget, scr.Get(2, 1))
	assert.Equal(t, core.ColorTarget, scr.GetCell(2, 1).Color)
	assert.Equal(t, GlyphAgent, scr.Get(0, 0))
}

func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{Center: core.C(5, -3), Area: core.NewRect(2, 1, 9, 7)}

	for row := 0; row < cam.Area.H; row++ {
		for col := 0; col < cam.Area.W; col++ {
			x, y, ok := cam.Screen(cam.World(col, row))
			require.True(t, ok)
			assert.Equal(t, cam.Area.X+col, x)
			assert.Equal(t, cam.Area.Y+row, y)
		}
	}

	_, _, ok := cam.Screen(core.C(100, 0))
	assert.False(t, ok)
}

func TestCameraFollow(t *testing.T) {
	cam := CenteredCamera(core.NewRect(0, 0, 20, 10))

	cam.Follow(core.C(3, 2), 2)
	assert.Equal(t, core.C(0, 0), cam.Center, "inside the margin the camera stays put")

	cam.Follow(core.C(30, -20), 2)
	_, _, ok := cam.Screen(core.C(30, -20))
	assert.True(t, ok)
	assert.Equal(t, core.C(22, -17), cam.Center)
}

func TestDrawClipsToArea(t *testing.T) {
	scr := core.NewScreen(10, 3)
	scr.Fill('~')
	cam := Camera{Area: core.NewRect(3, 1, 4, 1)}

	Draw(scr, smallLayout(), Overlay{}, cam)

	assert.Equal(t, "~~~~~~~~~~", scr.Row(0))
	assert.Equal(t, "~~~~~~~~~~", scr.Row(2))
	assert.Equal(t, "~~~    ~~~", scr.Row(1))
}

func TestFlowCellSize(t *testing.T) {
	tests := []struct {
		size  float64
		world core.Coord
		want  core.Coord
	}{
		{0, core.C(-3, 5), core.C(-3, 5)},
		{1, core.C(-3, 5), core.C(-3, 5)},
		{2, core.C(-3, 5), core.C(-2, 2)},
		{2, core.C(1, 1), core.C(0, 0)},
		{4, core.C(-1, -5), core.C(-1, -2)},
	}
	for _, tt := range tests {
		ov := Overlay{CellSize: tt.size}
		assert.Equal(t, tt.want, ov.flowCell(tt.world), "size %g world %v", tt.size, tt.world)
	}
}
