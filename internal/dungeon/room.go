package dungeon

import "github.com/vovakirdan/tui-dungeon/internal/core"

// Room is an axis-aligned rectangle in world space. Position is the
// south-west corner; Size holds width (X) and depth (Y), both at least 1.
type Room struct {
	Position core.Coord
	Size     core.Coord
}

// Bounds returns the cells covered by the room.
func (r Room) Bounds() core.Rect {
	return core.NewRect(r.Position.X, r.Position.Y, r.Size.X, r.Size.Y)
}

// Padded returns the room grown by one unit on every side. Padded rooms of one
// layout never intersect.
func (r Room) Padded() core.Rect {
	return r.Bounds().Inflate(1)
}

// Center returns position + size/2.
func (r Room) Center() core.Vec2 {
	return r.Bounds().Center()
}
