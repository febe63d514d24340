package dungeon

import (
	"fmt"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Attempt cap used when PlacementParams.MaxAttempts is zero.
const (
	attemptsPerRoom = 1000
	minAttempts     = 1000
)

// PlacementParams configures room placement.
type PlacementParams struct {
	Rooms       int // Number of rooms to place
	MinRoomSize int // Minimum width/depth of a room
	MaxRoomSize int // Maximum width/depth of a room
	Radius      int // Half side of the bounding square
	MaxAttempts int // Sampling attempts before giving up (0 = Rooms*1000, at least 1000)
}

// Validate reports parameters that can never produce a layout.
func (p PlacementParams) Validate() error {
	switch {
	case p.Rooms <= 0:
		return fmt.Errorf("%w: room count must be positive, got %d", ErrInvalidParams, p.Rooms)
	case p.MinRoomSize < 1:
		return fmt.Errorf("%w: min room size must be at least 1, got %d", ErrInvalidParams, p.MinRoomSize)
	case p.MinRoomSize > p.MaxRoomSize:
		return fmt.Errorf("%w: min room size %d exceeds max %d", ErrInvalidParams, p.MinRoomSize, p.MaxRoomSize)
	case p.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %d", ErrInvalidParams, p.Radius)
	case p.MaxAttempts < 0:
		return fmt.Errorf("%w: max attempts must not be negative, got %d", ErrInvalidParams, p.MaxAttempts)
	}
	return nil
}

// attemptCap returns the effective sampling budget.
func (p PlacementParams) attemptCap() int {
	if p.MaxAttempts > 0 {
		return p.MaxAttempts
	}
	return core.Max(p.Rooms*attemptsPerRoom, minAttempts)
}

// PlaceRooms scatters p.Rooms non-overlapping rooms inside the square
// [-radius, radius) on both axes.
//
// Each attempt samples a position in [-radius, radius-maxRoomSize] and a size in
// [minRoomSize, maxRoomSize] per axis, then rejects the candidate if its padded
// rectangle touches an accepted room's padded rectangle or if it would cross
// +radius. Returns ErrUnboundedPlacement once the attempt cap is spent.
func PlaceRooms(p PlacementParams, rng *RNG) ([]Room, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.MaxRoomSize > 2*p.Radius {
		return nil, fmt.Errorf("%w: max room size %d does not fit radius %d",
			ErrUnboundedPlacement, p.MaxRoomSize, p.Radius)
	}

	rooms := make([]Room, 0, p.Rooms)
	padded := make([]core.Rect, 0, p.Rooms)
	limit := p.attemptCap()
	maxPos := p.Radius - p.MaxRoomSize

	for attempt := 0; len(rooms) < p.Rooms; attempt++ {
		if attempt >= limit {
			return nil, fmt.Errorf("%w: placed %d of %d rooms in %d attempts",
				ErrUnboundedPlacement, len(rooms), p.Rooms, limit)
		}

		room := Room{
			Position: core.C(rng.Range(-p.Radius, maxPos), rng.Range(-p.Radius, maxPos)),
			Size:     core.C(rng.Range(p.MinRoomSize, p.MaxRoomSize), rng.Range(p.MinRoomSize, p.MaxRoomSize)),
		}

		bounds := room.Bounds()
		if bounds.Right() > p.Radius || bounds.Bottom() > p.Radius {
			continue
		}

		candidate := room.Padded()
		if overlapsAny(candidate, padded) {
			continue
		}

		rooms = append(rooms, room)
		padded = append(padded, candidate)
	}

	return rooms, nil
}

// overlapsAny reports whether r intersects any of the given rectangles.
func overlapsAny(r core.Rect, others []core.Rect) bool {
	for _, o := range others {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}

// Centers returns the centre of every room, in room order.
func Centers(rooms []Room) []core.Vec2 {
	centers := make([]core.Vec2, len(rooms))
	for i, r := range rooms {
		centers[i] = r.Center()
	}
	return centers
}
