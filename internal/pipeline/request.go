package pipeline

import (
	"fmt"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
)

// GenerateRequest asks the pipeline for a new layout.
type GenerateRequest struct {
	Seed            uint32 `json:"seed"`
	RoomsToGenerate uint32 `json:"rooms_to_generate"`
	MinRoomSize     uint32 `json:"min_room_size"`
	MaxRoomSize     uint32 `json:"max_room_size"`
	Radius          int32  `json:"radius"`
}

// RequestFromParams builds a request from generation parameters.
func RequestFromParams(p dungeon.Params) GenerateRequest {
	return GenerateRequest{
		Seed:            p.Seed,
		RoomsToGenerate: uint32(p.Rooms),
		MinRoomSize:     uint32(p.MinRoomSize),
		MaxRoomSize:     uint32(p.MaxRoomSize),
		Radius:          int32(p.Radius),
	}
}

// Params converts the request into generation parameters, checking it
// against the pipeline limits first.
func (r GenerateRequest) Params(cfg Config) (dungeon.Params, error) {
	if cfg.MaxRooms > 0 && int(r.RoomsToGenerate) > cfg.MaxRooms {
		return dungeon.Params{}, fmt.Errorf("%w: %d rooms exceeds limit %d",
			dungeon.ErrInvalidParams, r.RoomsToGenerate, cfg.MaxRooms)
	}
	if cfg.MaxRadius > 0 && int(r.Radius) > cfg.MaxRadius {
		return dungeon.Params{}, fmt.Errorf("%w: radius %d exceeds limit %d",
			dungeon.ErrInvalidParams, r.Radius, cfg.MaxRadius)
	}
	return dungeon.Params{
		Seed:        r.Seed,
		Rooms:       int(r.RoomsToGenerate),
		MinRoomSize: int(r.MinRoomSize),
		MaxRoomSize: int(r.MaxRoomSize),
		Radius:      int(r.Radius),
		MaxAttempts: cfg.MaxAttempts,
		LoopChance:  cfg.LoopChance,
	}, nil
}
