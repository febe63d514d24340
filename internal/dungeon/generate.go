package dungeon

import (
	"fmt"
)

// corridorSalt separates the corridor selector's random stream from the
// placement stream of the same seed.
const corridorSalt = 0x5DEECE66D

// Params configures one generation run.
type Params struct {
	Seed        uint32
	Rooms       int
	MinRoomSize int
	MaxRoomSize int
	Radius      int
	MaxAttempts int     // Placement attempt cap (0 = default)
	LoopChance  float64 // Probability of restoring a non-tree edge
}

// DefaultParams returns the parameters of a medium-sized dungeon.
func DefaultParams() Params {
	return Params{
		Seed:        1,
		Rooms:       12,
		MinRoomSize: 3,
		MaxRoomSize: 8,
		Radius:      32,
		LoopChance:  DefaultLoopChance,
	}
}

// Placement returns the room placement part of the parameters.
func (p Params) Placement() PlacementParams {
	return PlacementParams{
		Rooms:       p.Rooms,
		MinRoomSize: p.MinRoomSize,
		MaxRoomSize: p.MaxRoomSize,
		Radius:      p.Radius,
		MaxAttempts: p.MaxAttempts,
	}
}

// Validate reports parameters that can never produce a layout.
func (p Params) Validate() error {
	if err := p.Placement().Validate(); err != nil {
		return err
	}
	if p.LoopChance < 0 || p.LoopChance > 1 {
		return fmt.Errorf("%w: loop chance %g outside [0, 1]", ErrInvalidParams, p.LoopChance)
	}
	return nil
}

// Layout is the complete output of one generation run. It is never shared
// between runs; callers own it once Generate returns.
type Layout struct {
	Params        Params
	Rooms         []Room
	Triangulation []Edge
	Corridors     Corridors
	Grid          *Grid
}

// Generate runs placement, triangulation, corridor selection and
// rasterization in order. Any stage failure aborts the run and no partial
// layout is returned.
func Generate(p Params) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rooms, err := PlaceRooms(p.Placement(), NewRNG(uint64(p.Seed)))
	if err != nil {
		return nil, fmt.Errorf("place rooms: %w", err)
	}

	centers := Centers(rooms)
	edges, err := Triangulate(centers)
	if err != nil {
		return nil, fmt.Errorf("triangulate: %w", err)
	}

	corridors, err := SelectCorridors(edges, centers[0], NewRNG(uint64(p.Seed)+corridorSalt), p.LoopChance)
	if err != nil {
		return nil, fmt.Errorf("select corridors: %w", err)
	}

	return &Layout{
		Params:        p,
		Rooms:         rooms,
		Triangulation: edges,
		Corridors:     corridors,
		Grid:          Rasterize(rooms, corridors.All(), p.Radius),
	}, nil
}
