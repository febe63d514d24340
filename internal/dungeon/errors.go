package dungeon

import "errors"

var (
	// ErrInvalidParams indicates generation parameters that can never succeed
	// (zero rooms, non-positive radius, min size above max size, ...).
	ErrInvalidParams = errors.New("dungeon: invalid parameters")

	// ErrUnboundedPlacement indicates room placement did not converge within
	// the attempt cap.
	ErrUnboundedPlacement = errors.New("dungeon: room placement did not converge")

	// ErrDegenerateInput indicates fewer than three room centres, or centres
	// that do not span a triangle.
	ErrDegenerateInput = errors.New("dungeon: degenerate triangulation input")

	// ErrDisconnected indicates the candidate graph does not reach every vertex.
	ErrDisconnected = errors.New("dungeon: corridor graph is disconnected")
)
