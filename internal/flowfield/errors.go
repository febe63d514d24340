package flowfield

import "errors"

var (
	// ErrOutOfBounds indicates a query outside the field's current region.
	// Agents wandering off the region is expected, so callers usually treat
	// this as "no direction" rather than a failure.
	ErrOutOfBounds = errors.New("flowfield: position outside field bounds")

	// ErrInvalidBounds indicates an empty region, or a destination outside it.
	ErrInvalidBounds = errors.New("flowfield: invalid bounds")

	// ErrRegionTooLarge indicates bounds above the configured cell limit.
	ErrRegionTooLarge = errors.New("flowfield: region too large")
)
