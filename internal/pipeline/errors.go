package pipeline

import "errors"

var (
	// ErrBusy is returned by Submit when a generation is already in flight.
	ErrBusy = errors.New("pipeline: generation already in progress")

	// ErrStopped is returned when the pipeline is not running.
	ErrStopped = errors.New("pipeline: stopped")
)
