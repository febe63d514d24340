// Package events defines the outbound notifications of the generation
// pipeline and the flow field, and a fan-out bus that delivers them to
// subscribers without blocking the publisher.
package events

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
)

// Event is a notification published by the core.
type Event interface {
	// Kind returns the stable wire name of the event.
	Kind() string
	event()
}

// MapReady is published once per completed generation.
type MapReady struct {
	Seed      uint32         `json:"seed"`
	Rooms     []dungeon.Room `json:"rooms"`
	Corridors []dungeon.Edge `json:"corridors"`
	Grid      []dungeon.Cell `json:"grid"`
	Diameter  int            `json:"diameter"`
	Radius    int            `json:"radius"`

	// Layout is the full generation result for in-process consumers.
	Layout *dungeon.Layout `json:"-"`
}

func (MapReady) Kind() string { return "map_ready" }
func (MapReady) event()       {}

// NewMapReady builds the event for a finished layout.
func NewMapReady(l *dungeon.Layout) MapReady {
	return MapReady{
		Seed:      l.Params.Seed,
		Rooms:     l.Rooms,
		Corridors: l.Corridors.All(),
		Grid:      l.Grid.Cells,
		Diameter:  l.Grid.Diameter,
		Radius:    l.Grid.Radius,
		Layout:    l,
	}
}

// GenerationFailed is published instead of MapReady when any stage fails.
type GenerationFailed struct {
	Seed   uint32 `json:"seed"`
	Reason string `json:"reason"`

	Err error `json:"-"`
}

func (GenerationFailed) Kind() string { return "generation_failed" }
func (GenerationFailed) event()       {}

// RequestIgnored is published when a generate request arrives while the
// pipeline is busy.
type RequestIgnored struct {
	Seed  uint32 `json:"seed"`
	State string `json:"state"` // Pipeline state at arrival
}

func (RequestIgnored) Kind() string { return "request_ignored" }
func (RequestIgnored) event()       {}

// FlowFieldReady is published after a flow field finished recomputing.
type FlowFieldReady struct {
	Population  string     `json:"population"`
	Destination core.Coord `json:"destination"`
	Lower       core.Coord `json:"lower"`
	Upper       core.Coord `json:"upper"`
	Version     uint64     `json:"version"`
}

func (FlowFieldReady) Kind() string { return "flow_field_ready" }
func (FlowFieldReady) event()       {}

// Publisher accepts events. Implementations must not block.
type Publisher interface {
	Publish(e Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(e Event)

// Publish calls f(e).
func (f PublisherFunc) Publish(e Event) {
	f(e)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = PublisherFunc(func(Event) {})
