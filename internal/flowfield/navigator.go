package flowfield

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/events"
	"github.com/vovakirdan/tui-dungeon/internal/population"
)

// DefaultMargin is the number of cells kept around agents and destination.
const DefaultMargin = 1

// Request asks for a recompute with an explicit destination and region.
type Request struct {
	Destination core.Coord
	Bounds      Bounds
}

// Navigator keeps one population's field pointed at a moving target.
type Navigator struct {
	id        string
	source    population.Source
	field     *Field
	margin    int
	publisher events.Publisher
	logger    *log.Logger
}

// NewNavigator creates a navigator for population id. A nil publisher
// discards events; a nil logger uses the default logger.
func NewNavigator(id string, src population.Source, field *Field, pub events.Publisher, logger *log.Logger) *Navigator {
	if pub == nil {
		pub = events.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Navigator{
		id:        id,
		source:    src,
		field:     field,
		margin:    DefaultMargin,
		publisher: pub,
		logger:    logger,
	}
}

// SetMargin changes the region margin. Negative values are ignored.
func (n *Navigator) SetMargin(margin int) {
	if margin >= 0 {
		n.margin = margin
	}
}

// Field returns the navigator's field.
func (n *Navigator) Field() *Field {
	return n.field
}

// Region returns the destination cell and bounds derived from the current
// agent positions and target.
func (n *Navigator) Region(target core.Vec2) Request {
	dest := n.field.CellOf(target)
	positions := n.source.Positions()
	cells := make([]core.Coord, len(positions))
	for i, p := range positions {
		cells[i] = n.field.CellOf(p)
	}
	return Request{Destination: dest, Bounds: BoundsFor(cells, dest, n.margin)}
}

// Update recomputes the field if the target cell moved or agents left the
// current region. Reports whether a new snapshot was published.
func (n *Navigator) Update(target core.Vec2) (bool, error) {
	return n.Apply(n.Region(target))
}

// Apply recomputes the field for an explicit request.
func (n *Navigator) Apply(req Request) (bool, error) {
	s, err := n.field.Rebuild(req.Destination, req.Bounds)
	if err != nil {
		n.logger.Warn("flow field recompute failed", "population", n.id, "dest", req.Destination, "err", err)
		return false, err
	}
	if s == nil {
		return false, nil
	}

	n.logger.Debug("flow field recomputed",
		"population", n.id, "dest", s.Destination, "bounds", s.Bounds, "version", s.Version)
	n.publisher.Publish(events.FlowFieldReady{
		Population:  n.id,
		Destination: s.Destination,
		Lower:       s.Bounds.Lower,
		Upper:       s.Bounds.Upper,
		Version:     s.Version,
	})
	return true, nil
}

// Serve applies requests until ctx is cancelled or reqs is closed. Failed
// requests are logged and skipped.
func (n *Navigator) Serve(ctx context.Context, reqs <-chan Request) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-reqs:
			if !ok {
				return nil
			}
			_, _ = n.Apply(req)
		}
	}
}
