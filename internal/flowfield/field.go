// Package flowfield computes breadth-first flow fields: for every cell of a
// bounded region, the step an agent should take to reach a shared
// destination along a shortest 8-connected path.
//
// A Field holds the latest complete Snapshot behind an atomic pointer.
// Readers never block on a recompute; they keep seeing the previous snapshot
// until the new one is swapped in.
package flowfield

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Neighbors lists the 8-connected offsets in expansion order:
// N, NE, E, SE, S, SW, W, NW.
var Neighbors = [8]core.Coord{
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
}

// DefaultMaxCells caps the region area a Field accepts.
const DefaultMaxCells = 1 << 20

// Snapshot is one immutable flow field.
type Snapshot struct {
	Destination core.Coord
	Bounds      Bounds
	Version     uint64

	flow []core.Coord // step toward the destination, per cell
	dist []int        // BFS distance to the destination, -1 if unreached
}

// Build runs the breadth-first expansion from dest over every cell of b.
// Regions above DefaultMaxCells are rejected with ErrRegionTooLarge.
func Build(dest core.Coord, b Bounds) (*Snapshot, error) {
	return build(dest, b, DefaultMaxCells)
}

// checkRegion validates a request before anything is allocated for it.
func checkRegion(dest core.Coord, b Bounds, maxCells int) (int, error) {
	if !b.Valid() {
		return 0, fmt.Errorf("%w: %v is empty", ErrInvalidBounds, b)
	}
	if !b.Contains(dest) {
		return 0, fmt.Errorf("%w: destination %v outside %v", ErrInvalidBounds, dest, b)
	}
	n, ok := b.Cells()
	if !ok {
		return 0, fmt.Errorf("%w: %v overflows the cell count", ErrRegionTooLarge, b)
	}
	if n > maxCells {
		return 0, fmt.Errorf("%w: %d cells exceeds %d", ErrRegionTooLarge, n, maxCells)
	}
	return n, nil
}

func build(dest core.Coord, b Bounds, maxCells int) (*Snapshot, error) {
	n, err := checkRegion(dest, b, maxCells)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Destination: dest,
		Bounds:      b,
		flow:        make([]core.Coord, n),
		dist:        make([]int, n),
	}
	for i := range s.dist {
		s.dist[i] = -1
	}

	frontier := queue.New[core.Coord]()
	visited := mapset.New[core.Coord]()

	frontier.Enqueue(dest)
	visited.Put(dest)
	s.dist[b.index(dest)] = 0

	for !frontier.Empty() {
		cur := frontier.Dequeue()
		next := s.dist[b.index(cur)] + 1

		for _, d := range Neighbors {
			n := cur.Add(d)
			if !b.Contains(n) || visited.Has(n) {
				continue
			}
			visited.Put(n)

			i := b.index(n)
			s.flow[i] = cur.Sub(n)
			s.dist[i] = next
			frontier.Enqueue(n)
		}
	}

	return s, nil
}

// Vector returns the raw step recorded for cell c. The destination's step is
// the zero vector.
func (s *Snapshot) Vector(c core.Coord) (core.Coord, bool) {
	if !s.Bounds.Contains(c) {
		return core.Coord{}, false
	}
	return s.flow[s.Bounds.index(c)], true
}

// Distance returns the number of 8-connected steps from c to the destination.
func (s *Snapshot) Distance(c core.Coord) (int, bool) {
	if !s.Bounds.Contains(c) {
		return 0, false
	}
	d := s.dist[s.Bounds.index(c)]
	return d, d >= 0
}

// Direction returns the normalised step for cell c.
func (s *Snapshot) Direction(c core.Coord) (core.Vec2, error) {
	v, ok := s.Vector(c)
	if !ok {
		return core.Vec2{}, fmt.Errorf("%w: cell %v not in %v", ErrOutOfBounds, c, s.Bounds)
	}
	return v.Vec().Normalize(), nil
}

// Equal reports whether two snapshots hold identical samples.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s.Destination != o.Destination || s.Bounds != o.Bounds || len(s.flow) != len(o.flow) {
		return false
	}
	for i := range s.flow {
		if s.flow[i] != o.flow[i] || s.dist[i] != o.dist[i] {
			return false
		}
	}
	return true
}

// Field owns the current snapshot for one pursuing population.
type Field struct {
	cellSize float64
	maxCells int

	mu      sync.Mutex // serialises recomputes
	version uint64
	current atomic.Pointer[Snapshot]
}

// Option configures a Field.
type Option func(*Field)

// WithCellSize sets the world size of one cell. Non-positive values are ignored.
func WithCellSize(size float64) Option {
	return func(f *Field) {
		if size > 0 {
			f.cellSize = size
		}
	}
}

// WithMaxCells caps the region area. Non-positive values are ignored.
func WithMaxCells(n int) Option {
	return func(f *Field) {
		if n > 0 {
			f.maxCells = n
		}
	}
}

// New creates a field with no snapshot.
func New(opts ...Option) *Field {
	f := &Field{cellSize: 1, maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CellSize returns the world size of one cell.
func (f *Field) CellSize() float64 {
	return f.cellSize
}

// CellOf converts a world position to the cell containing it.
func (f *Field) CellOf(world core.Vec2) core.Coord {
	return core.C(
		int(math.Floor(world.X/f.cellSize)),
		int(math.Floor(world.Y/f.cellSize)),
	)
}

// Snapshot returns the current snapshot, or nil before the first recompute.
func (f *Field) Snapshot() *Snapshot {
	return f.current.Load()
}

// Check reports whether Recompute would accept dest and b, without building.
func (f *Field) Check(dest core.Coord, b Bounds) error {
	_, err := checkRegion(dest, b, f.maxCells)
	return err
}

// Recompute rebuilds the field for dest over bounds b. It reports false
// without doing any work when dest and b match the current snapshot.
func (f *Field) Recompute(dest core.Coord, b Bounds) (bool, error) {
	s, err := f.Rebuild(dest, b)
	return s != nil, err
}

// Rebuild is Recompute returning the snapshot it stored. The snapshot is nil
// when dest and b match the current one.
func (f *Field) Rebuild(dest core.Coord, b Bounds) (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cur := f.current.Load(); cur != nil && cur.Destination == dest && cur.Bounds == b {
		return nil, nil
	}

	s, err := build(dest, b, f.maxCells)
	if err != nil {
		return nil, err
	}
	f.version++
	s.Version = f.version
	f.current.Store(s)
	return s, nil
}

// FlowAt returns the normalised flow direction at a world position. Outside
// the current region, or before the first recompute, it returns the zero
// vector and ErrOutOfBounds.
func (f *Field) FlowAt(world core.Vec2) (core.Vec2, error) {
	s := f.current.Load()
	if s == nil {
		return core.Vec2{}, fmt.Errorf("%w: field not computed", ErrOutOfBounds)
	}
	return s.Direction(f.CellOf(world))
}
