// Package population tracks groups of agents by ID so that navigation code
// can query their positions without knowing how they are stored.
package population

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

var (
	// ErrUnknownPopulation is returned when no source is registered under an ID.
	ErrUnknownPopulation = errors.New("population: unknown population")

	// ErrDuplicatePopulation is returned when an ID is registered twice.
	ErrDuplicatePopulation = errors.New("population: population already registered")
)

// Source is a read-only view of the positions of one population.
type Source interface {
	// Positions returns a snapshot of every member's world position.
	Positions() []core.Vec2
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() []core.Vec2

// Positions calls f.
func (f SourceFunc) Positions() []core.Vec2 {
	return f()
}

// Info describes a registered population.
type Info struct {
	ID   string
	Size int
}

// Registry maps population IDs to their sources.
// Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds a source under id.
func (r *Registry) Register(id string, src Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicatePopulation, id)
	}
	r.sources[id] = src
	return nil
}

// Unregister removes the source registered under id.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sources, id)
}

// Get returns the source registered under id.
func (r *Registry) Get(id string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.sources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPopulation, id)
	}
	return src, nil
}

// Positions returns the member positions of population id.
func (r *Registry) Positions(id string) ([]core.Vec2, error) {
	src, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return src.Positions(), nil
}

// List returns every registered population, sorted by ID.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.sources))
	for id, src := range r.sources {
		result = append(result, Info{ID: id, Size: len(src.Positions())})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}
