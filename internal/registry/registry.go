// Package registry provides a global registry for spawner factories.
// Spawner backends register themselves in init() functions, allowing the
// commands to discover and instantiate them by name without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
)

// Env carries what a spawner backend may need from its host.
type Env struct {
	Logger *log.Logger
	Out    io.Writer
}

// Info contains metadata about a registered spawner.
type Info struct {
	Name        string
	Description string
}

// Factory creates a new spawner for one pipeline.
type Factory func(env Env) pipeline.Spawner

type entry struct {
	factory     Factory
	description string
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a spawner factory to the registry.
// Typically called from a backend's init() function.
// Panics if a spawner with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[name]; exists {
		panic(fmt.Sprintf("registry: spawner %q already registered", name))
	}
	entries[name] = entry{factory: f, description: description}
}

// List returns information about all registered spawners, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for name, e := range entries {
		result = append(result, Info{Name: name, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a spawner by name. A nil logger falls back to the
// default logger and a nil writer discards output.
// Returns an error if the name is not registered.
func Create(name string, env Env) (pipeline.Spawner, error) {
	mu.RLock()
	e, ok := entries[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown spawner %q", name)
	}
	if env.Logger == nil {
		env.Logger = log.Default()
	}
	if env.Out == nil {
		env.Out = io.Discard
	}
	return e.factory(env), nil
}

// Exists checks if a spawner with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[name]
	return ok
}

func init() {
	Register("none", "accept every layout without side effects", func(Env) pipeline.Spawner {
		return pipeline.NopSpawner{}
	})
}
