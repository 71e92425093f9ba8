// Package registry provides a global registry for simulation factories.
// Simulations register themselves in init() functions, so the commands can
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/lys/internal/sim"
)

// ErrUnknown is returned by Create for an unregistered ID.
var ErrUnknown = errors.New("registry: unknown simulation")

// Factory creates a fresh runtime.
type Factory func() sim.Runtime

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a simulation factory to the registry.
// Panics if a simulation with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: simulation %q already registered", id))
	}

	factories[id] = f

	// Runtimes without metadata are listed under their ID
	titles[id] = id
	if d, ok := f().(sim.Describer); ok {
		if title := d.Describe().Title; title != "" {
			titles[id] = title
		}
	}
}

// List returns information about all registered simulations, sorted by ID.
func List() []sim.Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]sim.Info, 0, len(factories))
	for id := range factories {
		result = append(result, sim.Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new runtime by its ID.
func Create(id string) (sim.Runtime, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}

	return f(), nil
}

// Exists checks if a simulation with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
