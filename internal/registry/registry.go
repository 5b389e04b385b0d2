// Package registry provides a global registry for pattern generator factories.
// Generators register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// Titled is implemented by generators that have a human-readable name.
type Titled interface {
	Title() string
}

// Info contains metadata about a registered generator.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new generator. The seed drives any randomness so a
// session can be replayed.
type Factory func(seed int64) rhythm.Generator

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a generator factory to the registry.
// Typically called from a generator's init() function.
// Panics if a generator with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: generator %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = id
	if t, ok := f(0).(Titled); ok {
		titles[id] = t.Title()
	}
}

// List returns information about all registered generators, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a generator by its ID.
// Returns an error if the ID is not registered.
func Create(id string, seed int64) (rhythm.Generator, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown generator %q", id)
	}

	return f(seed), nil
}

// Exists checks if a generator with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
