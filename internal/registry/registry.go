// Package registry provides a global registry of game module descriptors.
// Games register themselves in init() functions, allowing the platform to
// build session sequences without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/minutegames/gauntlet/internal/session"
)

var (
	descriptors = make(map[string]session.Descriptor)
	mu          sync.RWMutex
)

// Register adds a game descriptor to the registry.
// Typically called from a game's init() function.
// Panics on a duplicate or malformed descriptor: both are programmer
// errors caught at process start.
func Register(desc session.Descriptor) {
	mu.Lock()
	defer mu.Unlock()

	if err := desc.Validate(); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	if _, exists := descriptors[desc.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", desc.ID))
	}

	descriptors[desc.ID] = desc
}

// List returns all registered descriptors, sorted by ID.
func List() []session.Descriptor {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]session.Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		result = append(result, d)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the descriptor for a game ID.
func Lookup(id string) (session.Descriptor, error) {
	mu.RLock()
	defer mu.RUnlock()

	d, ok := descriptors[id]
	if !ok {
		return session.Descriptor{}, fmt.Errorf("registry: unknown game %q", id)
	}
	return d, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := descriptors[id]
	return ok
}

// Sequence resolves an ordered list of game IDs into descriptors.
// An unknown ID is a configuration error, reported before any session
// starts.
func Sequence(ids []string) ([]session.Descriptor, error) {
	result := make([]session.Descriptor, 0, len(ids))
	for _, id := range ids {
		d, err := Lookup(id)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}
