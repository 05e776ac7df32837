package component

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps component names to descriptors or prebuilt classes.
//
// It is additive: the first registration of a name wins and later ones are
// ignored without error, so default component sets can be registered after
// user overrides without clobbering them.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	items map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: map[string]Entry{}}
}

// AddComponent stores entry under name unless name is already present or the
// entry is unset. It reports whether the entry was stored.
func (r *Registry) AddComponent(name string, entry Entry) bool {
	if entry.IsZero() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return false
	}
	r.items[name] = entry
	return true
}

// AddComponents applies AddComponent to every entry of m.
func (r *Registry) AddComponents(m map[string]Entry) {
	for name, entry := range m {
		r.AddComponent(name, entry)
	}
}

// Get returns the entry registered under name (no panic).
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[name]
	return e, ok
}

// MustGet returns the entry or panics with a helpful message.
// Useful in examples/tests where missing names should fail fast.
func (r *Registry) MustGet(name string) Entry {
	e, ok := r.Get(name)
	if !ok {
		panic(fmt.Errorf("component: registry missing name %q", name))
	}
	return e
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.items))
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
