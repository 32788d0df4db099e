// Copyright 2026 The pdfink Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates a new Surface with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Surface, error)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// The built-in pure-Go raster backend registers at 10; accelerated
	// backends should register above it.
	Priority int

	// Factory creates surface instances.
	Factory Factory

	// Available reports if the backend is usable on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered surface backends.
//
// The registry lets alternate overlay backends plug in without changes
// to the pipeline: the session asks for a surface by name (or best
// available) and only ever talks to the Surface interface.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// Register adds a backend to the global registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// List returns all registered backend names sorted by priority
// (highest first).
func List() []string {
	return globalRegistry.List()
}

// New creates a surface using the best available backend.
func New(width, height int) (Surface, error) {
	return globalRegistry.New(Options{Width: width, Height: height})
}

// NewByName creates a surface using a specific named backend.
func NewByName(name string, width, height int) (Surface, error) {
	return globalRegistry.NewByName(name, Options{Width: width, Height: height})
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		name     string
		priority int
	}
	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		entries = append(entries, entry{name: name, priority: e.Priority})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// New creates a surface using the best available backend.
func (r *Registry) New(opts Options) (Surface, error) {
	var lastErr error
	for _, name := range r.List() {
		r.mu.RLock()
		entry := r.entries[name]
		r.mu.RUnlock()
		if !entry.Available() {
			continue
		}
		s, err := entry.Factory(opts)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackendAvailable
}

// NewByName creates a surface using a specific backend.
func (r *Registry) NewByName(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return entry.Factory(opts)
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no surface backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("surface: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not
// available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// init registers the built-in raster backend.
func init() {
	Register("raster", 10, func(opts Options) (Surface, error) {
		return NewRaster(opts.Width, opts.Height), nil
	}, nil)
}
