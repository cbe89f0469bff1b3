package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrEngineUnavailable reports that no usable engine could be obtained.
	ErrEngineUnavailable = errors.New("engine: unavailable")

	// ErrEngineNotFound reports that no engine is registered under a name.
	// It wraps ErrEngineUnavailable.
	ErrEngineNotFound = fmt.Errorf("%w: not registered", ErrEngineUnavailable)
)

// Loader creates an engine instance. It runs at most once per name and
// successful Initialize call sequence.
type Loader func() (Engine, error)

type entry struct {
	loader Loader
	inst   Engine
}

var (
	mu      sync.Mutex
	entries = map[string]*entry{}
)

// Register makes a loader available under name. Registering the same name
// twice panics, as does a nil loader.
func Register(name string, l Loader) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		panic("engine: Register loader is nil")
	}
	if _, dup := entries[name]; dup {
		panic("engine: Register called twice for " + name)
	}
	entries[name] = &entry{loader: l}
}

// Initialize loads the engine registered under name and returns it. Repeated
// calls return the same instance. A failed load is not cached, so a later
// call may retry once the cause is fixed.
func Initialize(name string) (Engine, error) {
	mu.Lock()
	defer mu.Unlock()
	e, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEngineNotFound, name)
	}
	if e.inst != nil {
		return e.inst, nil
	}
	inst, err := e.loader()
	if err != nil {
		return nil, fmt.Errorf("%w: load %q: %w", ErrEngineUnavailable, name, err)
	}
	if inst == nil {
		return nil, fmt.Errorf("%w: load %q returned no engine", ErrEngineUnavailable, name)
	}
	e.inst = inst
	return inst, nil
}

// MustInitialize is like Initialize but panics on error.
func MustInitialize(name string) Engine {
	e, err := Initialize(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Names returns the sorted registered engine names.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
