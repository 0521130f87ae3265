package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds an adapter from Config.
type Factory func(cfg Config, opts ...Option) (Engine, error)

// Registry stores adapter factories by kind.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under kind. Duplicate kinds return an error.
func (r *Registry) Register(kind string, factory Factory) error {
	key := normalizeKind(kind)
	if key == "" {
		return fmt.Errorf("engine: kind is required")
	}
	if factory == nil {
		return fmt.Errorf("engine: factory for %q is required", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("engine: kind %q already registered", key)
	}
	r.factories[key] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind string, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Open builds the adapter registered under kind. Unknown kinds yield a
// DependencyError.
func (r *Registry) Open(kind string, cfg Config, opts ...Option) (Engine, error) {
	key := normalizeKind(kind)

	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		return nil, &DependencyError{Kind: key}
	}
	return factory(cfg, opts...)
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Register adds factory to the process-wide registry.
func Register(kind string, factory Factory) {
	defaultRegistry.MustRegister(kind, factory)
}

// Open builds an adapter from the process-wide registry.
func Open(kind string, cfg Config, opts ...Option) (Engine, error) {
	return defaultRegistry.Open(kind, cfg, opts...)
}

// Kinds lists the kinds in the process-wide registry.
func Kinds() []string {
	return defaultRegistry.Kinds()
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
