package enum

import (
	"fmt"
	"sort"
	"sync"
)

// Provider supplies the permitted values of a named enumeration.
// An empty result is treated as a schema definition error.
type Provider interface {
	EnumValues() ([]any, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() ([]any, error)

// EnumValues implements Provider.
func (f ProviderFunc) EnumValues() ([]any, error) {
	return f()
}

// Factory instantiates a provider. The result must implement Provider;
// anything else makes the referencing schema invalid.
type Factory func() any

// Registry manages the available enum providers.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a provider factory under name.
// If a factory with the same name exists, it is overwritten.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[NormalizeName(name)] = f
}

// RegisterProvider registers an existing provider instance under name.
func (r *Registry) RegisterProvider(name string, p Provider) {
	r.Register(name, func() any { return p })
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[NormalizeName(name)]
	return f, ok
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate creates the provider registered under name and queries its values.
func (r *Registry) Instantiate(name string) ([]any, error) {
	if r == nil {
		return nil, fmt.Errorf("invalid enum class %s: no provider registry", name)
	}
	f, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("invalid enum class %s: provider not registered", name)
	}
	p, ok := f().(Provider)
	if !ok {
		return nil, fmt.Errorf("invalid enum class %s: does not provide enum values", name)
	}
	vals, err := p.EnumValues()
	if err != nil {
		return nil, fmt.Errorf("invalid enum class %s: %w", name, err)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("invalid enum class %s: no values", name)
	}
	return vals, nil
}
