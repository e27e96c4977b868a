package schema

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

type matcher func(reflect.Type) bool

// TypeRegistry maps type names used in schema text to Go types.
// Safe for concurrent use.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]matcher
}

// NewTypeRegistry creates a registry with the "Closure" name bound to every func type.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{types: make(map[string]matcher)}
	r.RegisterKind("Closure", reflect.Func)
	return r
}

// Register binds name to t. A value is an instance of name when its dynamic
// type is t, implements t (for interface types), or is a pointer to t.
func (r *TypeRegistry) Register(name string, t reflect.Type) {
	r.set(name, func(vt reflect.Type) bool {
		if vt == t {
			return true
		}
		if t.Kind() == reflect.Interface && vt.Implements(t) {
			return true
		}
		return vt.Kind() == reflect.Pointer && vt.Elem() == t
	})
}

// RegisterKind binds name to every type of kind k.
func (r *TypeRegistry) RegisterKind(name string, k reflect.Kind) {
	r.set(name, func(vt reflect.Type) bool {
		return vt.Kind() == k
	})
}

// RegisterType binds name to the Go type T.
func RegisterType[T any](r *TypeRegistry, name string) {
	r.Register(name, reflect.TypeFor[T]())
}

func (r *TypeRegistry) set(name string, m matcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[strings.TrimPrefix(name, `\`)] = m
}

// Names returns the registered names, sorted.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InstanceOf reports whether v is a non-nil instance of the type registered as name.
// Unregistered names have no instances.
func (r *TypeRegistry) InstanceOf(name string, v any) bool {
	if r == nil || isNil(v) {
		return false
	}
	r.mu.RLock()
	m, ok := r.types[name]
	r.mu.RUnlock()
	return ok && m(reflect.TypeOf(v))
}
