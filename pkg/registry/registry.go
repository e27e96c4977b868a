// Package registry memoizes compiled class schemas.
//
// A Registry is the process-wide schema cache: the first Resolve of a class
// loads its schema text from the configured source, parses and compiles it, and
// every later Resolve returns the same *schema.Class. Entries are never
// invalidated. Definition errors are cached as well, so a broken class fails the
// same way on every access without reparsing.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yannn/strictdata/internal/logging"
	"github.com/yannn/strictdata/pkg/annotation"
	"github.com/yannn/strictdata/pkg/domain"
	"github.com/yannn/strictdata/pkg/enum"
	"github.com/yannn/strictdata/pkg/schema"
	"golang.org/x/sync/singleflight"
)

// Registry caches compiled class schemas. Safe for concurrent use.
type Registry struct {
	source    annotation.Source
	parser    *annotation.Parser
	providers *enum.Registry
	types     *schema.TypeRegistry
	logger    *slog.Logger
	hooks     domain.Hooks
	eager     bool

	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group

	builds atomic.Int64
	hits   atomic.Int64
}

type entry struct {
	class *schema.Class
	err   error
}

// Option defines a functional option for configuring the Registry.
type Option func(*Registry)

// WithSource sets where schema text is loaded from.
func WithSource(src annotation.Source) Option {
	return func(r *Registry) {
		r.source = src
	}
}

// WithProviders sets the enum provider registry.
func WithProviders(p *enum.Registry) Option {
	return func(r *Registry) {
		r.providers = p
	}
}

// WithTypes sets the named type registry.
func WithTypes(t *schema.TypeRegistry) Option {
	return func(r *Registry) {
		r.types = t
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithHooks registers observability hooks for schema builds and enum resolution.
func WithHooks(h domain.Hooks) Option {
	return func(r *Registry) {
		r.hooks = r.hooks.Merge(h)
	}
}

// WithEagerEnums resolves every enum while the class is built, so an invalid
// provider reference fails the class build instead of the first access.
func WithEagerEnums() Option {
	return func(r *Registry) {
		r.eager = true
	}
}

// New creates a registry. Without WithSource it knows no class.
func New(opts ...Option) *Registry {
	r := &Registry{
		parser:  annotation.NewParser(),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.source == nil {
		r.source = annotation.MapSource{}
	}
	if r.providers == nil {
		r.providers = enum.NewRegistry()
	}
	if r.types == nil {
		r.types = schema.NewTypeRegistry()
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Types returns the named type registry used by checkers of this registry's classes.
func (r *Registry) Types() *schema.TypeRegistry { return r.types }

// Providers returns the enum provider registry.
func (r *Registry) Providers() *enum.Registry { return r.providers }

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger { return r.logger }

// Hooks returns the registered observability hooks.
func (r *Registry) Hooks() domain.Hooks { return r.hooks }

// Resolve returns the compiled schema of class, building it on first use.
// A class unknown to the source yields an error wrapping domain.ErrClassNotFound;
// that outcome is not cached, so the class can be registered later.
func (r *Registry) Resolve(class string) (*schema.Class, error) {
	if e, ok := r.lookup(class); ok {
		r.hits.Add(1)
		return e.class, e.err
	}

	v, err, _ := r.group.Do(class, func() (any, error) {
		if e, ok := r.lookup(class); ok {
			return e, nil
		}
		e, err := r.build(class)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.entries[class] = e
		r.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	e := v.(*entry)
	return e.class, e.err
}

// Preload resolves every class and returns all failures joined.
func (r *Registry) Preload(classes ...string) error {
	var errs []error
	for _, class := range classes {
		if _, err := r.Resolve(class); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) lookup(class string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[class]
	return e, ok
}

func (r *Registry) build(class string) (*entry, error) {
	text, err := r.source.SchemaText(class)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema of %s: %w", class, err)
	}

	start := time.Now()
	r.builds.Add(1)

	c, err := schema.Compile(class, r.parser.Parse(text),
		schema.WithResolver(enum.NewResolver(r.providers)),
		schema.WithEnumHook(r.onEnumResolve),
	)
	if err == nil && r.eager {
		err = c.ResolveEnums()
		if err != nil {
			c = nil
		}
	}

	ev := &domain.SchemaEvent{
		Timestamp: start,
		Class:     class,
		Duration:  time.Since(start),
		Err:       err,
	}
	if err != nil {
		r.logger.Error("schema build failed", "class", class, "error", err)
	} else {
		ev.Properties = len(c.Properties)
		r.logger.Debug("schema built", "class", class, "properties", len(c.Properties), "options", c.Options.String())
		if len(c.UnknownOptions) > 0 {
			r.logger.Warn("unknown schema options ignored", "class", class, "options", c.UnknownOptions)
		}
	}
	if r.hooks.OnSchemaBuilt != nil {
		r.hooks.OnSchemaBuilt(ev)
	}

	return &entry{class: c, err: err}, nil
}

func (r *Registry) onEnumResolve(ev *domain.EnumEvent) {
	if ev.Err != nil {
		r.logger.Error("enum resolution failed", "class", ev.Class, "property", ev.Property, "error", ev.Err)
	} else {
		r.logger.Debug("enum resolved", "class", ev.Class, "property", ev.Property, "provider", ev.Provider, "values", ev.Values)
	}
	if r.hooks.OnEnumResolve != nil {
		r.hooks.OnEnumResolve(ev)
	}
}

// Stats reports cache activity.
type Stats struct {
	Classes int   `json:"classes"`
	Builds  int64 `json:"builds"`
	Hits    int64 `json:"hits"`
}

// Stats returns a snapshot of cache activity.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	n := len(r.entries)
	r.mu.RUnlock()
	return Stats{Classes: n, Builds: r.builds.Load(), Hits: r.hits.Load()}
}

// Classes returns the names of cached classes, sorted.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
