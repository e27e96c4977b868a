package strictdata

import (
	"log/slog"
	"reflect"

	"github.com/yannn/strictdata/internal/logging"
	"github.com/yannn/strictdata/pkg/annotation"
	"github.com/yannn/strictdata/pkg/domain"
	"github.com/yannn/strictdata/pkg/enum"
	"github.com/yannn/strictdata/pkg/registry"
	"github.com/yannn/strictdata/pkg/schema"
	"github.com/yannn/strictdata/pkg/store"
)

// Engine is the high-level entry point for the library.
// It owns the schema registry and creates validated objects.
type Engine struct {
	registry   *registry.Registry
	describers *annotation.DescriberSource
	sources    []annotation.Source
	providers  *enum.Registry
	// register holds provider registrations applied once every option has run.
	register   []func(*enum.Registry)
	types      *schema.TypeRegistry
	hooks      domain.Hooks
	logger     *slog.Logger
	eager      bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSource adds an annotation source. Sources are consulted in the order given,
// after the Go types bound with Bind.
func WithSource(src annotation.Source) Option {
	return func(e *Engine) {
		e.sources = append(e.sources, src)
	}
}

// WithClasses adds static schema texts keyed by class name.
func WithClasses(classes map[string]string) Option {
	return WithSource(annotation.MapSource(classes))
}

// WithProviders replaces the enum provider registry. Providers added with
// WithProvider or WithProviderFactory are registered into it regardless of
// option order.
func WithProviders(p *enum.Registry) Option {
	return func(e *Engine) {
		e.providers = p
	}
}

// WithProvider registers an enum provider instance under name.
func WithProvider(name string, p enum.Provider) Option {
	return func(e *Engine) {
		e.register = append(e.register, func(reg *enum.Registry) {
			reg.RegisterProvider(name, p)
		})
	}
}

// WithProviderFactory registers an enum provider factory under name.
func WithProviderFactory(name string, f enum.Factory) Option {
	return func(e *Engine) {
		e.register = append(e.register, func(reg *enum.Registry) {
			reg.Register(name, f)
		})
	}
}

// WithNamedType makes name usable as a type tag matching t.
func WithNamedType(name string, t reflect.Type) Option {
	return func(e *Engine) {
		e.types.Register(name, t)
	}
}

// WithHooks registers observability hooks, merged with any registered before.
func WithHooks(h domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(h)
	}
}

// WithEagerEnums resolves every enum when its class schema is first built.
func WithEagerEnums() Option {
	return func(e *Engine) {
		e.eager = true
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		describers: annotation.NewDescriberSource(),
		providers:  enum.NewRegistry(),
		types:      schema.NewTypeRegistry(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.providers == nil {
		eng.providers = enum.NewRegistry()
	}
	for _, fn := range eng.register {
		fn(eng.providers)
	}

	chain := annotation.Chain{eng.describers}
	chain = append(chain, eng.sources...)

	regOpts := []registry.Option{
		registry.WithSource(chain),
		registry.WithProviders(eng.providers),
		registry.WithTypes(eng.types),
		registry.WithLogger(eng.logger),
		registry.WithHooks(eng.hooks),
	}
	if eng.eager {
		regOpts = append(regOpts, registry.WithEagerEnums())
	}
	eng.registry = registry.New(regOpts...)
	return eng
}

// Registry exposes the underlying schema registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Schema returns the compiled schema of class.
func (e *Engine) Schema(class string) (*schema.Class, error) {
	return e.registry.Resolve(class)
}

// Object creates an empty object of class.
func (e *Engine) Object(class string) (*store.Object, error) {
	c, err := e.registry.Resolve(class)
	if err != nil {
		return nil, err
	}
	return store.New(c,
		store.WithTypes(e.types),
		store.WithLogger(e.logger),
		store.WithHooks(e.hooks),
	), nil
}

// Bind registers the schema carried by a Go type and creates an object for it.
// The class name is the Go type name of v.
func Bind[T annotation.Describer](e *Engine, v T) (*store.Object, error) {
	return e.Object(e.describers.Add(v))
}

// RegisterType makes name usable as a type tag matching T.
func RegisterType[T any](e *Engine, name string) {
	schema.RegisterType[T](e.types, name)
}
