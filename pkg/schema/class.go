package schema

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yannn/strictdata/pkg/annotation"
	"github.com/yannn/strictdata/pkg/domain"
	"github.com/yannn/strictdata/pkg/enum"
)

// Class is the compiled schema of one class. It is shared read-only by every
// instance of the class.
type Class struct {
	Name    string
	Options domain.Options
	// UnknownOptions lists @options names that were not recognized.
	UnknownOptions []string
	// Properties lists declared properties in declaration order.
	Properties []string
	Types      map[string][]Type
	Enums      map[string]*EnumSlot
}

// HasDeclarations reports whether the class declares any property at all.
func (c *Class) HasDeclarations() bool {
	return len(c.Types) > 0 || len(c.Enums) > 0
}

// Declared reports whether p has a type or an enum declaration.
func (c *Class) Declared(p string) bool {
	if _, ok := c.Types[p]; ok {
		return true
	}
	_, ok := c.Enums[p]
	return ok
}

// TypesOf returns the type alternatives of p; nil means unrestricted.
func (c *Class) TypesOf(p string) []Type {
	return c.Types[p]
}

// EnumOf resolves the enum of p. It returns a nil set when p has no enum.
func (c *Class) EnumOf(p string) (*enum.Set, error) {
	slot, ok := c.Enums[p]
	if !ok {
		return nil, nil
	}
	return slot.Resolve()
}

// Equality returns the enum comparison rule selected by the class options.
func (c *Class) Equality() enum.Equality {
	if c.Options.Has(domain.OptionLooseEnumMatch) {
		return enum.Loose
	}
	return enum.Strict
}

// ResolveEnums resolves every enum slot, even after a failure, and returns all
// failures joined in declaration order.
func (c *Class) ResolveEnums() error {
	var errs []error
	for _, p := range c.Properties {
		if _, err := c.EnumOf(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EnumSlot holds one property's enum spec and its lazily resolved value set.
// Resolution runs at most once; a failure is remembered and returned forever.
type EnumSlot struct {
	Spec enum.Spec

	class    string
	property string
	values   *sharedValues
	notify   func(*domain.EnumEvent)

	once sync.Once
	done atomic.Bool
	set  *enum.Set
	err  error
}

// sharedValues memoizes the raw values of one enum source within a class, so
// properties referencing the same provider query it once.
type sharedValues struct {
	once sync.Once
	load func() ([]any, error)
	vals []any
	err  error
}

func (v *sharedValues) get() ([]any, error) {
	v.once.Do(func() {
		v.vals, v.err = v.load()
	})
	return v.vals, v.err
}

// Resolve returns the permitted-value set, resolving it on first use.
func (s *EnumSlot) Resolve() (*enum.Set, error) {
	s.once.Do(func() {
		vals, err := s.values.get()
		if err != nil {
			s.err = &domain.PropertyError{
				Kind:     domain.KindSchemaDefinition,
				Class:    s.class,
				Property: s.property,
				Reason:   err.Error(),
				Cause:    err,
			}
		} else {
			s.set = enum.Build(s.Spec, vals)
		}
		s.done.Store(true)

		if s.notify != nil {
			ev := &domain.EnumEvent{
				Timestamp: time.Now(),
				Class:     s.class,
				Property:  s.property,
				Provider:  s.Spec.Provider,
				Err:       s.err,
			}
			if s.set != nil {
				ev.Values = len(s.set.Values)
			}
			s.notify(ev)
		}
	})
	return s.set, s.err
}

// Resolved reports whether resolution has already run.
func (s *EnumSlot) Resolved() bool {
	return s.done.Load()
}

// CompileOption configures Compile.
type CompileOption func(*compileConfig)

type compileConfig struct {
	resolver *enum.Resolver
	notify   func(*domain.EnumEvent)
}

// WithResolver sets the resolver used by enum slots.
func WithResolver(r *enum.Resolver) CompileOption {
	return func(c *compileConfig) {
		c.resolver = r
	}
}

// WithEnumHook registers a callback invoked after each enum slot resolves.
func WithEnumHook(fn func(*domain.EnumEvent)) CompileOption {
	return func(c *compileConfig) {
		c.notify = fn
	}
}

// Compile builds the class schema from parsed declarations. Type tags and enum
// specs are validated here; provider-backed enums are resolved on first use.
func Compile(name string, decl *annotation.Declarations, opts ...CompileOption) (*Class, error) {
	cfg := compileConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.resolver == nil {
		cfg.resolver = enum.NewResolver(nil)
	}

	c := &Class{
		Name:  name,
		Types: make(map[string][]Type, len(decl.Types)),
		Enums: make(map[string]*EnumSlot, len(decl.Enums)),
	}
	c.Options, c.UnknownOptions = domain.ParseOptions(decl.Options)
	c.Properties = append(c.Properties, decl.Order...)

	for _, p := range sortedKeys(decl.Types) {
		types, err := ParseUnion(decl.Types[p])
		if err != nil {
			return nil, definitionError(name, p, err)
		}
		c.Types[p] = types
	}

	providers := make(map[string]*sharedValues)
	for _, p := range sortedKeys(decl.Enums) {
		spec, err := enum.ParseSpec(decl.Enums[p])
		if err != nil {
			return nil, definitionError(name, p, err)
		}

		src := providers[spec.Provider]
		if src == nil {
			src = &sharedValues{load: func() ([]any, error) { return cfg.resolver.Values(spec) }}
			if spec.Provider != "" {
				providers[spec.Provider] = src
			}
		}

		c.Enums[p] = &EnumSlot{
			Spec:     spec,
			class:    name,
			property: p,
			values:   src,
			notify:   cfg.notify,
		}
	}

	return c, nil
}

func definitionError(class, property string, err error) error {
	return &domain.PropertyError{
		Kind:     domain.KindSchemaDefinition,
		Class:    class,
		Property: property,
		Reason:   err.Error(),
		Cause:    err,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
