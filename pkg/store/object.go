package store

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/yannn/strictdata/internal/logging"
	"github.com/yannn/strictdata/pkg/domain"
	"github.com/yannn/strictdata/pkg/enum"
	"github.com/yannn/strictdata/pkg/schema"
)

// Object is one instance of a class: a property store guarded by the class schema.
type Object struct {
	class    *schema.Class
	checker  schema.Checker
	equality enum.Equality
	optional bool
	values   map[string]any
	logger   *slog.Logger
	onAccess func(*domain.AccessEvent)
}

// Option defines a functional option for configuring an Object.
type Option func(*Object)

// WithTypes sets the registry used to check named type references.
func WithTypes(t *schema.TypeRegistry) Option {
	return func(o *Object) {
		o.checker.Types = t
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Object) {
		o.logger = logger
	}
}

// WithHooks registers the access hook.
func WithHooks(h domain.Hooks) Option {
	return func(o *Object) {
		o.onAccess = h.OnAccess
	}
}

// New creates an empty object of the given class.
// Option flags are read from the class once, here.
func New(class *schema.Class, opts ...Option) *Object {
	o := &Object{
		class:    class,
		checker:  schema.Checker{Strict: class.Options.Has(domain.OptionStrictNumeric)},
		equality: class.Equality(),
		optional: class.Options.Has(domain.OptionSchemaOptional),
		values:   make(map[string]any),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.checker.Types == nil {
		o.checker.Types = schema.NewTypeRegistry()
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	return o
}

// Class returns the schema the object is checked against.
func (o *Object) Class() *schema.Class {
	return o.class
}

// Get returns the value of property p.
// A declared property that was never written reads as nil.
func (o *Object) Get(p string) (any, error) {
	declared := o.class.Declared(p)
	v, stored := o.values[p]

	var err error
	if !declared && (!o.optional || !stored) {
		err = o.reject(domain.KindPropertyNotExist, p, nil, "")
	}
	o.emit(domain.OpGet, p, declared, err)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Set validates v against the schema of p and stores it.
// On error the object is left unchanged.
func (o *Object) Set(p string, v any) error {
	declared, err := o.check(p, v)
	if err == nil {
		o.values[p] = v
	}
	o.emit(domain.OpSet, p, declared, err)
	return err
}

// Check runs the write decision tree for p and v without storing anything.
func (o *Object) Check(p string, v any) error {
	_, err := o.check(p, v)
	return err
}

// Has reports whether a value is stored for p.
func (o *Object) Has(p string) bool {
	_, ok := o.values[p]
	return ok
}

// Assign validates every entry of values and stores them all, or none when any
// entry is rejected. Errors are collected in key order into a
// domain.AggregateError.
func (o *Object) Assign(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	declared := make(map[string]bool, len(keys))
	for _, k := range keys {
		d, err := o.check(k, values[k])
		declared[k] = d
		if err != nil {
			errs = append(errs, err)
		}
	}

	var aggr error
	if len(errs) > 0 {
		aggr = &domain.AggregateError{Errors: errs}
	} else {
		for _, k := range keys {
			o.values[k] = values[k]
		}
	}
	for _, k := range keys {
		o.emit(domain.OpSet, k, declared[k], aggr)
	}
	return aggr
}

// Snapshot returns a copy of the stored values.
func (o *Object) Snapshot() map[string]any {
	return maps.Clone(o.values)
}

// Decode copies the stored values into out, a pointer to a struct or map,
// matching fields by their mapstructure tags or names.
func (o *Object) Decode(out any) error {
	if err := mapstructure.Decode(o.values, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", o.class.Name, err)
	}
	return nil
}

func (o *Object) check(p string, v any) (bool, error) {
	if !o.class.Declared(p) {
		if o.optional {
			return false, nil
		}
		return false, o.reject(domain.KindPropertyNotExist, p, v, "")
	}

	if types := o.class.TypesOf(p); !o.checker.Accepts(v, types) {
		return true, o.reject(domain.KindPropertyTypeInvalid, p, v,
			fmt.Sprintf("expected %s, got %T", schema.UnionName(types), v))
	}

	set, err := o.class.EnumOf(p)
	if err != nil {
		return true, err
	}
	if !set.Accepts(v, o.equality) {
		reason := fmt.Sprintf("%v is not one of %v", v, set.Values)
		if set.IsArray {
			reason = fmt.Sprintf("%v has an element not in %v", v, set.Values)
		}
		return true, o.reject(domain.KindPropertyValueInvalid, p, v, reason)
	}
	return true, nil
}

func (o *Object) reject(kind domain.Kind, p string, v any, reason string) error {
	return &domain.PropertyError{
		Kind:     kind,
		Class:    o.class.Name,
		Property: p,
		Reason:   reason,
		Value:    v,
	}
}

func (o *Object) emit(op domain.Operation, p string, declared bool, err error) {
	if err != nil {
		o.logger.Debug("property access rejected", "class", o.class.Name, "property", p, "op", op, "error", err)
	}
	if o.onAccess == nil {
		return
	}
	o.onAccess(&domain.AccessEvent{
		Timestamp: time.Now(),
		Class:     o.class.Name,
		Property:  p,
		Operation: op,
		Declared:  declared,
		Err:       err,
	})
}

// Value reads property p and asserts it to T.
func Value[T any](o *Object, p string) (T, error) {
	var zero T
	v, err := o.Get(p)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("property %s holds %T, not %T", p, v, zero)
	}
	return t, nil
}
