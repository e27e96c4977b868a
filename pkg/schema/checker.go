package schema

import (
	"encoding/json"
	"io"
	"math"
	"reflect"

	"github.com/yannn/strictdata/internal/values"
)

// Checker decides whether values satisfy type alternatives.
type Checker struct {
	// Strict requires Go numeric kinds for int and float; numeric strings fail.
	Strict bool
	// Types resolves named references. Nil means no named type has instances.
	Types *TypeRegistry
}

// Accepts reports whether v satisfies at least one of the alternatives.
// No alternatives means no restriction.
func (c Checker) Accepts(v any, alts []Type) bool {
	if len(alts) == 0 {
		return true
	}
	for _, t := range alts {
		if c.Match(v, t) {
			return true
		}
	}
	return false
}

// Match reports whether v satisfies a single alternative.
// For "T[]" v must be a collection whose every element satisfies T; an empty
// collection always matches.
func (c Checker) Match(v any, t Type) bool {
	if !t.Array {
		return c.matchBase(v, t)
	}
	if t.Kind == KindMixed {
		return values.IsCollection(v)
	}
	elems, ok := values.Elements(v)
	if !ok {
		return false
	}
	for _, elem := range elems {
		if !c.matchBase(elem, t) {
			return false
		}
	}
	return true
}

func (c Checker) matchBase(v any, t Type) bool {
	switch t.Kind {
	case KindMixed:
		return true
	case KindString:
		return isString(v)
	case KindArray:
		return values.IsCollection(v)
	case KindObject:
		return isObject(v)
	case KindNull:
		return isNil(v)
	case KindResource:
		_, ok := v.(io.Closer)
		return ok && !isNil(v)
	case KindBool:
		return reflect.ValueOf(v).Kind() == reflect.Bool
	case KindInt:
		if c.Strict {
			return values.IsInteger(v)
		}
		return looseInt(v)
	case KindFloat:
		if c.Strict {
			return values.IsFloat(v)
		}
		return looseFloat(v)
	case KindNamed:
		return c.Types.InstanceOf(t.Ref, v)
	default:
		return false
	}
}

func isNil(v any) bool {
	return values.IsNil(v)
}

func isString(v any) bool {
	if _, ok := v.(json.Number); ok {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.String
}

func isObject(v any) bool {
	if isNil(v) {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Struct, reflect.Pointer, reflect.Func:
		return true
	}
	return false
}

func looseInt(v any) bool {
	switch n := v.(type) {
	case bool:
		return false
	case string:
		_, ok := values.ParseInt(n)
		return ok
	case json.Number:
		_, ok := values.ParseInt(n.String())
		return ok
	}
	if values.IsInteger(v) {
		return true
	}
	if values.IsFloat(v) {
		f := reflect.ValueOf(v).Float()
		return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
	}
	return false
}

func looseFloat(v any) bool {
	switch n := v.(type) {
	case bool:
		return false
	case string:
		_, ok := values.ParseFloat(n)
		return ok
	case json.Number:
		_, ok := values.ParseFloat(n.String())
		return ok
	}
	return values.IsInteger(v) || values.IsFloat(v)
}
