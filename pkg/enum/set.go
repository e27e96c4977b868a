package enum

import (
	"reflect"

	"github.com/yannn/strictdata/internal/values"
)

// Equality selects how values are compared with enum members.
type Equality uint8

const (
	// Strict requires the same scalar category (string, integer, float, bool, nil)
	// and an equal value. Integer widths and float widths are normalized.
	Strict Equality = iota
	// Loose additionally treats numbers and numeric strings as equal when their
	// numeric values match, so 1, 1.0 and "1" are the same member.
	Loose
)

func (e Equality) String() string {
	if e == Loose {
		return "loose"
	}
	return "strict"
}

// Set is a resolved enum: the permitted values plus the collection flag.
type Set struct {
	Values  []any
	IsArray bool
	// Provider is the provider name the values came from; empty for literals.
	Provider string
}

// NewSet builds a set from raw values, normalizing each scalar.
func NewSet(vals []any, isArray bool) *Set {
	norm := make([]any, len(vals))
	for i, v := range vals {
		norm[i] = values.Scalar(v)
	}
	return &Set{Values: norm, IsArray: isArray}
}

// Accepts reports whether v satisfies the set.
// An empty or nil set accepts everything.
func (s *Set) Accepts(v any, eq Equality) bool {
	if s == nil || len(s.Values) == 0 {
		return true
	}
	if !s.IsArray {
		return s.Contains(v, eq)
	}
	elems, ok := values.Elements(v)
	if !ok {
		return false
	}
	for _, elem := range elems {
		if !s.Contains(elem, eq) {
			return false
		}
	}
	return true
}

// Contains reports whether v is a member of the set.
func (s *Set) Contains(v any, eq Equality) bool {
	if s == nil {
		return false
	}
	for _, member := range s.Values {
		if Equal(member, v, eq) {
			return true
		}
	}
	return false
}

// Equal compares two values under the given equality rule.
func Equal(a, b any, eq Equality) bool {
	na, nb := values.Scalar(a), values.Scalar(b)
	if strictEqual(na, nb) {
		return true
	}
	if eq != Loose {
		return false
	}
	fa, okA := values.Number(na)
	fb, okB := values.Number(nb)
	return okA && okB && fa == fb
}

func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
