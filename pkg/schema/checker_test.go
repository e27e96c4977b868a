package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"testing"
)

type stdClass struct{}

type handle struct{}

func (*handle) Close() error { return nil }

type stringer interface{ String() string }

type label string

func (l label) String() string { return string(l) }

func newChecker() Checker {
	reg := NewTypeRegistry()
	RegisterType[stdClass](reg, "stdClass")
	return Checker{Types: reg}
}

func mustUnion(t *testing.T, raw string) []Type {
	t.Helper()
	types, err := ParseUnion(raw)
	if err != nil {
		t.Fatalf("ParseUnion(%q) error = %v", raw, err)
	}
	return types
}

// countAccepted returns how many declarations accept v.
func countAccepted(t *testing.T, c Checker, decls []string, v any) (int, []string) {
	t.Helper()
	n := 0
	var accepted []string
	for _, d := range decls {
		if c.Accepts(v, mustUnion(t, d)) {
			n++
			accepted = append(accepted, d)
		}
	}
	return n, accepted
}

var (
	plainDecls = []string{"mixed", "bool", "integer", "float", "string", "array", "null", "Closure", "stdClass", "resource"}
	arrayDecls = []string{"mixed[]", "bool[]", "integer[]", "float[]", "string[]", "array[]", "null[]", "Closure[]", "stdClass[]", "resource[]"}
	unionDecls = []string{"bool|integer", "bool|integer[]", "bool|integer[]|null"}
)

func TestChecker_Plain(t *testing.T) {
	c := newChecker()

	tests := []struct {
		value any
		want  int
	}{
		{nil, 2},
		{1, 3},
		{"1", 4},
		{1.2, 2},
		{"1.2", 3},
		{"str", 2},
		{true, 2},
		{[]int{1, 2, 3}, 2},
		{&stdClass{}, 2},
		{func() {}, 2},
	}

	for _, tt := range tests {
		got, accepted := countAccepted(t, c, plainDecls, tt.value)
		if got != tt.want {
			t.Errorf("value %#v: accepted by %d %v, want %d", tt.value, got, accepted, tt.want)
		}
	}
}

func TestChecker_Array(t *testing.T) {
	c := newChecker()

	tests := []struct {
		value any
		want  int
	}{
		{[]any{nil}, 2},
		{[]int{1, 2}, 3},
		{[]string{"1", "2"}, 4},
		{[]float64{1.2, 1.5}, 2},
		{[]string{"1.2", "1.5"}, 3},
		{[]string{"str1", "str2"}, 2},
		{[]bool{true, false}, 2},
		{[][]int{{1}, {2}, {3}}, 2},
		{[]*stdClass{{}, {}}, 2},
		{[]any{func() {}, func() {}}, 2},
	}

	for _, tt := range tests {
		got, accepted := countAccepted(t, c, arrayDecls, tt.value)
		if got != tt.want {
			t.Errorf("value %#v: accepted by %d %v, want %d", tt.value, got, accepted, tt.want)
		}
	}
}

func TestChecker_Union(t *testing.T) {
	c := newChecker()

	tests := []struct {
		value any
		want  int
	}{
		{nil, 1},
		{1, 1},
		{"1", 1},
		{1.2, 0},
		{"1.2", 0},
		{"str", 0},
		{true, 3},
		{[]int{1, 2, 3}, 2},
		{&stdClass{}, 0},
		{func() {}, 0},
	}

	for _, tt := range tests {
		got, accepted := countAccepted(t, c, unionDecls, tt.value)
		if got != tt.want {
			t.Errorf("value %#v: accepted by %d %v, want %d", tt.value, got, accepted, tt.want)
		}
	}
}

func TestChecker_UnionOrderIndependent(t *testing.T) {
	c := newChecker()
	for _, v := range []any{"x", 3, nil, []string{"a"}, true} {
		a := c.Accepts(v, mustUnion(t, "string|int|null"))
		b := c.Accepts(v, mustUnion(t, "null|int|string"))
		if a != b {
			t.Errorf("value %#v: order changed the result (%v vs %v)", v, a, b)
		}
	}

	// A later alternative must still be tried when an earlier mixed[] fails.
	if !c.Accepts("scalar", mustUnion(t, "mixed[]|string")) {
		t.Error("mixed[]|string should accept a string")
	}
}

func TestChecker_EmptyArrayAlwaysAccepted(t *testing.T) {
	c := newChecker()
	for _, d := range arrayDecls {
		if !c.Accepts([]any{}, mustUnion(t, d)) {
			t.Errorf("%s should accept an empty slice", d)
		}
		if !c.Accepts(map[string]int{}, mustUnion(t, d)) {
			t.Errorf("%s should accept an empty map", d)
		}
	}
}

func TestChecker_NoAlternatives(t *testing.T) {
	c := newChecker()
	for _, v := range []any{nil, 1, "x", struct{}{}} {
		if !c.Accepts(v, nil) {
			t.Errorf("Accepts(%#v, nil) = false, want true", v)
		}
	}
}

func TestChecker_Numeric(t *testing.T) {
	intType := []Type{{Kind: KindInt}}
	floatType := []Type{{Kind: KindFloat}}

	tests := []struct {
		value       any
		looseInt    bool
		strictInt   bool
		looseFloat  bool
		strictFloat bool
	}{
		{7, true, true, true, false},
		{int8(7), true, true, true, false},
		{uint64(7), true, true, true, false},
		{"7", true, false, true, false},
		{" 7 ", true, false, true, false},
		{"-7", true, false, true, false},
		{"07", false, false, true, false},
		{"7.0", false, false, true, false},
		{"1.8", false, false, true, false},
		{".5", false, false, true, false},
		{"1e3", false, false, true, false},
		{"NaN", false, false, false, false},
		{"", false, false, false, false},
		{1.8, false, false, true, true},
		{2.0, true, false, true, true},
		{float32(2.5), false, false, true, true},
		{json.Number("12"), true, false, true, false},
		{json.Number("1.5"), false, false, true, false},
		{true, false, false, false, false},
		{false, false, false, false, false},
		{nil, false, false, false, false},
		{"99999999999999999999", false, false, true, false},
	}

	loose := Checker{}
	strict := Checker{Strict: true}
	for _, tt := range tests {
		if got := loose.Accepts(tt.value, intType); got != tt.looseInt {
			t.Errorf("loose int(%#v) = %v, want %v", tt.value, got, tt.looseInt)
		}
		if got := strict.Accepts(tt.value, intType); got != tt.strictInt {
			t.Errorf("strict int(%#v) = %v, want %v", tt.value, got, tt.strictInt)
		}
		if got := loose.Accepts(tt.value, floatType); got != tt.looseFloat {
			t.Errorf("loose float(%#v) = %v, want %v", tt.value, got, tt.looseFloat)
		}
		if got := strict.Accepts(tt.value, floatType); got != tt.strictFloat {
			t.Errorf("strict float(%#v) = %v, want %v", tt.value, got, tt.strictFloat)
		}
	}
}

func TestChecker_ObjectResourceNull(t *testing.T) {
	c := newChecker()
	var nilPtr *stdClass
	var nilCloser io.Closer

	tests := []struct {
		decl  string
		value any
		want  bool
	}{
		{"object", stdClass{}, true},
		{"object", &stdClass{}, true},
		{"object", func() {}, true},
		{"object", map[string]any{}, false},
		{"object", nilPtr, false},
		{"object", "str", false},
		{"resource", &handle{}, true},
		{"resource", nilCloser, false},
		{"resource", (*handle)(nil), false},
		{"resource", stdClass{}, false},
		{"null", nilPtr, true},
		{"null", []int(nil), true},
		{"null", 0, false},
		{"string", label("x"), true},
		{"string", json.Number("1"), false},
		{"array", map[string]int{"a": 1}, true},
		{"array", [2]int{1, 2}, true},
		{"string[]", map[string]string{"a": "x"}, true},
		{"string[]", "abc", false},
	}

	for _, tt := range tests {
		if got := c.Accepts(tt.value, mustUnion(t, tt.decl)); got != tt.want {
			t.Errorf("%s accepts %#v = %v, want %v", tt.decl, tt.value, got, tt.want)
		}
	}
}

func TestTypeRegistry(t *testing.T) {
	reg := NewTypeRegistry()
	RegisterType[stdClass](reg, `\stdClass`)
	RegisterType[stringer](reg, "Stringer")
	reg.Register("Error", reflect.TypeFor[error]())

	c := Checker{Types: reg}

	tests := []struct {
		decl  string
		value any
		want  bool
	}{
		{"stdClass", stdClass{}, true},
		{`\stdClass`, &stdClass{}, true},
		{"stdClass", (*stdClass)(nil), false},
		{"stdClass", struct{}{}, false},
		{"Stringer", label("x"), true},
		{"Stringer", "x", false},
		{"Error", errors.New("boom"), true},
		{"Error", fmt.Errorf("wrapped: %w", io.EOF), true},
		{"Closure", func(int) string { return "" }, true},
		{"Closure", (func())(nil), false},
		{"Unregistered", stdClass{}, false},
	}

	for _, tt := range tests {
		if got := c.Accepts(tt.value, mustUnion(t, tt.decl)); got != tt.want {
			t.Errorf("%s accepts %#v = %v, want %v", tt.decl, tt.value, got, tt.want)
		}
	}

	want := []string{"Closure", "Error", "Stringer", "stdClass"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	var nilReg *TypeRegistry
	if nilReg.InstanceOf("Closure", func() {}) {
		t.Error("nil registry should have no instances")
	}
}
