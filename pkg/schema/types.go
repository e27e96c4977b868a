package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the closed set of type descriptor variants.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindArray
	KindObject
	KindNull
	KindResource
	KindBool
	KindInt
	KindFloat
	KindMixed
	KindNamed
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindArray:    "array",
	KindObject:   "object",
	KindNull:     "null",
	KindResource: "resource",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindMixed:    "mixed",
	KindNamed:    "named",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// builtinTags maps every accepted built-in tag, aliases included, to its kind.
var builtinTags = map[string]Kind{
	"string":   KindString,
	"array":    KindArray,
	"object":   KindObject,
	"null":     KindNull,
	"resource": KindResource,
	"boolean":  KindBool,
	"bool":     KindBool,
	"int":      KindInt,
	"integer":  KindInt,
	"float":    KindFloat,
	"double":   KindFloat,
	"mixed":    KindMixed,
}

var namedPattern = regexp.MustCompile(`^\\?[A-Za-z_][A-Za-z0-9_]*(?:[\\.][A-Za-z_][A-Za-z0-9_]*)*$`)

// Type is one type alternative of a property.
type Type struct {
	Kind Kind
	// Ref is the referenced type name for KindNamed, without a leading "\".
	Ref string
	// Array marks the "array of" form, e.g. "int[]".
	Array bool
	// Raw is the tag as written.
	Raw string
}

// Name returns the canonical tag, e.g. "int[]" for "integer[]".
func (t Type) Name() string {
	name := t.Kind.String()
	if t.Kind == KindNamed {
		name = t.Ref
	}
	if t.Array {
		name += "[]"
	}
	return name
}

func (t Type) String() string {
	return t.Name()
}

// ParseType converts one type tag to a Type.
// Supported forms: built-in tags and their aliases, named references such as
// "Closure" or "App\Models\User", and either of those suffixed with "[]".
func ParseType(tag string) (Type, error) {
	raw := strings.TrimSpace(tag)
	typ := Type{Raw: raw}

	base := raw
	if strings.HasSuffix(base, "[]") {
		base = strings.TrimSuffix(base, "[]")
		typ.Array = true
	}

	if kind, ok := builtinTags[base]; ok {
		typ.Kind = kind
		return typ, nil
	}

	if !namedPattern.MatchString(base) {
		return Type{}, fmt.Errorf("not found handler for type %q", raw)
	}
	typ.Kind = KindNamed
	typ.Ref = strings.TrimPrefix(base, `\`)
	return typ, nil
}

// ParseUnion converts a "|"-separated list of tags into type alternatives.
// An empty string yields no alternatives, which places no restriction on values.
func ParseUnion(raw string) ([]Type, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, "|")
	types := make([]Type, 0, len(parts))
	for _, part := range parts {
		t, err := ParseType(part)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// UnionName renders alternatives back to tag form, e.g. "int|string[]".
func UnionName(types []Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name()
	}
	return strings.Join(names, "|")
}
