package schema

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/yannn/strictdata/pkg/domain"
)

const (
	intStringPattern   = `^\s*[+-]?(0|[1-9][0-9]*)\s*$`
	floatStringPattern = `^\s*[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?\s*$`
)

// JSONSchema describes the class as a JSON Schema for JSON-decoded records.
// Enums contribute their values only when already resolved. A collection is a
// JSON array or object, as maps are collections to the checker. Types no
// decoded JSON value can satisfy (object, resource, named types) match nothing.
func (c *Class) JSONSchema() *jsonschema.Schema {
	strict := c.Options.Has(domain.OptionStrictNumeric)

	s := &jsonschema.Schema{
		Title:      c.Name,
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(c.Properties)),
	}
	if !c.Options.Has(domain.OptionSchemaOptional) {
		s.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
	}

	for _, p := range c.Properties {
		prop := unionSchema(c.Types[p], strict)
		if slot, ok := c.Enums[p]; ok && slot.Resolved() {
			if set, err := slot.Resolve(); err == nil && set != nil && len(set.Values) > 0 {
				values := &jsonschema.Schema{Enum: set.Values}
				if set.IsArray {
					values = &jsonschema.Schema{
						Types:                []string{"array", "object"},
						Items:                values,
						AdditionalProperties: &jsonschema.Schema{Enum: set.Values},
					}
				}
				prop = &jsonschema.Schema{AllOf: []*jsonschema.Schema{prop, values}}
			}
		}
		s.Properties[p] = prop
	}
	return s
}

func unionSchema(types []Type, strict bool) *jsonschema.Schema {
	switch len(types) {
	case 0:
		return &jsonschema.Schema{}
	case 1:
		return typeSchema(types[0], strict)
	}
	alts := make([]*jsonschema.Schema, len(types))
	for i, t := range types {
		alts[i] = typeSchema(t, strict)
	}
	return &jsonschema.Schema{AnyOf: alts}
}

func typeSchema(t Type, strict bool) *jsonschema.Schema {
	if !t.Array {
		return baseSchema(t.Kind, strict)
	}
	// Items and AdditionalProperties need distinct schema nodes.
	return &jsonschema.Schema{
		Types:                []string{"array", "object"},
		Items:                baseSchema(t.Kind, strict),
		AdditionalProperties: baseSchema(t.Kind, strict),
	}
}

func baseSchema(k Kind, strict bool) *jsonschema.Schema {
	switch k {
	case KindMixed:
		return &jsonschema.Schema{}
	case KindString:
		return &jsonschema.Schema{Type: "string"}
	case KindArray:
		return &jsonschema.Schema{Types: []string{"array", "object"}}
	case KindNull:
		return &jsonschema.Schema{Type: "null"}
	case KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case KindInt:
		if strict {
			return &jsonschema.Schema{Type: "integer"}
		}
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
			{Type: "integer"},
			{Type: "string", Pattern: intStringPattern},
		}}
	case KindFloat:
		if strict {
			return &jsonschema.Schema{Type: "number"}
		}
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string", Pattern: floatStringPattern},
		}}
	}
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
