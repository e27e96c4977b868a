package schema

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON serializes a type as its canonical tag.
func (t Type) MarshalJSON() ([]byte, error) {
	if t.Kind == 0 {
		return nil, fmt.Errorf("type is empty")
	}
	return json.Marshal(t.Name())
}

// UnmarshalJSON parses a type from its tag.
func (t *Type) UnmarshalJSON(data []byte) error {
	if t == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("expected type tag string: %w", err)
	}
	parsed, err := ParseType(tag)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// PropertyView is the serializable description of one declared property.
type PropertyView struct {
	Name  string    `json:"name" yaml:"name"`
	Types []Type    `json:"types,omitempty" yaml:"types,omitempty"`
	Enum  *EnumView `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// EnumView describes a property's enum. Values are present only once resolved.
type EnumView struct {
	Spec     string `json:"spec" yaml:"spec"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Array    bool   `json:"array" yaml:"array"`
	Values   []any  `json:"values,omitempty" yaml:"values,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ClassView is the serializable description of a class schema.
type ClassView struct {
	Name           string         `json:"name" yaml:"name"`
	Options        []string       `json:"options,omitempty" yaml:"options,omitempty"`
	UnknownOptions []string       `json:"unknown_options,omitempty" yaml:"unknown_options,omitempty"`
	Properties     []PropertyView `json:"properties" yaml:"properties"`
}

// View describes the class without forcing enum resolution.
func (c *Class) View() ClassView {
	view := ClassView{
		Name:           c.Name,
		Options:        c.Options.Names(),
		UnknownOptions: c.UnknownOptions,
		Properties:     make([]PropertyView, 0, len(c.Properties)),
	}
	for _, p := range c.Properties {
		pv := PropertyView{Name: p, Types: c.Types[p]}
		if slot, ok := c.Enums[p]; ok {
			ev := &EnumView{
				Spec:     slot.Spec.Raw,
				Provider: slot.Spec.Provider,
				Array:    slot.Spec.IsArray,
			}
			if slot.Resolved() {
				set, err := slot.Resolve()
				if err != nil {
					ev.Error = err.Error()
				} else if set != nil {
					ev.Values = set.Values
				}
			}
			pv.Enum = ev
		}
		view.Properties = append(view.Properties, pv)
	}
	return view
}

// MarshalJSON serializes the class through its View.
func (c *Class) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.View())
}

// MarshalYAML serializes a type as its canonical tag.
func (t Type) MarshalYAML() (any, error) {
	return t.Name(), nil
}
