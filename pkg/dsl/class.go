package dsl

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yannn/strictdata/pkg/enum"
	"github.com/yannn/strictdata/pkg/schema"
)

var propertyName = regexp.MustCompile(`^\w+$`)

// ClassBuilder provides a fluent API for declaring one class.
type ClassBuilder struct {
	name    string
	options []string
	lines   []string
	errs    []error
}

// Options adds schema options such as "StrictNumberTypeCheck".
func (c *ClassBuilder) Options(names ...string) *ClassBuilder {
	c.options = append(c.options, names...)
	return c
}

// Property declares a property accepting any of types.
// No types declares the property without restriction.
func (c *ClassBuilder) Property(name string, types ...string) *ClassBuilder {
	if !c.checkName(name) {
		return c
	}
	for _, t := range types {
		if _, err := schema.ParseType(t); err != nil {
			c.errs = append(c.errs, fmt.Errorf("property %s: %w", name, err))
			return c
		}
	}
	c.lines = append(c.lines, fmt.Sprintf("@property %s $%s", strings.Join(types, "|"), name))
	return c
}

// Enum restricts a property to a literal list of scalar values.
func (c *ClassBuilder) Enum(name string, values ...any) *ClassBuilder {
	return c.literal(name, values, "")
}

// EnumEach restricts a collection property: every element must be one of values.
func (c *ClassBuilder) EnumEach(name string, values ...any) *ClassBuilder {
	return c.literal(name, values, "[]")
}

// Provider restricts a property to the values of a registered enum provider.
func (c *ClassBuilder) Provider(name, provider string) *ClassBuilder {
	return c.spec(name, provider)
}

// ProviderEach restricts every element of a collection property to a provider's values.
func (c *ClassBuilder) ProviderEach(name, provider string) *ClassBuilder {
	return c.spec(name, provider+"[]")
}

// Text renders the class as annotation text.
func (c *ClassBuilder) Text() (string, error) {
	if len(c.errs) > 0 {
		return "", errors.Join(c.errs...)
	}
	var sb strings.Builder
	if len(c.options) > 0 {
		fmt.Fprintf(&sb, "@options %s\n", strings.Join(c.options, ", "))
	}
	for _, l := range c.lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func (c *ClassBuilder) literal(name string, values []any, suffix string) *ClassBuilder {
	data, err := json.Marshal(values)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf("enum %s: %w", name, err))
		return c
	}
	return c.spec(name, string(data)+suffix)
}

func (c *ClassBuilder) spec(name, raw string) *ClassBuilder {
	if !c.checkName(name) {
		return c
	}
	if _, err := enum.ParseSpec(raw); err != nil {
		c.errs = append(c.errs, fmt.Errorf("enum %s: %w", name, err))
		return c
	}
	c.lines = append(c.lines, fmt.Sprintf("@enum %s $%s", raw, name))
	return c
}

func (c *ClassBuilder) checkName(name string) bool {
	if propertyName.MatchString(name) {
		return true
	}
	c.errs = append(c.errs, fmt.Errorf("invalid property name %q", name))
	return false
}
