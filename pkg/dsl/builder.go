package dsl

import (
	"errors"
	"fmt"

	"github.com/yannn/strictdata/pkg/annotation"
)

// Builder collects class definitions.
type Builder struct {
	classes map[string]*ClassBuilder
	order   []string
}

// New creates a new schema builder.
func New() *Builder {
	return &Builder{
		classes: make(map[string]*ClassBuilder),
	}
}

// Class starts the definition of a class.
// If the class already exists, it returns the existing builder.
func (b *Builder) Class(name string) *ClassBuilder {
	if cb, ok := b.classes[name]; ok {
		return cb
	}
	cb := &ClassBuilder{name: name}
	b.classes[name] = cb
	b.order = append(b.order, name)
	return cb
}

// Build renders every class into an annotation source.
// All definition mistakes are reported together.
func (b *Builder) Build() (annotation.MapSource, error) {
	src := make(annotation.MapSource, len(b.classes))
	var errs []error
	for _, name := range b.order {
		text, err := b.classes[name].Text()
		if err != nil {
			errs = append(errs, fmt.Errorf("class %s: %w", name, err))
			continue
		}
		src[name] = text
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return src, nil
}
