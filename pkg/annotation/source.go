package annotation

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/yannn/strictdata/pkg/domain"
)

// Source supplies the schema text of a class.
// Implementations return an error wrapping domain.ErrClassNotFound when they
// know nothing about the class.
type Source interface {
	SchemaText(class string) (string, error)
}

// MapSource serves schema text from a static map keyed by class name.
type MapSource map[string]string

// SchemaText implements Source.
func (m MapSource) SchemaText(class string) (string, error) {
	text, ok := m[class]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrClassNotFound, class)
	}
	return text, nil
}

// Describer is implemented by Go types that carry their own schema text.
type Describer interface {
	StrictSchema() string
}

// ClassName returns the class identity used for a Go value: its package
// qualified type name, with pointers dereferenced.
func ClassName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// DescriberSource serves schema text from registered Describer values.
// Safe for concurrent use.
type DescriberSource struct {
	mu    sync.RWMutex
	texts map[string]string
}

// NewDescriberSource creates a source pre-populated with the given describers.
func NewDescriberSource(ds ...Describer) *DescriberSource {
	s := &DescriberSource{texts: make(map[string]string)}
	for _, d := range ds {
		s.Add(d)
	}
	return s
}

// Add registers d under ClassName(d) and returns that name.
// The schema text is captured once; later changes to d are not observed.
func (s *DescriberSource) Add(d Describer) string {
	name := ClassName(d)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.texts[name]; !ok {
		s.texts[name] = d.StrictSchema()
	}
	return name
}

// SchemaText implements Source.
func (s *DescriberSource) SchemaText(class string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[class]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrClassNotFound, class)
	}
	return text, nil
}

// Chain queries each source in order and returns the first text found.
type Chain []Source

// SchemaText implements Source.
func (c Chain) SchemaText(class string) (string, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		text, err := src.SchemaText(class)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, domain.ErrClassNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrClassNotFound, class)
}
