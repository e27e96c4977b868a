package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a rejected access or a broken schema.
type Kind string

const (
	KindSchemaDefinition     Kind = "schema_definition"
	KindPropertyNotExist     Kind = "property_not_exist"
	KindPropertyTypeInvalid  Kind = "property_type_invalid"
	KindPropertyValueInvalid Kind = "property_value_invalid"
)

// ErrSchemaDefinition is matched by errors caused by malformed schema text.
var ErrSchemaDefinition = errors.New("invalid schema definition")

// ErrPropertyNotExist is matched when a property has no schema entry and no optional-mode fallback.
var ErrPropertyNotExist = errors.New("property not exist")

// ErrPropertyTypeInvalid is matched when a written value fails every declared type.
var ErrPropertyTypeInvalid = errors.New("invalid property type")

// ErrPropertyValueInvalid is matched when a written value is outside the declared enum.
var ErrPropertyValueInvalid = errors.New("invalid property value")

// ErrClassNotFound is returned by annotation sources that have no schema text for a class.
var ErrClassNotFound = errors.New("class not found")

var sentinels = map[Kind]error{
	KindSchemaDefinition:     ErrSchemaDefinition,
	KindPropertyNotExist:     ErrPropertyNotExist,
	KindPropertyTypeInvalid:  ErrPropertyTypeInvalid,
	KindPropertyValueInvalid: ErrPropertyValueInvalid,
}

// PropertyError describes a rejected property access or a schema definition problem.
type PropertyError struct {
	Kind     Kind
	Class    string
	Property string
	Reason   string
	Value    any
	Cause    error
}

func (e *PropertyError) Error() string {
	var msg string
	switch e.Kind {
	case KindPropertyNotExist:
		msg = "Property " + e.Property + " not exist"
	case KindPropertyTypeInvalid:
		msg = "Invalid type of value for property " + e.Property
	case KindPropertyValueInvalid:
		msg = "Invalid value for property " + e.Property
	default:
		msg = "Error in schema: " + e.Reason
	}
	if e.Class != "" {
		msg = e.Class + ": " + msg
	}
	if e.Kind != KindSchemaDefinition && e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Cause != nil && e.Cause.Error() != e.Reason {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *PropertyError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel error for this error's kind.
func (e *PropertyError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// KindOf returns the kind of the first PropertyError in err's chain.
func KindOf(err error) (Kind, bool) {
	var pe *PropertyError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}

// AggregateError represents multiple rejected accesses.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
