package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *PropertyError
		want string
	}{
		{
			name: "not exist",
			err:  &PropertyError{Kind: KindPropertyNotExist, Class: "Order", Property: "x"},
			want: "Order: Property x not exist",
		},
		{
			name: "type with reason",
			err:  &PropertyError{Kind: KindPropertyTypeInvalid, Class: "Order", Property: "id", Reason: "expected int, got string"},
			want: "Order: Invalid type of value for property id (expected int, got string)",
		},
		{
			name: "value without class",
			err:  &PropertyError{Kind: KindPropertyValueInvalid, Property: "status"},
			want: "Invalid value for property status",
		},
		{
			name: "definition with cause",
			err:  &PropertyError{Kind: KindSchemaDefinition, Class: "Order", Reason: "invalid enum X", Cause: errors.New("boom")},
			want: "Order: Error in schema: invalid enum X: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPropertyError_Is(t *testing.T) {
	cause := errors.New("provider down")
	err := fmt.Errorf("wrapped: %w", &PropertyError{Kind: KindSchemaDefinition, Cause: cause})

	assert.ErrorIs(t, err, ErrSchemaDefinition)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrPropertyNotExist)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindSchemaDefinition, kind)

	_, ok = KindOf(cause)
	assert.False(t, ok)
}

func TestAggregateError(t *testing.T) {
	a := &PropertyError{Kind: KindPropertyNotExist, Property: "a"}
	b := &PropertyError{Kind: KindPropertyValueInvalid, Property: "b"}

	single := &AggregateError{Errors: []error{a}}
	assert.Equal(t, a.Error(), single.Error())

	var err error = &AggregateError{Errors: []error{a, b}}
	assert.Contains(t, err.Error(), "2 validation errors")
	assert.Contains(t, err.Error(), "1. Property a not exist")
	assert.ErrorIs(t, err, ErrPropertyNotExist)
	assert.ErrorIs(t, err, ErrPropertyValueInvalid)
	assert.NotErrorIs(t, err, ErrPropertyTypeInvalid)
	assert.Len(t, ValidationErrors(fmt.Errorf("ctx: %w", err)), 2)
	assert.Nil(t, ValidationErrors(a))
}

func TestPropertyError_CauseNotRepeated(t *testing.T) {
	cause := errors.New("invalid enum X")
	err := &PropertyError{Kind: KindSchemaDefinition, Class: "Order", Property: "x", Reason: cause.Error(), Cause: cause}
	assert.Equal(t, "Order: Error in schema: invalid enum X", err.Error())
}
