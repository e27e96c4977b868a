package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptions(t *testing.T) {
	opts, unknown := ParseOptions([]string{"PhpDocNotRequired", " StrictNumberTypeCheck ", "", "Bogus"})

	assert.True(t, opts.Has(OptionSchemaOptional))
	assert.True(t, opts.Has(OptionStrictNumeric))
	assert.False(t, opts.Has(OptionLooseEnumMatch))
	assert.Equal(t, []string{"Bogus"}, unknown)
	assert.Equal(t, []string{"SchemaOptional", "StrictNumeric"}, opts.Names())
	assert.Equal(t, "SchemaOptional,StrictNumeric", opts.String())
}

func TestParseOptions_Aliases(t *testing.T) {
	a, _ := ParseOptions([]string{"SchemaOptional", "StrictNumeric"})
	b, _ := ParseOptions([]string{"PhpDocNotRequired", "StrictNumberTypeCheck"})
	assert.Equal(t, a, b)

	none, unknown := ParseOptions(nil)
	assert.Equal(t, Options(0), none)
	assert.Empty(t, unknown)
	assert.Empty(t, none.Names())
}
