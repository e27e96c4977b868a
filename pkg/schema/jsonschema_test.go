package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yannn/strictdata/pkg/annotation"
	"github.com/yannn/strictdata/pkg/schema"
)

func resolvedJSONSchema(t *testing.T, text string) *jsonschema.Resolved {
	t.Helper()
	c, err := schema.Compile("Order", annotation.Parse(text))
	require.NoError(t, err)
	require.NoError(t, c.ResolveEnums())

	resolved, err := c.JSONSchema().Resolve(&jsonschema.ResolveOptions{})
	require.NoError(t, err)
	return resolved
}

func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return v
}

func TestClass_JSONSchema(t *testing.T) {
	resolved := resolvedJSONSchema(t, `
		@property int $id
		@property string|null $note
		@property string[] $tags
		@enum ["a","b"][] $tags
		@property string $status
		@enum ["new","paid"] $status
	`)

	valid := []string{
		`{"id": 1, "note": null, "tags": ["a"], "status": "new"}`,
		`{"id": "42"}`,
		`{}`,
	}
	for _, doc := range valid {
		assert.NoError(t, resolved.Validate(decode(t, doc)), doc)
	}

	invalid := []string{
		`{"id": "x"}`,
		`{"note": 5}`,
		`{"tags": ["c"]}`,
		`{"status": "lost"}`,
		`{"ghost": 1}`,
	}
	for _, doc := range invalid {
		assert.Error(t, resolved.Validate(decode(t, doc)), doc)
	}
}

func TestClass_JSONSchema_Options(t *testing.T) {
	resolved := resolvedJSONSchema(t, `
		@options PhpDocNotRequired, StrictNumberTypeCheck
		@property float $amount
	`)

	assert.NoError(t, resolved.Validate(decode(t, `{"amount": 1.5, "extra": true}`)))
	assert.Error(t, resolved.Validate(decode(t, `{"amount": "1.5"}`)))
}

func TestClass_JSONSchema_UnresolvedEnum(t *testing.T) {
	c, err := schema.Compile("Order", annotation.Parse("@enum Statuses $status"))
	require.NoError(t, err)

	s := c.JSONSchema()
	assert.Equal(t, "Order", s.Title)
	assert.Empty(t, s.Properties["status"].AllOf)
}

func TestClass_JSONSchema_AgreesWithChecker(t *testing.T) {
	c, err := schema.Compile("Shapes", annotation.Parse(`
		@property object    $o
		@property string[]  $s
		@property mixed[]   $m
		@property array     $a
		@property int|null  $n
		@property float[]   $f
		@property resource  $r
	`))
	require.NoError(t, err)

	resolved, err := c.JSONSchema().Resolve(&jsonschema.ResolveOptions{})
	require.NoError(t, err)
	checker := schema.Checker{}

	cases := map[string][]string{
		"o": {`{"a": 1}`, `[]`, `"x"`, `null`},
		"s": {`{"k": "v"}`, `["v"]`, `{"k": 1}`, `"v"`, `[]`, `{}`},
		"m": {`{"k": 1}`, `[1, "a"]`, `5`},
		"a": {`[]`, `{}`, `1`},
		"n": {`"7"`, `null`, `7`, `1.5`, `true`},
		"f": {`["1.5", 2]`, `{"x": 0.5}`, `["x"]`},
		"r": {`{}`, `1`},
	}
	for p, docs := range cases {
		for _, doc := range docs {
			v := decode(t, doc)
			want := checker.Accepts(v, c.TypesOf(p))
			got := resolved.Validate(map[string]any{p: v}) == nil
			assert.Equal(t, want, got, "%s = %s", p, doc)
		}
	}
}

func TestClass_JSONSchema_EnumCollectionObject(t *testing.T) {
	resolved := resolvedJSONSchema(t, `
		@property string[] $tags
		@enum ["a","b"][] $tags
	`)

	assert.NoError(t, resolved.Validate(decode(t, `{"tags": {"x": "a"}}`)))
	assert.Error(t, resolved.Validate(decode(t, `{"tags": {"x": "c"}}`)))
}
