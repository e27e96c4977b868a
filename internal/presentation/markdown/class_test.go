package markdown

import (
	"strings"
	"testing"

	"github.com/yannn/strictdata/pkg/schema"
)

func TestClass(t *testing.T) {
	str, err := schema.ParseType("string")
	if err != nil {
		t.Fatal(err)
	}
	null, err := schema.ParseType("null")
	if err != nil {
		t.Fatal(err)
	}

	view := schema.ClassView{
		Name:    "Order",
		Options: []string{"StrictNumberTypeCheck"},
		Properties: []schema.PropertyView{
			{Name: "note", Types: []schema.Type{str, null}},
			{Name: "status", Enum: &schema.EnumView{Spec: `["new","paid"]`, Values: []any{"new", "paid"}}},
			{Name: "kind", Enum: &schema.EnumView{Spec: "Kinds", Provider: "Kinds"}},
			{Name: "tags", Enum: &schema.EnumView{Spec: "Tags[]", Array: true, Error: "no values"}},
		},
	}
	got := Class(view)

	want := []string{
		"# Order",
		"Options: `StrictNumberTypeCheck`",
		"| `note` | `string`, `null` |  |",
		"| `status` | _any_ | `new`, `paid` |",
		"| `kind` | _any_ | `Kinds` |",
		"| `tags` | _any_ | error: no values |",
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("Expected output to contain %q, got:\n%s", w, got)
		}
	}
}

func TestClass_Empty(t *testing.T) {
	got := Class(schema.ClassView{Name: "Empty", UnknownOptions: []string{"A|B"}})
	if !strings.Contains(got, "_No declared properties._") {
		t.Errorf("missing empty marker:\n%s", got)
	}
	if !strings.Contains(got, "`A\\|B`") {
		t.Errorf("pipe not escaped:\n%s", got)
	}
}
