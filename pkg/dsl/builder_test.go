package dsl

import (
	"errors"
	"testing"

	"github.com/yannn/strictdata/pkg/adapters/memory"
	"github.com/yannn/strictdata/pkg/annotation"
	"github.com/yannn/strictdata/pkg/domain"
	"github.com/yannn/strictdata/pkg/registry"
	"github.com/yannn/strictdata/pkg/store"
)

func TestBuilder_Text(t *testing.T) {
	b := New()
	b.Class("Order").
		Options("StrictNumberTypeCheck", "LooseEnumMatch").
		Property("id", "int").
		Property("note", "string", "null").
		Property("status", "string").
		Enum("status", "new", "paid").
		EnumEach("levels", 1, 2).
		Provider("currency", `\App\Currencies`).
		ProviderEach("tags", "Tags").
		Property("extra")

	src, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	want := "@options StrictNumberTypeCheck, LooseEnumMatch\n" +
		"@property int $id\n" +
		"@property string|null $note\n" +
		"@property string $status\n" +
		"@enum [\"new\",\"paid\"] $status\n" +
		"@enum [1,2][] $levels\n" +
		"@enum \\App\\Currencies $currency\n" +
		"@enum Tags[] $tags\n" +
		"@property  $extra\n"
	if src["Order"] != want {
		t.Errorf("unexpected text:\n%s\nwant:\n%s", src["Order"], want)
	}

	decl := annotation.Parse(src["Order"])
	if got := decl.Order; len(got) != 7 {
		t.Errorf("Expected 7 declared properties, got %v", got)
	}
	if decl.Enums["currency"] != `\App\Currencies` {
		t.Errorf("currency enum = %q", decl.Enums["currency"])
	}
}

func TestBuilder_Errors(t *testing.T) {
	b := New()
	b.Class("Bad").
		Property("bad name", "int").
		Property("x", "in t").
		Enum("y", map[string]any{"nested": true}).
		Provider("z", "not valid!")
	b.Class("Good").Property("ok", "bool")

	if _, err := b.Build(); err == nil {
		t.Fatal("Expected Build() to fail")
	}
}

func TestBuilder_SameClassReturnsSameBuilder(t *testing.T) {
	b := New()
	if b.Class("A") != b.Class("A") {
		t.Error("Expected Class to return the existing builder")
	}
}

func TestBuilder_DrivesObjects(t *testing.T) {
	b := New()
	b.Class("Shirt").
		Property("size", "int").
		Provider("color", "Colors")

	src, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	reg := registry.New(
		registry.WithSource(src),
		registry.WithProviders(memory.NewRegistry(map[string][]any{"Colors": {"red"}})),
	)
	class, err := reg.Resolve("Shirt")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	obj := store.New(class)
	if err := obj.Set("size", "3"); err != nil {
		t.Errorf("size: %v", err)
	}
	if err := obj.Set("color", "blue"); !errors.Is(err, domain.ErrPropertyValueInvalid) {
		t.Errorf("color: expected value error, got %v", err)
	}
}
