/*
Package strictdata guards object properties with schemas declared in documentation-style annotations.

A class describes its properties in a small annotation language. Every write
through an Object is checked against the declared types and, optionally, a
closed set of permitted values. Reads of undeclared properties fail.

# Annotations

	@options StrictNumberTypeCheck, LooseEnumMatch
	@property int $id
	@property string|null $note
	@property int[] $tags
	@enum ["new","paid"] $status
	@enum Currencies $currency

Supported types are string, array, object, null, resource, bool/boolean,
int/integer, float/double, mixed and registered named types, each optionally
suffixed with [] for "collection of". Enums are either an inline JSON array or
the name of a registered enum.Provider, also optionally suffixed with [].

Options:

  - PhpDocNotRequired (alias SchemaOptional): undeclared properties are stored unchecked.
  - StrictNumberTypeCheck (alias StrictNumeric): int and float accept Go numbers only, never numeric strings.
  - LooseEnumMatch: enum membership compares numbers and numeric strings by value.

# Usage

	eng := strictdata.New(
		strictdata.WithClasses(map[string]string{
			"Order": "@property int $id\n@enum [\"new\",\"paid\"] $status",
		}),
	)

	order, err := eng.Object("Order")
	if err != nil {
		log.Fatal(err)
	}
	if err := order.Set("status", "lost"); errors.Is(err, domain.ErrPropertyValueInvalid) {
		log.Println(err)
	}

Go types can carry their own schema by implementing annotation.Describer and
binding through Bind.

# Concurrency

The Engine and its registry are safe for concurrent use. Each class schema is
built once and enum values are resolved at most once per property. Objects are
not safe for concurrent mutation.
*/
package strictdata
