/*
Package dsl provides a fluent Go builder for class schemas.

It produces the same annotation text a class would carry in its documentation,
so schemas can be generated programmatically, in tests for instance, instead of
being written by hand.

Example usage:

	b := dsl.New()

	b.Class("Order").
		Options("StrictNumberTypeCheck").
		Property("id", "int").
		Property("note", "string", "null").
		Property("status", "string").
		Enum("status", "new", "paid").
		ProviderEach("tags", "Tags")

	src, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	eng := strictdata.New(strictdata.WithSource(src))
*/
package dsl
