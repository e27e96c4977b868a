// Package schema provides the type system and the compiled per-class schema of
// the strictdata engine.
//
// A property declares an ordered union of type descriptors. Each descriptor is
// one of a closed set of kinds (string, array, object, null, resource, bool,
// int, float, mixed) or a reference to a named Go type registered in a
// TypeRegistry, optionally marked as "array of" with a trailing "[]":
//
//	types, err := schema.ParseUnion("int|string[]|null")
//
//	checker := schema.Checker{Types: schema.NewTypeRegistry()}
//	checker.Accepts("7", types)          // true: numeric strings pass loose int checks
//	checker.Accepts([]string{}, types)   // true: empty collections satisfy any T[]
//
//	checker.Strict = true
//	checker.Accepts("7", types)          // false: strict mode wants a Go integer
//
// Compile turns parsed annotation declarations into a Class. A Class is
// immutable once compiled; its enum slots resolve lazily, exactly once.
package schema
