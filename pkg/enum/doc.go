// Package enum resolves enum specs into permitted-value sets and checks values
// against them.
//
// An enum spec is either an inline JSON array literal or the name of a provider
// registered in a Registry; either form may carry a trailing "[]" meaning the
// property holds a collection whose every element must be a permitted value:
//
//	["one","two"]      a single value, "one" or "two"
//	["one","two"][]    a collection of "one"/"two" values
//	Colors             a single value from the "Colors" provider
//	Colors[]           a collection of values from the "Colors" provider
package enum
