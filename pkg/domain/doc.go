/*
Package domain contains the shared vocabulary of the strictdata engine.

It defines the error taxonomy returned by property accesses and the option flags a
class can declare through its "@options" tag. Events passed to observability hooks
live here too.

# Error kinds

  - SchemaDefinition: the schema text is malformed (bad enum literal, unknown type tag,
    enum reference that does not resolve to a provider).
  - PropertyNotExist: the property is not declared and optional mode does not apply.
  - PropertyTypeInvalid: the value fails every declared type alternative.
  - PropertyValueInvalid: the value is outside the declared enum.
*/
package domain
