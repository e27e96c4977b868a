/*
Package store implements the property gateway: a map-backed object whose reads
and writes are checked against its class schema.

Every write runs the same decision tree:

  - undeclared property, optional mode off: ErrPropertyNotExist
  - undeclared property, optional mode on: stored without any check
  - declared property: type check (ErrPropertyTypeInvalid), then enum check
    (ErrPropertyValueInvalid), then commit

Reads of undeclared properties fail with ErrPropertyNotExist unless optional mode
is on and a value was written before. A rejected write never changes the object.

An Object is not safe for concurrent use; the class schema it points to is.
*/
package store
