package schema

import "github.com/grapefruit-orm/grapefruit/value"

// Entity is the contract a generated (here: reflection-derived) entity
// type satisfies so the emitter and repository can read and write its
// column values without depending on the concrete struct type.
//
// Bind builds the Entity implementation for a struct type T automatically
// from its registered TableSpec, using reflection keyed by
// ColumnSpec.FieldIndex — callers never need to implement this interface
// by hand.
type Entity interface {
	// Spec returns the entity's TableSpec.
	Spec() *TableSpec
	// Value returns the current value of the given column.
	Value(col ColumnSpec) value.Value
	// SetValue stores v into the given column's field — used before
	// INSERT to store a generator-produced primary key on the entity.
	SetValue(col ColumnSpec, v value.Value)
}
