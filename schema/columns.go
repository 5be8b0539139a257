package schema

import "github.com/grapefruit-orm/grapefruit/wrapper"

// ColumnEnum is the companion enumeration derivation emits alongside a
// TableSpec, per §4.1 step 6: a typed wrapper.Column for every declared
// column, keyed by the UpperCamelCase form of its SQL alias so callers
// build Wrapper predicates against a named member instead of a raw string
// literal.
type ColumnEnum map[string]wrapper.Column

// Columns derives (or reuses the cached) TableSpec for T and returns its
// column enumeration.
func Columns[T any]() (ColumnEnum, error) {
	spec, err := Register[T]()
	if err != nil {
		return nil, err
	}
	return spec.ColumnEnum, nil
}

// MustColumns is Columns, panicking on a derivation error — for
// package-level declarations:
//
//	var UserColumns = schema.MustColumns[User]()
func MustColumns[T any]() ColumnEnum {
	cols, err := Columns[T]()
	if err != nil {
		panic(err)
	}
	return cols
}
