package sqlgen

import (
	"fmt"

	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// sentinels is the derived {not-deleted, deleted} value pair for a
// logical-delete column, per R1. The host type determines the sentinel
// pair: bool uses false/true, an 8-bit integer uses 0/1, a string uses
// 'N'/'Y'. Any other host type makes deriveSentinels return an error when a
// statement is built, rather than silently miscompiling the rewrite.
type sentinels struct {
	notDeleted value.Value
	deleted    value.Value
}

func deriveSentinels(col schema.ColumnSpec) (sentinels, error) {
	switch col.HostType {
	case "bool", "*bool":
		return sentinels{notDeleted: value.FromBool(false), deleted: value.FromBool(true)}, nil
	case "int8", "*int8":
		return sentinels{notDeleted: value.FromInt8(0), deleted: value.FromInt8(1)}, nil
	case "string", "*string":
		return sentinels{notDeleted: value.FromString("N"), deleted: value.FromString("Y")}, nil
	default:
		return sentinels{}, fmt.Errorf("sqlgen: logical-delete column %q has unsupported host type %q (must be bool, int8, or string)", col.Alias, col.HostType)
	}
}

// appendNotDeleted extends a wrapper's predicate tree with "AND
// logical_delete_column = <not-deleted sentinel>", implementing R1's
// automatic filtering of SELECT/COUNT against soft-deleted rows. Called for
// every read path when the table declares a logical-delete column.
func appendNotDeleted(w *wrapper.Wrapper, col schema.ColumnSpec, s sentinels) *wrapper.Wrapper {
	return w.AndFn(func(sub *wrapper.Wrapper) *wrapper.Wrapper {
		return sub.Eq(col.Column, s.notDeleted)
	})
}
