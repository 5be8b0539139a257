package sqlgen

import (
	"fmt"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// DeleteByID builds a delete of a single row by primary key. Per R1, a
// table with a logical-delete column never emits a literal DELETE: the
// statement is rewritten to an UPDATE setting that column to its "deleted"
// sentinel instead.
func DeleteByID(d dialect.Dialect, spec *schema.TableSpec, id value.Value) (Statement, error) {
	return DeleteByWrapper(d, spec, whereEqID(spec, id))
}

// DeleteByIDs builds a delete over a set of primary keys, same R1 rewrite.
func DeleteByIDs(d dialect.Dialect, spec *schema.TableSpec, ids []value.Value) (Statement, error) {
	if spec.PrimaryKey == nil {
		return Statement{}, fmt.Errorf("sqlgen: delete by ids: table %q has no primary key", spec.TableName)
	}
	w := wrapper.New().InList(spec.PrimaryKey.Column, ids...)
	return DeleteByWrapper(d, spec, w)
}

// DeleteByWrapper builds a delete restricted by an arbitrary predicate,
// applying R1's rewrite when spec declares a logical-delete column.
func DeleteByWrapper(d dialect.Dialect, spec *schema.TableSpec, w *wrapper.Wrapper) (Statement, error) {
	if spec.LogicalDelete == nil {
		whereSQL, whereArgs := w.Build(d, 1)
		sql := fmt.Sprintf("delete from %s where %s", quoteIdent(d, spec), whereSQL)
		return Statement{SQL: sql, Args: whereArgs}, nil
	}

	s, err := deriveSentinels(*spec.LogicalDelete)
	if err != nil {
		return Statement{}, err
	}

	// Only a still-live row can be "deleted" — without this, a second
	// DeleteByWrapper over the same criteria would re-affect an
	// already-deleted row.
	w = appendNotDeleted(w, *spec.LogicalDelete, s)

	// The SET mark precedes the WHERE clause's marks in the emitted text,
	// so it must also precede them in the argument vector — dialects with
	// unnumbered marks (MySQL's "?") bind purely by order of appearance.
	whereSQL, whereArgs := w.Build(d, 2)
	sql := fmt.Sprintf("update %s set %s = %s where %s",
		quoteIdent(d, spec), d.Quote(spec.LogicalDelete.Alias), d.Mark(1), whereSQL)
	args := append([]value.Value{s.deleted}, whereArgs...)
	return Statement{SQL: sql, Args: args}, nil
}
