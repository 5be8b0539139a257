package sqlgen

import (
	"fmt"
	"strings"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/metaobject"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// buildSet renders the SET list for spec.UpdateColumns against entity,
// consulting handler.UpdateFill for columns whose Fill policy applies.
// A Version column (see the design notes on optimistic locking) is
// rendered as `alias = alias + 1` rather than bound to the entity's value —
// the entity never carries the next version, only the one it was read at.
func buildSet(d dialect.Dialect, spec *schema.TableSpec, entity schema.Entity, handler metaobject.Handler, startingIndex int) (string, []value.Value, int) {
	meta := metaobject.MetaObject{}
	handler.UpdateFill(meta)

	idx := startingIndex
	var args []value.Value
	assigns := make([]string, len(spec.UpdateColumns))
	for i, col := range spec.UpdateColumns {
		quoted := d.Quote(col.Alias)
		if col.Version {
			assigns[i] = fmt.Sprintf("%s = %s + 1", quoted, quoted)
			continue
		}
		v := fillValue(col, entity, meta, false)
		assigns[i] = fmt.Sprintf("%s = %s", quoted, d.Mark(idx))
		args = append(args, v)
		idx++
	}
	return strings.Join(assigns, ", "), args, idx
}

// UpdateByID builds "UPDATE table SET ... WHERE pk = ? [and version = ?]",
// optimistically guarded by "AND version = ?" when spec declares a version
// column — the update only takes effect if the row is still at the
// version the entity was loaded with. R1 is applied to the WHERE (not the
// SET), so an already logically-deleted row is never matched.
func UpdateByID(d dialect.Dialect, spec *schema.TableSpec, entity schema.Entity, handler metaobject.Handler) (Statement, error) {
	if spec.PrimaryKey == nil {
		return Statement{}, fmt.Errorf("sqlgen: update by id: table %q has no primary key", spec.TableName)
	}
	if len(spec.UpdateColumns) == 0 {
		return Statement{}, errNoColumns("update", spec)
	}

	setClause, args, next := buildSet(d, spec, entity, handler, 1)

	w := wrapper.New().Eq(spec.PrimaryKey.Column, entity.Value(*spec.PrimaryKey))
	if spec.Version != nil {
		w = w.Eq(spec.Version.Column, entity.Value(*spec.Version))
	}
	filtered, err := withNotDeleted(spec, w)
	if err != nil {
		return Statement{}, err
	}
	whereSQL, whereArgs := filtered.Build(d, next)
	args = appendArgs(args, whereArgs)

	sql := fmt.Sprintf("update %s set %s where %s", quoteIdent(d, spec), setClause, whereSQL)
	return Statement{SQL: sql, Args: args}, nil
}

// UpdateByWrapper builds "UPDATE table SET ... WHERE <wrapper>" against
// values, applying the same criteria predicate as reads, R1 included.
// values only needs to answer Value() for spec.UpdateColumns.
func UpdateByWrapper(d dialect.Dialect, spec *schema.TableSpec, values schema.Entity, handler metaobject.Handler, w *wrapper.Wrapper) (Statement, error) {
	if len(spec.UpdateColumns) == 0 {
		return Statement{}, errNoColumns("update", spec)
	}

	setClause, args, next := buildSet(d, spec, values, handler, 1)

	filtered, err := withNotDeleted(spec, w)
	if err != nil {
		return Statement{}, err
	}
	whereSQL, whereArgs := filtered.Build(d, next)
	args = appendArgs(args, whereArgs)

	sql := fmt.Sprintf("update %s set %s where %s", quoteIdent(d, spec), setClause, whereSQL)
	return Statement{SQL: sql, Args: args}, nil
}
