package sqlgen

import (
	"fmt"
	"strings"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/metaobject"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/value"
)

// Insert builds a multi-row INSERT statement over entities, which must all
// share spec's TableSpec. handler's InsertFill is consulted once per row,
// matching the fill semantics of §4.1/§4.3 (a fill policy substitutes the
// meta-object's value in place of the entity's own).
func Insert(d dialect.Dialect, spec *schema.TableSpec, entities []schema.Entity, handler metaobject.Handler) (Statement, error) {
	if len(entities) == 0 {
		return Statement{}, fmt.Errorf("sqlgen: insert: no entities given")
	}
	if len(spec.InsertColumns) == 0 {
		return Statement{}, errNoColumns("insert", spec)
	}

	idx := 1
	var args []value.Value
	rowMarks := make([]string, len(entities))
	for r, e := range entities {
		meta := metaobject.MetaObject{}
		handler.InsertFill(meta)

		marks := make([]string, len(spec.InsertColumns))
		for i, col := range spec.InsertColumns {
			v := fillValue(col, e, meta, true)
			marks[i] = d.Mark(idx)
			args = append(args, v)
			idx++
		}
		rowMarks[r] = "(" + strings.Join(marks, ", ") + ")"
	}

	sql := fmt.Sprintf("insert into %s (%s) values %s",
		quoteIdent(d, spec), columnList(d, spec.InsertColumns), strings.Join(rowMarks, ", "))
	return Statement{SQL: sql, Args: args}, nil
}
