package sqlgen

import (
	"fmt"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// CountByWrapper builds "SELECT COUNT(1) FROM ( <select_sql> ) t", wrapping
// the same select a matching read would run rather than re-lowering w into
// a bare WHERE clause: w may carry a GROUP BY, which turns a flat "select
// count(*) from table where <cond>" into one row per group instead of a
// single total. Wrapping the select in a subquery collapses it back to one
// row regardless of grouping.
func CountByWrapper(d dialect.Dialect, spec *schema.TableSpec, w *wrapper.Wrapper) (Statement, error) {
	selectStmt, err := SelectByWrapper(d, spec, w)
	if err != nil {
		return Statement{}, err
	}
	sql := fmt.Sprintf("select count(1) from ( %s ) t", selectStmt.SQL)
	return Statement{SQL: sql, Args: selectStmt.Args}, nil
}

// CountAll builds "SELECT COUNT(1) FROM ( SELECT ... FROM table [WHERE
// not-deleted] ) t", the unconditional case of CountByWrapper.
func CountAll(d dialect.Dialect, spec *schema.TableSpec) (Statement, error) {
	return CountByWrapper(d, spec, wrapper.New())
}
