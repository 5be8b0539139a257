package sqlgen

import (
	"fmt"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// PageStatements is the pair of statements a paged read requires: one to
// count the total matching rows, one to fetch the requested page's rows.
// Both carry the same WHERE criteria and R1 filtering; running them
// together (rather than deriving total from a windowed query) keeps every
// dialect's statement shape identical, per §3.6's Page<T>.
type PageStatements struct {
	Count  Statement
	Select Statement
}

// PageByWrapper builds the count and select statements for page pageNum
// (1-based) of size pageSize.
func PageByWrapper(d dialect.Dialect, spec *schema.TableSpec, w *wrapper.Wrapper, pageNum, pageSize int) (PageStatements, error) {
	if pageNum < 1 {
		return PageStatements{}, fmt.Errorf("sqlgen: page: page number must be >= 1, got %d", pageNum)
	}
	if pageSize < 1 {
		return PageStatements{}, fmt.Errorf("sqlgen: page: page size must be >= 1, got %d", pageSize)
	}
	if len(spec.SelectColumns) == 0 {
		return PageStatements{}, errNoColumns("page", spec)
	}

	selectStmt, err := SelectByWrapper(d, spec, w)
	if err != nil {
		return PageStatements{}, err
	}
	countSQL := fmt.Sprintf("select count(1) from ( %s ) t", selectStmt.SQL)
	countStmt := Statement{SQL: countSQL, Args: selectStmt.Args}

	offset := (pageNum - 1) * pageSize
	args := append([]value.Value(nil), selectStmt.Args...)
	limitMark := d.Mark(len(args) + 1)
	offsetMark := d.Mark(len(args) + 2)
	args = append(args, value.FromInt64(int64(pageSize)), value.FromInt64(int64(offset)))

	sql := fmt.Sprintf("%s limit %s offset %s", selectStmt.SQL, limitMark, offsetMark)

	return PageStatements{Count: countStmt, Select: Statement{SQL: sql, Args: args}}, nil
}
