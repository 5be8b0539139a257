package sqlgen

import (
	"fmt"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// withNotDeleted returns w unchanged if spec has no logical-delete column,
// otherwise ANDs in the not-deleted predicate per R1 — every read path goes
// through this before lowering.
func withNotDeleted(spec *schema.TableSpec, w *wrapper.Wrapper) (*wrapper.Wrapper, error) {
	if spec.LogicalDelete == nil {
		return w, nil
	}
	s, err := deriveSentinels(*spec.LogicalDelete)
	if err != nil {
		return nil, err
	}
	return appendNotDeleted(w, *spec.LogicalDelete, s), nil
}

func selectProjection(d dialect.Dialect, spec *schema.TableSpec) string {
	return columnList(d, spec.SelectColumns)
}

// SelectByID builds "SELECT cols FROM table WHERE pk = ?", filtered by R1.
func SelectByID(d dialect.Dialect, spec *schema.TableSpec, id value.Value) (Statement, error) {
	if spec.PrimaryKey == nil {
		return Statement{}, fmt.Errorf("sqlgen: select by id: table %q has no primary key", spec.TableName)
	}
	return SelectByWrapper(d, spec, whereEqID(spec, id))
}

// SelectByWrapper builds "SELECT cols FROM table WHERE <wrapper>".
func SelectByWrapper(d dialect.Dialect, spec *schema.TableSpec, w *wrapper.Wrapper) (Statement, error) {
	if len(spec.SelectColumns) == 0 {
		return Statement{}, errNoColumns("select", spec)
	}
	filtered, err := withNotDeleted(spec, w)
	if err != nil {
		return Statement{}, err
	}
	whereSQL, args := filtered.Build(d, 1)
	sql := fmt.Sprintf("select %s from %s where %s", selectProjection(d, spec), quoteIdent(d, spec), whereSQL)
	return Statement{SQL: sql, Args: args}, nil
}

// SelectAll builds "SELECT cols FROM table [WHERE not-deleted]" with no
// other restriction.
func SelectAll(d dialect.Dialect, spec *schema.TableSpec) (Statement, error) {
	return SelectByWrapper(d, spec, wrapper.New())
}
