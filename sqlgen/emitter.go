// Package sqlgen lowers a TableSpec plus a Wrapper (or a bare entity) into
// the final dialect-specific SQL text and argument vector, applying the two
// cross-cutting rewrites of the emitter: R1 (logical-delete rewrite) and R2
// (dialect marks and identifier quoting, delegated to the dialect package).
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

// Statement is the final, ready-to-execute output of the emitter: dialect
// SQL text with positional marks, and the argument vector bound to them in
// order.
type Statement struct {
	SQL  string
	Args []value.Value
}

func quoteIdent(d dialect.Dialect, spec *schema.TableSpec) string {
	return d.Quote(spec.TableName)
}

// fillValue resolves the bound value for col: the meta-object's fill value
// if one applies for this phase, otherwise the entity's own value.
func fillValue(col schema.ColumnSpec, entity schema.Entity, meta metaobject.MetaObject, insert bool) value.Value {
	wantsFill := col.Fill == schema.FillInsertAndUpdate || (insert && col.Fill == schema.FillInsert) || (!insert && col.Fill == schema.FillUpdate)
	if wantsFill {
		if v, ok := meta.Get(col.Alias); ok {
			return v
		}
	}
	return entity.Value(col)
}

// whereEqID builds a named-placeholder fragment "alias = :name" bound to id
// through a throwaway Wrapper, reusing the lowering/finalization machinery
// instead of hand-rolling another placeholder scheme.
func whereEqID(spec *schema.TableSpec, id value.Value) *wrapper.Wrapper {
	return wrapper.New().Eq(spec.PrimaryKey.Column, id)
}

func appendArgs(dst []value.Value, src []value.Value) []value.Value {
	return append(dst, src...)
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func columnList(d dialect.Dialect, cols []schema.ColumnSpec) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = d.Quote(c.Alias)
	}
	return strings.Join(names, ", ")
}

func errNoColumns(op string, spec *schema.TableSpec) error {
	return fmt.Errorf("sqlgen: %s: table %q has no columns for this operation", op, spec.TableName)
}
