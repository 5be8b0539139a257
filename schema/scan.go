package schema

import (
	"database/sql"
	"fmt"
	"reflect"
)

// Scan reads the current row of rows into a fresh *T, matching each select
// column's alias against the row's column names. A non-NULL value is stored
// in the field (through a freshly allocated pointer for nullable host
// types); a NULL value leaves the field at its zero value (nil for a
// pointer field) — per the deserializer contract in §4.1.
func Scan[T any](spec *TableSpec, rows *sql.Rows) (*T, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("schema: scan: columns: %w", err)
	}

	entity := new(T)
	rv := reflect.ValueOf(entity).Elem()

	dest := make([]any, len(cols))
	byAlias := make(map[string]*ColumnSpec, len(spec.Columns))
	for i := range spec.Columns {
		byAlias[spec.Columns[i].Alias] = &spec.Columns[i]
	}

	placeholders := make([]any, len(cols))
	for i, name := range cols {
		if col, ok := byAlias[name]; ok {
			fv := rv.Field(col.FieldIndex)
			placeholders[i] = newScanTarget(fv)
		} else {
			var discard any
			placeholders[i] = &discard
		}
		dest[i] = placeholders[i]
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("schema: scan: %w", err)
	}

	for i, name := range cols {
		col, ok := byAlias[name]
		if !ok {
			continue
		}
		fv := rv.Field(col.FieldIndex)
		applyScanTarget(fv, placeholders[i])
	}

	return entity, nil
}

// scanTarget bridges a struct field (which may be a plain scalar or a
// nullable pointer) to database/sql.Rows.Scan.
type scanTarget struct {
	raw any
}

func newScanTarget(fv reflect.Value) *scanTarget {
	if fv.Kind() == reflect.Ptr {
		raw := reflect.New(fv.Type().Elem()).Interface()
		return &scanTarget{raw: raw}
	}
	raw := reflect.New(fv.Type()).Interface()
	return &scanTarget{raw: raw}
}

// Scan implements sql.Scanner so database/sql can drive it directly.
func (s *scanTarget) Scan(src any) error {
	if src == nil {
		s.raw = nil
		return nil
	}
	return convertAssign(s.raw, src)
}

func applyScanTarget(fv reflect.Value, placeholder any) {
	st := placeholder.(*scanTarget)
	if st.raw == nil {
		// NULL: leave the field at its default, per §4.1.
		return
	}
	val := reflect.ValueOf(st.raw).Elem()
	if fv.Kind() == reflect.Ptr {
		fv.Set(val.Addr())
		return
	}
	fv.Set(val)
}

// convertAssign does a best-effort type-directed assignment from a driver
// value into dst, which is always a pointer produced by newScanTarget.
func convertAssign(dst any, src any) error {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(dv.Type()) {
		dv.Set(sv)
		return nil
	}
	if sv.Type().ConvertibleTo(dv.Type()) {
		dv.Set(sv.Convert(dv.Type()))
		return nil
	}
	return fmt.Errorf("schema: cannot scan %T into %s", src, dv.Type())
}
