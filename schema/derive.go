package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// TagKey is the struct tag key derivation reads attribute triples from
// (§4.1, §6.4). Each field tag is a comma-separated list of
// "key[=value]" pairs; the first token must be "id" or "column".
const TagKey = "grapefruit"

// FieldError reports a derivation error at its field span, per §4.1's
// error policy.
type FieldError struct {
	Entity string
	Field  string
	Msg    string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: %s.%s: %s", e.Entity, e.Field, e.Msg)
}

var (
	insertStrategies = map[string]Strategy{"default": StrategyDefault, "not_null": StrategyNotNull, "never": StrategyNever}
	updateStrategies = map[string]Strategy{"default": StrategyDefault, "not_null": StrategyNotNull, "never": StrategyNever}
	fillPolicies     = map[string]Fill{"default": FillDefault, "insert": FillInsert, "update": FillUpdate, "insert_and_update": FillInsertAndUpdate}
	idTypes          = map[string]IDStrategy{"auto": IDAuto, "generator": IDGenerator, "input": IDInput}
)

// Derive builds a TableSpec from the struct fields of T, reading attribute
// triples from struct tags per §4.1/§6.4. T must be a struct type (not a
// pointer to one).
func Derive[T any]() (*TableSpec, error) {
	var zero T
	rt := reflect.TypeOf(zero)
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: Derive requires a struct type, got %T", zero)
	}
	return derive(rt)
}

func derive(rt reflect.Type) (*TableSpec, error) {
	entity := rt.Name()
	spec := &TableSpec{TableName: SnakeCase(entity)}

	var (
		sawPK      bool
		sawLogical bool
		sawVersion bool
	)

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Anonymous {
			continue
		}

		if f.Name == "_" {
			if name, ok := tableNameOverride(f); ok {
				spec.TableName = name
			}
			continue
		}
		if !f.IsExported() {
			continue
		}

		tag, ok := f.Tag.Lookup(TagKey)
		if !ok {
			continue
		}
		attrs := parseTag(tag)
		if len(attrs) == 0 {
			return nil, &FieldError{Entity: entity, Field: f.Name, Msg: "empty grapefruit tag"}
		}

		switch attrs[0].key {
		case "id":
			if sawPK {
				return nil, &FieldError{Entity: entity, Field: f.Name, Msg: "multiple primary-key fields"}
			}
			if f.Type.Kind() != reflect.Ptr {
				return nil, &FieldError{Entity: entity, Field: f.Name, Msg: "primary-key field must have a nullable (pointer) host type"}
			}
			col, err := parseIDColumn(entity, f, attrs[1:])
			if err != nil {
				return nil, err
			}
			col.FieldIndex = i
			spec.Columns = append(spec.Columns, col)
			sawPK = true

		case "column":
			col, err := parseRegularColumn(entity, f, attrs[1:])
			if err != nil {
				return nil, err
			}
			col.FieldIndex = i
			if col.LogicalDelete {
				if sawLogical {
					return nil, &FieldError{Entity: entity, Field: f.Name, Msg: "multiple logical-delete columns"}
				}
				sawLogical = true
			}
			if col.Version {
				if sawVersion {
					return nil, &FieldError{Entity: entity, Field: f.Name, Msg: "multiple version columns"}
				}
				sawVersion = true
			}
			spec.Columns = append(spec.Columns, col)

		default:
			return nil, &FieldError{Entity: entity, Field: f.Name, Msg: fmt.Sprintf("invalid argument type for %s: expected one of [id, column]", attrs[0].key)}
		}
	}

	if !sawPK {
		return nil, &FieldError{Entity: entity, Msg: "no primary-key field declared"}
	}

	spec.ColumnEnum = make(ColumnEnum, len(spec.Columns))
	for i := range spec.Columns {
		c := &spec.Columns[i]
		c.Column = wrapper.Col(c.Alias)
		spec.ColumnEnum[UpperCamelCase(c.Alias)] = c.Column
		if c.Kind == KindPrimaryKey {
			spec.PrimaryKey = c
		}
		if c.LogicalDelete {
			spec.LogicalDelete = c
		}
		if c.Version {
			spec.Version = c
		}
	}

	spec.deriveColumnSets()
	return spec, nil
}

type attr struct {
	key, value string
}

func parseTag(tag string) []attr {
	parts := strings.Split(tag, ",")
	attrs := make([]attr, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if k, v, ok := strings.Cut(p, "="); ok {
			attrs = append(attrs, attr{key: k, value: v})
		} else {
			attrs = append(attrs, attr{key: p, value: ""})
		}
	}
	return attrs
}

func tableNameOverride(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup(TagKey)
	if !ok {
		return "", false
	}
	attrs := parseTag(tag)
	if len(attrs) == 0 || attrs[0].key != "table" {
		return "", false
	}
	for _, a := range attrs[1:] {
		if a.key == "name" && a.value != "" {
			return a.value, true
		}
	}
	return "", false
}

func parseIDColumn(entity string, f reflect.StructField, attrs []attr) (ColumnSpec, error) {
	col := ColumnSpec{Name: f.Name, Alias: f.Name, Kind: KindPrimaryKey, IDStrategy: IDAuto}
	for _, a := range attrs {
		switch a.key {
		case "name":
			if a.value != "" {
				col.Alias = a.value
			}
		case "id_type":
			s, ok := idTypes[a.value]
			if !ok {
				return ColumnSpec{}, &FieldError{Entity: entity, Field: f.Name, Msg: fmt.Sprintf("invalid argument type for id_type: expected one of [auto, generator, input]")}
			}
			col.IDStrategy = s
		default:
			return ColumnSpec{}, &FieldError{Entity: entity, Field: f.Name, Msg: fmt.Sprintf("invalid argument type for %s: expected one of [name, id_type]", a.key)}
		}
	}
	return col, nil
}

func parseRegularColumn(entity string, f reflect.StructField, attrs []attr) (ColumnSpec, error) {
	col := ColumnSpec{
		Name:     f.Name,
		Alias:    f.Name,
		Kind:     KindRegular,
		HostType: f.Type.String(),
		Select:   true,
	}
	for _, a := range attrs {
		switch a.key {
		case "name":
			if a.value != "" {
				col.Alias = a.value
			}
		case "ignore":
			col.Ignore = true
		case "select":
			b, err := parseBoolAttr(entity, f.Name, "select", a.value)
			if err != nil {
				return ColumnSpec{}, err
			}
			col.Select = b
		case "is_logic_delete", "logical_delete":
			col.LogicalDelete = true
		case "version":
			col.Version = true
		case "insert_strategy":
			s, ok := insertStrategies[a.value]
			if !ok {
				return ColumnSpec{}, &FieldError{Entity: entity, Field: f.Name, Msg: "invalid argument type for insert_strategy: expected one of [default, not_null, never]"}
			}
			col.InsertStrategy = s
		case "update_strategy":
			s, ok := updateStrategies[a.value]
			if !ok {
				return ColumnSpec{}, &FieldError{Entity: entity, Field: f.Name, Msg: "invalid argument type for update_strategy: expected one of [default, not_null, never]"}
			}
			col.UpdateStrategy = s
		case "fill":
			fi, ok := fillPolicies[a.value]
			if !ok {
				return ColumnSpec{}, &FieldError{Entity: entity, Field: f.Name, Msg: "invalid argument type for fill: expected one of [default, insert, update, insert_and_update]"}
			}
			col.Fill = fi
		default:
			return ColumnSpec{}, &FieldError{Entity: entity, Field: f.Name, Msg: fmt.Sprintf("invalid argument type for %s: expected one of [name, ignore, select, insert_strategy, update_strategy, fill, is_logic_delete, version]", a.key)}
		}
	}
	return col, nil
}

func parseBoolAttr(entity, field, attr, value string) (bool, error) {
	if value == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, &FieldError{Entity: entity, Field: field, Msg: fmt.Sprintf("invalid argument type for %s: expected one of [true, false]", attr)}
	}
	return b, nil
}
