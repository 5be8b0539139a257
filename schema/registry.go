package schema

import (
	"reflect"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grapefruit-orm/grapefruit/value"
)

var (
	registryMu sync.RWMutex
	registry   = map[reflect.Type]*TableSpec{}
)

// MustRegister derives and caches the TableSpec for T, panicking on a
// derivation error. Intended for package-level registration, mirroring the
// teacher's build-time code generation — here run once at process start
// instead of at compile time:
//
//	var UserSpec = schema.MustRegister[User]()
func MustRegister[T any]() *TableSpec {
	spec, err := Register[T]()
	if err != nil {
		panic(err)
	}
	return spec
}

// Register derives and caches the TableSpec for T. Subsequent calls for
// the same T return the cached value without re-deriving (TableSpec is
// read-only after creation, per §3.7).
func Register[T any]() (*TableSpec, error) {
	var zero T
	rt := reflect.TypeOf(zero)

	registryMu.RLock()
	if spec, ok := registry[rt]; ok {
		registryMu.RUnlock()
		return spec, nil
	}
	registryMu.RUnlock()

	spec, err := Derive[T]()
	if err != nil {
		return nil, err
	}

	registryMu.Lock()
	registry[rt] = spec
	registryMu.Unlock()
	return spec, nil
}

// Bind wraps ptr (a pointer to a registered entity struct) as a Entity,
// bridging its fields to Value via reflection keyed by ColumnSpec's cached
// FieldIndex.
func Bind[T any](ptr *T) (Entity, error) {
	spec, err := Register[T]()
	if err != nil {
		return nil, err
	}
	return &reflectEntity{spec: spec, rv: reflect.ValueOf(ptr).Elem()}, nil
}

type reflectEntity struct {
	spec *TableSpec
	rv   reflect.Value
}

func (e *reflectEntity) Spec() *TableSpec { return e.spec }

func (e *reflectEntity) Value(col ColumnSpec) value.Value {
	fv := e.rv.Field(col.FieldIndex)
	return goToValue(fv)
}

func (e *reflectEntity) SetValue(col ColumnSpec, v value.Value) {
	fv := e.rv.Field(col.FieldIndex)
	setFromValue(fv, v)
}

// goToValue converts a struct field (scalar or nullable pointer) into a
// value.Value.
func goToValue(fv reflect.Value) value.Value {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return value.Null(kindOf(fv.Type().Elem()))
		}
		fv = fv.Elem()
	}
	switch v := fv.Interface().(type) {
	case bool:
		return value.FromBool(v)
	case int8:
		return value.FromInt8(v)
	case int16:
		return value.FromInt16(v)
	case int32:
		return value.FromInt32(v)
	case int64:
		return value.FromInt64(v)
	case int:
		return value.FromInt64(int64(v))
	case uint8:
		return value.FromUint8(v)
	case uint16:
		return value.FromUint16(v)
	case uint32:
		return value.FromUint32(v)
	case uint64:
		return value.FromUint64(v)
	case float32:
		return value.FromFloat32(v)
	case float64:
		return value.FromFloat64(v)
	case decimal.Decimal:
		return value.FromDecimal(v)
	case string:
		return value.FromString(v)
	case []byte:
		return value.FromBytes(v)
	case time.Time:
		return value.FromDateTime(v)
	default:
		panic("schema: unsupported host type for Value conversion: " + fv.Type().String())
	}
}

func kindOf(rt reflect.Type) value.Kind {
	switch rt.Kind() {
	case reflect.Bool:
		return value.KindBool
	case reflect.Int8:
		return value.KindInt8
	case reflect.Int16:
		return value.KindInt16
	case reflect.Int32:
		return value.KindInt32
	case reflect.Int, reflect.Int64:
		return value.KindInt64
	case reflect.Uint8:
		return value.KindUint8
	case reflect.Uint16:
		return value.KindUint16
	case reflect.Uint32:
		return value.KindUint32
	case reflect.Uint64:
		return value.KindUint64
	case reflect.Float32:
		return value.KindFloat32
	case reflect.Float64:
		return value.KindFloat64
	case reflect.String:
		return value.KindString
	default:
		if rt == reflect.TypeOf(time.Time{}) {
			return value.KindDateTime
		}
		if rt == reflect.TypeOf(decimal.Decimal{}) {
			return value.KindDecimal
		}
		return value.KindInvalid
	}
}

// setFromValue writes v into fv, allocating through a pointer for nullable
// (pointer) host types and collapsing NULL to the zero value, matching the
// deserializer contract of §4.1.
func setFromValue(fv reflect.Value, v value.Value) {
	if fv.Kind() == reflect.Ptr {
		if v.IsNull() {
			fv.Set(reflect.Zero(fv.Type()))
			return
		}
		inner := reflect.New(fv.Type().Elem())
		setScalar(inner.Elem(), v)
		fv.Set(inner)
		return
	}
	setScalar(fv, v)
}

func setScalar(fv reflect.Value, v value.Value) {
	switch fv.Interface().(type) {
	case bool:
		b, _ := v.Bool()
		fv.Set(reflect.ValueOf(b))
	case int64:
		n, _ := v.Int64()
		fv.Set(reflect.ValueOf(n))
	case int32:
		n, _ := v.Int64()
		fv.Set(reflect.ValueOf(int32(n)))
	case int16:
		n, _ := v.Int64()
		fv.Set(reflect.ValueOf(int16(n)))
	case int8:
		n, _ := v.Int64()
		fv.Set(reflect.ValueOf(int8(n)))
	case int:
		n, _ := v.Int64()
		fv.Set(reflect.ValueOf(int(n)))
	case uint64:
		n, _ := v.Uint64()
		fv.Set(reflect.ValueOf(n))
	case float64:
		f, _ := v.Float64()
		fv.Set(reflect.ValueOf(f))
	case float32:
		f, _ := v.Float64()
		fv.Set(reflect.ValueOf(float32(f)))
	case decimal.Decimal:
		d, _ := v.Decimal()
		fv.Set(reflect.ValueOf(d))
	case string:
		s, _ := v.String()
		fv.Set(reflect.ValueOf(s))
	case []byte:
		b, _ := v.Bytes()
		fv.Set(reflect.ValueOf(b))
	case time.Time:
		t, _ := v.Time()
		fv.Set(reflect.ValueOf(t))
	default:
		panic("schema: unsupported host type for Value assignment: " + fv.Type().String())
	}
}
