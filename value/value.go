// Package value implements Grapefruit's tagged-union SQL value type.
//
// A Value carries exactly one of the SQL-bindable kinds described in the
// specification between user code, the Wrapper query builder, the SQL
// emitter and the driver adapter. Every kind may additionally be NULL.
package value

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	grapefruit "github.com/grapefruit-orm/grapefruit"
)

// Kind identifies the scalar or array variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindDecimal
	KindChar
	KindString
	KindBytes
	KindJSON
	KindDate
	KindTime
	KindDateTime
	KindDateTimeUTC
	KindDateTimeLocal
	KindDateTimeFixed
	KindArray
)

// String returns a human-readable name for the kind, mainly for error
// messages.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindDecimal:
		return "decimal"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindJSON:
		return "json"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "datetime"
	case KindDateTimeUTC:
		return "datetime(utc)"
	case KindDateTimeLocal:
		return "datetime(local)"
	case KindDateTimeFixed:
		return "datetime(fixed)"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Value is a tagged union over the SQL-bindable kinds. The zero Value is
// invalid; use one of the constructors below.
type Value struct {
	kind    Kind
	null    bool
	elem    Kind // element kind, valid only when kind == KindArray
	payload any
}

// Invalid returns the zero Value, useful as a sentinel when a conversion
// fails.
func Invalid() Value { return Value{kind: KindInvalid} }

// IsNull reports whether the Value holds SQL NULL.
func (v Value) IsNull() bool { return v.null }

// Kind returns the variant tag of the Value.
func (v Value) Kind() Kind { return v.kind }

// ElementKind returns the element kind of an array Value. It panics if v is
// not an array — callers must check Kind() first, per the "mixed arrays are
// invalid" invariant enforced at construction.
func (v Value) ElementKind() Kind {
	if v.kind != KindArray {
		panic("value: ElementKind called on a non-array Value")
	}
	return v.elem
}

func scalar[T any](k Kind, v T) Value {
	return Value{kind: k, payload: v}
}

// Null constructs a NULL Value of the given kind.
func Null(k Kind) Value {
	return Value{kind: k, null: true}
}

// Constructors — one per scalar kind, lossless from the concrete host type.

func FromBool(b bool) Value       { return scalar(KindBool, b) }
func FromInt8(n int8) Value       { return scalar(KindInt8, n) }
func FromInt16(n int16) Value     { return scalar(KindInt16, n) }
func FromInt32(n int32) Value     { return scalar(KindInt32, n) }
func FromInt64(n int64) Value     { return scalar(KindInt64, n) }
func FromUint8(n uint8) Value     { return scalar(KindUint8, n) }
func FromUint16(n uint16) Value   { return scalar(KindUint16, n) }
func FromUint32(n uint32) Value   { return scalar(KindUint32, n) }
func FromUint64(n uint64) Value   { return scalar(KindUint64, n) }
func FromFloat32(f float32) Value { return scalar(KindFloat32, f) }
func FromFloat64(f float64) Value { return scalar(KindFloat64, f) }
func FromDecimal(d decimal.Decimal) Value { return scalar(KindDecimal, d) }
func FromChar(c rune) Value        { return scalar(KindChar, c) }
func FromString(s string) Value    { return scalar(KindString, s) }
func FromBytes(b []byte) Value     { return scalar(KindBytes, b) }
func FromJSON(raw []byte) Value    { return scalar(KindJSON, raw) }
func FromDate(t time.Time) Value   { return scalar(KindDate, t) }
func FromTime(t time.Time) Value   { return scalar(KindTime, t) }
func FromDateTime(t time.Time) Value { return scalar(KindDateTime, t) }

// FromDateTimeUTC constructs a datetime Value tagged as carrying a UTC
// timezone.
func FromDateTimeUTC(t time.Time) Value { return scalar(KindDateTimeUTC, t.UTC()) }

// FromDateTimeLocal constructs a datetime Value tagged as carrying the
// process's local timezone.
func FromDateTimeLocal(t time.Time) Value { return scalar(KindDateTimeLocal, t) }

// FromDateTimeFixed constructs a datetime Value tagged as carrying a fixed
// UTC offset.
func FromDateTimeFixed(t time.Time) Value { return scalar(KindDateTimeFixed, t) }

// Array constructs an array Value from elements that must all share kind
// elem. Per §3.1's invariant, a mismatched element kind is rejected at
// construction rather than discovered later in the emitter.
func Array(elem Kind, elems ...Value) (Value, error) {
	if elem == KindArray {
		return Invalid(), fmt.Errorf("value: array element kind cannot itself be an array")
	}
	for i, e := range elems {
		if e.IsNull() {
			continue
		}
		if e.kind != elem {
			return Invalid(), fmt.Errorf("value: array element %d has kind %s, want %s: %w", i, e.kind, elem, grapefruit.ErrValueTypeMismatch)
		}
	}
	return Value{kind: KindArray, elem: elem, payload: elems}, nil
}

// MustArray is like Array but panics on error — reserved for call sites
// where the element kinds are known statically (e.g. Wrapper.InList over a
// Go slice of a single type).
func MustArray(elem Kind, elems ...Value) Value {
	v, err := Array(elem, elems...)
	if err != nil {
		panic(err)
	}
	return v
}

// Elements returns the element slice of an array Value.
func (v Value) Elements() []Value {
	if v.kind != KindArray {
		panic("value: Elements called on a non-array Value")
	}
	elems, _ := v.payload.([]Value)
	return elems
}

// Scalar coercion accessors. Each returns the zero value and false if the
// Value is NULL or holds a different kind.

func (v Value) Bool() (bool, bool) {
	b, ok := v.payload.(bool)
	return b, ok && !v.null
}

func (v Value) Int64() (int64, bool) {
	switch n := v.payload.(type) {
	case int8:
		return int64(n), !v.null
	case int16:
		return int64(n), !v.null
	case int32:
		return int64(n), !v.null
	case int64:
		return n, !v.null
	}
	return 0, false
}

func (v Value) Uint64() (uint64, bool) {
	switch n := v.payload.(type) {
	case uint8:
		return uint64(n), !v.null
	case uint16:
		return uint64(n), !v.null
	case uint32:
		return uint64(n), !v.null
	case uint64:
		return n, !v.null
	}
	return 0, false
}

func (v Value) Float64() (float64, bool) {
	switch n := v.payload.(type) {
	case float32:
		return float64(n), !v.null
	case float64:
		return n, !v.null
	}
	return 0, false
}

func (v Value) Decimal() (decimal.Decimal, bool) {
	d, ok := v.payload.(decimal.Decimal)
	return d, ok && !v.null
}

func (v Value) String() (string, bool) {
	switch s := v.payload.(type) {
	case string:
		return s, !v.null
	case rune:
		return string(s), !v.null
	}
	return "", false
}

func (v Value) Bytes() ([]byte, bool) {
	switch b := v.payload.(type) {
	case []byte:
		return b, !v.null
	}
	return nil, false
}

func (v Value) Time() (time.Time, bool) {
	t, ok := v.payload.(time.Time)
	return t, ok && !v.null
}

// CanonicalUTC renders a date/time/datetime Value as the naive-UTC string
// format drivers that cannot carry timezone information (MySQL, SQLite)
// expect, per §3.1.
func (v Value) CanonicalUTC() (string, error) {
	t, ok := v.Time()
	if !ok {
		return "", fmt.Errorf("value: CanonicalUTC called on non-temporal or NULL Value (kind=%s)", v.kind)
	}
	switch v.kind {
	case KindDate:
		return t.UTC().Format("2006-01-02"), nil
	case KindTime:
		return t.UTC().Format("15:04:05"), nil
	case KindDateTime, KindDateTimeUTC, KindDateTimeLocal, KindDateTimeFixed:
		return t.UTC().Format("2006-01-02 15:04:05"), nil
	default:
		return "", fmt.Errorf("value: CanonicalUTC called on non-temporal Value (kind=%s)", v.kind)
	}
}

// Native returns the Go value currently boxed inside v (nil if NULL),
// useful for driver adapters that bind by reflection/type switch.
func (v Value) Native() any {
	if v.null {
		return nil
	}
	return v.payload
}
