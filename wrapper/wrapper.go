// Package wrapper implements Grapefruit's composable SQL predicate
// builder (§3.4–§3.5, §4.2). A Wrapper is pure: every method returns the
// updated value, and lowering to SQL never touches a database.
package wrapper

import "github.com/grapefruit-orm/grapefruit/value"

// Wrapper holds a typed predicate tree plus the grouping/having/ordering
// accumulators described in §3.5. The zero Wrapper is ready to use (bracket
// depth 0, empty streams).
type Wrapper struct {
	bracketNum int
	normal     []segment
	groupBy    []segment
	having     []segment
	orderBy    []segment
}

// New returns an empty root Wrapper.
func New() *Wrapper {
	return &Wrapper{}
}

func (w *Wrapper) clone() *Wrapper {
	cp := *w
	cp.normal = append([]segment(nil), w.normal...)
	cp.groupBy = append([]segment(nil), w.groupBy...)
	cp.having = append([]segment(nil), w.having...)
	cp.orderBy = append([]segment(nil), w.orderBy...)
	return &cp
}

func (w *Wrapper) append(s segment) *Wrapper {
	cp := w.clone()
	cp.normal = append(cp.normal, s)
	return cp
}

// binary predicate constructors ---------------------------------------

func binary[T any](w *Wrapper, kind segmentKind, col Column, v T, from func(T) value.Value) *Wrapper {
	return w.append(segment{kind: kind, column: col, value: from(v)})
}

// valueOf converts common Go host types to a value.Value. Grapefruit's
// Wrapper accepts the same scalar kinds the value package exposes
// constructors for; callers needing an exotic kind (decimal, arrays of a
// kind without a Go primitive analogue) construct a value.Value directly
// and pass it to Eq/Ne/etc., which use it as is.
func valueOf(v any) value.Value {
	switch x := v.(type) {
	case value.Value:
		return x
	case bool:
		return value.FromBool(x)
	case int:
		return value.FromInt64(int64(x))
	case int8:
		return value.FromInt8(x)
	case int16:
		return value.FromInt16(x)
	case int32:
		return value.FromInt32(x)
	case int64:
		return value.FromInt64(x)
	case uint:
		return value.FromUint64(uint64(x))
	case uint8:
		return value.FromUint8(x)
	case uint16:
		return value.FromUint16(x)
	case uint32:
		return value.FromUint32(x)
	case uint64:
		return value.FromUint64(x)
	case float32:
		return value.FromFloat32(x)
	case float64:
		return value.FromFloat64(x)
	case string:
		return value.FromString(x)
	case []byte:
		return value.FromBytes(x)
	default:
		panic("wrapper: unsupported value type; pass a value.Value explicitly")
	}
}

func (w *Wrapper) Eq(col Column, v any) *Wrapper { return w.append(segment{kind: segEq, column: col, value: valueOf(v)}) }
func (w *Wrapper) Ne(col Column, v any) *Wrapper { return w.append(segment{kind: segNe, column: col, value: valueOf(v)}) }
func (w *Wrapper) Gt(col Column, v any) *Wrapper { return w.append(segment{kind: segGt, column: col, value: valueOf(v)}) }
func (w *Wrapper) Ge(col Column, v any) *Wrapper { return w.append(segment{kind: segGe, column: col, value: valueOf(v)}) }
func (w *Wrapper) Lt(col Column, v any) *Wrapper { return w.append(segment{kind: segLt, column: col, value: valueOf(v)}) }
func (w *Wrapper) Le(col Column, v any) *Wrapper { return w.append(segment{kind: segLe, column: col, value: valueOf(v)}) }

func (w *Wrapper) Like(col Column, s string) *Wrapper {
	return w.append(segment{kind: segLike, column: col, value: value.FromString(s)})
}
func (w *Wrapper) LikeLeft(col Column, s string) *Wrapper {
	return w.append(segment{kind: segLikeLeft, column: col, value: value.FromString(s)})
}
func (w *Wrapper) LikeRight(col Column, s string) *Wrapper {
	return w.append(segment{kind: segLikeRight, column: col, value: value.FromString(s)})
}
func (w *Wrapper) NotLike(col Column, s string) *Wrapper {
	return w.append(segment{kind: segNotLike, column: col, value: value.FromString(s)})
}
func (w *Wrapper) NotLikeLeft(col Column, s string) *Wrapper {
	return w.append(segment{kind: segNotLikeLeft, column: col, value: value.FromString(s)})
}
func (w *Wrapper) NotLikeRight(col Column, s string) *Wrapper {
	return w.append(segment{kind: segNotLikeRight, column: col, value: value.FromString(s)})
}

func (w *Wrapper) IsNull(col Column) *Wrapper    { return w.append(segment{kind: segIsNull, column: col}) }
func (w *Wrapper) IsNotNull(col Column) *Wrapper { return w.append(segment{kind: segIsNotNull, column: col}) }

// InList appends an `IN (...)` predicate over elems, which must all share
// the given kind per §3.1's array invariant.
func (w *Wrapper) InList(col Column, elems ...value.Value) *Wrapper {
	return w.inList(col, segIn, elems)
}

// NotIn appends a `NOT IN (...)` predicate.
func (w *Wrapper) NotIn(col Column, elems ...value.Value) *Wrapper {
	return w.inList(col, segNotIn, elems)
}

func (w *Wrapper) inList(col Column, kind segmentKind, elems []value.Value) *Wrapper {
	if len(elems) == 0 {
		return w.clone()
	}
	arr, err := value.Array(elems[0].Kind(), elems...)
	if err != nil {
		panic(err)
	}
	return w.append(segment{kind: kind, column: col, value: arr})
}

// Between appends a `BETWEEN lo AND hi` predicate.
func (w *Wrapper) Between(col Column, lo, hi value.Value) *Wrapper {
	return w.append(segment{kind: segBetween, column: col, value: lo, value2: hi})
}

// NotBetween appends a `NOT BETWEEN lo AND hi` predicate.
func (w *Wrapper) NotBetween(col Column, lo, hi value.Value) *Wrapper {
	return w.append(segment{kind: segNotBetween, column: col, value: lo, value2: hi})
}

// Or inserts an OR joiner before the next predicate.
func (w *Wrapper) Or() *Wrapper {
	return w.append(segment{kind: segOr})
}

// AndFn opens a bracketed sub-expression at bracketNum+1, lets f populate
// it, and appends the result as a Bracket segment.
func (w *Wrapper) AndFn(f func(*Wrapper) *Wrapper) *Wrapper {
	sub := &Wrapper{bracketNum: w.bracketNum + 1}
	sub = f(sub)
	return w.append(segment{kind: segBracket, bracket: sub})
}

// OrFn is like AndFn but first emits an Or joiner, so the bracket itself is
// OR-joined to whatever precedes it.
func (w *Wrapper) OrFn(f func(*Wrapper) *Wrapper) *Wrapper {
	cp := w.append(segment{kind: segOr})
	sub := &Wrapper{bracketNum: w.bracketNum + 1}
	sub = f(sub)
	return cp.append(segment{kind: segBracket, bracket: sub})
}

// GroupBy appends columns to the GROUP BY accumulator.
func (w *Wrapper) GroupBy(cols ...Column) *Wrapper {
	cp := w.clone()
	cp.groupBy = append(cp.groupBy, segment{kind: segGroupBy, columns: cols})
	return cp
}

// Having appends raw boolean expressions to the HAVING accumulator.
func (w *Wrapper) Having(exprs ...string) *Wrapper {
	cp := w.clone()
	cp.having = append(cp.having, segment{kind: segHaving, having: exprs})
	return cp
}

// OrderBy appends a column with an explicit direction to the ORDER BY
// accumulator.
func (w *Wrapper) OrderBy(col Column, dir Direction) *Wrapper {
	cp := w.clone()
	cp.orderBy = append(cp.orderBy, segment{kind: segOrderBy, orders: []orderEntry{{column: col, dir: dir}}})
	return cp
}

// OrderByAsc is a convenience for OrderBy(col, Asc).
func (w *Wrapper) OrderByAsc(col Column) *Wrapper { return w.OrderBy(col, Asc) }

// OrderByDesc is a convenience for OrderBy(col, Desc).
func (w *Wrapper) OrderByDesc(col Column) *Wrapper { return w.OrderBy(col, Desc) }

// EqIf/NeIf/LikeIf: the `(condition bool, …)` variants described in §4.2, which
// suppress the addition entirely when condition is false.

func (w *Wrapper) EqIf(condition bool, col Column, v any) *Wrapper {
	if !condition {
		return w.clone()
	}
	return w.Eq(col, v)
}

func (w *Wrapper) NeIf(condition bool, col Column, v any) *Wrapper {
	if !condition {
		return w.clone()
	}
	return w.Ne(col, v)
}

func (w *Wrapper) LikeIf(condition bool, col Column, s string) *Wrapper {
	if !condition {
		return w.clone()
	}
	return w.Like(col, s)
}

// BracketNum returns the wrapper's nesting depth (0 at the root).
func (w *Wrapper) BracketNum() int { return w.bracketNum }

// IsEmpty reports whether the wrapper has no predicates, grouping, having
// or ordering segments at all.
func (w *Wrapper) IsEmpty() bool {
	return len(w.normal) == 0 && len(w.groupBy) == 0 && len(w.having) == 0 && len(w.orderBy) == 0
}
