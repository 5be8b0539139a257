package wrapper

import "github.com/grapefruit-orm/grapefruit/value"

// segmentKind discriminates the Segment variants of §3.4.
type segmentKind uint8

const (
	segOr segmentKind = iota
	segIn
	segNotIn
	segLike
	segLikeLeft
	segLikeRight
	segNotLike
	segNotLikeLeft
	segNotLikeRight
	segEq
	segNe
	segGt
	segGe
	segLt
	segLe
	segIsNull
	segIsNotNull
	segBetween
	segNotBetween
	segBracket
	segGroupBy
	segHaving
	segOrderBy
)

// Direction is the sort direction of an OrderBy segment entry.
type Direction uint8

const (
	Asc Direction = iota
	Desc
)

type orderEntry struct {
	column Column
	dir    Direction
}

// segment is one node of the Wrapper's predicate tree (§3.4). It is an
// internal discriminated type; callers only ever construct segments
// through Wrapper's chainable methods.
type segment struct {
	kind    segmentKind
	column  Column
	value   value.Value
	value2  value.Value // second bound, Between/NotBetween only
	bracket *Wrapper     // Bracket only
	columns []Column     // GroupBy only
	having  []string     // Having only: raw boolean expressions
	orders  []orderEntry // OrderBy only
}
