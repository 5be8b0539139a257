package wrapper

import (
	"fmt"
	"strings"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/value"
)

// lowered is the placeholder-agnostic result of §4.2's lowering step: a
// SQL fragment using named `:name` placeholders plus the parameter values
// they refer to.
type lowered struct {
	sql    string
	params map[string]value.Value
}

// lower converts the Wrapper's predicate tree into a named-placeholder
// fragment, per §4.2's lowering rules.
func (w *Wrapper) lower() lowered {
	params := make(map[string]value.Value)
	normal := w.lowerNormal(params)
	group := w.lowerGroupBy()
	having := w.lowerHaving()
	order := w.lowerOrderBy()

	parts := make([]string, 0, 4)
	for _, p := range []string{normal, group, having, order} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return lowered{sql: strings.Join(parts, " "), params: params}
}

func (w *Wrapper) lowerNormal(params map[string]value.Value) string {
	var parts []string
	prevWasOr := true // suppresses " and " before the very first segment
	for i, seg := range w.normal {
		if seg.kind == segOr {
			parts = append(parts, "or")
			prevWasOr = true
			continue
		}
		if i > 0 && !prevWasOr {
			parts = append(parts, "and")
		}
		parts = append(parts, emitPredicate(seg, w.bracketNum, i, params))
		prevWasOr = false
	}
	return strings.Join(parts, " ")
}

func placeholderName(bracketNum, idx int, col Column) string {
	return fmt.Sprintf("%d_%d_%s", bracketNum, idx, col)
}

// colRef marks col as an identifier to be dialect-quoted at Build time
// (R2), as opposed to the rest of the fragment's plain SQL keywords.
func colRef(col Column) string {
	return "@" + string(col)
}

func emitPredicate(seg segment, bracketNum, idx int, params map[string]value.Value) string {
	col := colRef(seg.column)
	switch seg.kind {
	case segEq, segNe, segGt, segGe, segLt, segLe:
		name := placeholderName(bracketNum, idx, seg.column)
		params[name] = seg.value
		return fmt.Sprintf("%s %s :%s", col, opSymbol(seg.kind), name)
	case segIn, segNotIn:
		name := placeholderName(bracketNum, idx, seg.column)
		params[name] = seg.value
		kw := "in"
		if seg.kind == segNotIn {
			kw = "not in"
		}
		return fmt.Sprintf("%s %s ( :%s )", col, kw, name)
	case segLike, segLikeLeft, segLikeRight, segNotLike, segNotLikeLeft, segNotLikeRight:
		name := placeholderName(bracketNum, idx, seg.column)
		s, _ := seg.value.String()
		params[name] = value.FromString(likePattern(seg.kind, s))
		kw := "like"
		if seg.kind == segNotLike || seg.kind == segNotLikeLeft || seg.kind == segNotLikeRight {
			kw = "not like"
		}
		return fmt.Sprintf("%s %s :%s", col, kw, name)
	case segIsNull:
		return fmt.Sprintf("%s is null", col)
	case segIsNotNull:
		return fmt.Sprintf("%s is not null", col)
	case segBetween, segNotBetween:
		name := placeholderName(bracketNum, idx, seg.column)
		params[name+"_start"] = seg.value
		params[name+"_end"] = seg.value2
		kw := "between"
		if seg.kind == segNotBetween {
			kw = "not between"
		}
		return fmt.Sprintf("%s %s :%s_start and :%s_end", col, kw, name, name)
	case segBracket:
		inner := seg.bracket.lower()
		for k, v := range inner.params {
			params[k] = v
		}
		return "( " + inner.sql + " )"
	default:
		panic(fmt.Sprintf("wrapper: unexpected segment kind %d in normal stream", seg.kind))
	}
}

func opSymbol(kind segmentKind) string {
	switch kind {
	case segEq:
		return "="
	case segNe:
		return "<>"
	case segGt:
		return ">"
	case segGe:
		return ">="
	case segLt:
		return "<"
	case segLe:
		return "<="
	default:
		panic("wrapper: opSymbol called on non-comparison kind")
	}
}

func likePattern(kind segmentKind, s string) string {
	switch kind {
	case segLike, segNotLike:
		return "%" + s + "%"
	case segLikeLeft, segNotLikeLeft:
		return "%" + s
	case segLikeRight, segNotLikeRight:
		return s + "%"
	default:
		return s
	}
}

func (w *Wrapper) lowerGroupBy() string {
	var cols []string
	for _, seg := range w.groupBy {
		for _, c := range seg.columns {
			cols = append(cols, colRef(c))
		}
	}
	if len(cols) == 0 {
		return ""
	}
	// " , " keeps each "@col" marker its own token, so Build quotes every
	// column separately.
	return "group by " + strings.Join(cols, " , ")
}

func (w *Wrapper) lowerHaving() string {
	var exprs []string
	for _, seg := range w.having {
		exprs = append(exprs, seg.having...)
	}
	if len(exprs) == 0 {
		return ""
	}
	return "having " + strings.Join(exprs, " and ")
}

func (w *Wrapper) lowerOrderBy() string {
	var parts []string
	for _, seg := range w.orderBy {
		for _, o := range seg.orders {
			dir := "ASC"
			if o.dir == Desc {
				dir = "DESC"
			}
			parts = append(parts, fmt.Sprintf("%s %s", colRef(o.column), dir))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "order by " + strings.Join(parts, ", ")
}

// Build lowers the Wrapper into dialect-specific positional SQL plus its
// argument vector, per §4.2's placeholder finalization. startingIndex is
// the 1-based position of the first parameter this call appends,
// allowing callers to interleave their own parameters before/after.
func (w *Wrapper) Build(d dialect.Dialect, startingIndex int) (string, []value.Value) {
	lw := w.lower()
	if strings.TrimSpace(lw.sql) == "" {
		return " 1 = 1 ", nil
	}

	idx := startingIndex
	var args []value.Value
	var out []string
	for _, tok := range strings.Fields(lw.sql) {
		if strings.HasPrefix(tok, "@") {
			out = append(out, d.Quote(tok[1:]))
			continue
		}
		if !strings.HasPrefix(tok, ":") {
			out = append(out, tok)
			continue
		}
		name := tok[1:]
		v, ok := lw.params[name]
		if !ok {
			panic(fmt.Sprintf("wrapper: unbound placeholder %q", name))
		}
		if v.Kind() == value.KindArray {
			marks := make([]string, 0, len(v.Elements()))
			for _, e := range v.Elements() {
				marks = append(marks, d.Mark(idx))
				args = append(args, e)
				idx++
			}
			out = append(out, strings.Join(marks, " , "))
			continue
		}
		out = append(out, d.Mark(idx))
		args = append(args, v)
		idx++
	}
	return strings.Join(out, " "), args
}
