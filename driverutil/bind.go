package driverutil

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/value"
)

// bindArgs converts an emitted statement's Value vector into database/sql
// driver arguments, per §4.5's driver adapter contract: array binding is
// only valid on Postgres (via pq.Array), and MySQL/SQLite receive
// naive-UTC strings for temporal kinds since their wire protocols carry no
// timezone.
func bindArgs(d dialect.Dialect, args []value.Value) ([]any, error) {
	out := make([]any, len(args))
	for i, v := range args {
		bound, err := bindArg(d, v)
		if err != nil {
			return nil, fmt.Errorf("driverutil: argument %d: %w", i+1, err)
		}
		out[i] = bound
	}
	return out, nil
}

func bindArg(d dialect.Dialect, v value.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	switch v.Kind() {
	case value.KindArray:
		if !d.SupportsArrays() {
			return nil, fmt.Errorf("array values cannot be bound on dialect %q", d.Name())
		}
		elems := v.Elements()
		natives := make([]any, len(elems))
		for i, e := range elems {
			natives[i] = e.Native()
		}
		return pq.Array(natives), nil

	case value.KindDate, value.KindTime, value.KindDateTime, value.KindDateTimeUTC, value.KindDateTimeLocal, value.KindDateTimeFixed:
		if d.Name() == dialect.Postgres {
			return v.Native(), nil
		}
		return v.CanonicalUTC()

	default:
		return v.Native(), nil
	}
}
