package schema

import "github.com/grapefruit-orm/grapefruit/wrapper"

// IDStrategy controls how a primary-key value is produced on INSERT.
type IDStrategy uint8

const (
	// IDAuto means the database assigns the value (e.g. AUTO_INCREMENT);
	// the column is omitted from the insert column set entirely (§3.3).
	IDAuto IDStrategy = iota
	// IDGenerator means the configured identifier generator produces the
	// value (§4.6).
	IDGenerator
	// IDInput means the caller supplies the value on the entity.
	IDInput
)

// Strategy controls whether a regular column participates in INSERT/UPDATE
// statements regardless of its fill policy.
type Strategy uint8

const (
	// StrategyDefault includes the column, binding the entity's value
	// (or the fill value, if one applies).
	StrategyDefault Strategy = iota
	// StrategyNotNull behaves exactly like StrategyDefault: the column is
	// included and a NULL entity value is bound as NULL. No layer rejects
	// a NULL value for it.
	StrategyNotNull
	// StrategyNever excludes the column from the corresponding column
	// set entirely.
	StrategyNever
)

// Fill controls when an automatic value is substituted for the entity's
// own value.
type Fill uint8

const (
	// FillDefault never substitutes; the entity's value is always used.
	FillDefault Fill = iota
	// FillInsert substitutes the fill value on INSERT only.
	FillInsert
	// FillUpdate substitutes the fill value on UPDATE only.
	FillUpdate
	// FillInsertAndUpdate substitutes the fill value on both.
	FillInsertAndUpdate
)

// Kind discriminates a ColumnSpec between the primary key and a regular
// column, per §3.2.
type Kind uint8

const (
	KindPrimaryKey Kind = iota
	KindRegular
)

// ColumnSpec describes one column of a TableSpec.
type ColumnSpec struct {
	// Name is the entity field's declared identifier (used for
	// diagnostics and as the default alias).
	Name string
	// Alias is the SQL column identifier; defaults to Name.
	Alias string

	Kind Kind
	// IDStrategy is meaningful only when Kind == KindPrimaryKey.
	IDStrategy IDStrategy
	// HostType is the regular column's declared Go type rendering
	// (e.g. "string", "*time.Time"); meaningful only when
	// Kind == KindRegular. Retained verbatim, per §4.1.
	HostType string

	Ignore        bool
	LogicalDelete bool
	Version       bool
	// Select controls inclusion in the SELECT projection (regular
	// columns only — the primary key is always selected).
	Select bool

	InsertStrategy Strategy
	UpdateStrategy Strategy
	Fill           Fill

	// FieldIndex is the index of the corresponding Go struct field,
	// used by the generated deserializer and the entity's value
	// accessor to avoid a second reflection pass per row.
	FieldIndex int

	// Column is this column's typed wrapper.Column reference, the same
	// value the column enumeration exposes under its UpperCamelCase key —
	// precomputed at derivation time so internal query builders never
	// rebuild it from a raw alias string.
	Column wrapper.Column
}
