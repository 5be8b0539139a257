package schema

// TableSpec is the compile-time (here: registration-time) descriptor of an
// entity's table, produced once by Derive and read-only thereafter (§3.3,
// §3.7).
type TableSpec struct {
	TableName string
	Columns   []ColumnSpec

	PrimaryKey    *ColumnSpec
	LogicalDelete *ColumnSpec
	Version       *ColumnSpec

	InsertColumns []ColumnSpec
	UpdateColumns []ColumnSpec
	SelectColumns []ColumnSpec

	// ColumnEnum is the companion enumeration of §4.1 step 6, keyed by the
	// UpperCamelCase form of each column's SQL alias.
	ColumnEnum ColumnEnum
}

// deriveColumnSets computes InsertColumns/UpdateColumns/SelectColumns from
// Columns, in declaration order, per the filters in §3.3.
func (t *TableSpec) deriveColumnSets() {
	t.InsertColumns = t.InsertColumns[:0]
	t.UpdateColumns = t.UpdateColumns[:0]
	t.SelectColumns = t.SelectColumns[:0]

	for _, c := range t.Columns {
		switch c.Kind {
		case KindPrimaryKey:
			if c.IDStrategy != IDAuto {
				t.InsertColumns = append(t.InsertColumns, c)
			}
			t.SelectColumns = append(t.SelectColumns, c)
		case KindRegular:
			if !c.Ignore && c.InsertStrategy != StrategyNever {
				t.InsertColumns = append(t.InsertColumns, c)
			}
			if !c.Ignore && !c.LogicalDelete && c.UpdateStrategy != StrategyNever {
				t.UpdateColumns = append(t.UpdateColumns, c)
			}
			if !c.Ignore && c.Select {
				t.SelectColumns = append(t.SelectColumns, c)
			}
		}
	}
}

// Column looks up a ColumnSpec by its Go field name.
func (t *TableSpec) Column(name string) (ColumnSpec, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}
