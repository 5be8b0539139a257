package wrapper

// Column is a typed reference to a SQL column, always by its alias (never
// the Go field identifier) — per §4.2's binary-predicate rule. Per-entity
// column enumerations produced by schema derivation are maps of Column
// values keyed by the UpperCamelCase form of each alias (schema.ColumnEnum),
// e.g.:
//
//	var UserColumns = schema.MustColumns[User]()
//	w := wrapper.New().Eq(UserColumns["Email"], "a@example.com")
type Column string

// Col constructs a Column from a SQL alias.
func Col(alias string) Column { return Column(alias) }

func (c Column) String() string { return string(c) }
