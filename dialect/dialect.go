package dialect

import "fmt"

// Dialect names, used both as the values Dialect.Name returns and as the
// scheme of a connection URL (§6.1).
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Dialect is the strategy interface the emitter and Wrapper lower against.
// Each method implements one of the R2 dialect rules from §4.3.
type Dialect interface {
	// Name returns the dialect constant (MySQL, Postgres or SQLite).
	Name() string

	// Mark renders the positional placeholder for parameter index i
	// (1-based). MySQL repeats "?"; PostgreSQL renders "$i"; SQLite renders
	// "?i".
	Mark(i int) string

	// Quote renders a quoted SQL identifier.
	Quote(ident string) string

	// SupportsArrays reports whether the dialect's driver accepts
	// array-kind Values directly (only PostgreSQL does, per §4.5).
	SupportsArrays() bool
}

// For looks up the Dialect implementation for a dialect name, as taken
// from a connection URL's scheme by driverutil.Open or used directly by
// callers that already know their target.
func For(name string) (Dialect, error) {
	switch name {
	case MySQL:
		return mysqlDialect{}, nil
	case Postgres:
		return postgresDialect{}, nil
	case SQLite:
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("dialect: unsupported dialect %q", name)
	}
}
