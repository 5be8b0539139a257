package dialect

import "strconv"

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return SQLite }

func (sqliteDialect) Mark(i int) string { return "?" + strconv.Itoa(i) }

func (sqliteDialect) Quote(ident string) string {
	return "'" + ident + "'"
}

func (sqliteDialect) SupportsArrays() bool { return false }
