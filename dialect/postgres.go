package dialect

import "strconv"

type postgresDialect struct{}

func (postgresDialect) Name() string { return Postgres }

func (postgresDialect) Mark(i int) string { return "$" + strconv.Itoa(i) }

func (postgresDialect) Quote(ident string) string {
	return `"` + ident + `"`
}

func (postgresDialect) SupportsArrays() bool { return true }
