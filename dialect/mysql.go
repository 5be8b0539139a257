package dialect

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return MySQL }

// Mark ignores i: MySQL's driver binds `?` placeholders positionally by
// occurrence, not by number.
func (mysqlDialect) Mark(int) string { return "?" }

func (mysqlDialect) Quote(ident string) string {
	return "`" + ident + "`"
}

func (mysqlDialect) SupportsArrays() bool { return false }
