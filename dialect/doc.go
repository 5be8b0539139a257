// Package dialect provides database dialect abstraction for Grapefruit.
//
// # Supported dialects
//
//   - dialect.MySQL: MySQL/MariaDB, via github.com/go-sql-driver/mysql.
//   - dialect.Postgres: PostgreSQL, via github.com/lib/pq.
//   - dialect.SQLite: SQLite, via modernc.org/sqlite.
//
// Each dialect is a small Dialect value that the wrapper and sqlgen
// packages lower against; it never touches a live connection — that is
// driverutil's job.
package dialect
