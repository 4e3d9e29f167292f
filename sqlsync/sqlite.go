package sqlsync

import (
	"fmt"
	"strings"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// SQLiteDialect is the Dialect for SQLite. It is also the dialect the
// tests run against, since it needs no server.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) QuoteIdent(ident string) string {
	return `"` + ident + `"`
}

func (SQLiteDialect) Placeholder(int) string { return "?" }

// UpsertStmt uses INSERT OR REPLACE, so the key columns need not be
// listed.
func (d SQLiteDialect) UpsertStmt(table string, columns, _ []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = d.QuoteIdent(col)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
}

func (SQLiteDialect) PrimaryKeyQuery(table string) (string, []any) {
	query := `SELECT name FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk`
	return query, []any{table}
}
