package sqlsync

import (
	"fmt"
	"strings"

	// Registers the "pgx" driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresDialect is the Dialect for PostgreSQL via the pgx stdlib
// driver.
type PostgresDialect struct{}

// Name returns the registered driver name, "pgx".
func (PostgresDialect) Name() string { return "pgx" }

func (PostgresDialect) QuoteIdent(ident string) string {
	return `"` + ident + `"`
}

func (PostgresDialect) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

// UpsertStmt uses INSERT ... ON CONFLICT, which requires the primary
// key columns. Without them it falls back to a plain insert.
func (d PostgresDialect) UpsertStmt(table string, columns, pks []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = d.QuoteIdent(col)
		placeholders[i] = d.Placeholder(i + 1)
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
	if len(pks) == 0 {
		return stmt
	}

	conflict := make([]string, len(pks))
	for i, pk := range pks {
		conflict[i] = d.QuoteIdent(pk)
	}
	var updates []string
	for _, col := range columns {
		if contains(pks, col) {
			continue
		}
		q := d.QuoteIdent(col)
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", q, q))
	}
	if len(updates) == 0 {
		return stmt + fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", strings.Join(conflict, ", "))
	}
	return stmt + fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(conflict, ", "), strings.Join(updates, ", "))
}

func (PostgresDialect) PrimaryKeyQuery(table string) (string, []any) {
	query := `SELECT a.attname
FROM pg_index i
JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
WHERE i.indrelid = $1::regclass AND i.indisprimary
ORDER BY a.attnum`
	return query, []any{table}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
