package sqlsync

import (
	"fmt"
	"strings"

	// Registers the "mysql" driver.
	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect is the Dialect for MySQL and MySQL-compatible servers,
// including Dolt's own sql-server.
type MySQLDialect struct{}

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) QuoteIdent(ident string) string {
	return "`" + ident + "`"
}

func (MySQLDialect) Placeholder(int) string { return "?" }

// UpsertStmt uses INSERT ... ON DUPLICATE KEY UPDATE, so the key columns
// need not be listed.
func (d MySQLDialect) UpsertStmt(table string, columns, _ []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	updates := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = d.QuoteIdent(col)
		placeholders[i] = "?"
		updates[i] = fmt.Sprintf("%s = VALUES(%s)", quoted[i], quoted[i])
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s",
		d.QuoteIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "))
}

func (MySQLDialect) PrimaryKeyQuery(table string) (string, []any) {
	query := `SELECT column_name
FROM information_schema.key_column_usage
WHERE table_schema = DATABASE() AND table_name = ? AND constraint_name = 'PRIMARY'
ORDER BY ordinal_position`
	return query, []any{table}
}
