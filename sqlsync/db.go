package sqlsync

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/verdantdata/doltgo/dolt"
)

// Dialect abstracts the SQL differences between supported databases.
type Dialect interface {
	// Name is the database/sql driver name to open connections with.
	Name() string
	// QuoteIdent quotes a table or column identifier.
	QuoteIdent(ident string) string
	// Placeholder returns the parameter placeholder for 1-based
	// position i.
	Placeholder(i int) string
	// UpsertStmt builds an insert-or-update statement for one row.
	// pks lists the primary key columns; dialects that do not need
	// them may ignore the argument.
	UpsertStmt(table string, columns, pks []string) string
	// PrimaryKeyQuery returns a query selecting the table's primary
	// key column names in ordinal order, with its arguments.
	PrimaryKeyQuery(table string) (string, []any)
}

// SQLReader reads tables from a database/sql connection. Tables are
// read concurrently.
func SQLReader(db *sql.DB, dialect Dialect) TableReader {
	return func(ctx context.Context, tables []string) (map[string]*dolt.TableData, error) {
		var (
			mu   sync.Mutex
			wg   sync.WaitGroup
			errs = make(chan error, len(tables))
			out  = make(map[string]*dolt.TableData, len(tables))
		)

		for _, table := range tables {
			wg.Add(1)
			go func(table string) {
				defer wg.Done()
				data, err := readSQLTable(ctx, db, dialect, table)
				if err != nil {
					errs <- fmt.Errorf("read %s: %w", table, err)
					return
				}
				mu.Lock()
				out[table] = data
				mu.Unlock()
			}(table)
		}
		wg.Wait()
		close(errs)

		if err := <-errs; err != nil {
			return nil, err
		}
		return out, nil
	}
}

// SQLWriter upserts rows into a database/sql connection, one table at a
// time in a single transaction per table.
func SQLWriter(db *sql.DB, dialect Dialect) TableWriter {
	return func(ctx context.Context, data map[string]*dolt.TableData) error {
		for table, td := range data {
			if err := writeSQLTable(ctx, db, dialect, table, td); err != nil {
				return fmt.Errorf("write %s: %w", table, err)
			}
		}
		return nil
	}
}

func readSQLTable(ctx context.Context, db *sql.DB, dialect Dialect, table string) (*dolt.TableData, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+dialect.QuoteIdent(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	data := &dolt.TableData{Columns: columns}
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = v.String
		}
		data.Rows = append(data.Rows, row)
	}
	return data, rows.Err()
}

func writeSQLTable(ctx context.Context, db *sql.DB, dialect Dialect, table string, data *dolt.TableData) error {
	if data.Len() == 0 {
		return nil
	}

	pks, err := primaryKeys(ctx, db, dialect, table)
	if err != nil {
		return fmt.Errorf("resolve primary keys: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, dialect.UpsertStmt(table, data.Columns, pks))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range data.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func primaryKeys(ctx context.Context, db *sql.DB, dialect Dialect, table string) ([]string, error) {
	query, args := dialect.PrimaryKeyQuery(table)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pks []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		pks = append(pks, name)
	}
	return pks, rows.Err()
}
