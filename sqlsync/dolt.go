package sqlsync

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verdantdata/doltgo/dolt"
)

// DoltReader reads tables from a Dolt repository's working set.
func DoltReader(repo *dolt.Repo) TableReader {
	return doltReader(repo, "")
}

// DoltReaderAt reads tables as of the given commit or ref.
func DoltReaderAt(repo *dolt.Repo, ref string) TableReader {
	return doltReader(repo, ref)
}

func doltReader(repo *dolt.Repo, ref string) TableReader {
	return func(ctx context.Context, tables []string) (map[string]*dolt.TableData, error) {
		out := make(map[string]*dolt.TableData, len(tables))
		for _, table := range tables {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			var (
				data *dolt.TableData
				err  error
			)
			if ref == "" {
				data, err = repo.ReadTable(table)
			} else {
				data, err = repo.QueryRows(
					fmt.Sprintf("SELECT * FROM `%s` AS OF '%s'", table, ref))
			}
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", table, err)
			}
			out[table] = data
		}
		return out, nil
	}
}

// DoltWriter writes tables into a Dolt repository via table import. The
// first column of each table is treated as the primary key when the
// mode requires one.
func DoltWriter(repo *dolt.Repo, mode dolt.ImportMode) TableWriter {
	return func(ctx context.Context, data map[string]*dolt.TableData) error {
		for table, td := range data {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := importTable(repo, table, td, mode); err != nil {
				return fmt.Errorf("write %s: %w", table, err)
			}
		}
		return nil
	}
}

func importTable(repo *dolt.Repo, table string, data *dolt.TableData, mode dolt.ImportMode) error {
	if len(data.Columns) == 0 {
		return fmt.Errorf("no columns for table %s", table)
	}

	dir, err := os.MkdirTemp("", "doltgo-sync-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, table+".csv")
	if err := writeCSV(filename, data); err != nil {
		return err
	}

	opts := dolt.TableImportOptions{Mode: mode}
	if mode != dolt.ImportModeUpdate {
		opts.PrimaryKeys = data.Columns[:1]
	}
	return repo.TableImport(table, filename, opts)
}

func writeCSV(filename string, data *dolt.TableData) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(data.Columns); err != nil {
		return err
	}
	for _, row := range data.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
