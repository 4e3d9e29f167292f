package etl

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/verdantdata/doltgo/dolt"
)

// RowProducer supplies the data for a table write.
type RowProducer func() (*dolt.TableData, error)

// RowTransformer rewrites table data before import.
type RowTransformer func(*dolt.TableData) (*dolt.TableData, error)

// StreamTransformer rewrites a raw data stream before import.
type StreamTransformer func(io.Reader) (io.Reader, error)

// TableWriter writes one table into a repository and returns the table
// name.
type TableWriter interface {
	Write(repo *dolt.Repo) (string, error)
}

// RowsWriter imports structured rows into a table.
type RowsWriter struct {
	Table        string
	PrimaryKeys  []string
	Mode         dolt.ImportMode
	Produce      RowProducer
	Transformers []RowTransformer
}

// NewRowsWriter creates a writer that imports the produced rows into the
// named table.
func NewRowsWriter(table string, pks []string, mode dolt.ImportMode, produce RowProducer, transformers ...RowTransformer) *RowsWriter {
	return &RowsWriter{
		Table:        table,
		PrimaryKeys:  pks,
		Mode:         mode,
		Produce:      produce,
		Transformers: transformers,
	}
}

// Write implements TableWriter.
func (w *RowsWriter) Write(repo *dolt.Repo) (string, error) {
	data, err := w.Produce()
	if err != nil {
		return "", fmt.Errorf("produce rows for %s: %w", w.Table, err)
	}

	for _, transform := range w.Transformers {
		data, err = transform(data)
		if err != nil {
			return "", fmt.Errorf("transform rows for %s: %w", w.Table, err)
		}
	}

	path, cleanup, err := writeTempCSV(w.Table, data)
	if err != nil {
		return "", err
	}
	defer cleanup()

	err = repo.TableImport(w.Table, path, dolt.TableImportOptions{
		Mode:        w.Mode,
		PrimaryKeys: w.PrimaryKeys,
	})
	if err != nil {
		return "", err
	}
	return w.Table, nil
}

// BulkWriter imports a raw CSV stream into a table, applying stream
// transformers first.
type BulkWriter struct {
	Table        string
	PrimaryKeys  []string
	Mode         dolt.ImportMode
	Source       func() (io.Reader, error)
	Transformers []StreamTransformer
}

// NewBulkWriter creates a writer that imports the source CSV stream into
// the named table.
func NewBulkWriter(table string, pks []string, mode dolt.ImportMode, source func() (io.Reader, error), transformers ...StreamTransformer) *BulkWriter {
	return &BulkWriter{
		Table:        table,
		PrimaryKeys:  pks,
		Mode:         mode,
		Source:       source,
		Transformers: transformers,
	}
}

// Write implements TableWriter.
func (w *BulkWriter) Write(repo *dolt.Repo) (string, error) {
	r, err := w.Source()
	if err != nil {
		return "", fmt.Errorf("open source for %s: %w", w.Table, err)
	}

	for _, transform := range w.Transformers {
		r, err = transform(r)
		if err != nil {
			return "", fmt.Errorf("transform stream for %s: %w", w.Table, err)
		}
	}

	dir, err := os.MkdirTemp("", "doltgo-load")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, w.Table+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	err = repo.TableImport(w.Table, path, dolt.TableImportOptions{
		Mode:        w.Mode,
		PrimaryKeys: w.PrimaryKeys,
	})
	if err != nil {
		return "", err
	}
	return w.Table, nil
}

// TransformWriter derives a table from data already in the repository:
// it reads with Source, applies Transform, and imports the result.
type TransformWriter struct {
	Table       string
	PrimaryKeys []string
	Mode        dolt.ImportMode
	Source      func(repo *dolt.Repo) (*dolt.TableData, error)
	Transform   RowTransformer
}

// NewTransformWriter creates a writer that derives the named table from
// other tables in the repository.
func NewTransformWriter(table string, pks []string, mode dolt.ImportMode, source func(repo *dolt.Repo) (*dolt.TableData, error), transform RowTransformer) *TransformWriter {
	return &TransformWriter{
		Table:       table,
		PrimaryKeys: pks,
		Mode:        mode,
		Source:      source,
		Transform:   transform,
	}
}

// Write implements TableWriter.
func (w *TransformWriter) Write(repo *dolt.Repo) (string, error) {
	data, err := w.Source(repo)
	if err != nil {
		return "", fmt.Errorf("read source for %s: %w", w.Table, err)
	}
	if w.Transform != nil {
		data, err = w.Transform(data)
		if err != nil {
			return "", fmt.Errorf("transform rows for %s: %w", w.Table, err)
		}
	}

	path, cleanup, err := writeTempCSV(w.Table, data)
	if err != nil {
		return "", err
	}
	defer cleanup()

	err = repo.TableImport(w.Table, path, dolt.TableImportOptions{
		Mode:        w.Mode,
		PrimaryKeys: w.PrimaryKeys,
	})
	if err != nil {
		return "", err
	}
	return w.Table, nil
}

// writeTempCSV writes table data to a temp CSV file and returns its path
// and a cleanup function.
func writeTempCSV(table string, data *dolt.TableData) (string, func(), error) {
	dir, err := os.MkdirTemp("", "doltgo-load")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, table+".csv")
	f, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(data.Columns); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(data.Rows); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
