package dolt

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// SQLOptions configures the SQL command. Query runs a single query;
// ExecuteSaved runs a previously saved query and is not valid with any
// other option; ListSaved lists saved queries and is likewise exclusive.
type SQLOptions struct {
	// Query is the statement to execute.
	Query string
	// Save stores the query under the given name.
	Save string
	// Message annotates a saved query.
	Message string
	// ExecuteSaved executes the saved query with the given name.
	ExecuteSaved string
	// ListSaved lists saved queries.
	ListSaved bool
	// Batch executes semicolon-delimited statements in batch mode.
	Batch bool
	// MultiDBDir treats each Dolt repository under the directory as a
	// database.
	MultiDBDir string
	// ResultFormat selects the output format (e.g. "csv", "json").
	ResultFormat string
}

// SQL executes `dolt sql` with the given options and returns its output.
func (r *Repo) SQL(opts SQLOptions) (string, error) {
	args := []string{"sql"}

	if opts.ListSaved {
		if opts.Query != "" || opts.Save != "" || opts.Message != "" ||
			opts.ExecuteSaved != "" || opts.Batch || opts.MultiDBDir != "" {
			return "", optionsError("list saved is not valid with other options")
		}
		args = append(args, "--list-saved")
		return r.exec(args...)
	}

	if opts.ExecuteSaved != "" {
		if opts.Query != "" || opts.Save != "" || opts.Message != "" ||
			opts.Batch || opts.MultiDBDir != "" {
			return "", optionsError("execute saved is not valid with other options")
		}
		args = append(args, "--execute", opts.ExecuteSaved)
		return r.exec(args...)
	}

	if opts.MultiDBDir != "" {
		args = append(args, "--multi-db-dir", opts.MultiDBDir)
	}
	if opts.Batch {
		args = append(args, "--batch")
	}
	if opts.Save != "" {
		args = append(args, "--save", opts.Save)
		if opts.Message != "" {
			args = append(args, "--message", opts.Message)
		}
	}
	if opts.ResultFormat != "" {
		args = append(args, "--result-format", opts.ResultFormat)
	}

	if opts.Query == "" {
		return "", optionsError("query is required")
	}
	args = append(args, "--query", opts.Query)

	return r.exec(args...)
}

// TableData holds a query result: ordered column names and string-valued
// rows.
type TableData struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (d *TableData) Len() int {
	return len(d.Rows)
}

// Maps converts the rows to column-keyed maps, in row order.
func (d *TableData) Maps() []map[string]string {
	out := make([]map[string]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		m := make(map[string]string, len(d.Columns))
		for i, col := range d.Columns {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		out = append(out, m)
	}
	return out
}

// QueryRows executes a query and parses its CSV output into a TableData.
func (r *Repo) QueryRows(query string) (*TableData, error) {
	out, err := r.SQL(SQLOptions{Query: query, ResultFormat: "csv"})
	if err != nil {
		return nil, err
	}
	return parseCSVOutput(out)
}

// ReadTable reads the full contents of a table from the working set.
func (r *Repo) ReadTable(table string) (*TableData, error) {
	return r.QueryRows(fmt.Sprintf("SELECT * FROM `%s`", table))
}

func parseCSVOutput(out string) (*TableData, error) {
	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv output: %w", err)
	}
	if len(records) == 0 {
		return &TableData{}, nil
	}
	return &TableData{Columns: records[0], Rows: records[1:]}, nil
}
