package dolt

import (
	"strconv"
	"strings"
)

// Table describes a table in the working set.
type Table struct {
	Name   string
	Hash   string
	Rows   int
	System bool
}

// LsOptions configures Tables.
type LsOptions struct {
	// System includes system tables.
	System bool
	// All includes every table.
	All bool
}

// Tables lists tables in the working set, parsing name, hash, and row count
// from verbose output. System tables carry only a name.
func (r *Repo) Tables(opts LsOptions) ([]Table, error) {
	args := []string{"ls", "--verbose"}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.System {
		args = append(args, "--system")
	}

	out, err := r.exec(args...)
	if err != nil {
		return nil, err
	}
	return parseTables(splitLines(out)), nil
}

func parseTables(lines []string) []Table {
	var tables []Table
	inSystem := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "Tables"):
			continue
		case strings.HasPrefix(trimmed, "System"):
			inSystem = true
		case inSystem:
			tables = append(tables, Table{Name: trimmed, System: true})
		default:
			fields := strings.Fields(trimmed)
			t := Table{Name: fields[0]}
			if len(fields) > 1 {
				t.Hash = fields[1]
			}
			if len(fields) > 2 {
				if n, err := strconv.Atoi(fields[2]); err == nil {
					t.Rows = n
				}
			}
			tables = append(tables, t)
		}
	}
	return tables
}

// ImportMode selects how table and schema imports treat existing tables.
type ImportMode string

const (
	// ImportModeCreate creates a new table; a primary key is required.
	ImportModeCreate ImportMode = "create"
	// ImportModeUpdate updates rows in an existing table.
	ImportModeUpdate ImportMode = "update"
	// ImportModeReplace replaces an existing table; a primary key is
	// required.
	ImportModeReplace ImportMode = "replace"
)

func (m ImportMode) flag() string {
	return "--" + string(m)
}

func (m ImportMode) valid() bool {
	switch m {
	case ImportModeCreate, ImportModeUpdate, ImportModeReplace:
		return true
	}
	return false
}

// requiresPK reports whether the mode rebuilds the table and therefore
// needs primary keys.
func (m ImportMode) requiresPK() bool {
	return m == ImportModeCreate || m == ImportModeReplace
}

// TableImportOptions configures TableImport.
type TableImportOptions struct {
	// Mode is one of create, update, replace.
	Mode ImportMode
	// PrimaryKeys names the columns forming the primary key. Required for
	// create and replace.
	PrimaryKeys []string
	// FileType overrides the file type inferred from the extension.
	FileType string
	// MappingFile maps column names in the file to new names.
	MappingFile string
	// Delim sets the field delimiter for delimited files.
	Delim string
	// Continue keeps importing when a bad row is encountered.
	Continue bool
	// Force overwrites existing data.
	Force bool
}

// TableImport imports the data file into the named table, inferring the
// schema from the file.
func (r *Repo) TableImport(table, filename string, opts TableImportOptions) error {
	if !opts.Mode.valid() {
		return optionsError("exactly one of create, update, replace must be set")
	}
	if opts.Mode.requiresPK() && len(opts.PrimaryKeys) == 0 {
		return optionsError(string(opts.Mode) + " mode requires primary keys")
	}

	args := []string{"table", "import", opts.Mode.flag()}
	if opts.FileType != "" {
		args = append(args, "--file-type", opts.FileType)
	}
	if len(opts.PrimaryKeys) > 0 {
		args = append(args, "--pk", strings.Join(opts.PrimaryKeys, ","))
	}
	if opts.MappingFile != "" {
		args = append(args, "--map", opts.MappingFile)
	}
	if opts.Delim != "" {
		args = append(args, "--delim", opts.Delim)
	}
	if opts.Continue {
		args = append(args, "--continue")
	}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, table, filename)

	_, err := r.exec(args...)
	return err
}

// TableExportOptions configures TableExport.
type TableExportOptions struct {
	// Force overwrites an existing output file.
	Force bool
	// Schema exports with an explicit schema file.
	Schema string
	// MappingFile maps column names.
	MappingFile string
	// PrimaryKeys names key columns for the export.
	PrimaryKeys []string
	// FileType overrides the file type inferred from the extension.
	FileType string
	// Continue keeps exporting past bad rows.
	Continue bool
}

// TableExport exports the named table to a file.
func (r *Repo) TableExport(table, filename string, opts TableExportOptions) error {
	args := []string{"table", "export"}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.Continue {
		args = append(args, "--continue")
	}
	if opts.Schema != "" {
		args = append(args, "--schema", opts.Schema)
	}
	if opts.MappingFile != "" {
		args = append(args, "--map", opts.MappingFile)
	}
	if len(opts.PrimaryKeys) > 0 {
		args = append(args, "--pk", strings.Join(opts.PrimaryKeys, ","))
	}
	if opts.FileType != "" {
		args = append(args, "--file-type", opts.FileType)
	}
	args = append(args, table, filename)

	_, err := r.exec(args...)
	return err
}

// TableMv renames a table.
func (r *Repo) TableMv(oldName, newName string, force bool) error {
	args := []string{"table", "mv"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, oldName, newName)
	_, err := r.exec(args...)
	return err
}

// TableCp copies a table, optionally reading the source at a commit.
func (r *Repo) TableCp(oldName, newName, commit string, force bool) error {
	args := []string{"table", "cp"}
	if force {
		args = append(args, "--force")
	}
	if commit != "" {
		args = append(args, commit)
	}
	args = append(args, oldName, newName)
	_, err := r.exec(args...)
	return err
}

// TableRm removes the given tables from the working set.
func (r *Repo) TableRm(tables ...string) error {
	if len(tables) == 0 {
		return optionsError("no tables to remove")
	}
	args := append([]string{"table", "rm"}, tables...)
	_, err := r.exec(args...)
	return err
}
