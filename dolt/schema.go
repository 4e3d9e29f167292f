package dolt

import (
	"strconv"
	"strings"
)

// SchemaExport exports a table's schema. With filename empty, the schema is
// returned as text; otherwise it is written to the file.
func (r *Repo) SchemaExport(table, filename string) (string, error) {
	args := []string{"schema", "export", table}
	if filename != "" {
		args = append(args, "--filename", filename)
	}
	return r.exec(args...)
}

// SchemaImportOptions configures SchemaImport.
type SchemaImportOptions struct {
	// Mode is one of create, update, replace.
	Mode ImportMode
	// PrimaryKeys names the key columns. Required for create and replace.
	PrimaryKeys []string
	// DryRun prints the SQL that would run without executing it.
	DryRun bool
	// KeepTypes keeps the current type of columns that already exist.
	KeepTypes bool
	// FileType overrides the inferred file type.
	FileType string
	// MappingFile maps column names in the file to new names.
	MappingFile string
	// FloatThreshold is the minimum fractional component for float
	// inference.
	FloatThreshold float64
	// Delim sets the field delimiter.
	Delim string
}

// SchemaImport infers a schema for the table from the data file.
func (r *Repo) SchemaImport(table, filename string, opts SchemaImportOptions) error {
	if !opts.Mode.valid() {
		return optionsError("exactly one of create, update, replace must be set")
	}
	if opts.Mode.requiresPK() && len(opts.PrimaryKeys) == 0 {
		return optionsError(string(opts.Mode) + " mode requires primary keys")
	}

	args := []string{"schema", "import", opts.Mode.flag()}
	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	if opts.KeepTypes {
		args = append(args, "--keep-types")
	}
	if opts.FileType != "" {
		args = append(args, "--file-type", opts.FileType)
	}
	if len(opts.PrimaryKeys) > 0 {
		args = append(args, "--pks", strings.Join(opts.PrimaryKeys, ","))
	}
	if opts.MappingFile != "" {
		args = append(args, "--map", opts.MappingFile)
	}
	if opts.FloatThreshold > 0 {
		args = append(args, "--float-threshold", strconv.FormatFloat(opts.FloatThreshold, 'f', -1, 64))
	}
	if opts.Delim != "" {
		args = append(args, "--delim", opts.Delim)
	}
	args = append(args, table, filename)

	_, err := r.exec(args...)
	return err
}

// SchemaShow returns the schema of the given tables, optionally at a
// commit.
func (r *Repo) SchemaShow(tables []string, commit string) (string, error) {
	args := []string{"schema", "show"}
	if commit != "" {
		args = append(args, commit)
	}
	args = append(args, tables...)
	return r.exec(args...)
}
