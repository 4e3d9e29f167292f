package dolt

import "strconv"

// DiffOptions configures Diff. At most one of Data, Schema, and Summary may
// be set. Where and Limit apply only to data diffs.
type DiffOptions struct {
	// Commit diffs against the tip of the current branch.
	Commit string
	// OtherCommit diffs two specific commits.
	OtherCommit string
	// Tables restricts the diff to the named tables.
	Tables []string
	// Data diffs only row data.
	Data bool
	// Schema diffs only schemas.
	Schema bool
	// Summary summarizes data changes.
	Summary bool
	// SQL renders the diff as SQL statements.
	SQL bool
	// Where applies a filter to data diffs.
	Where string
	// Limit caps the number of rows shown in a data diff.
	Limit int
}

// Diff runs `dolt diff` with the given options and returns its output.
func (r *Repo) Diff(opts DiffOptions) (string, error) {
	set := 0
	for _, b := range []bool{opts.Data, opts.Schema, opts.Summary} {
		if b {
			set++
		}
	}
	if set > 1 {
		return "", optionsError("at most one of data, schema, summary may be set")
	}

	args := []string{"diff"}

	if opts.Data {
		if opts.Where != "" {
			args = append(args, "--where", opts.Where)
		}
		if opts.Limit > 0 {
			args = append(args, "--limit", strconv.Itoa(opts.Limit))
		}
	}
	if opts.Summary {
		args = append(args, "--summary")
	}
	if opts.Schema {
		args = append(args, "--schema")
	}
	if opts.SQL {
		args = append(args, "--sql")
	}
	if opts.Commit != "" {
		args = append(args, opts.Commit)
	}
	if opts.OtherCommit != "" {
		args = append(args, opts.OtherCommit)
	}
	args = append(args, opts.Tables...)

	return r.exec(args...)
}

// Blame returns the authorship of the last change to each row of a table,
// optionally at a revision.
func (r *Repo) Blame(table, rev string) (string, error) {
	args := []string{"blame"}
	if rev != "" {
		args = append(args, rev)
	}
	args = append(args, table)
	return r.exec(args...)
}
