package dolt

import (
	"strconv"
	"strings"
	"time"
)

// Commit holds metadata about a single commit.
type Commit struct {
	Hash    string
	Author  string
	Date    time.Time
	Message string
}

func (c Commit) String() string {
	return c.Hash + ": " + c.Author + " @ " + c.Date.Format(logDateFormat)
}

// logDateFormat is the date format dolt log emits.
const logDateFormat = "Mon Jan 2 15:04:05 -0700 2006"

// Add stages the given tables and returns the resulting status.
func (r *Repo) Add(tables ...string) (*Status, error) {
	args := append([]string{"add"}, tables...)
	if _, err := r.execRestart(args...); err != nil {
		return nil, err
	}
	return r.Status()
}

// ResetOptions configures Reset. Hard and Soft are mutually exclusive.
type ResetOptions struct {
	Hard bool
	Soft bool
}

// Reset restores the given tables to their value at the tip of the current
// branch.
func (r *Repo) Reset(opts ResetOptions, tables ...string) error {
	if opts.Hard && opts.Soft {
		return optionsError("cannot reset both hard and soft")
	}

	args := []string{"reset"}
	if opts.Hard {
		args = append(args, "--hard")
	}
	if opts.Soft {
		args = append(args, "--soft")
	}
	args = append(args, tables...)

	_, err := r.exec(args...)
	return err
}

// CommitOptions configures Commit.
type CommitOptions struct {
	// AllowEmpty permits a commit with no staged changes.
	AllowEmpty bool
	// Date overrides the commit timestamp.
	Date time.Time
}

// Commit creates a commit from the staged working set.
// Returns ErrNothingToCommit when nothing is staged and AllowEmpty is not
// set.
func (r *Repo) Commit(message string, opts ...CommitOptions) error {
	var o CommitOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	args := []string{"commit", "-m", message}
	if o.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if !o.Date.IsZero() {
		args = append(args, "--date", o.Date.Format(time.RFC3339))
	}

	out, err := r.execRestart(args...)
	if err != nil {
		if strings.Contains(out, "nothing to commit") ||
			strings.Contains(err.Error(), "nothing to commit") {
			return ErrNothingToCommit
		}
		return err
	}
	return nil
}

// Log parses `dolt log` into commits, newest first. A number of 0 returns
// the full history.
func (r *Repo) Log(number int) ([]Commit, error) {
	args := []string{"log"}
	if number > 0 {
		args = append(args, "--number", strconv.Itoa(number))
	}

	out, err := r.exec(args...)
	if err != nil {
		return nil, err
	}
	return parseLog(splitLines(out))
}

func parseLog(lines []string) ([]Commit, error) {
	var commits []Commit
	var current Commit

	flush := func() {
		if current.Hash != "" && !current.Date.IsZero() {
			commits = append(commits, current)
			current = Commit{}
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "commit"):
			flush()
			fields := strings.Fields(line)
			if len(fields) > 1 {
				current.Hash = fields[1]
			}
		case strings.HasPrefix(line, "Author"):
			current.Author = afterColon(line)
		case strings.HasPrefix(line, "Date"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "Date:"))
			ts, err := time.Parse(logDateFormat, raw)
			if err != nil {
				return nil, err
			}
			current.Date = ts
		case strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    "):
			text := strings.TrimSpace(line)
			if current.Message == "" {
				current.Message = text
			} else if text != "" {
				current.Message += "\n" + text
			}
		}
	}
	flush()

	return commits, nil
}

// HeadCommit returns the hash of the most recent commit.
func (r *Repo) HeadCommit() (string, error) {
	commits, err := r.Log(1)
	if err != nil {
		return "", err
	}
	if len(commits) == 0 {
		return "", ErrBranchNotFound
	}
	return commits[0].Hash, nil
}
