package dolt

import "strings"

// Status summarizes the state of the working set. IsClean is true when
// there are no changes; otherwise ModifiedTables and AddedTables map each
// changed table name to whether the change is staged.
type Status struct {
	IsClean        bool
	ModifiedTables map[string]bool
	AddedTables    map[string]bool
}

// Status parses `dolt status` into a Status.
func (r *Repo) Status() (*Status, error) {
	out, err := r.exec("status")
	if err != nil {
		return nil, err
	}
	return parseStatus(splitLines(out)), nil
}

func parseStatus(lines []string) *Status {
	status := &Status{
		ModifiedTables: make(map[string]bool),
		AddedTables:    make(map[string]bool),
	}

	if strings.Contains(strings.Join(lines, "\n"), "clean") {
		status.IsClean = true
		return status
	}

	staged := false
	for _, line := range lines {
		l := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(l, "Changes to be committed"):
			staged = true
		case strings.HasPrefix(l, "Changes not staged for commit"):
			staged = false
		case strings.HasPrefix(l, "Untracked files"):
			staged = false
		case strings.HasPrefix(l, "modified"):
			if name := afterColon(l); name != "" {
				status.ModifiedTables[name] = staged
			}
		case strings.HasPrefix(l, "new table"):
			if name := afterColon(l); name != "" {
				status.AddedTables[name] = staged
			}
		}
	}

	return status
}

// afterColon returns the trimmed text after the first colon, or "".
func afterColon(line string) string {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}
