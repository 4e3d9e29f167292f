package dolt

import "strings"

// Branch pairs a branch name with the commit it points to.
type Branch struct {
	Name   string
	Commit string
}

// Branches lists local branches, returning the active branch and the full
// list.
func (r *Repo) Branches() (active Branch, all []Branch, err error) {
	out, err := r.exec("branch", "--list", "--verbose")
	if err != nil {
		return Branch{}, nil, err
	}

	for _, line := range splitLines(out) {
		if strings.TrimSpace(line) == "" {
			break
		}
		isActive := strings.HasPrefix(strings.TrimLeft(line, " \t"), "*")
		fields := strings.Fields(strings.TrimLeft(strings.TrimSpace(line), "* "))
		if len(fields) < 2 {
			continue
		}
		b := Branch{Name: fields[0], Commit: fields[1]}
		all = append(all, b)
		if isActive {
			active = b
		}
	}

	return active, all, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repo) CurrentBranch() (string, error) {
	active, _, err := r.Branches()
	if err != nil {
		return "", err
	}
	return active.Name, nil
}

// BranchExists reports whether a local branch with the given name exists.
func (r *Repo) BranchExists(name string) (bool, error) {
	_, all, err := r.Branches()
	if err != nil {
		return false, err
	}
	for _, b := range all {
		if b.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// CreateBranch creates a branch, optionally at startPoint (a commit, branch,
// or tag; empty means HEAD). Returns ErrBranchExists if it already exists.
func (r *Repo) CreateBranch(name, startPoint string) error {
	args := []string{"branch", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}

	if out, err := r.exec(args...); err != nil {
		if strings.Contains(out, "already exists") ||
			strings.Contains(err.Error(), "already exists") {
			return ErrBranchExists
		}
		return err
	}
	return nil
}

// DeleteBranch deletes a branch. With force set, unmerged branches are
// deleted as well.
func (r *Repo) DeleteBranch(name string, force bool) error {
	args := []string{"branch"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, "--delete", name)
	_, err := r.exec(args...)
	return err
}

// CopyBranch copies an existing branch to a new name.
func (r *Repo) CopyBranch(src, dst string, force bool) error {
	return r.branchRename("--copy", src, dst, force)
}

// MoveBranch renames a branch.
func (r *Repo) MoveBranch(src, dst string, force bool) error {
	return r.branchRename("--move", src, dst, force)
}

func (r *Repo) branchRename(mode, src, dst string, force bool) error {
	args := []string{"branch"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, mode, src, dst)
	_, err := r.exec(args...)
	return err
}

// Checkout switches to an existing branch.
func (r *Repo) Checkout(branch string) error {
	_, err := r.execRestart("checkout", branch)
	return err
}

// CheckoutNewBranch creates a branch and switches to it, optionally at
// startPoint.
func (r *Repo) CheckoutNewBranch(branch, startPoint string) error {
	args := []string{"checkout", "-b", branch}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	_, err := r.execRestart(args...)
	return err
}

// CheckoutTables restores the given tables from the tip of the current
// branch, discarding working set changes to them.
func (r *Repo) CheckoutTables(tables ...string) error {
	if len(tables) == 0 {
		return optionsError("no tables to checkout")
	}
	args := append([]string{"checkout"}, tables...)
	_, err := r.execRestart(args...)
	return err
}
