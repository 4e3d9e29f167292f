package dolt

import "strings"

// Remote is a named remote URL.
type Remote struct {
	Name string
	URL  string
}

// Remotes lists the configured remotes.
func (r *Repo) Remotes() ([]Remote, error) {
	out, err := r.exec("remote", "--verbose")
	if err != nil {
		return nil, err
	}

	var remotes []Remote
	for _, line := range splitLines(out) {
		if strings.TrimSpace(line) == "" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		remotes = append(remotes, Remote{Name: fields[0], URL: fields[1]})
	}
	return remotes, nil
}

// AddRemote adds a remote with the given name and URL.
func (r *Repo) AddRemote(name, url string) error {
	if name == "" || url == "" {
		return optionsError("remote name and url are required")
	}
	_, err := r.exec("remote", "add", name, url)
	return err
}

// RemoveRemote removes the named remote.
func (r *Repo) RemoveRemote(name string) error {
	if name == "" {
		return optionsError("remote name is required")
	}
	_, err := r.exec("remote", "remove", name)
	return err
}

// PushOptions configures Push.
type PushOptions struct {
	// SetUpstream adds an upstream reference for every pushed branch.
	SetUpstream bool
	// Force overwrites the remote history with this repository's history.
	Force bool
}

// Push pushes to the remote. Refspec optionally names a branch to push.
func (r *Repo) Push(remote, refspec string, opts PushOptions) error {
	args := []string{"push"}
	if opts.SetUpstream {
		args = append(args, "--set-upstream")
	}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, remote)
	if refspec != "" {
		args = append(args, refspec)
	}

	_, err := r.execRestart(args...)
	return err
}

// Pull pulls the latest changes from the remote.
func (r *Repo) Pull(remote string) error {
	_, err := r.execRestart("pull", remote)
	return err
}

// Fetch fetches the given refspecs from the remote. Remote defaults to
// "origin" when empty.
func (r *Repo) Fetch(remote string, refspecs []string, force bool) error {
	args := []string{"fetch"}
	if force {
		args = append(args, "--force")
	}
	if remote == "" {
		remote = "origin"
	}
	args = append(args, remote)
	args = append(args, refspecs...)

	_, err := r.exec(args...)
	return err
}
