package testutil

// Canned `dolt` command output for driving the mock runner.
const (
	// StatusClean is `dolt status` in a clean working set.
	StatusClean = `On branch main
nothing to commit, working tree clean`

	// StatusDirty is `dolt status` with staged and unstaged tables.
	StatusDirty = `On branch main
Changes to be committed:
  (use "dolt reset <table>..." to unstage)
	new table:      rankings
Changes not staged for commit:
  (use "dolt add <table>" to update what will be committed)
	modified:       players`

	// BranchList is `dolt branch --list --verbose` with main active.
	BranchList = `* main      abc123def456  Initial import
  feature   fedcba654321  Add rankings`

	// LogTwoCommits is `dolt log -n 2`.
	LogTwoCommits = `commit abc123def4567890abc123def4567890abc12345
Author: Data Loader <loader@verdantdata.dev>
Date:   Mon Mar 2 15:04:05 -0700 2020

	Loaded rankings

commit fedcba6543210fedcba6543210fedcba65432109
Author: Data Loader <loader@verdantdata.dev>
Date:   Sun Mar 1 12:00:00 -0700 2020

	Initial import`
)
