// Package dolt wraps the dolt command-line tool for repository operations.
//
// The package provides:
//
//   - Repo: Handle to a Dolt repository, the entry point for all operations
//   - CommandRunner: Interface for executing dolt commands (with mock for testing)
//   - Typed results: Status, Commit, Branch, Table, Remote, KeyPair
//
// Commands that do not translate to a library call, such as the bare
// interactive `dolt sql` shell, are not exposed.
//
// # Usage
//
//	repo, err := dolt.NewRepo("/path/to/repo")
//	if err != nil {
//	    return err
//	}
//
//	status, err := repo.Status()
//	if !status.IsClean {
//	    repo.Add("players")
//	    repo.Commit("Update players")
//	}
package dolt
