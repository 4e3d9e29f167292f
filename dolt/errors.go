package dolt

import (
	"errors"
	"fmt"
	"strings"
)

// Repository errors
var (
	// ErrNotDoltRepo indicates the path is not a Dolt repository.
	ErrNotDoltRepo = errors.New("not a dolt repository")

	// ErrBranchExists indicates the branch already exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound indicates the branch does not exist.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNothingToCommit indicates there are no staged changes to commit.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrInvalidOptions indicates mutually exclusive options were combined.
	ErrInvalidOptions = errors.New("invalid option combination")

	// ErrCredsNotFound indicates the credential does not exist.
	ErrCredsNotFound = errors.New("credentials not found")
)

// CommandError wraps a failed dolt command with its invocation context.
type CommandError struct {
	Op       string   // Operation that failed (e.g., "commit", "push")
	Args     []string // Arguments passed to dolt
	Output   string   // Combined stdout/stderr output
	ExitCode int      // Process exit code
	Err      error    // Underlying error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Op + ": " + strings.TrimSpace(e.Output)
	}
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s: dolt %s exited with code %d", e.Op, strings.Join(e.Args, " "), e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// optionsError builds an ErrInvalidOptions with a reason.
func optionsError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, reason)
}
