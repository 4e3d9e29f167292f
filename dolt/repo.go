package dolt

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ServerController suspends and resumes a sql-server attached to a
// repository so write-class commands can run against a quiet working set.
// Commands that rewrite the working set (add, commit, checkout, push,
// pull) suspend the server first and resume it only if it was running.
type ServerController interface {
	// Suspend stops the server if it is running and reports whether it
	// was. A stopped server is left alone.
	Suspend() (wasRunning bool, err error)

	// Resume starts the server again with the same configuration,
	// verifying the connection before returning.
	Resume() error
}

// Repo is a handle to a Dolt repository on disk.
type Repo struct {
	dir    string
	runner CommandRunner
	logger *slog.Logger
	server ServerController
}

// Option configures Repo.
type Option func(*Repo)

// WithRunner sets a custom command runner for dolt operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(r *Repo) {
		r.runner = runner
	}
}

// WithLogger sets the logger for command output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repo) {
		r.logger = logger
	}
}

// NewRepo creates a handle to an existing Dolt repository.
// It validates that the path contains a .dolt directory.
func NewRepo(dir string, opts ...Option) (*Repo, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	if fi, err := os.Stat(filepath.Join(absPath, ".dolt")); err != nil || !fi.IsDir() {
		return nil, ErrNotDoltRepo
	}

	return newRepo(absPath, opts...), nil
}

func newRepo(dir string, opts ...Option) *Repo {
	r := &Repo{
		dir:    dir,
		runner: NewExecRunner(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init creates a new Dolt repository in dir, creating the directory if it
// does not exist, and returns a handle to it.
func Init(dir string, opts ...Option) (*Repo, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	r := newRepo(absPath, opts...)
	if _, err := r.exec("init"); err != nil {
		return nil, err
	}
	return r, nil
}

// CloneOptions configures Clone.
type CloneOptions struct {
	// Remote names the remote to track. Defaults to "origin".
	Remote string
	// Branch checks out a specific branch after cloning.
	Branch string
}

// Clone clones remoteURL into dir and returns a handle to the new
// repository. If dir is empty the last path segment of the URL is used,
// relative to the current directory.
func Clone(remoteURL, dir string, opts CloneOptions, repoOpts ...Option) (*Repo, error) {
	if dir == "" {
		parts := strings.Split(strings.TrimSuffix(remoteURL, "/"), "/")
		dir = parts[len(parts)-1]
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	args := []string{"clone", remoteURL}
	if opts.Remote != "" {
		args = append(args, "--remote", opts.Remote)
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	args = append(args, absPath)

	r := newRepo(absPath, repoOpts...)
	if _, err := r.exec(args...); err != nil {
		return nil, err
	}
	return r, nil
}

// Dir returns the absolute path of the repository.
func (r *Repo) Dir() string {
	return r.dir
}

// DatabaseName returns the database name the repository is served under:
// the directory basename with dashes replaced by underscores.
func (r *Repo) DatabaseName() string {
	return strings.ReplaceAll(filepath.Base(r.dir), "-", "_")
}

// SetServerController attaches a sql-server controller to the repository.
// Pass nil to detach.
func (r *Repo) SetServerController(c ServerController) {
	r.server = c
}

// Exec runs an arbitrary dolt command in the repository and returns its
// output split into lines. Pass subcommands and arguments as they would
// appear on the command line.
func (r *Repo) Exec(args ...string) ([]string, error) {
	out, err := r.exec(args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// exec runs dolt with args in the repo directory.
func (r *Repo) exec(args ...string) (string, error) {
	out, err := r.runner.Run(r.dir, "dolt", args...)
	if err != nil {
		return out, err
	}
	return out, nil
}

// execRestart runs a command that invalidates a running sql-server's view
// of the working set. An attached server is suspended before the command
// runs and resumed afterwards, but only if it was running. The server is
// resumed even when the command fails.
func (r *Repo) execRestart(args ...string) (string, error) {
	if r.server == nil {
		return r.exec(args...)
	}

	wasRunning, err := r.server.Suspend()
	if err != nil {
		return "", fmt.Errorf("suspend sql-server: %w", err)
	}

	out, execErr := r.exec(args...)

	if wasRunning {
		if rerr := r.server.Resume(); rerr != nil {
			r.logger.Warn("sql-server resume failed", "error", rerr)
			if execErr == nil {
				return out, fmt.Errorf("resume sql-server: %w", rerr)
			}
		}
	}
	return out, execErr
}

// splitLines splits command output into lines, tolerating empty output.
func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
