package dolt

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands. Implementations must return
// stdout on success and a descriptive error on failure.
type CommandRunner interface {
	Run(dir string, name string, args ...string) (string, error)
}

// ExecRunner runs commands using os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
// On failure the returned error carries the process exit code and whichever
// of stderr/stdout had content.
func (ExecRunner) Run(dir string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		op := name
		if len(args) > 0 {
			op = name + " " + args[0]
		}

		return msg, &CommandError{
			Op:       op,
			Args:     args,
			Output:   msg,
			ExitCode: exitCode,
			Err:      err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
