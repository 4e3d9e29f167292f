package dolt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// setupRepoDir creates a directory that looks like a Dolt repository.
func setupRepoDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".dolt"), 0o755); err != nil {
		t.Fatalf("create .dolt: %v", err)
	}
	return dir
}

// testRepo returns a repo backed by a mock runner.
func testRepo(t *testing.T) (*Repo, *MockRunner) {
	t.Helper()

	runner := NewMockRunner()
	repo, err := NewRepo(setupRepoDir(t), WithRunner(runner))
	if err != nil {
		t.Fatalf("NewRepo: %v", err)
	}
	return repo, runner
}

func TestNewRepo(t *testing.T) {
	t.Run("valid repo", func(t *testing.T) {
		dir := setupRepoDir(t)

		repo, err := NewRepo(dir)
		if err != nil {
			t.Fatalf("NewRepo: %v", err)
		}
		if repo.Dir() != dir {
			t.Errorf("Dir = %q, want %q", repo.Dir(), dir)
		}
	})

	t.Run("non-dolt directory", func(t *testing.T) {
		_, err := NewRepo(t.TempDir())
		if !errors.Is(err, ErrNotDoltRepo) {
			t.Errorf("err = %v, want ErrNotDoltRepo", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewRepo(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrNotDoltRepo) {
			t.Errorf("err = %v, want ErrNotDoltRepo", err)
		}
	})
}

func TestDatabaseName(t *testing.T) {
	runner := NewMockRunner()

	parent := t.TempDir()
	dir := filepath.Join(parent, "my-test-repo")
	if err := os.MkdirAll(filepath.Join(dir, ".dolt"), 0o755); err != nil {
		t.Fatal(err)
	}

	repo, err := NewRepo(dir, WithRunner(runner))
	if err != nil {
		t.Fatalf("NewRepo: %v", err)
	}
	if got := repo.DatabaseName(); got != "my_test_repo" {
		t.Errorf("DatabaseName = %q, want %q", got, "my_test_repo")
	}
}

func TestExec(t *testing.T) {
	repo, runner := testRepo(t)
	runner.Respond("dolt version", "dolt version 1.35.0")

	lines, err := repo.Exec("version")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(lines) != 1 || lines[0] != "dolt version 1.35.0" {
		t.Errorf("lines = %v", lines)
	}
}

// serverRecorder records suspend and resume calls in an event log shared
// with the command runner, so tests can assert ordering.
type serverRecorder struct {
	events     *[]string
	running    bool
	suspendErr error
	resumeErr  error
}

func (s *serverRecorder) Suspend() (bool, error) {
	*s.events = append(*s.events, "suspend")
	if s.suspendErr != nil {
		return false, s.suspendErr
	}
	was := s.running
	s.running = false
	return was, nil
}

func (s *serverRecorder) Resume() error {
	*s.events = append(*s.events, "resume")
	if s.resumeErr != nil {
		return s.resumeErr
	}
	s.running = true
	return nil
}

// recordingRunner appends each dolt command to the shared event log before
// delegating to the mock runner.
type recordingRunner struct {
	inner  *MockRunner
	events *[]string
}

func (r *recordingRunner) Run(dir, name string, args ...string) (string, error) {
	ev := "exec"
	if len(args) > 0 {
		ev = "exec:" + args[0]
	}
	*r.events = append(*r.events, ev)
	return r.inner.Run(dir, name, args...)
}

// serverRepo returns a repo whose runner and attached controller share an
// event log.
func serverRepo(t *testing.T, rec *serverRecorder) (*Repo, *MockRunner) {
	t.Helper()

	mock := NewMockRunner()
	runner := &recordingRunner{inner: mock, events: rec.events}
	repo, err := NewRepo(setupRepoDir(t), WithRunner(runner))
	if err != nil {
		t.Fatalf("NewRepo: %v", err)
	}
	repo.SetServerController(rec)
	return repo, mock
}

func TestServerRestartHook(t *testing.T) {
	wantEvents := func(t *testing.T, got []string, want ...string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("events = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("events = %v, want %v", got, want)
			}
		}
	}

	t.Run("running server is stopped before the command", func(t *testing.T) {
		var events []string
		rec := &serverRecorder{events: &events, running: true}
		repo, _ := serverRepo(t, rec)

		if err := repo.Checkout("main"); err != nil {
			t.Fatalf("Checkout: %v", err)
		}
		wantEvents(t, events, "suspend", "exec:checkout", "resume")
	})

	t.Run("stopped server stays stopped", func(t *testing.T) {
		var events []string
		rec := &serverRecorder{events: &events, running: false}
		repo, _ := serverRepo(t, rec)

		if err := repo.Checkout("main"); err != nil {
			t.Fatalf("Checkout: %v", err)
		}
		wantEvents(t, events, "suspend", "exec:checkout")
	})

	t.Run("read-only command leaves server alone", func(t *testing.T) {
		var events []string
		rec := &serverRecorder{events: &events, running: true}
		repo, _ := serverRepo(t, rec)

		if _, err := repo.Status(); err != nil {
			t.Fatalf("Status: %v", err)
		}
		wantEvents(t, events, "exec:status")
	})

	t.Run("failed command still resumes the server", func(t *testing.T) {
		var events []string
		rec := &serverRecorder{events: &events, running: true}
		repo, mock := serverRepo(t, rec)
		mock.Fail("dolt checkout main", errors.New("merge conflict"))

		if err := repo.Checkout("main"); err == nil {
			t.Error("expected checkout failure to surface")
		}
		wantEvents(t, events, "suspend", "exec:checkout", "resume")
	})

	t.Run("suspend failure surfaces", func(t *testing.T) {
		var events []string
		rec := &serverRecorder{events: &events, running: true, suspendErr: errors.New("boom")}
		repo, _ := serverRepo(t, rec)

		if err := repo.Checkout("main"); err == nil {
			t.Error("expected suspend failure to surface")
		}
		// The command must not run against a server we failed to stop.
		wantEvents(t, events, "suspend")
	})

	t.Run("resume failure surfaces", func(t *testing.T) {
		var events []string
		rec := &serverRecorder{events: &events, running: true, resumeErr: errors.New("boom")}
		repo, _ := serverRepo(t, rec)

		if err := repo.Checkout("main"); err == nil {
			t.Error("expected resume failure to surface")
		}
	})
}

func TestCommandError(t *testing.T) {
	err := &CommandError{
		Op:       "dolt push",
		Args:     []string{"push", "origin", "main"},
		Output:   "permission denied",
		ExitCode: 1,
	}
	if got := err.Error(); got != "dolt push: permission denied" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := &CommandError{Op: "dolt pull", Err: errors.New("timeout")}
	if got := wrapped.Error(); got != "dolt pull: timeout" {
		t.Errorf("Error() = %q", got)
	}
}
