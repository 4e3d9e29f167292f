package sqlserver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verdantdata/doltgo/dolt"
)

func testRepo(t *testing.T, name string) *dolt.Repo {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Join(dir, ".dolt"), 0o755); err != nil {
		t.Fatal(err)
	}
	repo, err := dolt.NewRepo(dir, dolt.WithRunner(dolt.NewMockRunner()))
	if err != nil {
		t.Fatalf("NewRepo: %v", err)
	}
	return repo
}

func TestConfigArgs(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			"zero value",
			Config{},
			"sql-server",
		},
		{
			"config file wins",
			Config{ConfigFile: "server.yaml", Port: 3307, ReadOnly: true},
			"sql-server --config server.yaml",
		},
		{
			"full flags",
			Config{
				Host:         "0.0.0.0",
				Port:         3307,
				User:         "tester",
				Password:     "secret",
				Timeout:      5000,
				ReadOnly:     true,
				LogLevel:     "debug",
				MultiDBDir:   "/data/repos",
				NoAutoCommit: true,
			},
			"sql-server --host 0.0.0.0 --port 3307 --user tester --password secret" +
				" --timeout 5000 --readonly --loglevel debug --multi-db-dir /data/repos --no-auto-commit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(tt.config.args(), " ")
			if got != tt.want {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		srv := New(testRepo(t, "my-database"), Config{})
		want := "root@tcp(127.0.0.1:3306)/my_database"
		if got := srv.DSN(); got != want {
			t.Errorf("DSN = %q, want %q", got, want)
		}
	})

	t.Run("custom user and password", func(t *testing.T) {
		srv := New(testRepo(t, "stats"), Config{
			Host:     "db.internal",
			Port:     3307,
			User:     "loader",
			Password: "hunter2",
		})
		want := "loader:hunter2@tcp(db.internal:3307)/stats"
		if got := srv.DSN(); got != want {
			t.Errorf("DSN = %q, want %q", got, want)
		}
	})
}

func TestConnectNotRunning(t *testing.T) {
	srv := New(testRepo(t, "idle"), Config{})

	_, err := srv.Connect(context.Background())
	if !errors.Is(err, ErrNotRunning) {
		t.Errorf("err = %v, want ErrNotRunning", err)
	}
}

func TestStopNotRunning(t *testing.T) {
	srv := New(testRepo(t, "idle"), Config{})

	if err := srv.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("err = %v, want ErrNotRunning", err)
	}
}

func TestRestartNotRunning(t *testing.T) {
	srv := New(testRepo(t, "idle"), Config{})

	if err := srv.Restart(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("err = %v, want ErrNotRunning", err)
	}
}

func TestSuspendNotRunning(t *testing.T) {
	srv := New(testRepo(t, "idle"), Config{})

	wasRunning, err := srv.Suspend()
	if err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if wasRunning {
		t.Error("Suspend reported a stopped server as running")
	}
}

func TestAttachDetach(t *testing.T) {
	repo := testRepo(t, "served")
	srv := New(repo, Config{})

	srv.Attach()
	srv.Detach()
	// After detach, working-set commands must not try to restart the
	// stopped server.
	if err := repo.Checkout("main"); err != nil {
		t.Fatalf("Checkout after detach: %v", err)
	}
}
