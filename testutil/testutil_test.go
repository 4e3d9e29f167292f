package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetupRepoDir(t *testing.T) {
	dir := SetupRepoDir(t, "stats")

	if filepath.Base(dir) != "stats" {
		t.Errorf("base = %s, want stats", filepath.Base(dir))
	}
	info, err := os.Stat(filepath.Join(dir, ".dolt"))
	if err != nil || !info.IsDir() {
		t.Errorf(".dolt directory missing: %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "file.csv")
	WriteFile(t, path, "a,b\n1,2\n")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("content = %q", data)
	}
}

func TestTestContextWithTimeout(t *testing.T) {
	ctx := TestContextWithTimeout(t, time.Minute)
	if _, ok := ctx.Deadline(); !ok {
		t.Error("context has no deadline")
	}
}
