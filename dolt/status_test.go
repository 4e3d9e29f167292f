package dolt

import "testing"

const dirtyStatus = `On branch main
Changes to be committed:
  (use "dolt reset <table>..." to unstage)
	modified:       players
Changes not staged for commit:
  (use "dolt add <table>" to update what will be committed)
	modified:       scores
Untracked files:
  (use "dolt add <table>" to include in what will be committed)
	new table:      rankings
`

func TestStatusParsing(t *testing.T) {
	t.Run("clean working set", func(t *testing.T) {
		repo, runner := testRepo(t)
		runner.Respond("dolt status", "On branch main\nnothing to commit, working tree clean")

		status, err := repo.Status()
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if !status.IsClean {
			t.Error("expected clean status")
		}
	})

	t.Run("staged and unstaged changes", func(t *testing.T) {
		repo, runner := testRepo(t)
		runner.Respond("dolt status", dirtyStatus)

		status, err := repo.Status()
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if status.IsClean {
			t.Fatal("expected dirty status")
		}

		if staged, ok := status.ModifiedTables["players"]; !ok || !staged {
			t.Errorf("players: staged = %v, present = %v; want staged", staged, ok)
		}
		if staged, ok := status.ModifiedTables["scores"]; !ok || staged {
			t.Errorf("scores: staged = %v, present = %v; want unstaged", staged, ok)
		}
		if staged, ok := status.AddedTables["rankings"]; !ok || staged {
			t.Errorf("rankings: staged = %v, present = %v; want unstaged new table", staged, ok)
		}
	})
}

func TestAdd(t *testing.T) {
	repo, runner := testRepo(t)
	runner.Respond("dolt status", "nothing to commit, working tree clean")

	if _, err := repo.Add("players", "scores"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !runner.CalledWith("add players scores") {
		t.Errorf("add not invoked as expected: %v", runner.Calls())
	}
}

func TestReset(t *testing.T) {
	t.Run("hard and soft rejected", func(t *testing.T) {
		repo, _ := testRepo(t)
		err := repo.Reset(ResetOptions{Hard: true, Soft: true}, "players")
		if err == nil {
			t.Fatal("expected error for hard+soft")
		}
	})

	t.Run("hard flag passed through", func(t *testing.T) {
		repo, runner := testRepo(t)
		if err := repo.Reset(ResetOptions{Hard: true}, "players"); err != nil {
			t.Fatalf("Reset: %v", err)
		}
		if got := runner.LastCall(); got != "dolt reset --hard players" {
			t.Errorf("call = %q", got)
		}
	})
}
