package dolt

import (
	"errors"
	"testing"
)

func TestSQLOptionRules(t *testing.T) {
	repo, _ := testRepo(t)

	t.Run("list saved excludes query", func(t *testing.T) {
		_, err := repo.SQL(SQLOptions{ListSaved: true, Query: "SELECT 1"})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("err = %v, want ErrInvalidOptions", err)
		}
	})

	t.Run("execute saved excludes batch", func(t *testing.T) {
		_, err := repo.SQL(SQLOptions{ExecuteSaved: "daily", Batch: true})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("err = %v, want ErrInvalidOptions", err)
		}
	})

	t.Run("empty query rejected", func(t *testing.T) {
		_, err := repo.SQL(SQLOptions{})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("err = %v, want ErrInvalidOptions", err)
		}
	})
}

func TestSQLArgAssembly(t *testing.T) {
	repo, runner := testRepo(t)

	_, err := repo.SQL(SQLOptions{
		Query:   "SELECT * FROM players",
		Save:    "all-players",
		Message: "everyone",
		Batch:   true,
	})
	if err != nil {
		t.Fatalf("SQL: %v", err)
	}
	want := "dolt sql --batch --save all-players --message everyone --query SELECT * FROM players"
	if got := runner.LastCall(); got != want {
		t.Errorf("call = %q, want %q", got, want)
	}
}

func TestQueryRows(t *testing.T) {
	repo, runner := testRepo(t)
	runner.Respond(
		"dolt sql --result-format csv --query SELECT * FROM `players`",
		"name,major_count\nSerena,23\nRoger,20",
	)

	data, err := repo.ReadTable("players")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if data.Len() != 2 {
		t.Fatalf("Len = %d, want 2", data.Len())
	}
	if data.Columns[0] != "name" || data.Columns[1] != "major_count" {
		t.Errorf("Columns = %v", data.Columns)
	}

	rows := data.Maps()
	if rows[0]["name"] != "Serena" || rows[0]["major_count"] != "23" {
		t.Errorf("rows[0] = %v", rows[0])
	}
	if rows[1]["name"] != "Roger" {
		t.Errorf("rows[1] = %v", rows[1])
	}
}

func TestParseCSVOutput(t *testing.T) {
	t.Run("empty output", func(t *testing.T) {
		data, err := parseCSVOutput("")
		if err != nil {
			t.Fatalf("parseCSVOutput: %v", err)
		}
		if data.Len() != 0 {
			t.Errorf("Len = %d, want 0", data.Len())
		}
	})

	t.Run("quoted fields", func(t *testing.T) {
		data, err := parseCSVOutput("name,notes\n\"Connors, Jimmy\",\"weeks: 268\"")
		if err != nil {
			t.Fatalf("parseCSVOutput: %v", err)
		}
		if data.Rows[0][0] != "Connors, Jimmy" {
			t.Errorf("field = %q", data.Rows[0][0])
		}
	})
}
