package dolthub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetRepository(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/dolthub/ip-to-country":
			fmt.Fprint(w, `{"owner":"dolthub","name":"ip-to-country","default_branch":"main","public":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"repository not found"}`)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("tok123"))

	t.Run("success", func(t *testing.T) {
		repo, err := client.GetRepository(context.Background(), "dolthub", "ip-to-country")
		if err != nil {
			t.Fatalf("GetRepository: %v", err)
		}
		if repo.Path() != "dolthub/ip-to-country" {
			t.Errorf("path = %s", repo.Path())
		}
		if repo.DefaultBranch != "main" {
			t.Errorf("default branch = %s", repo.DefaultBranch)
		}
		if gotAuth != "Bearer tok123" {
			t.Errorf("auth header = %q", gotAuth)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetRepository(context.Background(), "dolthub", "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatal("error is not an APIError")
		}
		if apiErr.Message != "repository not found" {
			t.Errorf("message = %q", apiErr.Message)
		}
	})
}

func TestQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "SELECT 1" {
			fmt.Fprint(w, `{
				"query_execution_status": "Success",
				"schema": [{"columnName":"name"},{"columnName":"rank"}],
				"rows": [{"name":"Roger","rank":"1"},{"name":"Rafael","rank":"2"}]
			}`)
			return
		}
		fmt.Fprint(w, `{"query_execution_status":"Error","query_execution_message":"table not found"}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	t.Run("rows in column order", func(t *testing.T) {
		data, err := client.Query(context.Background(), "dolthub", "stats", "main", "SELECT 1")
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(data.Columns) != 2 || data.Columns[0] != "name" {
			t.Errorf("columns = %v", data.Columns)
		}
		if data.Len() != 2 {
			t.Fatalf("rows = %d, want 2", data.Len())
		}
		if data.Rows[0][0] != "Roger" || data.Rows[0][1] != "1" {
			t.Errorf("first row = %v", data.Rows[0])
		}
	})

	t.Run("execution error", func(t *testing.T) {
		_, err := client.Query(context.Background(), "dolthub", "stats", "main", "SELECT bad")
		if !errors.Is(err, ErrQueryFailed) {
			t.Fatalf("err = %v, want ErrQueryFailed", err)
		}
	})
}

func TestListBranches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "0":
			fmt.Fprint(w, `{"branches":[{"name":"main","hash":"aaa"}],"next_page":true}`)
		case "1":
			fmt.Fprint(w, `{"branches":[{"name":"dev","hash":"bbb"}],"next_page":false}`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	branches, err := client.ListBranches(context.Background(), "dolthub", "stats").All(context.Background())
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("branches = %d, want 2", len(branches))
	}
	if branches[0].Name != "main" || branches[1].Name != "dev" {
		t.Errorf("branches = %v", branches)
	}
}

func TestPageIteratorSkipsEmptyPages(t *testing.T) {
	pages := [][]string{
		{},
		{"feature-branch"},
	}
	iter := NewPageIterator(func(ctx context.Context, page int) ([]string, bool, error) {
		if page >= len(pages) {
			t.Fatalf("fetched page %d past the end", page)
		}
		return pages[page], page < len(pages)-1, nil
	})

	all, err := iter.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 || all[0] != "feature-branch" {
		t.Errorf("All = %v, want [feature-branch]", all)
	}
}

func TestPageIteratorError(t *testing.T) {
	boom := errors.New("boom")
	iter := NewPageIterator(func(ctx context.Context, page int) ([]string, bool, error) {
		return nil, false, boom
	})

	_, _, err := iter.Next(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	// Error sticks.
	_, _, err = iter.Next(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("second err = %v, want boom", err)
	}
}
