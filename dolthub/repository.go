package dolthub

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/verdantdata/doltgo/dolt"
)

// Repository is a hosted database's metadata.
type Repository struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	Public        bool   `json:"public"`
	Size          int64  `json:"size"`
}

// Path returns the owner/name form of the repository.
func (r *Repository) Path() string {
	return r.Owner + "/" + r.Name
}

// GetRepository fetches a repository's metadata.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*Repository, error) {
	var repo Repository
	if err := c.get(ctx, fmt.Sprintf("/%s/%s", owner, name), nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// Branch is a branch in a hosted repository.
type Branch struct {
	Name       string `json:"name"`
	CommitHash string `json:"hash"`
}

type branchPage struct {
	Branches []Branch `json:"branches"`
	NextPage bool     `json:"next_page"`
}

// ListBranches iterates the repository's branches. Pages are fetched
// lazily as the iterator advances.
func (c *Client) ListBranches(ctx context.Context, owner, name string) *PageIterator[Branch] {
	path := fmt.Sprintf("/%s/%s/branches", owner, name)
	return NewPageIterator(func(ctx context.Context, page int) ([]Branch, bool, error) {
		query := url.Values{"page": {strconv.Itoa(page)}}
		var resp branchPage
		if err := c.get(ctx, path, query, &resp); err != nil {
			return nil, false, err
		}
		return resp.Branches, resp.NextPage, nil
	})
}

// queryResponse is the SQL endpoint's payload. Rows come back as
// column-keyed maps; the schema preserves column order.
type queryResponse struct {
	Status  string `json:"query_execution_status"`
	Message string `json:"query_execution_message"`
	Schema  []struct {
		ColumnName string `json:"columnName"`
		ColumnType string `json:"columnType"`
	} `json:"schema"`
	Rows []map[string]string `json:"rows"`
}

// Query executes a SQL query against a hosted repository at the given
// ref and returns the result as ordered table data.
func (c *Client) Query(ctx context.Context, owner, name, ref, query string) (*dolt.TableData, error) {
	path := fmt.Sprintf("/%s/%s/%s", owner, name, ref)
	params := url.Values{"q": {query}}

	var resp queryResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "Success" && resp.Status != "RowLimit" {
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, resp.Message)
	}

	data := &dolt.TableData{}
	for _, col := range resp.Schema {
		data.Columns = append(data.Columns, col.ColumnName)
	}
	for _, row := range resp.Rows {
		out := make([]string, len(data.Columns))
		for i, col := range data.Columns {
			out[i] = row[col]
		}
		data.Rows = append(data.Rows, out)
	}
	return data, nil
}
