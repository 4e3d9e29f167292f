package etl

import (
	"context"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/verdantdata/doltgo/dolt"
	"github.com/verdantdata/doltgo/notify"
)

// LoadOptions configures LoadToDolt.
type LoadOptions struct {
	// Commit creates a commit after the writers run.
	Commit bool
	// Message is the commit message. Defaults to naming the loaded tables.
	Message string
	// Branch loads to the named branch, which must already exist.
	Branch string
	// Notifier receives load lifecycle events. Nil disables notification.
	Notifier notify.Notifier
}

// LoadToDolt runs the writers against the repository, stages the written
// tables, and optionally commits. It returns the run ID assigned to the
// load.
//
// When Branch names a branch other than the current one, the load checks
// it out first; the branch must exist. Loads never create branches.
func LoadToDolt(ctx context.Context, repo *dolt.Repo, writers []TableWriter, opts LoadOptions) (string, error) {
	runID, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}

	emit := func(typ notify.EventType, severity, message string, tables []string) {
		if opts.Notifier == nil {
			return
		}
		// Notification failures never fail the load.
		_ = opts.Notifier.Notify(ctx, notify.Event{
			Type:      typ,
			RunID:     runID,
			Database:  repo.DatabaseName(),
			Tables:    tables,
			Message:   message,
			Severity:  severity,
			Timestamp: time.Now(),
		})
	}

	emit(notify.EventLoadStarted, notify.SeverityInfo, "load started", nil)

	if err := checkoutLoadBranch(repo, opts.Branch); err != nil {
		emit(notify.EventLoadFailed, notify.SeverityError, err.Error(), nil)
		return runID, err
	}

	var tables []string
	for _, writer := range writers {
		table, err := writer.Write(repo)
		if err != nil {
			emit(notify.EventLoadFailed, notify.SeverityError, err.Error(), tables)
			return runID, err
		}
		tables = append(tables, table)
	}

	if _, err := repo.Add(tables...); err != nil {
		emit(notify.EventLoadFailed, notify.SeverityError, err.Error(), tables)
		return runID, fmt.Errorf("stage tables: %w", err)
	}

	if opts.Commit {
		message := opts.Message
		if message == "" {
			message = "Loaded " + strings.Join(tables, ", ")
		}
		if err := repo.Commit(message); err != nil {
			emit(notify.EventLoadFailed, notify.SeverityError, err.Error(), tables)
			return runID, err
		}
	}

	emit(notify.EventLoadCompleted, notify.SeverityInfo,
		fmt.Sprintf("loaded %d tables", len(tables)), tables)
	return runID, nil
}

// checkoutLoadBranch switches to the load branch when needed. The branch
// must exist; loads never create branches implicitly.
func checkoutLoadBranch(repo *dolt.Repo, branch string) error {
	if branch == "" {
		return nil
	}

	current, err := repo.CurrentBranch()
	if err != nil {
		return err
	}
	if current == branch {
		return nil
	}

	exists, err := repo.BranchExists(branch)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("load to branch %q: %w", branch, dolt.ErrBranchNotFound)
	}
	return repo.Checkout(branch)
}

// CreateBranchStep creates a branch from the tip of the current branch.
// It exists so pipelines can make branch creation an explicit, ordered
// step before a load targets the branch.
func CreateBranchStep(repo *dolt.Repo, branch string) error {
	return repo.CreateBranch(branch, "")
}
