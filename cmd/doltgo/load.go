package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdantdata/doltgo/config"
	"github.com/verdantdata/doltgo/dolt"
	"github.com/verdantdata/doltgo/etl"
	"github.com/verdantdata/doltgo/notify"
)

var (
	loadTable    string
	loadPKs      []string
	loadMode     string
	loadBranch   string
	loadMessage  string
	loadNoCommit bool
)

var loadCmd = &cobra.Command{
	Use:   "load [files...]",
	Short: "Load CSV files into the repository as tables",
	Long: `Load CSV files into the repository, staging and committing the
result. Each file becomes a table named after the file, unless --table
overrides it for a single file. Malformed rows are dropped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if loadTable != "" && len(args) > 1 {
			return fmt.Errorf("--table applies to a single file, got %d", len(args))
		}

		repo, err := openRepo()
		if err != nil {
			return err
		}

		mode := dolt.ImportMode(loadMode)
		var writers []etl.TableWriter
		for _, path := range args {
			table := loadTable
			if table == "" {
				table = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			path := path
			writers = append(writers, etl.NewBulkWriter(table, loadPKs, mode,
				func() (io.Reader, error) { return os.Open(path) },
				etl.DropMalformedRows(),
			))
		}

		runID, err := etl.LoadToDolt(cmd.Context(), repo, writers, etl.LoadOptions{
			Commit:   !loadNoCommit,
			Message:  loadMessage,
			Branch:   loadBranch,
			Notifier: notifierFromConfig(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("load %s complete\n", runID)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadTable, "table", "", "Table name (single file only)")
	loadCmd.Flags().StringSliceVar(&loadPKs, "pk", nil, "Primary key columns")
	loadCmd.Flags().StringVar(&loadMode, "mode", string(dolt.ImportModeCreate), "Import mode (create, update, replace)")
	loadCmd.Flags().StringVar(&loadBranch, "branch", "", "Load to an existing branch")
	loadCmd.Flags().StringVar(&loadMessage, "message", "", "Commit message")
	loadCmd.Flags().BoolVar(&loadNoCommit, "no-commit", false, "Leave changes staged without committing")
}

// notifierFromConfig builds a notifier from configured webhooks. With
// none configured, events go to the log.
func notifierFromConfig() notify.Notifier {
	cfg := resolveConfig()

	var notifiers []notify.Notifier
	if url := cfg.Get(config.KeyDiscordWebhook); url != "" {
		notifiers = append(notifiers, notify.NewDiscordNotifier(url))
	}
	if url := cfg.Get(config.KeySlackWebhook); url != "" {
		notifiers = append(notifiers, notify.NewSlackNotifier(url))
	}
	if len(notifiers) == 0 {
		return notify.NewLogNotifier(nil)
	}
	return notify.NewMultiNotifier(notifiers...)
}
