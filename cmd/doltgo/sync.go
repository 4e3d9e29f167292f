package main

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdantdata/doltgo/dolt"
	"github.com/verdantdata/doltgo/sqlsync"
)

var (
	syncDriver string
	syncDSN    string
	syncTables []string
	syncFrom   bool
	syncRef    string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync tables between the repository and a relational database",
	Long: `Sync tables between the Dolt repository and a relational database.

By default data flows from the database into Dolt; --from-dolt reverses
the direction. Table pairs are given as source=target; a bare name
syncs to a table of the same name.

Example:
  doltgo sync --driver mysql --dsn "root@tcp(127.0.0.1)/stats" --tables players,rankings=atp_rankings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(syncTables) == 0 {
			return fmt.Errorf("--tables is required")
		}

		repo, err := openRepo()
		if err != nil {
			return err
		}
		dialect, err := dialectFor(syncDriver)
		if err != nil {
			return err
		}

		db, err := sql.Open(dialect.Name(), syncDSN)
		if err != nil {
			return fmt.Errorf("open %s: %w", syncDriver, err)
		}
		defer db.Close()

		mapping := make(sqlsync.Mapping, len(syncTables))
		for _, pair := range syncTables {
			source, target, found := strings.Cut(pair, "=")
			if !found {
				target = source
			}
			mapping[source] = target
		}

		ctx := cmd.Context()
		if syncFrom {
			return sqlsync.SyncFromDolt(ctx,
				sqlsync.DoltReaderAt(repo, syncRef),
				sqlsync.SQLWriter(db, dialect),
				mapping)
		}
		return sqlsync.SyncToDolt(ctx,
			sqlsync.SQLReader(db, dialect),
			sqlsync.DoltWriter(repo, dolt.ImportModeReplace),
			mapping)
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncDriver, "driver", "mysql", "Database driver (mysql, postgres, sqlite)")
	syncCmd.Flags().StringVar(&syncDSN, "dsn", "", "Database connection string")
	syncCmd.Flags().StringSliceVar(&syncTables, "tables", nil, "Tables to sync, as source or source=target")
	syncCmd.Flags().BoolVar(&syncFrom, "from-dolt", false, "Sync from Dolt into the database")
	syncCmd.Flags().StringVar(&syncRef, "ref", "", "Read Dolt tables as of this ref (with --from-dolt)")
}

func dialectFor(driver string) (sqlsync.Dialect, error) {
	switch driver {
	case "mysql":
		return sqlsync.MySQLDialect{}, nil
	case "postgres", "pgx":
		return sqlsync.PostgresDialect{}, nil
	case "sqlite":
		return sqlsync.SQLiteDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported driver %q", driver)
}
