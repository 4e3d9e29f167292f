package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/verdantdata/doltgo/config"
	"github.com/verdantdata/doltgo/sqlserver"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run a MySQL-compatible server over the repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}

		cfg := resolveConfig()
		server := sqlserver.New(repo, sqlserver.Config{
			Host: cfg.Get(config.KeySQLServerHost),
			Port: cfg.GetInt(config.KeySQLServerPort, sqlserver.DefaultPort),
			User: cfg.Get(config.KeySQLServerUser),
		})
		if err := server.Start(); err != nil {
			return err
		}
		fmt.Printf("sql-server listening on %s:%d (database %s)\n",
			cfg.Get(config.KeySQLServerHost),
			cfg.GetInt(config.KeySQLServerPort, sqlserver.DefaultPort),
			repo.DatabaseName())

		if err := server.WaitForConnection(); err != nil {
			_ = server.Stop()
			return fmt.Errorf("server did not become ready: %w", err)
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		fmt.Println("shutting down")
		if err := server.Stop(); err != nil {
			return err
		}
		// Give the process a moment to release the port.
		time.Sleep(100 * time.Millisecond)
		return nil
	},
}
