package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdantdata/doltgo/config"
	"github.com/verdantdata/doltgo/dolt"
)

// Flags shared across commands.
var (
	repoDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "doltgo",
	Short: "Work with Dolt databases: inspect, load, sync, announce",
	Long: `doltgo wraps the dolt CLI and the DoltHub API.

It inspects repositories, runs SQL, controls a local sql-server,
loads data from files, syncs tables with relational databases, and
posts release announcements.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoDir, "dir", "C", ".", "Path to the Dolt repository")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(announceCmd)
}

// resolveConfig merges config layers for the current invocation.
func resolveConfig() *config.Resolved {
	resolver := config.NewResolver(config.ResolverConfig{
		EnvPrefix:       "DOLTGO_",
		GlobalConfigDir: "doltgo",
		LocalConfigName: ".doltgo.yaml",
		Defaults:        config.Defaults(),
		ValidKeys:       config.KnownKeys(),
	})
	return resolver.ResolveWithFlags(map[string]string{
		config.KeyLogLevel: logLevel,
	})
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	switch resolveConfig().Get(config.KeyLogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// openRepo opens the repository named by the --dir flag.
func openRepo() (*dolt.Repo, error) {
	return dolt.NewRepo(repoDir)
}
