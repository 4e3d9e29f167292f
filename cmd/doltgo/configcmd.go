package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/verdantdata/doltgo/config"
)

var configGlobal bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and set configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resolved configuration with sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig()

		all := cfg.All()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value, source := cfg.GetWithSource(key)
			fmt.Printf("%-20s %-30s (%s)\n", key, value, source)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(resolveConfig().Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Save a configuration value",
	Long: `Save a configuration value to the local config in the repository
root, or to the global config with --global.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		save := config.SaveConfig{
			GlobalConfigDir: "doltgo",
			LocalConfigName: ".doltgo.yaml",
			ValidKeys:       config.KnownKeys(),
		}
		if configGlobal {
			return save.SaveGlobal(args[0], args[1])
		}

		resolver := config.NewResolver(config.ResolverConfig{LocalConfigName: ".doltgo.yaml"})
		return save.SaveLocal(resolver.RepoRoot(), args[0], args[1])
	},
}

func init() {
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "Save to the global config")
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
