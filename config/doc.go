// Package config resolves doltgo configuration from layered sources.
//
// Precedence, highest to lowest:
//  1. Command-line flags
//  2. Environment variables (DOLTGO_ prefix)
//  3. Local config (.doltgo.yaml in the repository root)
//  4. Global config (~/.config/doltgo/config.yaml)
//  5. Built-in defaults
//
// Every resolved value carries its Source, so commands can report
// where a setting came from:
//
//	resolver := config.NewResolver(config.ResolverConfig{
//	    EnvPrefix:       "DOLTGO_",
//	    GlobalConfigDir: "doltgo",
//	    LocalConfigName: ".doltgo.yaml",
//	    Defaults:        config.Defaults(),
//	})
//	cfg := resolver.Resolve()
//	cfg.Get(config.KeySQLServerPort)    // "3306"
//	cfg.Source(config.KeySQLServerPort) // "default"
//
// The local config lives next to the Dolt database: the resolver walks
// up from the working directory until it finds a .dolt directory.
//
// The webhook keys additionally honor their bare environment variable
// names, DISCORD_WEBHOOK and SLACK_WEBHOOK, since CI systems commonly
// inject them unprefixed.
package config
