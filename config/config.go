package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known configuration keys.
const (
	KeyDoltPath       = "dolt_path"
	KeyRemoteHost     = "remote_host"
	KeySQLServerHost  = "sql_server_host"
	KeySQLServerPort  = "sql_server_port"
	KeySQLServerUser  = "sql_server_user"
	KeyDiscordWebhook = "discord_webhook"
	KeySlackWebhook   = "slack_webhook"
	KeyAWSRegion      = "aws_region"
	KeyCredsDir       = "creds_dir"
	KeyLogLevel       = "log_level"
)

// Defaults returns the built-in defaults for all known keys.
func Defaults() map[string]string {
	return map[string]string{
		KeyDoltPath:      "dolt",
		KeyRemoteHost:    "doltremoteapi.dolthub.com",
		KeySQLServerHost: "127.0.0.1",
		KeySQLServerPort: "3306",
		KeySQLServerUser: "root",
		KeyLogLevel:      "info",
	}
}

// KnownKeys lists every key the resolver understands, for validation
// in config set commands.
func KnownKeys() []string {
	return []string{
		KeyDoltPath, KeyRemoteHost,
		KeySQLServerHost, KeySQLServerPort, KeySQLServerUser,
		KeyDiscordWebhook, KeySlackWebhook,
		KeyAWSRegion, KeyCredsDir, KeyLogLevel,
	}
}

// ResolverConfig configures the resolver.
type ResolverConfig struct {
	// EnvPrefix maps key names to environment variables: with prefix
	// "DOLTGO_", key "remote_host" reads DOLTGO_REMOTE_HOST.
	EnvPrefix string

	// GlobalConfigDir names the directory under ~/.config/ holding
	// the global config file.
	GlobalConfigDir string

	// GlobalConfigFile is the global file name. Defaults to
	// "config.yaml".
	GlobalConfigFile string

	// LocalConfigName is the file name looked for in the repository
	// root, e.g. ".doltgo.yaml".
	LocalConfigName string

	// Defaults seeds the lowest-priority layer.
	Defaults map[string]string

	// ValidKeys restricts which keys config files may set. Nil allows
	// any key.
	ValidKeys []string

	// RepoRootFinder locates the repository root for the local config.
	// Nil uses .dolt directory detection from the working directory.
	RepoRootFinder func(startDir string) (string, error)

	// ErrWriter receives warnings. Defaults to os.Stderr.
	ErrWriter io.Writer
}

func (c ResolverConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// Resolver merges configuration layers.
type Resolver struct {
	config     ResolverConfig
	globalPath string
	localPath  string
	repoRoot   string

	// Warnings collects non-fatal problems hit during resolution.
	Warnings []string
}

// NewResolver creates a resolver, locating the global and local config
// files.
func NewResolver(cfg ResolverConfig) *Resolver {
	r := &Resolver{config: cfg}
	if cfg.ErrWriter == nil {
		r.config.ErrWriter = os.Stderr
	}

	find := cfg.RepoRootFinder
	if find == nil {
		find = func(start string) (string, error) { return findRepoRoot(start), nil }
	}
	if root, err := find("."); err == nil && root != "" {
		r.repoRoot = root
		if cfg.LocalConfigName != "" {
			r.localPath = filepath.Join(root, cfg.LocalConfigName)
		}
	}

	if cfg.GlobalConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			r.globalPath = filepath.Join(home, ".config", cfg.GlobalConfigDir, cfg.globalConfigFile())
		}
	}
	return r
}

// NewResolverWithPaths creates a resolver with explicit file paths,
// bypassing discovery. Used in tests and when paths are already known.
func NewResolverWithPaths(cfg ResolverConfig, globalPath, localPath string) *Resolver {
	r := &Resolver{config: cfg, globalPath: globalPath, localPath: localPath}
	if cfg.ErrWriter == nil {
		r.config.ErrWriter = os.Stderr
	}
	return r
}

func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.config.ErrWriter != nil {
		fmt.Fprintf(r.config.ErrWriter, "Warning: %s\n", msg)
	}
}

// Resolved is the merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for key, or "" when unset.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// GetInt returns the key's value as an int, or fallback when unset or
// unparsable.
func (c *Resolved) GetInt(key string, fallback int) int {
	v, ok := c.values[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetBool returns the key's value as a bool. Unset or unparsable
// values are false.
func (c *Resolved) GetBool(key string) bool {
	b, _ := strconv.ParseBool(c.values[key])
	return b
}

// Source returns where the key's value came from.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns the value and its source together.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// All returns a copy of every key-value pair.
func (c *Resolved) All() map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Resolve merges defaults, global, local, and environment layers.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for key, value := range r.config.Defaults {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}
	r.applyFile(cfg, r.globalPath, SourceGlobal)
	r.applyFile(cfg, r.localPath, SourceLocal)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves and then overlays non-empty flag values,
// the highest-priority layer.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()
	for key, value := range flags {
		if value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceFlag
		}
	}
	return cfg
}

func (r *Resolver) applyFile(cfg *Resolved, path string, source Source) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		// Missing files are fine.
		return
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for key, value := range parsed {
		if len(r.config.ValidKeys) > 0 && !containsKey(r.config.ValidKeys, key) {
			continue
		}
		if s := valueString(value); s != "" {
			cfg.values[key] = s
			cfg.sources[key] = source
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	if r.config.EnvPrefix != "" {
		keys := make(map[string]bool)
		for k := range r.config.Defaults {
			keys[k] = true
		}
		for k := range cfg.values {
			keys[k] = true
		}
		for _, k := range r.config.ValidKeys {
			keys[k] = true
		}

		for key := range keys {
			envKey := r.config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
			if value := os.Getenv(envKey); value != "" {
				cfg.values[key] = value
				cfg.sources[key] = SourceEnv
			}
		}
	}

	// CI systems inject webhook URLs under their bare names.
	for key, envKey := range map[string]string{
		KeyDiscordWebhook: "DISCORD_WEBHOOK",
		KeySlackWebhook:   "SLACK_WEBHOOK",
	} {
		if cfg.values[key] != "" && cfg.sources[key] == SourceEnv {
			continue
		}
		if value := os.Getenv(envKey); value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceEnv
		}
	}
}

// RepoRoot returns the detected repository root.
func (r *Resolver) RepoRoot() string {
	return r.repoRoot
}

// GlobalPath returns the global config file path.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the local config file path.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func valueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}

// findRepoRoot walks up from startDir looking for a .dolt directory.
func findRepoRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, ".dolt")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
