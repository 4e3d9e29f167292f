package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "config.yaml")
	localPath := filepath.Join(dir, ".doltgo.yaml")

	writeFile(t, globalPath, "remote_host: global.example.com\nsql_server_user: admin\n")
	writeFile(t, localPath, "remote_host: local.example.com\n")
	t.Setenv("DOLTGO_SQL_SERVER_PORT", "3307")

	resolver := NewResolverWithPaths(ResolverConfig{
		EnvPrefix: "DOLTGO_",
		Defaults:  Defaults(),
	}, globalPath, localPath)
	cfg := resolver.Resolve()

	tests := []struct {
		key    string
		want   string
		source Source
	}{
		{KeyRemoteHost, "local.example.com", SourceLocal},
		{KeySQLServerUser, "admin", SourceGlobal},
		{KeySQLServerPort, "3307", SourceEnv},
		{KeySQLServerHost, "127.0.0.1", SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, source := cfg.GetWithSource(tt.key)
			if got != tt.want {
				t.Errorf("Get(%s) = %q, want %q", tt.key, got, tt.want)
			}
			if source != tt.source {
				t.Errorf("Source(%s) = %s, want %s", tt.key, source, tt.source)
			}
		})
	}
}

func TestResolveWithFlags(t *testing.T) {
	resolver := NewResolverWithPaths(ResolverConfig{Defaults: Defaults()}, "", "")
	cfg := resolver.ResolveWithFlags(map[string]string{
		KeyRemoteHost: "flag.example.com",
		KeyLogLevel:   "",
	})

	if got := cfg.Get(KeyRemoteHost); got != "flag.example.com" {
		t.Errorf("remote_host = %q", got)
	}
	if cfg.Source(KeyRemoteHost) != SourceFlag {
		t.Errorf("source = %s, want flag", cfg.Source(KeyRemoteHost))
	}
	// Empty flag values never override.
	if got := cfg.Get(KeyLogLevel); got != "info" {
		t.Errorf("log_level = %q, want default", got)
	}
}

func TestBareWebhookEnv(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK", "https://discord.example/hook")

	resolver := NewResolverWithPaths(ResolverConfig{
		EnvPrefix: "DOLTGO_",
		Defaults:  Defaults(),
	}, "", "")
	cfg := resolver.Resolve()

	if got := cfg.Get(KeyDiscordWebhook); got != "https://discord.example/hook" {
		t.Errorf("discord_webhook = %q", got)
	}
	if cfg.Source(KeyDiscordWebhook) != SourceEnv {
		t.Errorf("source = %s, want env", cfg.Source(KeyDiscordWebhook))
	}

	t.Run("prefixed wins over bare", func(t *testing.T) {
		t.Setenv("DOLTGO_DISCORD_WEBHOOK", "https://discord.example/prefixed")
		cfg := resolver.Resolve()
		if got := cfg.Get(KeyDiscordWebhook); got != "https://discord.example/prefixed" {
			t.Errorf("discord_webhook = %q", got)
		}
	})
}

func TestTypedGetters(t *testing.T) {
	resolver := NewResolverWithPaths(ResolverConfig{
		Defaults: map[string]string{
			"port":    "3306",
			"bad":     "not-a-number",
			"enabled": "true",
		},
	}, "", "")
	cfg := resolver.Resolve()

	if got := cfg.GetInt("port", 0); got != 3306 {
		t.Errorf("GetInt(port) = %d", got)
	}
	if got := cfg.GetInt("bad", 42); got != 42 {
		t.Errorf("GetInt(bad) = %d, want fallback", got)
	}
	if got := cfg.GetInt("missing", 7); got != 7 {
		t.Errorf("GetInt(missing) = %d, want fallback", got)
	}
	if !cfg.GetBool("enabled") {
		t.Error("GetBool(enabled) = false")
	}
	if cfg.GetBool("missing") {
		t.Error("GetBool(missing) = true")
	}
}

func TestInvalidYAMLWarns(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "config.yaml")
	writeFile(t, globalPath, "not: [valid: yaml")

	var buf bytes.Buffer
	resolver := NewResolverWithPaths(ResolverConfig{
		Defaults:  Defaults(),
		ErrWriter: &buf,
	}, globalPath, "")
	cfg := resolver.Resolve()

	if len(resolver.Warnings) == 0 {
		t.Error("expected a warning for invalid yaml")
	}
	// Defaults still apply.
	if got := cfg.Get(KeyRemoteHost); got != "doltremoteapi.dolthub.com" {
		t.Errorf("remote_host = %q", got)
	}
}

func TestValidKeysFilterFiles(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, ".doltgo.yaml")
	writeFile(t, localPath, "remote_host: local.example.com\nbogus_key: x\n")

	resolver := NewResolverWithPaths(ResolverConfig{
		ValidKeys: KnownKeys(),
	}, "", localPath)
	cfg := resolver.Resolve()

	if got := cfg.Get(KeyRemoteHost); got != "local.example.com" {
		t.Errorf("remote_host = %q", got)
	}
	if got := cfg.Get("bogus_key"); got != "" {
		t.Errorf("bogus_key = %q, want filtered out", got)
	}
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".dolt"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := findRepoRoot(nested); got != root {
		t.Errorf("findRepoRoot = %q, want %q", got, root)
	}
	if got := findRepoRoot(t.TempDir()); got != "" {
		t.Errorf("findRepoRoot outside a repo = %q, want empty", got)
	}
}
