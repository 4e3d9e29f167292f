package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveConfig writes configuration values back to their files.
type SaveConfig struct {
	// GlobalConfigDir names the directory under ~/.config/.
	GlobalConfigDir string

	// GlobalConfigFile is the file name. Defaults to "config.yaml".
	GlobalConfigFile string

	// LocalConfigName is the file name written into the repository
	// root.
	LocalConfigName string

	// ValidKeys restricts which keys may be saved. Nil allows any.
	ValidKeys []string
}

func (c SaveConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

func (c SaveConfig) validate(key string) error {
	if len(c.ValidKeys) > 0 && !containsKey(c.ValidKeys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(c.ValidKeys, ", "))
	}
	return nil
}

// SaveGlobal writes a key to the global config file, creating it if
// needed.
func (c SaveConfig) SaveGlobal(key, value string) error {
	if c.GlobalConfigDir == "" {
		return fmt.Errorf("global config directory not configured")
	}
	if err := c.validate(key); err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := filepath.Join(home, ".config", c.GlobalConfigDir, c.globalConfigFile())

	existing := loadYAML(path)
	existing[key] = parseValue(value)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SaveLocal writes a key to the local config file in the repository
// root.
func (c SaveConfig) SaveLocal(repoRoot, key, value string) error {
	if repoRoot == "" {
		return fmt.Errorf("repository root not found")
	}
	if c.LocalConfigName == "" {
		return fmt.Errorf("local config name not configured")
	}
	if err := c.validate(key); err != nil {
		return err
	}

	path := filepath.Join(repoRoot, c.LocalConfigName)
	existing := loadYAML(path)
	existing[key] = parseValue(value)

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}
	// Local config is shared with collaborators and stays readable.
	return os.WriteFile(path, data, 0o644)
}

// DeleteGlobalKey removes a key from the global config file.
func (c SaveConfig) DeleteGlobalKey(key string) error {
	if c.GlobalConfigDir == "" {
		return fmt.Errorf("global config directory not configured")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := filepath.Join(home, ".config", c.GlobalConfigDir, c.globalConfigFile())

	data, err := os.ReadFile(path)
	if err != nil {
		// Nothing to delete.
		return nil
	}
	var existing map[string]any
	if err := yaml.Unmarshal(data, &existing); err != nil {
		return nil
	}
	delete(existing, key)

	data, err = yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func loadYAML(path string) map[string]any {
	existing := make(map[string]any)
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &existing)
	}
	return existing
}

// parseValue keeps booleans typed in the YAML output.
func parseValue(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}
