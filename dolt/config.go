package dolt

import "strings"

// ConfigGet reads a config value by name, checking local then global
// scope.
func (r *Repo) ConfigGet(name string) (string, error) {
	out, err := r.exec("config", "--get", "--name", name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ConfigAdd sets a config value.
func (r *Repo) ConfigAdd(name, value string) error {
	if name == "" || value == "" {
		return optionsError("config add requires name and value")
	}
	_, err := r.exec("config", "--add", "--name", name, "--value", value)
	return err
}

// ConfigUnset removes a config value.
func (r *Repo) ConfigUnset(name string) error {
	if name == "" {
		return optionsError("config unset requires a name")
	}
	_, err := r.exec("config", "--unset", "--name", name)
	return err
}

// ConfigList returns all config entries as name/value pairs. Lines that
// are not "name = value" shaped are skipped.
func (r *Repo) ConfigList() (map[string]string, error) {
	out, err := r.exec("config", "--list")
	if err != nil {
		return nil, err
	}

	entries := make(map[string]string)
	for _, line := range splitLines(out) {
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		entries[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return entries, nil
}
