package config

// Source identifies the layer a configuration value came from.
type Source string

const (
	// SourceDefault is a built-in default.
	SourceDefault Source = "default"

	// SourceGlobal is ~/.config/doltgo/config.yaml.
	SourceGlobal Source = "global"

	// SourceLocal is .doltgo.yaml in the repository root.
	SourceLocal Source = "local"

	// SourceEnv is an environment variable.
	SourceEnv Source = "env"

	// SourceFlag is a command-line flag.
	SourceFlag Source = "flag"
)
