package config

import (
	"os"

	"github.com/fastaccel/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value with the source it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource

	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions lists the candidate values of one setting.
type ResolveOptions struct {
	Key string

	// FlagValue is used when FlagSet is true, even when empty.
	FlagValue string
	FlagSet   bool

	// EnvVar is read from the environment when non-empty.
	EnvVar string

	ConfigValue string
	Default     string
}

// Resolve applies the precedence flag > env > config > default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{Key: opts.Key, Shadowed: map[ConfigSource]string{}}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
		set    bool
	}{
		{SourceFlag, opts.FlagValue, opts.FlagSet},
		{SourceEnv, envValue, envValue != ""},
		{SourceConfig, opts.ConfigValue, opts.ConfigValue != ""},
		{SourceDefault, opts.Default, true},
	}

	for _, c := range candidates {
		if !c.set {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.value != "" {
			result.Shadowed[c.source] = c.value
		}
	}
	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) FASTACCEL_CONFIG env, (3) ~/.fastaccel/config.yaml
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return Resolve(ResolveOptions{
		Key:       "config",
		FlagValue: flagValue,
		FlagSet:   flagValue != "",
		EnvVar:    EnvConfig,
		Default:   paths.ConfigFile,
	}), nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
