// Package config provides configuration loading and management.
package config

// InstallConfig selects the package manager used for dependencies.
type InstallConfig struct {
	// Tool is the primary install command line; the dependency is appended.
	// Env: FASTACCEL_INSTALL_TOOL, Default: "uv add"
	Tool string `mapstructure:"tool" yaml:"tool"`

	// Fallback is tried when Tool fails. Empty disables the fallback.
	// Env: FASTACCEL_INSTALL_FALLBACK, Default: "pip install"
	Fallback string `mapstructure:"fallback" yaml:"fallback"`

	// Skip disables installation entirely, like --no-install.
	// Env: FASTACCEL_INSTALL_SKIP
	Skip bool `mapstructure:"skip" yaml:"skip"`
}

// DatabaseConfig holds defaults for database install and create project.
type DatabaseConfig struct {
	// Type is postgres, sqlite or mysql.
	// Env: FASTACCEL_DATABASE_TYPE, Default: "postgres"
	Type string `mapstructure:"type" yaml:"type"`

	// URL overrides the per-type default URL.
	// Env: FASTACCEL_DATABASE_URL
	URL string `mapstructure:"url" yaml:"url,omitempty"`
}

// MigrationsConfig configures migration tooling.
type MigrationsConfig struct {
	// Command initializes the migration environment in the project root.
	// Env: FASTACCEL_MIGRATIONS_COMMAND, Default: "alembic init alembic"
	Command string `mapstructure:"command" yaml:"command"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the fastaccel configuration loaded from
// ~/.fastaccel/config.yaml and FASTACCEL_* environment variables.
type Config struct {
	// Path is the default base directory for commands that take --path.
	// Env: FASTACCEL_PATH, Default: current directory
	Path string `mapstructure:"path" yaml:"path,omitempty"`

	Install    InstallConfig    `mapstructure:"install" yaml:"install"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Migrations MigrationsConfig `mapstructure:"migrations" yaml:"migrations"`
	Log        LogConfig        `mapstructure:"log" yaml:"log,omitempty"`
}

// Defaults.
const (
	DefaultInstallTool       = "uv add"
	DefaultInstallFallback   = "pip install"
	DefaultDatabaseType      = "postgres"
	DefaultMigrationsCommand = "alembic init alembic"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `fastaccel config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Install: InstallConfig{
			Tool:     DefaultInstallTool,
			Fallback: DefaultInstallFallback,
		},
		Database: DatabaseConfig{
			Type: DefaultDatabaseType,
		},
		Migrations: MigrationsConfig{
			Command: DefaultMigrationsCommand,
		},
	}
}

// Timestamps reports whether log timestamps are enabled; unset means on.
func (c *Config) Timestamps() bool {
	return c.Log.Timestamps == nil || *c.Log.Timestamps
}
