package cmdutil

import (
	"fmt"

	"github.com/fastaccel/cli/internal/builder"
	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/config"
	"github.com/fastaccel/cli/internal/filesystem"
	"github.com/fastaccel/cli/internal/templates"
)

// NewEnv builds the builder environment for one invocation.
func NewEnv(g *cmdtypes.GlobalConfig) (builder.Env, error) {
	cfg := Config(g)

	gw := g.Gateway
	if gw == nil {
		gw = filesystem.NewOS(filesystem.WithInstallCommands(filesystem.InstallCommands{
			Primary:  cfg.Install.Tool,
			Fallback: cfg.Install.Fallback,
		}))
	}

	reg, err := templates.NewRegistry()
	if err != nil {
		return builder.Env{}, fmt.Errorf("loading templates: %w", err)
	}

	return builder.Env{
		FS:                gw,
		Templates:         reg,
		SkipInstall:       g.NoInstall || cfg.Install.Skip,
		MigrationsCommand: cfg.Migrations.Command,
	}, nil
}

// Config returns the loaded configuration, or defaults when none was loaded.
func Config(g *cmdtypes.GlobalConfig) *config.Config {
	if g == nil || g.Config == nil {
		return config.DefaultConfig()
	}
	return g.Config
}
