// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/cmd/auth"
	configcmd "github.com/fastaccel/cli/internal/cmd/config"
	"github.com/fastaccel/cli/internal/cmd/create"
	"github.com/fastaccel/cli/internal/cmd/database"
	"github.com/fastaccel/cli/internal/cmd/resource"
	"github.com/fastaccel/cli/internal/cmd/tests"
	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/config"
	"github.com/fastaccel/cli/internal/output"
	"github.com/fastaccel/cli/internal/version"
)

// rootFlags holds the persistent flags of the root command.
type rootFlags struct {
	config     string
	verbose    bool
	timestamps bool
	noInstall  bool
}

// NewRootCmd creates the root command for the fastaccel CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cmdtypes.GlobalConfig{})
}

func newRootCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "fastaccel",
		Short: "Fast API Accelerate",
		Long: `fastaccel scaffolds FastAPI projects and adds modules to them.

It provides commands to:
  - Create a project with database wiring, auth and migrations
  - Add an auth module, database configuration or a pytest scaffold
  - Generate CRUD resource modules`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, &flags, g)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "Path to config file (env: FASTACCEL_CONFIG)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")
	pf.BoolVar(&flags.noInstall, "no-install", false, "Skip dependency installation and post-install commands")

	rootCmd.AddCommand(
		create.NewCreateCmd(g),
		tests.NewTestsCmd(g),
		auth.NewAuthCmd(g),
		database.NewDatabaseCmd(g),
		resource.NewResourceCmd(g),
		configcmd.NewConfigCmd(g),
		NewVersionCmd(g),
	)

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command, flags *rootFlags, g *cmdtypes.GlobalConfig) error {
	configPath, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return err
	}

	cfg, err := config.NewLoader().Load(configPath.Value)
	if err != nil {
		return err
	}

	g.Config = cfg
	g.ConfigPath = configPath.Value
	g.Verbose = flags.verbose
	g.NoInstall = flags.noInstall

	// Timestamps: flag (if explicitly set) > config > default (nil = on)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("fastaccel started", "version", info.Version, "commit", info.GitCommit)
	config.LogResolvedValues(configPath)

	return nil
}
