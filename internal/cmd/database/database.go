// Package database provides the `fastaccel database` command group.
package database

import (
	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/builder"
	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/cmdutil"
	"github.com/fastaccel/cli/internal/config"
	"github.com/fastaccel/cli/internal/output"
)

// NewDatabaseCmd creates the database command group.
func NewDatabaseCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "database",
		Short: "Database wiring",
	}

	cmd.AddCommand(NewInstallCmd(g))

	return cmd
}

// NewInstallCmd creates the database install command.
func NewInstallCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		pathFlag cmdutil.PathFlag
		typeFlag string
		urlFlag  string
	)

	c := &cobra.Command{
		Use:   "install",
		Short: "Add database configuration to a project",
		Long: `Add .env, src/core/settings.py, src/core/database.py and setup_db.py to
an existing project. An existing .env is never overwritten.

--url overrides the default URL of --type. The type defaults to the config
value database.type, then postgres.

Examples:
  fastaccel database install --type sqlite
  fastaccel database install --url postgresql+asyncpg://app:secret@db:5432/app --no-alembic`,
		Args: cobra.NoArgs,
	}

	pathFlag.AddTo(c)
	c.Flags().StringVar(&typeFlag, "type", "", "Database type: postgres | sqlite | mysql")
	c.Flags().StringVar(&urlFlag, "url", "", "Database URL (overrides --type)")
	alembic := cmdutil.AddBoolPair(c, "alembic", true, "Initialize Alembic migrations")

	c.RunE = func(c *cobra.Command, _ []string) error {
		root, err := pathFlag.Resolve(c, g.Config)
		if err != nil {
			return err
		}
		env, err := cmdutil.NewEnv(g)
		if err != nil {
			return err
		}

		cfg := cmdutil.Config(g)
		dbType := config.Resolve(config.ResolveOptions{
			Key:         "database.type",
			FlagValue:   typeFlag,
			FlagSet:     c.Flags().Changed("type"),
			ConfigValue: cfg.Database.Type,
			Default:     config.DefaultDatabaseType,
		})
		dbURL := config.Resolve(config.ResolveOptions{
			Key:         "database.url",
			FlagValue:   urlFlag,
			FlagSet:     c.Flags().Changed("url"),
			ConfigValue: cfg.Database.URL,
		})
		config.LogResolvedValues(dbType, dbURL)

		spec := builder.DatabaseSpec{
			Type:    dbType.Value,
			URL:     dbURL.Value,
			Alembic: alembic.Value(),
		}
		output.Debug("installing database", "path", root, "type", spec.Type, "alembic", spec.Alembic)

		if err := cmdutil.RunBuilder(c.Context(), builder.NewDatabaseBuilder(env, root, spec), "Installing database"); err != nil {
			return err
		}
		cmdutil.PrintResult(c.OutOrStdout(), "Database configured", root, env.FS.Changes())
		return nil
	}

	return c
}
