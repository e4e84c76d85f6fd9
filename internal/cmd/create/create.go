// Package create provides the `fastaccel create` command group.
package create

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/builder"
	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/cmdutil"
	"github.com/fastaccel/cli/internal/output"
)

// NewCreateCmd creates the create command group.
func NewCreateCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create new projects",
	}

	cmd.AddCommand(NewProjectCmd(g))

	return cmd
}

// NewProjectCmd creates the create project command.
func NewProjectCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	var pathFlag cmdutil.PathFlag

	c := &cobra.Command{
		Use:   "project <name>",
		Short: "Scaffold a new FastAPI project",
		Long: `Scaffold a new FastAPI project in <path>/<name>.

The project gets an application entrypoint, a pyproject.toml, core settings,
base repository and service abstractions and an empty users module.
Database wiring, the auth module and Alembic migrations are included unless
disabled. Dependencies are installed with uv, falling back to pip.

Examples:
  # Create a project with database, auth and migrations
  fastaccel create project shop

  # Create a bare project under ~/code without installing anything
  fastaccel create project shop --path ~/code --no-database --no-auth --no-install`,
		Args: cobra.ExactArgs(1),
	}

	pathFlag.AddTo(c)
	database := cmdutil.AddBoolPair(c, "database", true, "Include database configuration")
	auth := cmdutil.AddBoolPair(c, "auth", true, "Include the authentication module")
	alembic := cmdutil.AddBoolPair(c, "alembic", true, "Initialize Alembic migrations")

	c.RunE = func(c *cobra.Command, args []string) error {
		base, err := pathFlag.Resolve(c, g.Config)
		if err != nil {
			return err
		}

		env, err := cmdutil.NewEnv(g)
		if err != nil {
			return err
		}

		cfg := cmdutil.Config(g)
		spec := builder.ProjectSpec{
			Name:           args[0],
			RootPath:       base,
			EnableDatabase: database.Value(),
			EnableAuth:     auth.Value(),
			EnableAlembic:  alembic.Value(),
			Database: builder.DatabaseSpec{
				Type: cfg.Database.Type,
				URL:  cfg.Database.URL,
			},
		}

		b := builder.NewProjectBuilder(env, spec)
		output.Debug("creating project", "name", spec.Name, "path", b.Root(),
			"database", spec.EnableDatabase, "auth", spec.EnableAuth, "alembic", spec.EnableAlembic)

		if err := cmdutil.RunBuilder(c.Context(), b, "Creating project "+spec.Name); err != nil {
			return err
		}

		w := c.OutOrStdout()
		cmdutil.PrintResult(w, fmt.Sprintf("Project %s created", output.StyleNoun.Render(spec.Name)), b.Root(), env.FS.Changes())
		fmt.Fprintln(w, output.FormatNext("cd "+b.Root()))
		return nil
	}

	return c
}
