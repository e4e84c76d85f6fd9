// Package tests provides the `fastaccel tests` command group.
package tests

import (
	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/builder"
	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/cmdutil"
)

// NewTestsCmd creates the tests command group.
func NewTestsCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tests",
		Short: "Test scaffolding",
	}

	cmd.AddCommand(NewSetupCmd(g))

	return cmd
}

// NewSetupCmd creates the tests setup command.
func NewSetupCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	var pathFlag cmdutil.PathFlag

	c := &cobra.Command{
		Use:   "setup",
		Short: "Add a pytest scaffold to a project",
		Long: `Add a pytest scaffold to an existing project.

Creates tests/ with a conftest and auth module tests. When pyproject.toml
exists, [tool.pytest.ini_options] and a dev dependency group are appended
unless already present.

Examples:
  fastaccel tests setup --path ./shop`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			root, err := pathFlag.Resolve(c, g.Config)
			if err != nil {
				return err
			}
			env, err := cmdutil.NewEnv(g)
			if err != nil {
				return err
			}

			if err := cmdutil.RunBuilder(c.Context(), builder.NewTestBuilder(env, root), "Setting up tests"); err != nil {
				return err
			}
			cmdutil.PrintResult(c.OutOrStdout(), "Test scaffold ready", root, env.FS.Changes())
			return nil
		},
	}

	pathFlag.AddTo(c)

	return c
}
