// Package resource provides the `fastaccel resource` command group.
package resource

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/builder"
	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/cmdutil"
	"github.com/fastaccel/cli/internal/output"
)

// NewResourceCmd creates the resource command group.
func NewResourceCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "CRUD resources",
	}

	cmd.AddCommand(NewCreateCmd(g))

	return cmd
}

// NewCreateCmd creates the resource create command.
func NewCreateCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	var pathFlag cmdutil.PathFlag

	c := &cobra.Command{
		Use:   "create <name> [fields...]",
		Short: "Generate a resource module",
		Long: `Generate src/modules/<name> with a model, DTOs, a repository and a
service. Every field becomes a string column and a string DTO field, in the
order given. With --crud (the default) a controller and routes.py are added
and the router is registered in main.py.

Examples:
  fastaccel resource create post title body
  fastaccel resource create tag name --no-crud`,
		Args: cobra.MinimumNArgs(1),
	}

	pathFlag.AddTo(c)
	crud := cmdutil.AddBoolPair(c, "crud", true, "Generate CRUD routes")

	c.RunE = func(c *cobra.Command, args []string) error {
		root, err := pathFlag.Resolve(c, g.Config)
		if err != nil {
			return err
		}
		env, err := cmdutil.NewEnv(g)
		if err != nil {
			return err
		}

		spec := builder.NewResourceSpec(args[0], args[1:], crud.Value())
		output.Debug("creating resource", "name", spec.ResourceName, "fields", spec.Fields, "crud", spec.CRUD)

		if err := cmdutil.RunBuilder(c.Context(), builder.NewResourceBuilder(env, root, spec), "Creating resource "+spec.ResourceName); err != nil {
			return err
		}
		cmdutil.PrintResult(c.OutOrStdout(),
			fmt.Sprintf("Resource %s created", output.StyleNoun.Render(spec.ClassName())), root, env.FS.Changes())
		return nil
	}

	return c
}
