// Package auth provides the `fastaccel auth` command group.
package auth

import (
	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/builder"
	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/cmdutil"
	"github.com/fastaccel/cli/internal/output"
)

// NewAuthCmd creates the auth command group.
func NewAuthCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication module",
	}

	cmd.AddCommand(NewInstallCmd(g))

	return cmd
}

// NewInstallCmd creates the auth install command.
func NewInstallCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	var pathFlag cmdutil.PathFlag

	c := &cobra.Command{
		Use:   "install",
		Short: "Add the authentication module to a project",
		Long: `Add src/modules/auth to an existing project and register its router
in main.py.

--refresh-token requires --jwt and is turned off without it. --no-async
generates synchronous repositories and installs a sync database driver
matching DATABASE_URL in .env.

Examples:
  # JWT auth with refresh tokens and roles
  fastaccel auth install --path ./shop

  # HTTP basic auth on a synchronous session
  fastaccel auth install --no-jwt --no-async`,
		Args: cobra.NoArgs,
	}

	pathFlag.AddTo(c)
	jwt := cmdutil.AddBoolPair(c, "jwt", true, "Issue signed JWT access tokens")
	refresh := cmdutil.AddBoolPair(c, "refresh-token", true, "Add the refresh token endpoint")
	roles := cmdutil.AddBoolPair(c, "roles", true, "Add role-based authorization")
	async := cmdutil.AddBoolPair(c, "async", true, "Use async database sessions")

	c.RunE = func(c *cobra.Command, _ []string) error {
		root, err := pathFlag.Resolve(c, g.Config)
		if err != nil {
			return err
		}
		env, err := cmdutil.NewEnv(g)
		if err != nil {
			return err
		}

		spec := builder.AuthSpec{
			JWT:          jwt.Value(),
			RefreshToken: refresh.Value(),
			Roles:        roles.Value(),
			Async:        async.Value(),
		}
		output.Debug("installing auth", "path", root, "jwt", spec.JWT,
			"refresh_token", spec.RefreshToken, "roles", spec.Roles, "async", spec.Async)

		if err := cmdutil.RunBuilder(c.Context(), builder.NewAuthBuilder(env, root, spec), "Installing auth module"); err != nil {
			return err
		}
		cmdutil.PrintResult(c.OutOrStdout(), "Auth module installed", root, env.FS.Changes())
		return nil
	}

	return c
}
