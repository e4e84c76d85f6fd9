package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var short bool

	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show fastaccel version information.

Displays:
  - fastaccel version, commit, and build date
  - The external tools fastaccel runs (uv, pip, alembic, python3) and their versions`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.Get()
			if short {
				fmt.Fprintln(c.OutOrStdout(), info.Version)
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), version.FullVersionString(info, version.DetectTools()))
			return nil
		},
	}

	c.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return c
}
