// Package config provides the `fastaccel config` command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Manage the fastaccel configuration file (~/.fastaccel/config.yaml).`,
	}

	cmd.AddCommand(NewInitCmd(g), NewVetCmd(g))

	return cmd
}

// configPath returns the file the command acts on: an explicit argument,
// then the resolved --config path, then the default location.
func configPath(g *cmdtypes.GlobalConfig, args []string) (string, error) {
	path := ""
	switch {
	case len(args) > 0:
		path = args[0]
	case g != nil && g.ConfigPath != "":
		path = g.ConfigPath
	default:
		var err error
		if path, err = config.GetConfigFile(); err != nil {
			return "", err
		}
	}
	return config.ExpandPath(path)
}
