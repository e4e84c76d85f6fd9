package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/config"
	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/output"
)

const configHeader = "# fastaccel configuration\n# Every key can be overridden with FASTACCEL_<KEY>, e.g. FASTACCEL_DATABASE_TYPE.\n\n"

// NewInitCmd creates the config init command.
func NewInitCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: `Create a fastaccel configuration file with default values.

The file is created at ~/.fastaccel/config.yaml unless --config or
FASTACCEL_CONFIG points elsewhere.

Examples:
  fastaccel config init
  fastaccel config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, g, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return c
}

func runInit(c *cobra.Command, g *cmdtypes.GlobalConfig, force bool) error {
	path, err := configPath(g, nil)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	exists, err := config.FileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err: &oerrors.DetailError{
				Type:     "already exists",
				Message:  "configuration file already exists",
				Location: path,
				Hint:     "Use --force to overwrite it.",
				Cause:    oerrors.ErrAlreadyExists,
			},
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark("Config file created: "+output.StyleNoun.Render(path)))
	fmt.Fprintln(w, output.FormatNext("fastaccel config vet"))
	return nil
}
