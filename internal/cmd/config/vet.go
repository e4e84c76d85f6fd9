package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/config"
	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/output"
)

// NewVetCmd creates the config vet command.
func NewVetCmd(g *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet [file]",
		Short: "Validate a configuration file",
		Long: `Validate a fastaccel configuration file against the built-in schema.

Unknown keys, unsupported database types and malformed URLs are reported
with their field paths. Without an argument the resolved config path is
checked: --config > FASTACCEL_CONFIG > ~/.fastaccel/config.yaml.

Examples:
  fastaccel config vet
  fastaccel config vet ./team-config.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runVet(c, g, args)
		},
	}
}

func runVet(c *cobra.Command, g *cmdtypes.GlobalConfig, args []string) error {
	path, err := configPath(g, args)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	output.Debug("validating config", "path", path)

	exists, err := config.FileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err: &oerrors.DetailError{
				Type:     "not found",
				Message:  "configuration file not found",
				Location: path,
				Hint:     "Run 'fastaccel config init' to create one.",
				Cause:    oerrors.ErrPathNotFound,
			},
		}
	}

	v, err := config.NewValidator()
	if err != nil {
		return err
	}

	if err := v.ValidateFile(path); err != nil {
		detail := &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: path,
			Cause:    oerrors.ErrValidation,
		}
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			detail.Message = fmt.Sprintf("%d invalid field(s)", len(verrs))
			detail.Context = map[string]string{}
			for _, e := range verrs {
				detail.Context[e.Field] = e.Message
			}
		}
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: detail}
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
	return nil
}
