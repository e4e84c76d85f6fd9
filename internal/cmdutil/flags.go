// Package cmdutil provides shared command utilities for the fastaccel
// subcommands: flag groups, base path resolution, builder environment
// construction and result reporting.
package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fastaccel/cli/internal/config"
)

// BoolPair is a --name/--no-name flag pair. The two flags are mutually
// exclusive; when neither is given the default applies.
type BoolPair struct {
	name  string
	def   bool
	on    bool
	off   bool
	flags *pflag.FlagSet
}

// AddBoolPair registers --name and --no-name on cmd.
func AddBoolPair(cmd *cobra.Command, name string, def bool, usage string) *BoolPair {
	p := &BoolPair{name: name, def: def, flags: cmd.Flags()}
	p.flags.BoolVar(&p.on, name, false, fmt.Sprintf("%s (default %t)", usage, def))
	p.flags.BoolVar(&p.off, "no-"+name, false, "Disable --"+name)
	cmd.MarkFlagsMutuallyExclusive(name, "no-"+name)
	return p
}

// Value returns the effective setting.
func (p *BoolPair) Value() bool {
	switch {
	case p.flags.Changed(p.name):
		return p.on
	case p.flags.Changed("no-" + p.name):
		return !p.off
	default:
		return p.def
	}
}

// PathFlag holds --path/-p, the base directory a command operates on.
type PathFlag struct {
	Path string
}

// AddTo registers the path flag on the given cobra command.
func (f *PathFlag) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Path, "path", "p", "",
		"Base path of the project (env: FASTACCEL_PATH, default: current directory)")
}

// Resolve returns the absolute base path.
// Precedence: --path > FASTACCEL_PATH > config path > current directory.
func (f *PathFlag) Resolve(cmd *cobra.Command, cfg *config.Config) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determining working directory: %w", err)
	}

	var configValue string
	if cfg != nil {
		configValue = cfg.Path
	}

	resolved := config.Resolve(config.ResolveOptions{
		Key:         "path",
		FlagValue:   f.Path,
		FlagSet:     cmd.Flags().Changed("path"),
		EnvVar:      config.EnvPath,
		ConfigValue: configValue,
		Default:     cwd,
	})
	config.LogResolvedValues(resolved)

	path, err := config.ExpandPath(resolved.Value)
	if err != nil {
		return "", fmt.Errorf("expanding path: %w", err)
	}
	if path == "" {
		path = cwd
	}
	return filepath.Abs(path)
}
