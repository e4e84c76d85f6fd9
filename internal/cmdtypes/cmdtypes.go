// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/create, internal/cmd/config, ...).
package cmdtypes

import (
	"github.com/fastaccel/cli/internal/config"
	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/filesystem"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	Config     *config.Config
	ConfigPath string // resolved --config path
	Verbose    bool
	NoInstall  bool // --no-install

	// Gateway replaces the OS-backed gateway when set.
	Gateway filesystem.Gateway
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess      = oerrors.ExitSuccess
	ExitGeneralError = oerrors.ExitGeneralError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
