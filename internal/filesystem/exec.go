package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/output"
)

// exitNotFound mirrors the shell's status for a missing executable.
const exitNotFound = 127

// Runner executes an external program.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (RunResult, error)
}

// RunResult carries what a finished process reported.
type RunResult struct {
	ExitCode int
	Output   string
}

// ExecRunner runs programs with os/exec. Combined output is captured and
// also streamed to stderr when verbose logging is on.
type ExecRunner struct{}

// Run starts name with args in dir and waits for it.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	var buf bytes.Buffer
	var w io.Writer = &buf
	if output.IsVerbose() {
		w = io.MultiWriter(&buf, os.Stderr)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	res := RunResult{Output: buf.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound):
		res.ExitCode = exitNotFound
	default:
		res.ExitCode = -1
	}
	return res, err
}

// RunCommand splits commandLine with shell quoting rules and runs it in dir.
func (l *Local) RunCommand(ctx context.Context, dir, commandLine string) error {
	argv, err := shlex.Split(commandLine)
	if err != nil {
		return fmt.Errorf("parsing command %q: %w", commandLine, err)
	}
	if len(argv) == 0 {
		return fmt.Errorf("empty command: %w", oerrors.ErrCommandFailure)
	}

	output.Debug("running command", "dir", dir, "cmd", commandLine)
	res, err := l.runner.Run(ctx, dir, argv[0], argv[1:]...)
	if err != nil {
		return &oerrors.ToolError{
			Kind:     oerrors.ErrCommandFailure,
			Tool:     argv[0],
			Args:     argv[1:],
			Dir:      dir,
			ExitCode: res.ExitCode,
			Output:   res.Output,
			Err:      err,
		}
	}
	return nil
}

// InstallCommands are the command lines used to install one dependency.
// The dependency is appended as the final argument.
type InstallCommands struct {
	Primary  string
	Fallback string
}

// DefaultInstallCommands uses uv and falls back to pip.
func DefaultInstallCommands() InstallCommands {
	return InstallCommands{
		Primary:  "uv add",
		Fallback: "pip install",
	}
}

// Install installs each dependency inside root. A dependency the primary tool
// rejects is retried with the fallback tool; the first dependency that both
// tools reject aborts the install.
func (l *Local) Install(ctx context.Context, deps []string, root string) error {
	if len(deps) == 0 {
		output.Debug("no dependencies to install")
		return nil
	}

	primary, err := shlex.Split(l.install.Primary)
	if err != nil || len(primary) == 0 {
		return fmt.Errorf("invalid install command %q: %w", l.install.Primary, oerrors.ErrInstallFailure)
	}
	var fallback []string
	if strings.TrimSpace(l.install.Fallback) != "" {
		fallback, err = shlex.Split(l.install.Fallback)
		if err != nil {
			return fmt.Errorf("invalid fallback command %q: %w", l.install.Fallback, oerrors.ErrInstallFailure)
		}
	}

	// The calling command owns the spinner.
	output.Info(fmt.Sprintf("installing %d dependencies", len(deps)), "tool", primary[0])
	for _, dep := range deps {
		if err := l.installOne(ctx, root, dep, primary, fallback); err != nil {
			return err
		}
	}
	return nil
}

func (l *Local) installOne(ctx context.Context, root, dep string, primary, fallback []string) error {
	args := append(append([]string{}, primary[1:]...), dep)
	output.Debug("installing", "dep", dep, "tool", primary[0])
	res, err := l.runner.Run(ctx, root, primary[0], args...)
	if err == nil {
		return nil
	}
	if len(fallback) == 0 {
		return l.installError(primary[0], args, root, res, err)
	}

	output.Warn("install failed, trying fallback", "dep", dep, "tool", primary[0], "fallback", fallback[0])
	args = append(append([]string{}, fallback[1:]...), dep)
	res, err = l.runner.Run(ctx, root, fallback[0], args...)
	if err != nil {
		return l.installError(fallback[0], args, root, res, err)
	}
	return nil
}

func (l *Local) installError(tool string, args []string, dir string, res RunResult, err error) error {
	return &oerrors.ToolError{
		Kind:     oerrors.ErrInstallFailure,
		Tool:     tool,
		Args:     args,
		Dir:      dir,
		ExitCode: res.ExitCode,
		Output:   res.Output,
		Err:      err,
	}
}
