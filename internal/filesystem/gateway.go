// Package filesystem implements the gateway every builder uses to touch the
// project tree and to run external tools. All mutations are idempotent:
// directories are ensured, files are created only when absent unless the
// caller asks to overwrite, and appends never create their target.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/output"
)

// Gateway is the set of filesystem and process primitives builders rely on.
type Gateway interface {
	EnsureDir(path string) error
	CreateFile(path string, content []byte, overwrite bool) (bool, error)
	AppendFile(path string, content []byte) (bool, error)
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
	IsDir(path string) bool
	Install(ctx context.Context, deps []string, root string) error
	RunCommand(ctx context.Context, dir, commandLine string) error
	Changes() []Change
}

// Action describes what the gateway did to a path.
type Action string

const (
	ActionDir         Action = "dir"
	ActionCreated     Action = "created"
	ActionOverwritten Action = "overwritten"
	ActionSkipped     Action = "skipped"
	ActionAppended    Action = "appended"
	ActionMissing     Action = "missing"
)

// Change records one gateway operation.
type Change struct {
	Path   string
	Action Action
}

// Local is the afero-backed Gateway.
type Local struct {
	fs      afero.Fs
	runner  Runner
	install InstallCommands

	mu      sync.Mutex
	changes []Change
}

// Option configures a Local gateway.
type Option func(*Local)

// WithInstallCommands overrides the package manager command lines.
func WithInstallCommands(cmds InstallCommands) Option {
	return func(l *Local) {
		l.install = cmds
	}
}

// New creates a gateway over fs that runs external tools through runner.
func New(fsys afero.Fs, runner Runner, opts ...Option) *Local {
	l := &Local{
		fs:      fsys,
		runner:  runner,
		install: DefaultInstallCommands(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewOS creates a gateway over the real filesystem and os/exec.
func NewOS(opts ...Option) *Local {
	return New(afero.NewOsFs(), &ExecRunner{}, opts...)
}

// Fs exposes the underlying filesystem.
func (l *Local) Fs() afero.Fs {
	return l.fs
}

// Exists reports whether anything exists at path.
func (l *Local) Exists(path string) bool {
	_, err := l.fs.Stat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory.
func (l *Local) IsDir(path string) bool {
	ok, err := afero.IsDir(l.fs, path)
	return err == nil && ok
}

// EnsureDir creates path and any missing ancestors.
func (l *Local) EnsureDir(path string) error {
	info, err := l.fs.Stat(path)
	switch {
	case err == nil && info.IsDir():
		output.Debug("directory exists", "path", path)
		return nil
	case err == nil:
		return oerrors.NewPathConflictError(path, nil)
	}

	if blocker := l.blockingAncestor(path); blocker != "" {
		return oerrors.NewPathConflictError(path, fmt.Errorf("%s is not a directory", blocker))
	}
	if err := l.fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	output.Debug("created directory", "path", path)
	l.record(path, ActionDir)
	return nil
}

// blockingAncestor returns the nearest existing ancestor of path when it is
// not a directory.
func (l *Local) blockingAncestor(path string) string {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		info, err := l.fs.Stat(dir)
		if err == nil {
			if info.IsDir() {
				return ""
			}
			return dir
		}
		if parent := filepath.Dir(dir); parent == dir {
			return ""
		}
	}
}

// CreateFile writes content to path unless it already exists and overwrite
// is false. It reports whether the file was written. Content is written to a
// temporary sibling and renamed into place.
func (l *Local) CreateFile(path string, content []byte, overwrite bool) (bool, error) {
	info, err := l.fs.Stat(path)
	exists := err == nil
	if exists && info.IsDir() {
		return false, oerrors.NewPathConflictError(path, nil)
	}
	if exists && !overwrite {
		output.Debug("file exists, skipped", "path", path)
		l.record(path, ActionSkipped)
		return false, nil
	}

	if err := l.EnsureDir(filepath.Dir(path)); err != nil {
		return false, err
	}
	if err := l.writeAtomic(path, content); err != nil {
		return false, err
	}

	action := ActionCreated
	if exists {
		action = ActionOverwritten
	}
	output.Debug("wrote file", "path", path, "action", action)
	l.record(path, action)
	return true, nil
}

func (l *Local) writeAtomic(path string, content []byte) error {
	tmp, err := afero.TempFile(l.fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = l.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = l.fs.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := l.fs.Chmod(tmpName, 0o644); err != nil {
		_ = l.fs.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := l.fs.Rename(tmpName, path); err != nil {
		_ = l.fs.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// AppendFile appends content to an existing file. A missing target is not an
// error: nothing is written, a warning is logged and false is returned.
func (l *Local) AppendFile(path string, content []byte) (bool, error) {
	info, err := l.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		output.Warn("append target does not exist, skipped", "path", path, "error", oerrors.ErrMissingTarget)
		l.record(path, ActionMissing)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, oerrors.NewPathConflictError(path, nil)
	}

	f, err := l.fs.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("appending to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}

	output.Debug("appended to file", "path", path, "bytes", len(content))
	l.record(path, ActionAppended)
	return true, nil
}

// ReadFile returns the contents of path.
func (l *Local) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(l.fs, path)
}

// Changes returns the operations performed so far, in order.
func (l *Local) Changes() []Change {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Change, len(l.changes))
	copy(out, l.changes)
	return out
}

func (l *Local) record(path string, action Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, Change{Path: path, Action: action})
}
