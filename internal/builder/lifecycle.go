// Package builder generates FastAPI project trees. Every builder follows the
// same four-phase lifecycle driven by Run:
//
//  1. Validate:    check inputs and preconditions before anything is written
//  2. BeforeBuild: prepare shared state (install plan, warnings)
//  3. Build:       render templates and write files through the gateway
//  4. AfterBuild:  post-processing of files written by other builders
//
// Builders never touch the filesystem or spawn processes directly; both go
// through the filesystem.Gateway carried by Env.
package builder

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/filesystem"
	"github.com/fastaccel/cli/internal/output"
	"github.com/fastaccel/cli/internal/templates"
)

// Builder is one generation unit.
type Builder interface {
	Name() string
	Validate(ctx context.Context) error
	BeforeBuild(ctx context.Context) error
	Build(ctx context.Context) error
	AfterBuild(ctx context.Context) error
}

// Env carries the collaborators shared by all builders of one invocation.
type Env struct {
	FS          filesystem.Gateway
	Templates   *templates.Registry
	SkipInstall bool

	// MigrationsCommand initializes the migration environment. Empty means
	// DefaultMigrationsCommand.
	MigrationsCommand string
}

// Run executes the lifecycle phases of b in order and stops at the first
// failure. Nothing written before a failure is rolled back.
func Run(ctx context.Context, b Builder) error {
	phases := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"validate", b.Validate},
		{"before build", b.BeforeBuild},
		{"build", b.Build},
		{"after build", b.AfterBuild},
	}

	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return err
		}
		output.Debug("builder phase", "builder", b.Name(), "phase", p.name)
		if err := p.fn(ctx); err != nil {
			return fmt.Errorf("%s %s: %w", b.Name(), p.name, err)
		}
	}
	return nil
}

// Base holds what every builder needs and supplies the default hooks.
// Concrete builders embed it and implement Name and Build.
type Base struct {
	env  Env
	path string
	log  *log.Logger
}

func newBase(name string, env Env, path string) Base {
	return Base{env: env, path: path, log: output.BuilderLogger(name)}
}

// Path is the directory the builder operates in.
func (b *Base) Path() string {
	return b.path
}

// Validate fails with ErrPathNotFound when the base path is not a directory.
func (b *Base) Validate(context.Context) error {
	if !b.env.FS.IsDir(b.path) {
		return oerrors.NewPathNotFoundError(b.path)
	}
	return nil
}

// BeforeBuild does nothing by default.
func (b *Base) BeforeBuild(context.Context) error { return nil }

// AfterBuild does nothing by default.
func (b *Base) AfterBuild(context.Context) error { return nil }

// ensurePackage creates dir and an empty __init__.py inside it.
func (b *Base) ensurePackage(dir string) error {
	if err := b.env.FS.EnsureDir(dir); err != nil {
		return err
	}
	_, err := b.env.FS.CreateFile(filepath.Join(dir, "__init__.py"), nil, false)
	return err
}

// writeTemplate renders id with tctx and creates path unless it exists.
func (b *Base) writeTemplate(path string, id templates.ID, tctx templates.Context) error {
	content, err := b.env.Templates.Render(id, tctx)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", id, err)
	}
	if _, err := b.env.FS.CreateFile(path, []byte(content), false); err != nil {
		return err
	}
	return nil
}
