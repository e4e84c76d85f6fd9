package builder

import (
	"context"
	"path/filepath"

	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/templates"
)

// baseDependencies are installed into every new project.
var baseDependencies = []string{"fastapi", "uvicorn[standard]", "pydantic-settings"}

// ProjectBuilder creates a new project directory with the core layout and,
// optionally, database wiring and authentication.
type ProjectBuilder struct {
	Base
	spec ProjectSpec
	root string
	plan *InstallPlan
}

// NewProjectBuilder returns a builder for spec. The project is created at
// spec.RootPath/spec.Name.
func NewProjectBuilder(env Env, spec ProjectSpec) *ProjectBuilder {
	spec.Database.Alembic = spec.EnableAlembic
	return &ProjectBuilder{
		Base: newBase("project", env, spec.RootPath),
		spec: spec,
		root: filepath.Join(spec.RootPath, spec.Name),
	}
}

func (b *ProjectBuilder) Name() string { return "project" }

// Root is the directory of the generated project.
func (b *ProjectBuilder) Root() string { return b.root }

// Validate checks the spec, that the parent directory exists and that the
// project directory does not.
func (b *ProjectBuilder) Validate(ctx context.Context) error {
	if err := validateSpec(b.spec); err != nil {
		return err
	}
	if b.spec.EnableDatabase {
		if err := validateDatabaseSpec(b.spec.Database); err != nil {
			return err
		}
	}
	if err := b.Base.Validate(ctx); err != nil {
		return err
	}
	if b.env.FS.Exists(b.root) {
		return oerrors.NewAlreadyExistsError(b.root)
	}
	return nil
}

func (b *ProjectBuilder) BeforeBuild(context.Context) error {
	b.plan = NewInstallPlan(b.root)
	return nil
}

// Build writes the project in a fixed order:
//  1. package directories under src/
//  2. entrypoint and project metadata files
//  3. core config and startup hook
//  4. base repository, base service and the model registry
//  5. the users module skeleton
//  6. database wiring, when enabled
//  7. authentication, when enabled (after the entrypoint so its router mounts)
//  8. dependency installation
func (b *ProjectBuilder) Build(ctx context.Context) error {
	b.log.Info("creating project", "name", b.spec.Name, "path", b.root)

	if err := b.env.FS.EnsureDir(b.root); err != nil {
		return err
	}
	src := filepath.Join(b.root, "src")
	for _, dir := range []string{
		src,
		filepath.Join(src, "core"),
		filepath.Join(src, "base"),
		filepath.Join(src, "models"),
		filepath.Join(src, "modules"),
	} {
		if err := b.ensurePackage(dir); err != nil {
			return err
		}
	}

	meta := templates.Context{"ProjectName": b.spec.Name}
	files := []struct {
		path string
		id   templates.ID
		ctx  templates.Context
	}{
		{filepath.Join(b.root, "main.py"), templates.ProjectMain, meta},
		{filepath.Join(b.root, "pyproject.toml"), templates.ProjectPyproject, meta},
		{filepath.Join(b.root, "README.md"), templates.ProjectReadme, meta},
		{filepath.Join(b.root, ".gitignore"), templates.ProjectGitignore, nil},
		{filepath.Join(src, "core", "config.py"), templates.ProjectConfig, meta},
		{filepath.Join(src, "core", "startup.py"), templates.ProjectStartup, templates.Context{"Database": b.spec.EnableDatabase}},
		{filepath.Join(src, "base", "base_repository.py"), templates.ProjectBaseRepository, nil},
		{filepath.Join(src, "base", "base_service.py"), templates.ProjectBaseService, nil},
		{filepath.Join(src, "models", "all_models.py"), templates.ProjectAllModels, nil},
	}
	for _, f := range files {
		if err := b.writeTemplate(f.path, f.id, f.ctx); err != nil {
			return err
		}
	}

	if err := b.materialize(b.root, usersModule()); err != nil {
		return err
	}

	if b.spec.EnableDatabase {
		db := NewDatabaseBuilder(b.env, b.root, b.spec.Database, WithInstallPlan(b.plan))
		if err := Run(ctx, db); err != nil {
			return err
		}
	}

	if b.spec.EnableAuth {
		auth := NewAuthBuilder(b.env, b.root, FullAuthSpec(), WithInstallPlan(b.plan))
		if err := Run(ctx, auth); err != nil {
			return err
		}
	}

	if err := b.plan.Add(baseDependencies...); err != nil {
		return err
	}
	return b.plan.Finish(ctx, b.env)
}
