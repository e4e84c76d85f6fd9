package builder

import (
	"context"
	"path/filepath"

	"github.com/fastaccel/cli/internal/templates"
)

// AuthBuilder adds the auth module to an existing project.
type AuthBuilder struct {
	Base
	spec     AuthSpec
	plan     *InstallPlan
	ownsPlan bool
}

// NewAuthBuilder returns a builder for the auth variant described by spec.
func NewAuthBuilder(env Env, root string, spec AuthSpec, opts ...Option) *AuthBuilder {
	o := applyOptions(opts)
	return &AuthBuilder{
		Base: newBase("auth", env, root),
		spec: spec,
		plan: o.plan,
	}
}

func (b *AuthBuilder) Name() string { return "auth" }

// Spec returns the effective flags after BeforeBuild normalized them.
func (b *AuthBuilder) Spec() AuthSpec { return b.spec }

func (b *AuthBuilder) BeforeBuild(context.Context) error {
	if b.spec.RefreshToken && !b.spec.JWT {
		b.log.Warn("refresh tokens require JWT, disabling refresh tokens")
		b.spec.RefreshToken = false
	}
	if !b.env.FS.Exists(filepath.Join(b.path, "src", "core", "database.py")) {
		b.log.Warn("src/core/database.py not found, run 'fastaccel database install' before using auth")
	}
	if b.plan == nil {
		b.plan = NewInstallPlan(b.path)
		b.ownsPlan = true
	}
	return nil
}

func (b *AuthBuilder) Build(ctx context.Context) error {
	b.log.Info("installing auth module",
		"jwt", b.spec.JWT,
		"refresh", b.spec.RefreshToken,
		"roles", b.spec.Roles,
		"async", b.spec.Async,
	)

	if err := b.materialize(b.path, authModule(b.spec)); err != nil {
		return err
	}

	deps := []string{"passlib[bcrypt]", "python-multipart", "email-validator"}
	if b.spec.JWT {
		deps = append(deps, "python-jose[cryptography]")
	}
	if !b.spec.Async {
		if driver := b.syncDriver(); driver != "" {
			deps = append(deps, driver)
		}
	}
	if err := b.plan.Add(deps...); err != nil {
		return err
	}

	if b.ownsPlan {
		return b.plan.Finish(ctx, b.env)
	}
	return nil
}

// syncDriver reads DATABASE_URL from the project's .env to pick a blocking
// driver for the synchronous session.
func (b *AuthBuilder) syncDriver() string {
	path := filepath.Join(b.path, ".env")
	if !b.env.FS.Exists(path) {
		return ""
	}
	vars, err := readDotenv(b.env.FS, path)
	if err != nil {
		b.log.Warn("could not parse .env", "path", path, "error", err)
		return ""
	}
	return syncDriverFor(vars["DATABASE_URL"])
}

// authContext exposes the flags and the async or sync spelling of the
// session-related code.
func authContext(spec AuthSpec) templates.Context {
	ctx := templates.Context{
		"JWT":           spec.JWT,
		"RefreshToken":  spec.RefreshToken,
		"Roles":         spec.Roles,
		"Async":         spec.Async,
		"Def":           "def",
		"Await":         "",
		"SessionType":   "Session",
		"SessionImport": "from sqlalchemy.orm import Session",
		"SessionDep":    "get_sync_db",
	}
	if spec.Async {
		ctx["Def"] = "async def"
		ctx["Await"] = "await "
		ctx["SessionType"] = "AsyncSession"
		ctx["SessionImport"] = "from sqlalchemy.ext.asyncio import AsyncSession"
		ctx["SessionDep"] = "get_db"
	}
	return ctx
}

// authModule selects the auth file set for spec.
func authModule(spec AuthSpec) *FixedModule {
	layers := []string{"models", "dtos", "security", "repositories", "services", "dependencies", "controllers"}
	files := []ModuleFile{
		{Layer: "models", Name: "user_model.py", Template: templates.AuthUserModel},
		{Layer: "dtos", Name: "auth_dto.py", Template: templates.AuthDTOs},
		{Layer: "security", Name: "password_hasher.py", Template: templates.AuthPasswordHasher},
	}
	if spec.JWT {
		layers = append(layers, "utils")
		files = append(files,
			ModuleFile{Layer: "security", Name: "jwt_handler.py", Template: templates.AuthJWTHandler},
			ModuleFile{Layer: "utils", Name: "client_type.py", Template: templates.AuthClientType},
		)
	}
	files = append(files,
		ModuleFile{Layer: "repositories", Name: "user_repository.py", Template: templates.AuthUserRepository},
		ModuleFile{Layer: "services", Name: "auth_service.py", Template: templates.AuthService},
		ModuleFile{Layer: "dependencies", Name: "current_user.py", Template: templates.AuthCurrentUser},
		ModuleFile{Layer: "controllers", Name: "auth_controller.py", Template: templates.AuthController},
		ModuleFile{Name: "routes.py", Template: templates.ModuleRoutes},
	)

	ctx := authContext(spec)
	ctx["Name"] = "auth"
	return NewFixedModule("auth", layers, files, ctx, true)
}
