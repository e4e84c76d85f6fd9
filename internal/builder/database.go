package builder

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/filesystem"
	"github.com/fastaccel/cli/internal/templates"
)

// DefaultMigrationsCommand initializes Alembic in the project root.
const DefaultMigrationsCommand = "alembic init alembic"

// accessTokenMinutes is written to .env as ACCESS_TOKEN_EXPIRE_MINUTES.
const accessTokenMinutes = "30"

// asyncDrivers maps a SQLAlchemy backend or explicit driver to the package
// that provides it.
var asyncDrivers = map[string]string{
	"postgresql": "asyncpg",
	"postgres":   "asyncpg",
	"asyncpg":    "asyncpg",
	"sqlite":     "aiosqlite",
	"aiosqlite":  "aiosqlite",
	"mysql":      "aiomysql",
	"aiomysql":   "aiomysql",
	"asyncmy":    "asyncmy",
}

// syncDrivers maps a backend to the blocking driver package used by the
// synchronous session.
var syncDrivers = map[string]string{
	"postgresql": "psycopg2-binary",
	"postgres":   "psycopg2-binary",
	"mysql":      "pymysql",
}

// splitScheme returns the backend and optional driver of a SQLAlchemy URL,
// e.g. "postgresql+asyncpg://..." gives ("postgresql", "asyncpg").
func splitScheme(url string) (backend, driver string) {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return "", ""
	}
	backend, driver, _ = strings.Cut(strings.ToLower(scheme), "+")
	return backend, driver
}

// asyncDriverFor picks the async driver package for url.
func asyncDriverFor(url string) string {
	backend, driver := splitScheme(url)
	if pkg, ok := asyncDrivers[driver]; ok {
		return pkg
	}
	return asyncDrivers[backend]
}

// syncDriverFor picks the blocking driver package for url; sqlite needs none.
func syncDriverFor(url string) string {
	backend, _ := splitScheme(url)
	return syncDrivers[backend]
}

// validateDatabaseSpec requires a known type unless an explicit URL is given.
func validateDatabaseSpec(spec DatabaseSpec) error {
	if err := validateSpec(spec); err != nil {
		return err
	}
	if spec.URL == "" {
		if _, ok := DefaultDatabaseURLs[spec.Type]; !ok {
			return oerrors.NewValidationError(
				fmt.Sprintf("unsupported database type %q", spec.Type),
				"type",
				"Use postgres, sqlite or mysql, or pass an explicit --url.",
			)
		}
	}
	return nil
}

// readDotenv parses an existing .env file through the gateway.
func readDotenv(fs filesystem.Gateway, path string) (map[string]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return godotenv.Parse(bytes.NewReader(data))
}

// DatabaseBuilder adds async SQLAlchemy wiring to an existing project.
type DatabaseBuilder struct {
	Base
	spec     DatabaseSpec
	plan     *InstallPlan
	ownsPlan bool
}

// NewDatabaseBuilder returns a builder that wires spec into the project at root.
func NewDatabaseBuilder(env Env, root string, spec DatabaseSpec, opts ...Option) *DatabaseBuilder {
	o := applyOptions(opts)
	return &DatabaseBuilder{
		Base: newBase("database", env, root),
		spec: spec,
		plan: o.plan,
	}
}

func (b *DatabaseBuilder) Name() string { return "database" }

func (b *DatabaseBuilder) Validate(ctx context.Context) error {
	if err := validateDatabaseSpec(b.spec); err != nil {
		return err
	}
	return b.Base.Validate(ctx)
}

func (b *DatabaseBuilder) BeforeBuild(context.Context) error {
	if b.plan == nil {
		b.plan = NewInstallPlan(b.path)
		b.ownsPlan = true
	}
	return nil
}

func (b *DatabaseBuilder) Build(ctx context.Context) error {
	url := b.spec.ResolvedURL()
	b.log.Info("configuring database", "type", b.spec.Type, "url", url)

	if err := b.writeDotenv(url); err != nil {
		return err
	}

	core := filepath.Join(b.path, "src", "core")
	if err := b.ensurePackage(filepath.Join(b.path, "src")); err != nil {
		return err
	}
	if err := b.ensurePackage(core); err != nil {
		return err
	}
	if err := b.writeTemplate(filepath.Join(core, "settings.py"), templates.DatabaseSettings, templates.Context{"DatabaseURL": url}); err != nil {
		return err
	}
	if err := b.writeTemplate(filepath.Join(core, "database.py"), templates.DatabaseSession, nil); err != nil {
		return err
	}
	if err := b.writeTemplate(filepath.Join(b.path, "setup_db.py"), templates.DatabaseSetup, nil); err != nil {
		return err
	}

	deps := []string{"sqlalchemy>=2.0.0"}
	if driver := asyncDriverFor(url); driver != "" {
		deps = append(deps, driver)
	} else {
		b.log.Warn("no known async driver for database URL, install one manually", "url", url)
	}
	deps = append(deps, "pydantic-settings")
	if b.spec.Alembic {
		deps = append(deps, "alembic")
	}
	if err := b.plan.Add(deps...); err != nil {
		return err
	}

	if b.spec.Alembic {
		cmd := b.env.MigrationsCommand
		if cmd == "" {
			cmd = DefaultMigrationsCommand
		}
		b.plan.AddCommand(PostInstall{
			Dir:          b.path,
			Command:      cmd,
			SkipIfExists: filepath.Join(b.path, "alembic"),
		})
	}

	if b.ownsPlan {
		return b.plan.Finish(ctx, b.env)
	}
	return nil
}

// writeDotenv creates .env unless one exists. An existing file is kept and
// only checked for a conflicting DATABASE_URL.
func (b *DatabaseBuilder) writeDotenv(url string) error {
	path := filepath.Join(b.path, ".env")

	if b.env.FS.Exists(path) {
		existing, err := readDotenv(b.env.FS, path)
		switch {
		case err != nil:
			b.log.Warn("could not parse existing .env", "path", path, "error", err)
		case existing["DATABASE_URL"] != url:
			b.log.Warn("existing .env keeps its DATABASE_URL",
				"path", path,
				"existing", existing["DATABASE_URL"],
				"requested", url,
			)
		}
	}

	content, err := godotenv.Marshal(map[string]string{
		"DATABASE_URL":                url,
		"SECRET_KEY":                  newSecretKey(),
		"ACCESS_TOKEN_EXPIRE_MINUTES": accessTokenMinutes,
	})
	if err != nil {
		return fmt.Errorf("encoding .env: %w", err)
	}
	_, err = b.env.FS.CreateFile(path, []byte(content+"\n"), false)
	return err
}

// newSecretKey returns 64 random hex characters.
func newSecretKey() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
