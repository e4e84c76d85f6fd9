package templates

import (
	"fmt"
	"sort"
	"text/template"

	oerrors "github.com/fastaccel/cli/internal/errors"
)

// ID names a template in the registry.
type ID string

// Category groups templates by the part of a project they produce.
type Category string

const (
	CategoryProject  Category = "project"
	CategoryDatabase Category = "database"
	CategoryModule   Category = "module"
	CategorySchema   Category = "schema"
	CategoryTest     Category = "test"
	CategorySnippet  Category = "snippet"
)

// Template ids.
const (
	ProjectMain           ID = "project/main"
	ProjectPyproject      ID = "project/pyproject"
	ProjectReadme         ID = "project/readme"
	ProjectGitignore      ID = "project/gitignore"
	ProjectConfig         ID = "project/config"
	ProjectStartup        ID = "project/startup"
	ProjectBaseRepository ID = "project/base_repository"
	ProjectBaseService    ID = "project/base_service"
	ProjectAllModels      ID = "project/all_models"

	DatabaseSettings ID = "database/settings"
	DatabaseSession  ID = "database/session"
	DatabaseSetup    ID = "database/setup"

	AuthUserModel      ID = "auth/user_model"
	AuthPasswordHasher ID = "auth/password_hasher"
	AuthJWTHandler     ID = "auth/jwt_handler"
	AuthClientType     ID = "auth/client_type"
	AuthUserRepository ID = "auth/user_repository"
	AuthService        ID = "auth/service"
	AuthCurrentUser    ID = "auth/current_user"
	AuthController     ID = "auth/controller"
	AuthDTOs           ID = "auth/dtos"

	ResourceModel      ID = "resource/model"
	ResourceDTOs       ID = "resource/dtos"
	ResourceRepository ID = "resource/repository"
	ResourceService    ID = "resource/service"
	ResourceController ID = "resource/controller"

	ModuleRoutes ID = "module/routes"

	TestConftest       ID = "tests/conftest"
	TestAuthService    ID = "tests/auth_service"
	TestAuthController ID = "tests/auth_controller"
	TestPytestOptions  ID = "tests/pytest_options"
	TestDevGroup       ID = "tests/dev_group"

	SnippetRouter ID = "snippet/router"
)

// Context holds the named parameters for one render. Build a fresh one per file.
type Context map[string]any

// Template describes one registered template.
type Template struct {
	ID          ID
	Category    Category
	Description string
	Engine      Engine

	// Source is the embedded file the body comes from; empty for in-code snippets.
	Source string

	body   string
	parsed *template.Template
}

type entry struct {
	id          ID
	category    Category
	engine      Engine
	source      string
	description string
}

var catalog = []entry{
	{ProjectMain, CategoryProject, EngineSubstitute, "project/main.py.tmpl", "FastAPI application entrypoint"},
	{ProjectPyproject, CategoryProject, EngineSubstitute, "project/pyproject.toml.tmpl", "Dependency manifest"},
	{ProjectReadme, CategoryProject, EngineSubstitute, "project/README.md.tmpl", "Project readme"},
	{ProjectGitignore, CategoryProject, EngineSubstitute, "project/gitignore.tmpl", "Git ignore rules"},
	{ProjectConfig, CategoryProject, EngineSubstitute, "project/config.py.tmpl", "Application metadata"},
	{ProjectStartup, CategoryProject, EngineGo, "project/startup.py.tmpl", "Lifespan hook"},
	{ProjectBaseRepository, CategoryProject, EngineSubstitute, "project/base_repository.py.tmpl", "Generic async repository"},
	{ProjectBaseService, CategoryProject, EngineSubstitute, "project/base_service.py.tmpl", "Generic service"},
	{ProjectAllModels, CategoryProject, EngineSubstitute, "project/all_models.py.tmpl", "Model registry"},

	{DatabaseSettings, CategoryDatabase, EngineSubstitute, "database/settings.py.tmpl", "Environment-backed settings"},
	{DatabaseSession, CategoryDatabase, EngineSubstitute, "database/database.py.tmpl", "Engine and session factories"},
	{DatabaseSetup, CategoryDatabase, EngineSubstitute, "database/setup_db.py.tmpl", "Table creation script"},

	{AuthUserModel, CategoryModule, EngineGo, "auth/user_model.py.tmpl", "User persistence model"},
	{AuthPasswordHasher, CategoryModule, EngineGo, "auth/password_hasher.py.tmpl", "bcrypt password hashing"},
	{AuthJWTHandler, CategoryModule, EngineGo, "auth/jwt_handler.py.tmpl", "Token signing and verification"},
	{AuthClientType, CategoryModule, EngineGo, "auth/client_type.py.tmpl", "Client type and token lifetimes"},
	{AuthUserRepository, CategoryModule, EngineGo, "auth/user_repository.py.tmpl", "User repository"},
	{AuthService, CategoryModule, EngineGo, "auth/auth_service.py.tmpl", "Register, authenticate and issue tokens"},
	{AuthCurrentUser, CategoryModule, EngineGo, "auth/current_user.py.tmpl", "Current user dependency"},
	{AuthController, CategoryModule, EngineGo, "auth/auth_controller.py.tmpl", "Auth endpoints"},
	{AuthDTOs, CategorySchema, EngineGo, "auth/auth_dto.py.tmpl", "Auth request and response models"},

	{ResourceModel, CategoryModule, EngineGo, "resource/model.py.tmpl", "Resource model"},
	{ResourceDTOs, CategorySchema, EngineGo, "resource/dto.py.tmpl", "Resource request and response models"},
	{ResourceRepository, CategoryModule, EngineGo, "resource/repository.py.tmpl", "Resource repository"},
	{ResourceService, CategoryModule, EngineGo, "resource/service.py.tmpl", "Resource service"},
	{ResourceController, CategoryModule, EngineGo, "resource/controller.py.tmpl", "Resource CRUD endpoints"},

	{ModuleRoutes, CategoryModule, EngineGo, "module/routes.py.tmpl", "Module router"},

	{TestConftest, CategoryTest, EngineSubstitute, "tests/conftest.py.tmpl", "Shared pytest fixtures"},
	{TestAuthService, CategoryTest, EngineSubstitute, "tests/test_auth_service.py.tmpl", "Auth service tests"},
	{TestAuthController, CategoryTest, EngineSubstitute, "tests/test_auth_controller.py.tmpl", "Auth endpoint tests"},
}

// Registry maps template ids to their bodies. It is immutable after NewRegistry.
type Registry struct {
	templates map[ID]*Template
}

// NewRegistry loads every embedded template and in-code snippet and compiles
// the text/template ones.
func NewRegistry() (*Registry, error) {
	r := &Registry{templates: make(map[ID]*Template, len(catalog)+len(snippets))}

	for _, e := range catalog {
		body, err := readSource(e.source)
		if err != nil {
			return nil, err
		}
		if err := r.add(&Template{
			ID:          e.id,
			Category:    e.category,
			Description: e.description,
			Engine:      e.engine,
			Source:      e.source,
			body:        body,
		}); err != nil {
			return nil, err
		}
	}

	for _, s := range snippets {
		if err := r.add(&Template{
			ID:          s.id,
			Category:    s.category,
			Description: s.description,
			Engine:      s.engine,
			body:        s.body(),
		}); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) add(t *Template) error {
	if _, dup := r.templates[t.ID]; dup {
		return fmt.Errorf("duplicate template id %q", t.ID)
	}
	if t.Engine == EngineGo {
		parsed, err := parseGo(string(t.ID), t.body)
		if err != nil {
			return err
		}
		t.parsed = parsed
	}
	r.templates[t.ID] = t
	return nil
}

// Get returns the template registered under id.
func (r *Registry) Get(id ID) (Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", oerrors.ErrTemplateNotFound, id)
	}
	return *t, nil
}

// Render expands the template id with ctx. It touches no filesystem and the
// same id and ctx always produce the same text.
func (r *Registry) Render(id ID, ctx Context) (string, error) {
	t, ok := r.templates[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", oerrors.ErrTemplateNotFound, id)
	}
	switch t.Engine {
	case EngineGo:
		return executeGo(t.parsed, ctx)
	default:
		return substitute(t.body, ctx), nil
	}
}

// List returns the templates of one category sorted by id.
func (r *Registry) List(category Category) []Template {
	var out []Template
	for _, t := range r.templates {
		if t.Category == category {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Categories returns the categories that have at least one template.
func (r *Registry) Categories() []Category {
	seen := map[Category]bool{}
	var out []Category
	for _, t := range r.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
