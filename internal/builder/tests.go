package builder

import (
	"context"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/fastaccel/cli/internal/templates"
)

// TestBuilder adds a pytest suite for the auth module and the pytest
// configuration block in pyproject.toml.
type TestBuilder struct {
	Base
}

// NewTestBuilder returns a builder for the project at root.
func NewTestBuilder(env Env, root string) *TestBuilder {
	return &TestBuilder{Base: newBase("tests", env, root)}
}

func (b *TestBuilder) Name() string { return "tests" }

func (b *TestBuilder) Build(context.Context) error {
	tests := filepath.Join(b.path, "tests")
	modules := filepath.Join(tests, "modules")
	auth := filepath.Join(modules, "auth")

	for _, dir := range []string{tests, modules, auth, filepath.Join(modules, "users")} {
		if err := b.ensurePackage(dir); err != nil {
			return err
		}
	}

	files := []struct {
		path string
		id   templates.ID
	}{
		{filepath.Join(tests, "conftest.py"), templates.TestConftest},
		{filepath.Join(auth, "test_auth_service.py"), templates.TestAuthService},
		{filepath.Join(auth, "test_auth_controller.py"), templates.TestAuthController},
	}
	for _, f := range files {
		if err := b.writeTemplate(f.path, f.id, nil); err != nil {
			return err
		}
	}
	return nil
}

// AfterBuild appends the pytest settings and the dev dependency group to
// pyproject.toml when they are missing. Projects without a manifest are left
// alone.
func (b *TestBuilder) AfterBuild(context.Context) error {
	manifest := filepath.Join(b.path, "pyproject.toml")
	if !b.env.FS.Exists(manifest) {
		return nil
	}

	data, err := b.env.FS.ReadFile(manifest)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		b.log.Warn("pyproject.toml is not valid TOML, pytest settings not added", "path", manifest, "error", err)
		return nil
	}

	var blocks []templates.ID
	if lookupTable(doc, "tool", "pytest", "ini_options") == nil {
		blocks = append(blocks, templates.TestPytestOptions)
	}
	if _, ok := doc["dependency-groups"]; !ok {
		blocks = append(blocks, templates.TestDevGroup)
	}

	for _, id := range blocks {
		content, err := b.env.Templates.Render(id, nil)
		if err != nil {
			return err
		}
		if _, err := b.env.FS.AppendFile(manifest, []byte(content)); err != nil {
			return err
		}
	}
	return nil
}

// lookupTable walks nested TOML tables and returns nil when any key is absent.
func lookupTable(doc map[string]any, keys ...string) map[string]any {
	cur := doc
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}
