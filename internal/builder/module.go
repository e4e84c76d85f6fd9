package builder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fastaccel/cli/internal/output"
	"github.com/fastaccel/cli/internal/templates"
)

// ModuleFile is one rendered file of a module. An empty Layer places the
// file directly in the module directory.
type ModuleFile struct {
	Layer    string
	Name     string
	Template templates.ID
}

// Module is a directory under src/modules with layered sub-packages.
type Module interface {
	Name() string
	Layers() []string
	Files() []ModuleFile

	// Context returns a fresh render context for one file.
	Context() templates.Context

	// Routed modules have a routes.py whose router is mounted in main.py.
	Routed() bool
}

// FixedModule is a module whose file set is decided when it is constructed.
type FixedModule struct {
	name   string
	layers []string
	files  []ModuleFile
	ctx    templates.Context
	routed bool
}

// NewFixedModule returns a module with the given layout.
func NewFixedModule(name string, layers []string, files []ModuleFile, ctx templates.Context, routed bool) *FixedModule {
	return &FixedModule{name: name, layers: layers, files: files, ctx: ctx, routed: routed}
}

func (m *FixedModule) Name() string { return m.name }
func (m *FixedModule) Layers() []string { return m.layers }
func (m *FixedModule) Files() []ModuleFile { return m.files }
func (m *FixedModule) Routed() bool { return m.routed }
func (m *FixedModule) Context() templates.Context {
	out := make(templates.Context, len(m.ctx))
	for k, v := range m.ctx {
		out[k] = v
	}
	return out
}

// usersModule is the empty layered skeleton every new project starts with.
func usersModule() *FixedModule {
	return NewFixedModule("users", []string{"controllers", "services", "repositories", "dtos"}, nil, nil, false)
}

// DynamicModule is a resource module whose names are derived from a
// ResourceSpec at render time.
type DynamicModule struct {
	spec ResourceSpec
}

// NewDynamicModule wraps spec.
func NewDynamicModule(spec ResourceSpec) *DynamicModule {
	return &DynamicModule{spec: spec}
}

func (m *DynamicModule) Name() string { return m.spec.ResourceName }
func (m *DynamicModule) Routed() bool { return m.spec.CRUD }

func (m *DynamicModule) Layers() []string {
	layers := []string{"models", "dtos", "repositories", "services"}
	if m.spec.CRUD {
		layers = append(layers, "controllers")
	}
	return layers
}

func (m *DynamicModule) Files() []ModuleFile {
	n := m.spec.ResourceName
	files := []ModuleFile{
		{Layer: "models", Name: n + "_model.py", Template: templates.ResourceModel},
		{Layer: "dtos", Name: n + "_dto.py", Template: templates.ResourceDTOs},
		{Layer: "repositories", Name: n + "_repository.py", Template: templates.ResourceRepository},
		{Layer: "services", Name: n + "_service.py", Template: templates.ResourceService},
	}
	if m.spec.CRUD {
		files = append(files,
			ModuleFile{Layer: "controllers", Name: n + "_controller.py", Template: templates.ResourceController},
			ModuleFile{Name: "routes.py", Template: templates.ModuleRoutes},
		)
	}
	return files
}

func (m *DynamicModule) Context() templates.Context {
	fields := append([]string{}, m.spec.Fields...)
	return templates.Context{
		"Name":      m.spec.ResourceName,
		"ClassName": m.spec.ClassName(),
		"Fields":    fields,
	}
}

// materialize writes m under root/src/modules and mounts its router when
// the module is routed.
func (b *Base) materialize(root string, m Module) error {
	modulesDir := filepath.Join(root, "src", "modules")
	moduleDir := filepath.Join(modulesDir, m.Name())

	for _, dir := range []string{filepath.Join(root, "src"), modulesDir, moduleDir} {
		if err := b.ensurePackage(dir); err != nil {
			return err
		}
	}
	for _, layer := range m.Layers() {
		if err := b.ensurePackage(filepath.Join(moduleDir, layer)); err != nil {
			return err
		}
	}

	for _, f := range m.Files() {
		path := filepath.Join(moduleDir, f.Layer, f.Name)
		if err := b.writeTemplate(path, f.Template, m.Context()); err != nil {
			return fmt.Errorf("module %s: %w", m.Name(), err)
		}
		if f.Layer == "models" {
			if err := b.registerModel(root, m.Name(), strings.TrimSuffix(f.Name, ".py")); err != nil {
				return err
			}
		}
	}

	if m.Routed() {
		return b.registerRouter(root, m.Name())
	}
	return nil
}

// registerModel imports a model module from src/models/all_models.py so its
// table is known to Base.metadata. Projects without the registry are skipped.
func (b *Base) registerModel(root, module, file string) error {
	registry := filepath.Join(root, "src", "models", "all_models.py")
	if !b.env.FS.Exists(registry) {
		output.Debug("model registry not found", "path", registry)
		return nil
	}

	line := fmt.Sprintf("import src.modules.%s.models.%s  # noqa: F401\n", module, file)
	data, err := b.env.FS.ReadFile(registry)
	if err != nil {
		return fmt.Errorf("reading %s: %w", registry, err)
	}
	if strings.Contains(string(data), line) {
		return nil
	}
	_, err = b.env.FS.AppendFile(registry, []byte(line))
	return err
}

// routerImport is the line whose presence in main.py marks a mounted router.
func routerImport(name string) string {
	return fmt.Sprintf("from src.modules.%s.routes import router as %s_router", name, name)
}

// registerRouter appends the router mount for module name to main.py. An
// entrypoint that already imports the router is left alone; a missing one
// only produces a warning.
func (b *Base) registerRouter(root, name string) error {
	entrypoint := filepath.Join(root, "main.py")

	if b.env.FS.Exists(entrypoint) {
		data, err := b.env.FS.ReadFile(entrypoint)
		if err != nil {
			return fmt.Errorf("reading %s: %w", entrypoint, err)
		}
		if strings.Contains(string(data), routerImport(name)) {
			output.Debug("router already registered", "module", name)
			return nil
		}
	}

	snippet, err := b.env.Templates.Render(templates.SnippetRouter, templates.Context{"Name": name})
	if err != nil {
		return err
	}
	appended, err := b.env.FS.AppendFile(entrypoint, []byte(snippet))
	if err != nil {
		return err
	}
	if !appended {
		b.log.Warn("entrypoint not found, router not registered", "module", name, "path", entrypoint)
	}
	return nil
}
