package builder

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/output"
)

// Dependency is one Python requirement.
type Dependency struct {
	Name       string
	Extras     []string
	Constraint string
}

var requirementRe = regexp.MustCompile(`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)\s*(?:\[([^\]]*)\])?\s*(.*?)\s*$`)

// ParseDependency parses requirement strings such as "sqlalchemy>=2.0.0" or
// "uvicorn[standard]".
func ParseDependency(req string) (Dependency, error) {
	m := requirementRe.FindStringSubmatch(req)
	if m == nil {
		return Dependency{}, oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("invalid requirement %q", req))
	}

	dep := Dependency{Name: m[1], Constraint: strings.ReplaceAll(m[3], " ", "")}
	if m[2] != "" {
		for _, extra := range strings.Split(m[2], ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				dep.Extras = append(dep.Extras, extra)
			}
		}
	}
	if dep.Constraint != "" && !strings.ContainsAny(dep.Constraint[:1], "<>=!~") {
		return Dependency{}, oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("invalid version constraint in %q", req))
	}
	return dep, nil
}

// Key is the normalized package name used for deduplication.
func (d Dependency) Key() string {
	return strings.NewReplacer("_", "-", ".", "-").Replace(strings.ToLower(d.Name))
}

// String renders the requirement as passed to the package manager.
func (d Dependency) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	if len(d.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(d.Extras, ","))
		b.WriteString("]")
	}
	b.WriteString(d.Constraint)
	return b.String()
}

// DependencyList is an ordered set of requirements keyed by normalized name.
type DependencyList struct {
	items []Dependency
	index map[string]int
}

// Add parses and inserts each requirement. A requirement already present
// keeps its position; its extras are merged and a constraint fills an empty
// one.
func (l *DependencyList) Add(reqs ...string) error {
	for _, req := range reqs {
		dep, err := ParseDependency(req)
		if err != nil {
			return err
		}
		l.insert(dep)
	}
	return nil
}

func (l *DependencyList) insert(dep Dependency) {
	if l.index == nil {
		l.index = map[string]int{}
	}
	i, ok := l.index[dep.Key()]
	if !ok {
		l.index[dep.Key()] = len(l.items)
		l.items = append(l.items, dep)
		return
	}

	existing := &l.items[i]
	if existing.Constraint == "" {
		existing.Constraint = dep.Constraint
	}
	for _, extra := range dep.Extras {
		if !containsString(existing.Extras, extra) {
			existing.Extras = append(existing.Extras, extra)
		}
	}
}

// Len returns the number of distinct requirements.
func (l *DependencyList) Len() int {
	return len(l.items)
}

// Strings returns the requirements in insertion order.
func (l *DependencyList) Strings() []string {
	out := make([]string, len(l.items))
	for i, d := range l.items {
		out[i] = d.String()
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// PostInstall is a command run after dependencies are installed.
type PostInstall struct {
	Dir     string
	Command string

	// SkipIfExists names a path whose presence makes the command redundant.
	SkipIfExists string
}

// InstallPlan collects dependencies and post-install commands across nested
// builders. The builder that created the plan calls Finish once.
type InstallPlan struct {
	root     string
	deps     DependencyList
	commands []PostInstall
	finished bool
}

// NewInstallPlan creates a plan that installs into root.
func NewInstallPlan(root string) *InstallPlan {
	return &InstallPlan{root: root}
}

// Root is the directory the package manager runs in.
func (p *InstallPlan) Root() string {
	return p.root
}

// Add records requirements.
func (p *InstallPlan) Add(reqs ...string) error {
	return p.deps.Add(reqs...)
}

// AddCommand records a command to run after installation.
func (p *InstallPlan) AddCommand(cmd PostInstall) {
	p.commands = append(p.commands, cmd)
}

// Commands returns the recorded post-install commands in order.
func (p *InstallPlan) Commands() []PostInstall {
	return append([]PostInstall(nil), p.commands...)
}

// Finish installs the dependencies and runs the post-install commands.
// With env.SkipInstall both steps are skipped. Calling Finish again is a
// no-op.
func (p *InstallPlan) Finish(ctx context.Context, env Env) error {
	if p.finished {
		return nil
	}
	p.finished = true

	if env.SkipInstall {
		output.Info("skipping dependency installation", "dependencies", strings.Join(p.deps.Strings(), " "))
		for _, c := range p.commands {
			output.Info("skipping post-install command", "cmd", c.Command)
		}
		return nil
	}

	if err := env.FS.Install(ctx, p.deps.Strings(), p.root); err != nil {
		return err
	}

	for _, c := range p.commands {
		if c.SkipIfExists != "" && env.FS.Exists(c.SkipIfExists) {
			output.Info("already initialized, skipping", "path", filepath.Base(c.SkipIfExists), "cmd", c.Command)
			continue
		}
		if err := env.FS.RunCommand(ctx, c.Dir, c.Command); err != nil {
			return err
		}
	}
	return nil
}

// Option configures a builder.
type Option func(*options)

type options struct {
	plan *InstallPlan
}

// WithInstallPlan makes a nested builder record its dependencies in the
// parent's plan instead of installing them itself.
func WithInstallPlan(plan *InstallPlan) Option {
	return func(o *options) {
		o.plan = plan
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
