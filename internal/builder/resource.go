package builder

import (
	"context"
)

// ResourceBuilder adds a CRUD resource module to an existing project.
type ResourceBuilder struct {
	Base
	spec ResourceSpec
}

// NewResourceBuilder returns a builder for spec in the project at root.
func NewResourceBuilder(env Env, root string, spec ResourceSpec) *ResourceBuilder {
	return &ResourceBuilder{
		Base: newBase("resource", env, root),
		spec: spec,
	}
}

func (b *ResourceBuilder) Name() string { return "resource" }

func (b *ResourceBuilder) Validate(ctx context.Context) error {
	if err := validateSpec(b.spec); err != nil {
		return err
	}
	return b.Base.Validate(ctx)
}

func (b *ResourceBuilder) Build(context.Context) error {
	b.log.Info("creating resource",
		"name", b.spec.ResourceName,
		"class", b.spec.ClassName(),
		"fields", len(b.spec.Fields),
		"crud", b.spec.CRUD,
	)
	return b.materialize(b.path, NewDynamicModule(b.spec))
}
