package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/fastaccel/cli/internal/errors"
)

func TestParseDependency(t *testing.T) {
	tests := []struct {
		input   string
		want    Dependency
		wantErr bool
	}{
		{input: "fastapi", want: Dependency{Name: "fastapi"}},
		{input: "sqlalchemy>=2.0.0", want: Dependency{Name: "sqlalchemy", Constraint: ">=2.0.0"}},
		{input: "uvicorn[standard]", want: Dependency{Name: "uvicorn", Extras: []string{"standard"}}},
		{input: "python-jose[cryptography] >= 3.3", want: Dependency{Name: "python-jose", Extras: []string{"cryptography"}, Constraint: ">=3.3"}},
		{input: "pkg[a, b]~=1.0", want: Dependency{Name: "pkg", Extras: []string{"a", "b"}, Constraint: "~=1.0"}},
		{input: "", wantErr: true},
		{input: "foo bar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDependency(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, oerrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDependency_String(t *testing.T) {
	dep := Dependency{Name: "uvicorn", Extras: []string{"standard"}, Constraint: ">=0.30"}
	assert.Equal(t, "uvicorn[standard]>=0.30", dep.String())
}

func TestDependencyList_Dedup(t *testing.T) {
	var l DependencyList
	require.NoError(t, l.Add("fastapi", "SQLAlchemy", "pydantic_settings"))
	require.NoError(t, l.Add("sqlalchemy>=2.0.0", "pydantic-settings>=2", "fastapi<1", "passlib[bcrypt]", "passlib"))

	assert.Equal(t, 4, l.Len())
	assert.Equal(t, []string{
		"fastapi<1",
		"SQLAlchemy>=2.0.0",
		"pydantic_settings>=2",
		"passlib[bcrypt]",
	}, l.Strings())
}

func TestDependencyList_KeepsFirstConstraint(t *testing.T) {
	var l DependencyList
	require.NoError(t, l.Add("sqlalchemy>=2.0.0", "sqlalchemy>=1.4"))
	assert.Equal(t, []string{"sqlalchemy>=2.0.0"}, l.Strings())
}

func TestInstallPlan_Finish(t *testing.T) {
	env := newTestEnv(t)
	plan := NewInstallPlan("/work/app")
	require.NoError(t, plan.Add("fastapi", "alembic"))
	plan.AddCommand(PostInstall{Dir: "/work/app", Command: "alembic init alembic", SkipIfExists: "/work/app/alembic"})

	require.NoError(t, plan.Finish(context.Background(), env.Env))
	assert.Equal(t, []string{"uv add fastapi", "uv add alembic", "alembic init alembic"}, env.calls())

	require.NoError(t, plan.Finish(context.Background(), env.Env))
	assert.Len(t, env.calls(), 3, "second Finish is a no-op")
}

func TestInstallPlan_SkipInstall(t *testing.T) {
	env := newTestEnv(t)
	env.SkipInstall = true

	plan := NewInstallPlan("/work/app")
	require.NoError(t, plan.Add("fastapi"))
	plan.AddCommand(PostInstall{Dir: "/work/app", Command: "alembic init alembic"})

	require.NoError(t, plan.Finish(context.Background(), env.Env))
	assert.Empty(t, env.calls())
}

func TestInstallPlan_SkipsInitializedCommand(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ws.Fs.MkdirAll("/work/app/alembic", 0o755))

	plan := NewInstallPlan("/work/app")
	plan.AddCommand(PostInstall{Dir: "/work/app", Command: "alembic init alembic", SkipIfExists: "/work/app/alembic"})

	require.NoError(t, plan.Finish(context.Background(), env.Env))
	assert.Empty(t, env.calls())
}

func TestInstallPlan_CommandFailurePropagatesStatus(t *testing.T) {
	env := newTestEnv(t)
	env.runner.Fail["alembic init alembic"] = 3

	plan := NewInstallPlan("/work/app")
	plan.AddCommand(PostInstall{Dir: "/work/app", Command: "alembic init alembic"})

	err := plan.Finish(context.Background(), env.Env)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrCommandFailure)
	code, ok := oerrors.ExitStatus(err)
	require.True(t, ok)
	assert.Equal(t, 3, code)
}
