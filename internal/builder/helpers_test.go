package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastaccel/cli/internal/filesystem"
	"github.com/fastaccel/cli/internal/templates"
	"github.com/fastaccel/cli/internal/testutil"
)

type testEnv struct {
	Env
	ws     *testutil.Workspace
	gw     *filesystem.Local
	runner *testutil.RecordingRunner
}

// newTestEnv returns an in-memory environment with /work as the base path.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ws := testutil.NewWorkspace(t)
	reg, err := templates.NewRegistry()
	require.NoError(t, err)

	return &testEnv{
		Env:    Env{FS: ws.Gateway, Templates: reg},
		ws:     ws,
		gw:     ws.Gateway,
		runner: ws.Runner,
	}
}

func (e *testEnv) calls() []string {
	return e.runner.Calls()
}

func (e *testEnv) read(t *testing.T, path string) string {
	t.Helper()
	return e.ws.Read(t, path)
}

func (e *testEnv) exists(path string) bool {
	return e.ws.Exists(path)
}

func (e *testEnv) write(t *testing.T, path, content string) {
	t.Helper()
	e.ws.WriteFile(t, path, content)
}
