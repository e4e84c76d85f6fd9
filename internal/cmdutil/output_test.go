package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastaccel/cli/internal/cmdtypes"
	oerrors "github.com/fastaccel/cli/internal/errors"
	"github.com/fastaccel/cli/internal/filesystem"
	"github.com/fastaccel/cli/internal/output"
)

func TestFileEntries(t *testing.T) {
	changes := []filesystem.Change{
		{Path: "/work/demo", Action: filesystem.ActionDir},
		{Path: "/work/demo/main.py", Action: filesystem.ActionCreated},
		{Path: "/work/demo/src/__init__.py", Action: filesystem.ActionSkipped},
		{Path: "/work/demo/main.py", Action: filesystem.ActionAppended},
		{Path: "/work/demo/.env", Action: filesystem.ActionSkipped},
		{Path: "/work/demo/.env", Action: filesystem.ActionAppended},
		{Path: "/work/other/file.py", Action: filesystem.ActionCreated},
	}

	got := FileEntries("/work/demo", changes)

	assert.Equal(t, []output.FileEntry{
		{Path: "main.py", Status: output.StatusCreated},
		{Path: "src/__init__.py", Status: output.StatusSkipped},
		{Path: ".env", Status: output.StatusAppended},
	}, got)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, "Project demo created", "/work/demo", []filesystem.Change{
		{Path: "/work/demo/main.py", Action: filesystem.ActionCreated},
	})

	out := buf.String()
	assert.Contains(t, out, "Project demo created")
	assert.Contains(t, out, "demo/")
	assert.Contains(t, out, "main.py")
}

func TestPrintResult_NoChanges(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, "nothing to do", "/work/demo", nil)
	assert.NotContains(t, buf.String(), "demo/")
}

type stubBuilder struct{ err error }

func (stubBuilder) Name() string { return "stub" }
func (stubBuilder) Validate(context.Context) error { return nil }
func (stubBuilder) BeforeBuild(context.Context) error { return nil }
func (s stubBuilder) Build(context.Context) error { return s.err }
func (stubBuilder) AfterBuild(context.Context) error { return nil }

func TestRunBuilder(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "success", err: nil, wantCode: oerrors.ExitSuccess},
		{name: "precondition", err: oerrors.NewPathNotFoundError("/nope"), wantCode: oerrors.ExitGeneralError},
		{name: "tool failure", err: &oerrors.ToolError{Kind: oerrors.ErrInstallFailure, Tool: "pip", ExitCode: 3, Err: errors.New("exit status 3")}, wantCode: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunBuilder(context.Background(), stubBuilder{err: tt.err}, "working")
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			var exitErr *cmdtypes.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.wantCode, exitErr.Code)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
