// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/config"
	"github.com/fastaccel/cli/internal/filesystem"
)

// BaseDir is the pre-created base path of every Workspace.
const BaseDir = "/work"

// RecordingRunner records every command line it is asked to run and fails
// the lines registered in Fail with the given exit status.
type RecordingRunner struct {
	mu    sync.Mutex
	calls []string

	Fail map[string]int
}

// NewRecordingRunner returns a runner on which every command succeeds.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{Fail: map[string]int{}}
}

// Run implements filesystem.Runner.
func (r *RecordingRunner) Run(_ context.Context, _ string, name string, args ...string) (filesystem.RunResult, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, line)
	if code, ok := r.Fail[line]; ok {
		return filesystem.RunResult{ExitCode: code, Output: "boom"}, errors.New("exit status")
	}
	return filesystem.RunResult{}, nil
}

// Calls returns the recorded command lines in order.
func (r *RecordingRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Workspace is an in-memory filesystem wired into a gateway.
type Workspace struct {
	Fs      afero.Fs
	Gateway *filesystem.Local
	Runner  *RecordingRunner
}

// NewWorkspace creates an in-memory workspace with BaseDir present.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(BaseDir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", BaseDir, err)
	}
	runner := NewRecordingRunner()
	return &Workspace{
		Fs:      fs,
		Gateway: filesystem.New(fs, runner),
		Runner:  runner,
	}
}

// Global returns a GlobalConfig with default settings that routes every
// filesystem and process operation through the workspace.
func (w *Workspace) Global() *cmdtypes.GlobalConfig {
	return &cmdtypes.GlobalConfig{
		Config:  config.DefaultConfig(),
		Gateway: w.Gateway,
	}
}

// Read returns the content of path, failing the test when it is absent.
func (w *Workspace) Read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(w.Fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists.
func (w *Workspace) Exists(path string) bool {
	ok, _ := afero.Exists(w.Fs, path)
	return ok
}

// WriteFile creates a file, and its parents, with the given content.
func (w *Workspace) WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := w.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := afero.WriteFile(w.Fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
