package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fastaccel/cli/internal/cmdtypes"
	"github.com/fastaccel/cli/internal/config"
	oerrors "github.com/fastaccel/cli/internal/errors"
)

func execute(g *cmdtypes.GlobalConfig, args ...string) (string, error) {
	cmd := NewConfigCmd(g)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInit_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	g := &cmdtypes.GlobalConfig{ConfigPath: path}

	out, err := execute(g, "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, config.DefaultInstallTool, cfg.Install.Tool)
	assert.Equal(t, config.DefaultDatabaseType, cfg.Database.Type)
	assert.Equal(t, config.DefaultMigrationsCommand, cfg.Migrations.Command)
}

func TestConfigInit_DefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfig, "")

	_, err := execute(&cmdtypes.GlobalConfig{}, "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".fastaccel", "config.yaml"))
}

func TestConfigInit_Exists(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "refuses to overwrite", args: []string{"init"}, wantErr: true},
		{name: "force overwrites", args: []string{"init", "--force"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte("path: /srv\n"), 0o644))

			_, err := execute(&cmdtypes.GlobalConfig{ConfigPath: path}, tt.args...)
			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, oerrors.ErrAlreadyExists)
				assert.Equal(t, 1, oerrors.ExitCodeFromError(err))
				assert.Equal(t, "path: /srv\n", string(data))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, string(data), "install:")
		})
	}
}

func TestConfigVet(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantErr   error
		wantField string
	}{
		{name: "valid", content: "database:\n  type: sqlite\n"},
		{name: "unknown type", content: "database:\n  type: oracle\n", wantErr: oerrors.ErrValidation, wantField: "database.type"},
		{name: "unknown key", content: "registry: ghcr.io\n", wantErr: oerrors.ErrValidation, wantField: "registry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			out, err := execute(&cmdtypes.GlobalConfig{}, "vet", path)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Contains(t, out, "Configuration is valid")
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var detail *oerrors.DetailError
			require.True(t, errors.As(err, &detail))
			assert.Contains(t, detail.Context, tt.wantField)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestConfigVet_ResolvedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	g := &cmdtypes.GlobalConfig{ConfigPath: path}

	_, err := execute(g, "init")
	require.NoError(t, err)

	out, err := execute(g, "vet")
	require.NoError(t, err, "the generated defaults validate")
	assert.Contains(t, out, path)
}

func TestConfigVet_Missing(t *testing.T) {
	_, err := execute(&cmdtypes.GlobalConfig{}, "vet", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrPathNotFound)
	assert.Contains(t, err.Error(), "config init")
}
