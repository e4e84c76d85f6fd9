package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".fastaccel"), paths.HomeDir)
	assert.Equal(t, filepath.Join(home, ".fastaccel", "config.yaml"), paths.ConfigFile)
}

func TestGetConfigFile_Env(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/fastaccel.yaml")

	path, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/etc/fastaccel.yaml", path)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~", home},
		{"~/config.yaml", filepath.Join(home, "config.yaml")},
		{"~other/x", "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("path: /x\n"), 0o644))

	ok, err := FileExists(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = FileExists(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}
