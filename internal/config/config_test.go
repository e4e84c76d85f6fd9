package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "uv add", cfg.Install.Tool)
	assert.Equal(t, "pip install", cfg.Install.Fallback)
	assert.False(t, cfg.Install.Skip)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "alembic init alembic", cfg.Migrations.Command)
	assert.Empty(t, cfg.Path)
	assert.True(t, cfg.Timestamps())
}

func TestConfig_Timestamps(t *testing.T) {
	off := false
	cfg := &Config{Log: LogConfig{Timestamps: &off}}
	assert.False(t, cfg.Timestamps())
}

func TestDefaultConfig_PassesSchema(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	v, err := NewValidator()
	require.NoError(t, err)
	assert.NoError(t, v.ValidateBytes("config.yaml", data))
}
