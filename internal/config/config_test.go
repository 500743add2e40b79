package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "python3", cfg.Sandbox.PythonBin)
	assert.Equal(t, 10, cfg.Sandbox.DefaultTimeoutSeconds)
	assert.Equal(t, 60, cfg.Sandbox.MaxTimeoutSeconds)
	assert.Equal(t, 10, cfg.Sandbox.FetchTimeoutSeconds)
	assert.Equal(t, "http://localhost:3000", cfg.Sandbox.BaseOrigin)
	assert.Equal(t, "data/sandbox.db", cfg.Storage.DBPath)
	assert.Equal(t, "data/uploads", cfg.Storage.UploadsDir)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SANDBOX_SERVER_PORT", "9999")
	t.Setenv("SANDBOX_SANDBOX_PYTHON_BIN", "/opt/python/bin/python3")
	t.Setenv("SANDBOX_SANDBOX_MAX_TIMEOUT_SECONDS", "120")
	t.Setenv("SANDBOX_AUTH_JWT_SECRET", "a-secret-of-sufficient-length")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "/opt/python/bin/python3", cfg.Sandbox.PythonBin)
	assert.Equal(t, 120, cfg.Sandbox.MaxTimeoutSeconds)
	assert.Equal(t, "a-secret-of-sufficient-length", cfg.Auth.JWTSecret)

	// Untouched settings keep their defaults.
	assert.Equal(t, 10, cfg.Sandbox.DefaultTimeoutSeconds)
}
