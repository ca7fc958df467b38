package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "PetConnect.db", cfg.Database.MainPath)
	assert.Equal(t, "AuthServer.db", cfg.Database.AuthPath)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, "deepseek-chat", cfg.DeepSeek.Model)
	assert.Equal(t, 10, cfg.RateLimit.LoginLimit)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  addr: \":9090\"\nauth:\n  jwt_secret: \"test-secret\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	// Незатронутые значения остаются со значениями по умолчанию.
	assert.Equal(t, "PetConnect.db", cfg.Database.MainPath)
}

func TestEnvSecretOverride(t *testing.T) {
	t.Setenv("PETCONNECT_JWT_SECRET", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.Validate()
	assert.ErrorContains(t, err, "jwt_secret")

	cfg.Auth.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())
}
