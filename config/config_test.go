// ABOUTME: Tests for configuration loading and persistence
// ABOUTME: Covers XDG paths, YAML parsing, env overrides and save permissions
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "API_KEY", "KINETIC_MODEL", "KINETIC_AI_BASE_URL",
		"KINETIC_AUDIT_TIMEOUT", "KINETIC_PORT", "KINETIC_LOG_LEVEL", "KINETIC_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestPathUnderXDGConfigHome(t *testing.T) {
	assert.Equal(t, filepath.Join(xdg.ConfigHome, "kinetic"), Dir())
	assert.Equal(t, "config.yaml", filepath.Base(Path()))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, cfg.AI.Model)
	assert.Equal(t, DefaultAuditTimeout, cfg.AI.AuditTimeout)
	assert.Equal(t, DefaultPort, cfg.Web.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.HasAPIKey())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ai:
  model: gemini-2.5-flash
  audit_timeout: 30s
web:
  port: 9090
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.AuditTimeout)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "fallback-key")
	t.Setenv("KINETIC_MODEL", "gemini-2.5-pro")
	t.Setenv("KINETIC_PORT", "7070")
	t.Setenv("KINETIC_AUDIT_TIMEOUT", "5s")
	t.Setenv("KINETIC_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fallback-key", cfg.AI.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
	assert.Equal(t, 7070, cfg.Web.Port)
	assert.Equal(t, 5*time.Second, cfg.AI.AuditTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)

	t.Setenv("GEMINI_API_KEY", "primary-key")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "primary-key", cfg.AI.APIKey)
}

func TestEnvOverrideInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("KINETIC_PORT", "eighty")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("KINETIC_AUDIT_TIMEOUT", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveOmitsAPIKey(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.AI.APIKey = "secret"
	cfg.Web.Port = 8181
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8181, loaded.Web.Port)
	assert.Equal(t, "secret", cfg.AI.APIKey, "caller's config is untouched")
}
