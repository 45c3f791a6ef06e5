package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "WASM_DIR", "SHUTDOWN_TIMEOUT", "API_BASE"} {
		t.Setenv(k, "")
	}
	// Keep a stray .env in the package dir from leaking in.
	t.Chdir(t.TempDir())
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "data/tareas.db", cfg.Database.URL)
	assert.False(t, cfg.IsPostgres())
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/tareas")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("API_BASE", "http://example.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsPostgres())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://example.test/", cfg.Client.APIBase)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")

	port := "9090"
	db := "/tmp/x.db"
	cfg, err := LoadWithOverrides(&Overrides{Port: &port, DatabaseURL: &db})
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/x.db", cfg.Database.URL)
}

func TestInvalidValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("PORT", "http")
	_, err = Load()
	assert.Error(t, err)

	cfg := New()
	cfg.Database.URL = "  "
	assert.Error(t, cfg.Validate())
}
