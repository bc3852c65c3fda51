package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"SERVER_PORT", "STORE_BACKEND", "STORE_KEY", "RESET_STORE", "REDIS_DB", "LOGIN_RATE_LIMIT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "bookswap-db-v1", cfg.StoreKey)
	assert.False(t, cfg.ResetStore)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("RESET_STORE", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOGIN_RATE_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.True(t, cfg.ResetStore)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 5, cfg.LoginRateLimit, "unparsable numbers fall back to the default")
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported STORE_BACKEND")
}
