package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "HOST", "MONGODB_DATABASE", "MONGODB_COLLECTION", "READ_TIMEOUT", "REQUEST_TIMEOUT")

	cfg := Load()

	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
	assert.Equal(t, "portfolio", cfg.MongoDB.Database)
	assert.Equal(t, "profiles", cfg.MongoDB.Collection)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("SERVICE_NAME", "me")
	t.Setenv("HOSTNAME", "box")
	t.Setenv("MONGODB_POOL_SIZE", "7")
	t.Setenv("MONGODB_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := Load()

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "me-box", cfg.Server.ServiceID)
	assert.Equal(t, uint64(7), cfg.MongoDB.PoolSize)
	assert.Equal(t, 3*time.Second, cfg.MongoDB.Timeout)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("MONGODB_POOL_SIZE", "-1")
	t.Setenv("READ_TIMEOUT", "soon")

	assert.Equal(t, 0, getEnvAsInt("REDIS_DB", 0))
	assert.Equal(t, uint64(20), getEnvAsUint64("MONGODB_POOL_SIZE", 20))
	assert.Equal(t, time.Second, getEnvAsDuration("READ_TIMEOUT", time.Second))
}
