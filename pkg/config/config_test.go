package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDRESS", "")

	cfg := New()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.True(t, cfg.Postgres.AutoMigrate)
	assert.Empty(t, cfg.Redis.Address, "пустой адрес отключает кеш")
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
}

func TestNew_ParsesTypedValues(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ORGANIZATION_CACHE_TTL", "90s")
	t.Setenv("REQUEST_TIMEOUT", "2s")

	cfg := New()

	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
	assert.False(t, cfg.Postgres.AutoMigrate)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
}

func TestNew_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MIN_CONNS", "много")
	t.Setenv("DB_AUTO_MIGRATE", "может быть")
	t.Setenv("ORGANIZATION_CACHE_TTL", "долго")

	cfg := New()

	assert.Equal(t, int32(1), cfg.Postgres.MinConns)
	assert.True(t, cfg.Postgres.AutoMigrate)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
}
