package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "tables"
password = "from-file"
dbname = "restaurant"

[locks]
mode = "redis"

[redis]
addr = "redis:6379"
`)

	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("RABBITMQ_URL", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, LockModeRedis, cfg.Locks.Mode)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "reservations.events", cfg.Events.Queue)
	assert.Contains(t, cfg.Database.DSN(), "dbname=restaurant")
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "no dbname", mutate: func(c *Config) { c.Database.DBName = "" }},
		{name: "unknown lock mode", mutate: func(c *Config) { c.Locks.Mode = "zookeeper" }},
		{name: "redis without addr", mutate: func(c *Config) { c.Locks.Mode = LockModeRedis; c.Redis.Addr = "" }},
		{name: "zero lock timeout", mutate: func(c *Config) { c.Locks.TimeoutMs = 0 }},
		{name: "metrics path", mutate: func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }},
		{name: "events without queue", mutate: func(c *Config) { c.Events.Enabled = true; c.Events.Queue = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.DBName = "restaurant"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
