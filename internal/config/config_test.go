package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "STORAGE_DRIVER", "POSTGRES_DSN", "MONGO_URL", "DB_NAME",
		"CORS_ORIGINS", "LOG_LEVEL", "RATE_LIMIT", "RATE_WINDOW_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port: 9090
env: production
storage:
  driver: mongo
  mongo_url: mongodb://localhost:27017
  mongo_database: stats
cors_origins: ["https://example.com"]
rate_limit:
  limit: 30
  window_seconds: 10
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "stats", cfg.Storage.MongoDatabase)
	assert.Equal(t, []string{"https://example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30, cfg.RateLimit.Limit)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window())
	assert.Equal(t, defaultRateMaxKeys, cfg.RateLimit.MaxKeys)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
storage:
  driver: postgres
  postgres_dsn: postgres://file
`)
	t.Setenv("POSTGRES_DSN", "postgres://env")
	t.Setenv("PORT", "7000")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test,")
	t.Setenv("RATE_LIMIT", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.Storage.PostgresDSN)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 5, cfg.RateLimit.Limit)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, defaultSweepSpec, cfg.RateLimit.SweepSpec)
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://env")
	t.Setenv("PORT", "eighty")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *AppConfig)
		ok     bool
	}{
		{"postgres without dsn", func(c *AppConfig) {}, false},
		{"postgres with dsn", func(c *AppConfig) { c.Storage.PostgresDSN = "postgres://x" }, true},
		{"mongo without url", func(c *AppConfig) { c.Storage.Driver = DriverMongo }, false},
		{"mongo with url", func(c *AppConfig) {
			c.Storage.Driver = DriverMongo
			c.Storage.MongoURL = "mongodb://x"
		}, true},
		{"unknown driver", func(c *AppConfig) { c.Storage.Driver = "sqlite" }, false},
		{"zero limit", func(c *AppConfig) {
			c.Storage.PostgresDSN = "postgres://x"
			c.RateLimit.Limit = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
