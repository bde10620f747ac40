package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when -config is not provided.
	DefaultConfigPath = "config.yml"

	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	defaultPort          = 8080
	defaultEnv           = "development"
	defaultMongoDatabase = "analytics"
	defaultRateLimit     = 120
	defaultRateWindow    = 60
	defaultRateMaxKeys   = 100_000
	defaultSweepSpec     = "@every 1m"
	defaultLogLevel      = "info"
)

// AppConfig holds runtime startup configuration.
type AppConfig struct {
	Port        int             `yaml:"port"`
	Env         string          `yaml:"env"` // "development" | "production"
	Storage     StorageConfig   `yaml:"storage"`
	CORSOrigins []string        `yaml:"cors_origins"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Log         LogConfig       `yaml:"log"`
}

type StorageConfig struct {
	Driver        string `yaml:"driver"`
	PostgresDSN   string `yaml:"postgres_dsn"`
	MongoURL      string `yaml:"mongo_url"`
	MongoDatabase string `yaml:"mongo_database"`
}

type RateLimitConfig struct {
	Limit         int    `yaml:"limit"`
	WindowSeconds int    `yaml:"window_seconds"`
	MaxKeys       int    `yaml:"max_keys"`
	SweepSpec     string `yaml:"sweep_spec"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Default returns the configuration used when nothing else is set.
func Default() *AppConfig {
	return &AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Storage: StorageConfig{
			Driver:        DriverPostgres,
			MongoDatabase: defaultMongoDatabase,
		},
		CORSOrigins: []string{"*"},
		RateLimit: RateLimitConfig{
			Limit:         defaultRateLimit,
			WindowSeconds: defaultRateWindow,
			MaxKeys:       defaultRateMaxKeys,
			SweepSpec:     defaultSweepSpec,
		},
		Log: LogConfig{Level: defaultLogLevel},
	}
}

// Load builds the config from defaults, the YAML file at path, a .env file in
// the working directory and finally the process environment. A missing file
// is not an error.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("ENV", &cfg.Env)
	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("POSTGRES_DSN", &cfg.Storage.PostgresDSN)
	str("MONGO_URL", &cfg.Storage.MongoURL)
	str("DB_NAME", &cfg.Storage.MongoDatabase)
	str("LOG_LEVEL", &cfg.Log.Level)

	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	if err := num("PORT", &cfg.Port); err != nil {
		return err
	}
	if err := num("RATE_LIMIT", &cfg.RateLimit.Limit); err != nil {
		return err
	}
	return num("RATE_WINDOW_SECONDS", &cfg.RateLimit.WindowSeconds)
}

// Validate checks that the selected storage driver has its connection string.
func (c *AppConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is not set")
		}
	case DriverMongo:
		if c.Storage.MongoURL == "" {
			return errors.New("MONGO_URL is not set")
		}
		if c.Storage.MongoDatabase == "" {
			return errors.New("DB_NAME is not set")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}

	if c.RateLimit.Limit <= 0 || c.RateLimit.WindowSeconds <= 0 {
		return errors.New("rate limit and window must be positive")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
