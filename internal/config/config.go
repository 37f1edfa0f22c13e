package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config centralizes service configuration.
type Config struct {
	HTTPPort           string `env:"HTTP_PORT" envDefault:"8080"`
	StorageBackend     string `env:"STORAGE_BACKEND" envDefault:"file"`
	StoragePath        string `env:"STORAGE_PATH" envDefault:"./data"`
	SQLitePath         string `env:"SQLITE_PATH" envDefault:"./data/psyco.db"`
	StorageTimeoutMS   int    `env:"STORAGE_TIMEOUT_MS" envDefault:"500"`
	DatabaseURL        string `env:"DATABASE_URL"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix        string `env:"REDIS_PREFIX" envDefault:"psyco:"`
	AllowFutureEntries bool   `env:"ALLOW_FUTURE_ENTRIES" envDefault:"false"`
	Timezone           string `env:"TIMEZONE" envDefault:"Local"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected storage backend has what it needs.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(c.StoragePath) == "" {
			return fmt.Errorf("STORAGE_PATH required for %s backend", c.StorageBackend)
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH required for %s backend", c.StorageBackend)
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR required for %s backend", c.StorageBackend)
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL required for %s backend", c.StorageBackend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) StorageTimeout() time.Duration {
	if c.StorageTimeoutMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.StorageTimeoutMS) * time.Millisecond
}

// Location resolves TIMEZONE; "Local" and empty mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}
