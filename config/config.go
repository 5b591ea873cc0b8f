// Package config loads the service configuration. Values are merged with
// priority: environment variables > config file (YAML or JSON) > defaults. A
// .env file in the working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	JWT        JWTConfig        `koanf:"jwt"`
	Log        LogConfig        `koanf:"log"`
	Pagination PaginationConfig `koanf:"pagination"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

type PaginationConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// envKeys maps the environment variables the service understands to config keys.
var envKeys = map[string]string{
	"PORT":              "server.port",
	"DB_DRIVER":         "database.driver",
	"DB_HOST":           "database.host",
	"DB_PORT":           "database.port",
	"DB_USER":           "database.user",
	"DB_PASSWORD":       "database.password",
	"DB_NAME":           "database.name",
	"DB_SSLMODE":        "database.sslmode",
	"DB_PATH":           "database.path",
	"DB_LOG_LEVEL":      "database.log_level",
	"JWT_SECRET":        "jwt.secret",
	"JWT_EXPIRATION":    "jwt.expiration",
	"LOG_LEVEL":         "log.level",
	"LOG_PRETTY":        "log.pretty",
	"PAGE_SIZE_DEFAULT": "pagination.default_page_size",
	"PAGE_SIZE_MAX":     "pagination.max_page_size",
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":                  "8080",
		"database.driver":              DriverPostgres,
		"database.host":                "localhost",
		"database.port":                "5432",
		"database.sslmode":             "disable",
		"database.path":                "changelog.sqlite",
		"database.log_level":           "warn",
		"jwt.secret":                   "your-secret-key-change-this-in-production",
		"jwt.expiration":               24 * time.Hour,
		"log.level":                    "info",
		"log.pretty":                   false,
		"pagination.default_page_size": 5,
		"pagination.max_page_size":     100,
	}
}

// Load reads configuration. configPath may be empty; a missing .env file is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")
	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if configPath != "" {
		if err := loadFile(k, configPath); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envTransform returns "" for variables the service does not read, which
// makes the env provider skip them.
func envTransform(s string) string {
	return envKeys[s]
}

func (c *Config) Validate() error {
	if c.Pagination.DefaultPageSize < 1 {
		return fmt.Errorf("pagination.default_page_size must be positive, got %d", c.Pagination.DefaultPageSize)
	}
	if c.Pagination.MaxPageSize < c.Pagination.DefaultPageSize {
		return fmt.Errorf("pagination.max_page_size (%d) must not be below default_page_size (%d)",
			c.Pagination.MaxPageSize, c.Pagination.DefaultPageSize)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret must not be empty")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	return nil
}
