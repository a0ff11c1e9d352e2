package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/boletin/internal/boe"
	"github.com/JaimeStill/boletin/pkg/database"
	"github.com/JaimeStill/boletin/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvBoletinEnv             = "BOLETIN_ENV"
	EnvBoletinShutdownTimeout = "BOLETIN_SHUTDOWN_TIMEOUT"
	EnvBoletinVersion         = "BOLETIN_VERSION"
)

var upstreamEnv = &boe.Env{
	BaseURL:     "BOLETIN_UPSTREAM_BASE_URL",
	Timeout:     "BOLETIN_UPSTREAM_TIMEOUT",
	UserAgent:   "BOLETIN_UPSTREAM_USER_AGENT",
	MaxBodySize: "BOLETIN_UPSTREAM_MAX_BODY_SIZE",
}

var databaseEnv = &database.Env{
	Enabled:         "BOLETIN_DB_ENABLED",
	Host:            "BOLETIN_DB_HOST",
	Port:            "BOLETIN_DB_PORT",
	Name:            "BOLETIN_DB_NAME",
	User:            "BOLETIN_DB_USER",
	Password:        "BOLETIN_DB_PASSWORD",
	SSLMode:         "BOLETIN_DB_SSL_MODE",
	MaxOpenConns:    "BOLETIN_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BOLETIN_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BOLETIN_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BOLETIN_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Enabled:          "BOLETIN_STORAGE_ENABLED",
	ContainerName:    "BOLETIN_STORAGE_CONTAINER_NAME",
	ConnectionString: "BOLETIN_STORAGE_CONNECTION_STRING",
	ServiceURL:       "BOLETIN_STORAGE_SERVICE_URL",
}

// Config is the root configuration for the Boletin service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Logging         LoggingConfig   `toml:"logging"`
	Upstream        boe.Config      `toml:"upstream"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the BOLETIN_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBoletinEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the .env file and base config (if present), applies any
// environment overlay, and finalizes all values. Without config files,
// defaults and environment variables provide all configuration.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Upstream.Merge(&overlay.Upstream)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
}

// Finalize applies defaults, environment overrides, and validation to every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Upstream.Finalize(upstreamEnv); err != nil {
		return fmt.Errorf("upstream: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBoletinShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBoletinVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

// loadDotEnv populates unset environment variables from path. A missing file
// is not an error; variables already set in the process take precedence.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvBoletinEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
