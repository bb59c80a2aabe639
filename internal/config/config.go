// Package config loads the catsearch service configuration from YAML.
// Every tunable has a default; a missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tripline/catsearch/internal/catalog"
	cerr "github.com/tripline/catsearch/internal/errors"
)

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Products EntityConfig   `yaml:"products"`
	Events   EntityConfig   `yaml:"events"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig locates the catalog database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// EntityConfig overrides one catalog's search tunables. Zero values fall
// back to the entity defaults.
type EntityConfig struct {
	TTL          time.Duration        `yaml:"ttl"`
	FetchTimeout time.Duration        `yaml:"fetch_timeout"`
	Threshold    float64              `yaml:"threshold"`
	MinQueryLen  int                  `yaml:"min_query_len"`
	DefaultLimit int                  `yaml:"default_limit"`
	MaxLimit     int                  `yaml:"max_limit"`
	SuggestLimit int                  `yaml:"suggest_limit"`
	Weights      catalog.FieldWeights `yaml:"weights"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "catsearch.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the config at path, layered over defaults. An empty path or
// missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, cerr.New(cerr.ErrCodeConfigNotFound, fmt.Sprintf("read config %s", path), err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, cerr.ConfigError(fmt.Sprintf("parse config %s", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return cerr.ConfigError("server.addr must not be empty", nil)
	}
	for _, ec := range []struct {
		name string
		cfg  EntityConfig
	}{{"products", c.Products}, {"events", c.Events}} {
		if ec.cfg.Threshold < 0 || ec.cfg.Threshold > 1 {
			return cerr.ConfigError(fmt.Sprintf("%s.threshold must be between 0 and 1", ec.name), nil)
		}
		if ec.cfg.MinQueryLen < 0 {
			return cerr.ConfigError(fmt.Sprintf("%s.min_query_len must not be negative", ec.name), nil)
		}
		if ec.cfg.MaxLimit < 0 || ec.cfg.DefaultLimit < 0 {
			return cerr.ConfigError(fmt.Sprintf("%s limits must not be negative", ec.name), nil)
		}
	}
	return nil
}

// ProductConfig returns the effective shop catalog tunables.
func (c *Config) ProductConfig() catalog.Config {
	return c.Products.apply(catalog.ProductConfig())
}

// EventConfig returns the effective entertainment catalog tunables.
func (c *Config) EventConfig() catalog.Config {
	return c.Events.apply(catalog.EventConfig())
}

// apply overlays non-zero override values on the entity defaults.
func (ec EntityConfig) apply(base catalog.Config) catalog.Config {
	if ec.TTL > 0 {
		base.TTL = ec.TTL
	}
	if ec.FetchTimeout > 0 {
		base.FetchTimeout = ec.FetchTimeout
	}
	if ec.Threshold > 0 {
		base.Threshold = ec.Threshold
	}
	if ec.MinQueryLen > 0 {
		base.MinQueryLen = ec.MinQueryLen
	}
	if ec.DefaultLimit > 0 {
		base.DefaultLimit = ec.DefaultLimit
	}
	if ec.MaxLimit > 0 {
		base.MaxLimit = ec.MaxLimit
	}
	if ec.SuggestLimit > 0 {
		base.SuggestLimit = ec.SuggestLimit
	}
	if ec.Weights != (catalog.FieldWeights{}) {
		base.Weights = ec.Weights
	}
	return base
}
