// Package config loads server settings from defaults, an optional YAML file
// and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Database
	DBDriver    string
	SQLitePath  string
	PostgresDSN string

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string

	// Ledger
	AggregateConcurrency int
}

// fileConfig mirrors Config for YAML files. Zero values leave the default
// in place.
type fileConfig struct {
	Port                 string        `yaml:"port"`
	ShutdownTimeout      time.Duration `yaml:"shutdown_timeout"`
	LogLevel             string        `yaml:"log_level"`
	LogFormat            string        `yaml:"log_format"`
	DBDriver             string        `yaml:"db_driver"`
	SQLitePath           string        `yaml:"sqlite_path"`
	PostgresDSN          string        `yaml:"postgres_dsn"`
	AMQPURL              string        `yaml:"amqp_url"`
	AMQPExchange         string        `yaml:"amqp_exchange"`
	AggregateConcurrency int           `yaml:"aggregate_concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:                 "8080",
		ShutdownTimeout:      10 * time.Second,
		LogLevel:             "info",
		LogFormat:            "text",
		DBDriver:             "sqlite",
		SQLitePath:           "./data/settleup.db",
		AMQPExchange:         "settleup",
		AggregateConcurrency: 4,
	}
}

// Load builds the configuration. When CONFIG_FILE is set, that YAML file is
// applied over the defaults; environment variables win over both.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.Port, f.Port)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogFormat, f.LogFormat)
	setString(&c.DBDriver, f.DBDriver)
	setString(&c.SQLitePath, f.SQLitePath)
	setString(&c.PostgresDSN, f.PostgresDSN)
	setString(&c.AMQPURL, f.AMQPURL)
	setString(&c.AMQPExchange, f.AMQPExchange)
	if f.ShutdownTimeout != 0 {
		c.ShutdownTimeout = f.ShutdownTimeout
	}
	if f.AggregateConcurrency != 0 {
		c.AggregateConcurrency = f.AggregateConcurrency
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.PostgresDSN = getEnv("POSTGRES_DSN", c.PostgresDSN)
	c.AMQPURL = getEnv("AMQP_URL", c.AMQPURL)
	c.AMQPExchange = getEnv("AMQP_EXCHANGE", c.AMQPExchange)

	var err error
	if c.AggregateConcurrency, err = getEnvInt("AGGREGATE_CONCURRENCY", c.AggregateConcurrency); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	// Validate database driver
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			errors = append(errors, "POSTGRES_DSN cannot be empty when using postgres driver")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid database driver '%s': must be sqlite or postgres", c.DBDriver))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.AggregateConcurrency < 1 {
		errors = append(errors, fmt.Sprintf("invalid aggregate concurrency %d: must be at least 1", c.AggregateConcurrency))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %s: must be positive", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': must be an integer", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': must be a duration like 10s", key, value)
	}
	return d, nil
}
