package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Store drivers understood by the storage factory.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var jurisdictionRx = regexp.MustCompile(`^[A-Z]{2}$`)

// Config holds the configuration for the rights service.
// Environment variables are parsed with the RIGHTS_SERVER_ prefix,
// e.g. RIGHTS_SERVER_HTTP_PORT, RIGHTS_SERVER_STORE_DRIVER.
type Config struct {
	// Build target selects high-level environment: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived when "auto" or empty: local=memory, cloud-dev=sqlite, cloud=postgres
	StoreDriver string `envconfig:"STORE_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage backends
	SQLitePath    string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN   string `envconfig:"POSTGRES_DSN" default:""`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix   string `envconfig:"REDIS_PREFIX" default:"rights"`

	// Domain defaults
	AppName             string `envconfig:"APP_NAME" default:"Know Your Rights Cards app"`
	DefaultJurisdiction string `envconfig:"DEFAULT_JURISDICTION" default:"CA"`
	BaseURL             string `envconfig:"BASE_URL" default:"http://localhost:3000"`

	// Health
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates BuildTarget and derives StoreDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDriver string

	switch c.BuildTarget {
	case "local":
		defaultDriver = DriverMemory
	case "cloud-dev":
		defaultDriver = DriverSQLite
	case "cloud":
		defaultDriver = DriverPostgres
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.StoreDriver == "" || c.StoreDriver == "auto" {
		c.StoreDriver = defaultDriver
	}

	switch c.Environment {
	case "":
		c.Environment = EnvDevelopment
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}

	switch c.StoreDriver {
	case DriverMemory:
	case DriverSQLite:
		if c.SQLitePath == "" {
			c.SQLitePath = "./data/rights.db"
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when STORE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	c.DefaultJurisdiction = strings.ToUpper(c.DefaultJurisdiction)
	if !jurisdictionRx.MatchString(c.DefaultJurisdiction) {
		return fmt.Errorf("DEFAULT_JURISDICTION must be a two-letter code, got %q", c.DefaultJurisdiction)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	return nil
}

// New creates a new Config by parsing RIGHTS_SERVER_ environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("RIGHTS_SERVER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("store_driver", cfg.StoreDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("default_jurisdiction", cfg.DefaultJurisdiction).
		Str("base_url", cfg.BaseURL).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Str("redis_addr", cfg.RedisAddr).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		BuildTarget:               "local",
		StoreDriver:               DriverMemory,
		Environment:               EnvTesting,
		LogLevel:                  "debug",
		HTTPPort:                  8080,
		RedisPrefix:               "rights-test",
		AppName:                   "Know Your Rights Cards app",
		DefaultJurisdiction:       "CA",
		BaseURL:                   "http://localhost:3000",
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
}

// IsDevelopment reports whether logs should be written for humans rather than as JSON.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
