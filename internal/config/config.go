// Package config loads runtime settings from an optional .env file and the
// process environment. Every variable is prefixed with SOFTGYM_.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SOFTGYM"

// EnvProduction is the ENV value that turns on production hardening.
const EnvProduction = "production"

// Config holds all settings for the server and the admin console.
type Config struct {
	Env             string        `envconfig:"ENV" default:"development"`
	Addr            string        `envconfig:"ADDR" default:":8080"`
	DBPath          string        `envconfig:"DB_PATH" default:"softgym.db"`
	CSRFKey         string        `envconfig:"CSRF_KEY"`
	TrustedOrigins  []string      `envconfig:"TRUSTED_ORIGINS"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	Timezone        string        `envconfig:"TIMEZONE" default:"America/Mexico_City"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	RateLimitPerSec int           `envconfig:"RATE_LIMIT_PER_SECOND" default:"10"`
	SlowQueryMs     int           `envconfig:"SLOW_QUERY_MS" default:"50"`
	SlowRequestMs   int           `envconfig:"SLOW_REQUEST_MS" default:"200"`
	location        *time.Location
}

// Load reads envFile when it exists and then the environment.
// A missing envFile is not an error; a malformed one is.
// PRE: none
// POST: returns a validated Config or an error naming the bad setting
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("%s_TIMEZONE: %w", Prefix, err)
	}
	c.location = loc

	if c.CSRFKey != "" {
		key, err := hex.DecodeString(c.CSRFKey)
		if err != nil || len(key) != 32 {
			return fmt.Errorf("%s_CSRF_KEY must be 64 hex characters", Prefix)
		}
	} else if c.IsProduction() {
		return errors.New(Prefix + "_CSRF_KEY is required in production")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%s_SESSION_TTL must be positive", Prefix)
	}
	if c.RateLimitPerSec <= 0 {
		return fmt.Errorf("%s_RATE_LIMIT_PER_SECOND must be positive", Prefix)
	}
	return nil
}

// IsProduction reports whether production hardening applies.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Location returns the gym time zone used to derive "today".
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// SlowQuery returns the slow-query threshold.
func (c *Config) SlowQuery() time.Duration {
	return time.Duration(c.SlowQueryMs) * time.Millisecond
}

// SlowRequest returns the slow-request threshold.
func (c *Config) SlowRequest() time.Duration {
	return time.Duration(c.SlowRequestMs) * time.Millisecond
}

// CSRFKeyBytes decodes the configured key. It returns nil when unset.
func (c *Config) CSRFKeyBytes() []byte {
	if c.CSRFKey == "" {
		return nil
	}
	key, _ := hex.DecodeString(c.CSRFKey)
	return key
}
