package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the dashboard client.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
}

// APIConfig controls the HTTP client.
type APIConfig struct {
	// BaseURL may be empty: endpoints are then issued as same-origin
	// relative paths, for setups where a reverse proxy handles routing.
	BaseURL   string      `yaml:"base_url"`
	TimeoutMS int         `yaml:"timeout_ms"`
	Retry     RetryConfig `yaml:"retry"`
}

// RetryConfig controls automatic retry of transient failures.
type RetryConfig struct {
	MaxRetries  int  `yaml:"max_retries"`
	BaseDelayMS int  `yaml:"base_delay_ms"`
	// NonIdempotent opts POST/PATCH requests into automatic retry.
	NonIdempotent bool `yaml:"non_idempotent"`
}

// LogConfig mirrors the logging package options.
type LogConfig struct {
	Level    string `yaml:"log_level"`
	Dir      string `yaml:"log_dir"`
	Filename string `yaml:"log_file"`
}

// SessionConfig selects and tunes the token store backend.
type SessionConfig struct {
	Driver   string        `yaml:"driver"`
	TTLHours float64       `yaml:"ttl_hours"`
	File     *FileConfig   `yaml:"file,omitempty"`
	Redis    *RedisConfig  `yaml:"redis,omitempty"`
	SQLite   *SQLiteConfig `yaml:"sqlite,omitempty"`
}

// FileConfig locates the JSON session file.
type FileConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// SQLiteConfig provides the database location.
type SQLiteConfig struct {
	DSN string `yaml:"dsn"`
}

// Timeout converts the configured budget to a duration.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// BaseDelay converts the retry base delay to a duration.
func (c RetryConfig) BaseDelay() time.Duration {
	if c.BaseDelayMS <= 0 {
		return time.Second
	}
	return time.Duration(c.BaseDelayMS) * time.Millisecond
}

// TTL converts the session TTL to a duration.
func (c SessionConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(float64(time.Hour) * c.TTLHours)
}

func (c *Config) applyDefaults() {
	if c.API.TimeoutMS <= 0 {
		c.API.TimeoutMS = 30000
	}
	if c.API.Retry.MaxRetries <= 0 {
		c.API.Retry.MaxRetries = 3
	}
	if c.API.Retry.BaseDelayMS <= 0 {
		c.API.Retry.BaseDelayMS = 1000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Session.Driver == "" {
		c.Session.Driver = "file"
	}
	if c.Session.TTLHours <= 0 {
		c.Session.TTLHours = 24
	}
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case "memory", "file", "redis", "sqlite":
	default:
		return fmt.Errorf("unsupported session driver: %s", c.Session.Driver)
	}
	if c.Session.Driver == "redis" && (c.Session.Redis == nil || c.Session.Redis.Addr == "") {
		return fmt.Errorf("redis session driver requires an address")
	}
	if c.Session.Driver == "sqlite" && (c.Session.SQLite == nil || c.Session.SQLite.DSN == "") {
		return fmt.Errorf("sqlite session driver requires a dsn")
	}
	if c.API.Retry.MaxRetries > 10 {
		return fmt.Errorf("retry ceiling too high: %d", c.API.Retry.MaxRetries)
	}
	return nil
}
