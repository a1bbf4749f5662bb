package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".dashboard.yaml"

// Loader reads configuration from a YAML file with .env and environment
// overrides layered on top.
type Loader struct {
	path      string
	useDotEnv bool
}

// NewLoader creates a loader for the default config path.
func NewLoader() *Loader {
	return &Loader{
		path:      defaultConfigFile,
		useDotEnv: true,
	}
}

// WithPath overrides the config file location.
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Load reads, layers and validates the configuration. A missing config file
// is not an error: defaults plus environment variables still produce a
// usable client config.
func (l *Loader) Load() (*Config, error) {
	if l.useDotEnv {
		_ = godotenv.Load()
	}

	if env := os.Getenv("DASHBOARD_CONFIG"); env != "" {
		l.path = env
	}

	cfg := &Config{}
	data, err := os.ReadFile(l.path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", l.path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}

	l.applyEnv(cfg)
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) {
	if v := os.Getenv("DASHBOARD_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("DASHBOARD_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.TimeoutMS = n
		}
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DASHBOARD_SESSION_DRIVER"); v != "" {
		cfg.Session.Driver = v
	}
	if v := os.Getenv("DASHBOARD_SESSION_FILE"); v != "" {
		cfg.Session.File = &FileConfig{Path: v}
	}
	if v := os.Getenv("DASHBOARD_REDIS_ADDR"); v != "" {
		if cfg.Session.Redis == nil {
			cfg.Session.Redis = &RedisConfig{}
		}
		cfg.Session.Redis.Addr = v
	}
}
