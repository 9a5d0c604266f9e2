package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// sentry
	SentryEnabled bool `toml:"sentry_enabled"`
	// backend api
	APIBaseURL        string `toml:"api_base_url"`
	RequestTimeoutSec int    `toml:"request_timeout_sec"`
	// workout poller
	PollIntervalSec int `toml:"poll_interval_sec"`
	// local preference store
	PrefsDBPath string `toml:"prefs_db_path"`
}

func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSec <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.PollIntervalSec) * time.Second
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] is empty", env)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url not set for env [%s]", env)
	}

	cfg.Environment = env
	return cfg, nil
}
