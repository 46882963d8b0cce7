package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		URL                   string `yaml:"url"`
		TimeoutSec            int    `yaml:"timeout_sec"`
		MaxRequestsPerMinute  int    `yaml:"max_requests_per_minute"`
		Burst                 int    `yaml:"burst"`
		MinRequestIntervalSec int    `yaml:"min_request_interval_sec"`
	} `yaml:"source"`
	CDN struct {
		BaseURL      string `yaml:"base_url"`
		SharedTTLSec int    `yaml:"shared_ttl_sec"`
		LocalTTLSec  int    `yaml:"local_ttl_sec"`
	} `yaml:"cdn"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		PublishCron string `yaml:"publish_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SOURCE_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x > 0 {
			cfg.Source.TimeoutSec = x
		}
	}
	if v := os.Getenv("SOURCE_MAX_RPM"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x >= 0 {
			cfg.Source.MaxRequestsPerMinute = x
		}
	}
	if v := os.Getenv("SOURCE_MIN_INTERVAL_SEC"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x >= 0 {
			cfg.Source.MinRequestIntervalSec = x
		}
	}
	if v := os.Getenv("CDN_BASE_URL"); v != "" {
		cfg.CDN.BaseURL = v
	}
	if v := os.Getenv("CACHE_SHARED_TTL_SEC"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x >= 0 {
			cfg.CDN.SharedTTLSec = x
		}
	}
	if v := os.Getenv("CACHE_LOCAL_TTL_SEC"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x >= 0 {
			cfg.CDN.LocalTTLSec = x
		}
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PUBLISH_CRON"); v != "" {
		cfg.Schedule.PublishCron = v
	}

	// Defaults
	if cfg.Source.TimeoutSec == 0 {
		cfg.Source.TimeoutSec = 30
	}
	if cfg.CDN.BaseURL == "" {
		cfg.CDN.BaseURL = "https://cdn.opennordicstocks.net"
	}
	if cfg.CDN.SharedTTLSec == 0 {
		cfg.CDN.SharedTTLSec = 3600
	}
	if cfg.CDN.LocalTTLSec == 0 {
		cfg.CDN.LocalTTLSec = 900
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "data"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Source.TimeoutSec <= 0 {
		return fmt.Errorf("source.timeout_sec must be positive")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.CDN.BaseURL == "" {
		return fmt.Errorf("cdn.base_url is required")
	}
	return nil
}
