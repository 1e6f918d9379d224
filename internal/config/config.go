package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"CoinCompare/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Provider struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"provider"`
	Search struct {
		DebounceMs  int `yaml:"debounce_ms"`
		MinQueryLen int `yaml:"min_query_len"`
		MaxResults  int `yaml:"max_results"`
	} `yaml:"search"`
	Fetch struct {
		WindowDays            int `yaml:"window_days"`
		RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	} `yaml:"fetch"`
	Chart struct {
		ColorA          string `yaml:"color_a"`
		ColorB          string `yaml:"color_b"`
		ColorDebounceMs int    `yaml:"color_debounce_ms"`
	} `yaml:"chart"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Server struct {
		Addr        string `yaml:"addr"`
		AllowOrigin string `yaml:"allow_origin"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FETCH_WINDOW_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.WindowDays = days
		}
	}

	// Defaults
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.coingecko.com"
	}
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = 30
	}
	if cfg.Search.DebounceMs == 0 {
		cfg.Search.DebounceMs = 300
	}
	if cfg.Search.MinQueryLen == 0 {
		cfg.Search.MinQueryLen = 2
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 5
	}
	if cfg.Fetch.WindowDays == 0 {
		cfg.Fetch.WindowDays = 30
	}
	if cfg.Fetch.RequestTimeoutSeconds == 0 {
		cfg.Fetch.RequestTimeoutSeconds = 15
	}
	if cfg.Chart.ColorA == "" {
		cfg.Chart.ColorA = "#3b82f6"
	}
	if cfg.Chart.ColorB == "" {
		cfg.Chart.ColorB = "#f59e0b"
	}
	if cfg.Chart.ColorDebounceMs == 0 {
		cfg.Chart.ColorDebounceMs = 100
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.AllowOrigin == "" {
		cfg.Server.AllowOrigin = "http://localhost:3000"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if !model.ValidHexColor(c.Chart.ColorA) {
		return fmt.Errorf("chart.color_a: %q is not a #rrggbb color", c.Chart.ColorA)
	}
	if !model.ValidHexColor(c.Chart.ColorB) {
		return fmt.Errorf("chart.color_b: %q is not a #rrggbb color", c.Chart.ColorB)
	}
	if c.Search.MinQueryLen < 1 {
		return fmt.Errorf("search.min_query_len must be positive")
	}
	if c.Fetch.WindowDays < 1 {
		return fmt.Errorf("fetch.window_days must be positive")
	}
	return nil
}
