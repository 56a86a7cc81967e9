package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port      string          `yaml:"port"`
	DBPath    string          `yaml:"db_path"`
	JWTSecret string          `yaml:"-"` // env only
	Log       LogConfig       `yaml:"log"`
	Heatmap   HeatmapConfig   `yaml:"heatmap"`
	Source    SourceConfig    `yaml:"source"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// HeatmapConfig holds grid defaults
type HeatmapConfig struct {
	DefaultRows int    `yaml:"default_rows"`
	DefaultCols int    `yaml:"default_cols"`
	MaxCells    int    `yaml:"max_cells"` // Upper bound on rows*cols per request
	Scale       string `yaml:"scale"`     // linear, log
}

// SourceConfig selects where incident points come from
type SourceConfig struct {
	Kind     string        `yaml:"kind"` // store, http
	URL      string        `yaml:"url"`
	Token    string        `yaml:"-"` // env only
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// AuthConfig controls the bearer token gate
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Issuer  string `yaml:"issuer"`
}

// RateLimitConfig drives the per-IP limiter
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// Source kinds
const (
	SourceStore = "store"
	SourceHTTP  = "http"
)

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Port:   ":8080",
		DBPath: "./data/incidents.db",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Heatmap: HeatmapConfig{
			DefaultRows: 20,
			DefaultCols: 20,
			MaxCells:    250000,
			Scale:       "linear",
		},
		Source: SourceConfig{
			Kind:     SourceStore,
			Timeout:  10 * time.Second,
			CacheTTL: 30 * time.Second,
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		RateLimit: RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		},
	}
}

// Load 加载配置: defaults, then CONFIG_FILE (YAML), then environment variables
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if kind := os.Getenv("INCIDENT_SOURCE"); kind != "" {
		cfg.Source.Kind = kind
	}
	if url := os.Getenv("INCIDENT_SOURCE_URL"); url != "" {
		cfg.Source.URL = url
	}
	if issuer := os.Getenv("AUTH_ISSUER"); issuer != "" {
		cfg.Auth.Issuer = issuer
	}
	cfg.Source.Token = os.Getenv("INCIDENT_SOURCE_TOKEN")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	if enabled := os.Getenv("AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	return nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when auth is enabled")
	}

	switch strings.ToLower(c.Source.Kind) {
	case SourceStore:
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("INCIDENT_SOURCE_URL is required for the http incident source")
		}
	default:
		return fmt.Errorf("unknown incident source %q", c.Source.Kind)
	}
	c.Source.Kind = strings.ToLower(c.Source.Kind)

	if c.Heatmap.DefaultRows < 1 || c.Heatmap.DefaultCols < 1 {
		return fmt.Errorf("heatmap default grid must be at least 1x1")
	}
	if c.Heatmap.MaxCells < c.Heatmap.DefaultRows*c.Heatmap.DefaultCols {
		return fmt.Errorf("heatmap max_cells is smaller than the default grid")
	}
	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit requests and window must be positive")
	}
	return nil
}
