package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Bridge     BridgeConfig     `yaml:"bridge" toml:"bridge"`
	PowerPoint PowerPointConfig `yaml:"powerpoint" toml:"powerpoint"`
	Media      MediaConfig      `yaml:"media" toml:"media"`
	Export     ExportConfig     `yaml:"export" toml:"export"`
	Templates  TemplatesConfig  `yaml:"templates" toml:"templates"`
	Logging    LogConfig        `yaml:"logging" toml:"logging"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit" toml:"rate_limit"`
	Auth       AuthConfig       `yaml:"auth" toml:"auth"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `envconfig:"HOST" yaml:"host" toml:"host"`
	Port            string        `envconfig:"PORT" yaml:"port" toml:"port"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// BridgeConfig holds the automation bridge configuration.
type BridgeConfig struct {
	QueueCapacity int           `envconfig:"BRIDGE_QUEUE_CAPACITY" yaml:"queue_capacity" toml:"queue_capacity"`
	CallTimeout   time.Duration `envconfig:"BRIDGE_CALL_TIMEOUT" yaml:"call_timeout" toml:"call_timeout"`
	JoinTimeout   time.Duration `envconfig:"BRIDGE_JOIN_TIMEOUT" yaml:"join_timeout" toml:"join_timeout"`
	RetryAttempts int           `envconfig:"BRIDGE_RETRY_ATTEMPTS" yaml:"retry_attempts" toml:"retry_attempts"`
	RetryInterval time.Duration `envconfig:"BRIDGE_RETRY_INTERVAL" yaml:"retry_interval" toml:"retry_interval"`
}

// PowerPointConfig holds host application settings.
type PowerPointConfig struct {
	// WindowClass is the top-level frame window class used by the
	// dialog dismissal side-channel.
	WindowClass  string        `envconfig:"PPT_WINDOW_CLASS" yaml:"window_class" toml:"window_class"`
	DismissPause time.Duration `envconfig:"PPT_DISMISS_PAUSE" yaml:"dismiss_pause" toml:"dismiss_pause"`
}

// MediaConfig holds remote media fetch settings.
type MediaConfig struct {
	MaxDownloadBytes  int64         `envconfig:"MEDIA_MAX_DOWNLOAD_BYTES" yaml:"max_download_bytes" toml:"max_download_bytes"`
	FetchTimeout      time.Duration `envconfig:"MEDIA_FETCH_TIMEOUT" yaml:"fetch_timeout" toml:"fetch_timeout"`
	RequestsPerSecond float64       `envconfig:"MEDIA_RPS" yaml:"requests_per_second" toml:"requests_per_second"`
	IconCacheTTL      time.Duration `envconfig:"MEDIA_ICON_CACHE_TTL" yaml:"icon_cache_ttl" toml:"icon_cache_ttl"`
}

// ExportConfig holds export settings.
type ExportConfig struct {
	// Dir is the default output directory. Empty means alongside the
	// presentation file.
	Dir string `envconfig:"EXPORT_DIR" yaml:"dir" toml:"dir"`
}

// TemplatesConfig holds presentation template discovery settings.
type TemplatesConfig struct {
	Dirs    []string `envconfig:"TEMPLATE_DIRS" yaml:"dirs" toml:"dirs"`
	Pattern string   `envconfig:"TEMPLATE_PATTERN" yaml:"pattern" toml:"pattern"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" yaml:"development" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" yaml:"enabled" toml:"enabled"`
}

// AuthConfig holds HTTP transport authentication.
type AuthConfig struct {
	// Token enables bearer-token auth on the HTTP transport when set.
	Token string `envconfig:"AUTH_TOKEN" yaml:"token" toml:"token"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            "7557",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Bridge: BridgeConfig{
			QueueCapacity: 64,
			CallTimeout:   30 * time.Second,
			JoinTimeout:   5 * time.Second,
			RetryAttempts: 5,
			RetryInterval: 3 * time.Second,
		},
		PowerPoint: PowerPointConfig{
			WindowClass:  "PPTFrameClass",
			DismissPause: 150 * time.Millisecond,
		},
		Media: MediaConfig{
			MaxDownloadBytes:  25 << 20,
			FetchTimeout:      30 * time.Second,
			RequestsPerSecond: 4,
			IconCacheTTL:      24 * time.Hour,
		},
		Templates: TemplatesConfig{
			Pattern: "**/*.{potx,pptx}",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Load builds configuration from defaults, an optional config file, and
// SLIDEWIRE_* environment variables, in that precedence order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("slidewire", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load("")
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Bridge.QueueCapacity < 1 {
		return fmt.Errorf("bridge queue capacity must be positive, got %d", c.Bridge.QueueCapacity)
	}
	if c.Bridge.CallTimeout <= 0 {
		return fmt.Errorf("bridge call timeout must be positive, got %s", c.Bridge.CallTimeout)
	}
	if c.Bridge.RetryAttempts < 1 {
		return fmt.Errorf("bridge retry attempts must be at least 1, got %d", c.Bridge.RetryAttempts)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond < 1 {
		return fmt.Errorf("rate limit rps must be positive, got %d", c.RateLimit.RequestsPerSecond)
	}
	return nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml or .toml)", filepath.Ext(path))
	}
	return nil
}
