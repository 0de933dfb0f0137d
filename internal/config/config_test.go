package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "7557", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	// Bridge config
	assert.Equal(t, 64, cfg.Bridge.QueueCapacity)
	assert.Equal(t, 30*time.Second, cfg.Bridge.CallTimeout)
	assert.Equal(t, 5*time.Second, cfg.Bridge.JoinTimeout)
	assert.Equal(t, 5, cfg.Bridge.RetryAttempts)
	assert.Equal(t, 3*time.Second, cfg.Bridge.RetryInterval)

	// PowerPoint config
	assert.Equal(t, "PPTFrameClass", cfg.PowerPoint.WindowClass)
	assert.Equal(t, 150*time.Millisecond, cfg.PowerPoint.DismissPause)

	// Media config
	assert.Equal(t, int64(25<<20), cfg.Media.MaxDownloadBytes)
	assert.Equal(t, 24*time.Hour, cfg.Media.IconCacheTTL)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "7557", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"SLIDEWIRE_PORT":                  "9000",
		"SLIDEWIRE_HOST":                  "0.0.0.0",
		"SLIDEWIRE_BRIDGE_CALL_TIMEOUT":   "10s",
		"SLIDEWIRE_BRIDGE_RETRY_ATTEMPTS": "3",
		"SLIDEWIRE_PPT_WINDOW_CLASS":      "TestFrameClass",
		"SLIDEWIRE_LOG_LEVEL":             "debug",
		"SLIDEWIRE_LOG_DEV":               "true",
		"SLIDEWIRE_RATE_LIMIT_RPS":        "500",
		"SLIDEWIRE_RATE_LIMIT_ENABLED":    "false",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 10*time.Second, cfg.Bridge.CallTimeout)
	assert.Equal(t, 3, cfg.Bridge.RetryAttempts)
	assert.Equal(t, "TestFrameClass", cfg.PowerPoint.WindowClass)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	err := os.Setenv("SLIDEWIRE_PORT", "3000")
	require.NoError(t, err)
	defer os.Unsetenv("SLIDEWIRE_PORT")

	err = os.Setenv("SLIDEWIRE_LOG_LEVEL", "warn")
	require.NoError(t, err)
	defer os.Unsetenv("SLIDEWIRE_LOG_LEVEL")

	cfg, err := Load("")
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Bridge.CallTimeout)
	assert.Equal(t, "PPTFrameClass", cfg.PowerPoint.WindowClass)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slidewire.yaml")

	data := `
server:
  port: "8123"
bridge:
  call_timeout: 15s
  retry_attempts: 4
powerpoint:
  window_class: YamlFrameClass
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8123", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Bridge.CallTimeout)
	assert.Equal(t, 4, cfg.Bridge.RetryAttempts)
	assert.Equal(t, "YamlFrameClass", cfg.PowerPoint.WindowClass)

	// Untouched values keep defaults
	assert.Equal(t, 64, cfg.Bridge.QueueCapacity)
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slidewire.toml")

	data := `
[server]
port = "8124"

[bridge]
queue_capacity = 128

[rate_limit]
requests_per_second = 50
burst = 75
enabled = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8124", cfg.Server.Port)
	assert.Equal(t, 128, cfg.Bridge.QueueCapacity)
	assert.Equal(t, 50, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 75, cfg.RateLimit.Burst)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slidewire.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"8123\"\n"), 0o644))

	err := os.Setenv("SLIDEWIRE_PORT", "9999")
	require.NoError(t, err)
	defer os.Unsetenv("SLIDEWIRE_PORT")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slidewire.ini")
	require.NoError(t, os.WriteFile(path, []byte("port=1"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero queue capacity",
			mutate:  func(c *Config) { c.Bridge.QueueCapacity = 0 },
			wantErr: "queue capacity",
		},
		{
			name:    "negative call timeout",
			mutate:  func(c *Config) { c.Bridge.CallTimeout = -time.Second },
			wantErr: "call timeout",
		},
		{
			name:    "zero retry attempts",
			mutate:  func(c *Config) { c.Bridge.RetryAttempts = 0 },
			wantErr: "retry attempts",
		},
		{
			name: "rate limit enabled with zero rps",
			mutate: func(c *Config) {
				c.RateLimit.Enabled = true
				c.RateLimit.RequestsPerSecond = 0
			},
			wantErr: "rate limit rps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
