// Package config provides 12-factor configuration management for slidewire.
//
// Configuration is assembled from defaults, an optional YAML or TOML file,
// and SLIDEWIRE_* environment variables, in that precedence order.
//
// Configuration Sections:
//   - Server: HTTP transport settings (host, port, timeouts)
//   - Bridge: automation bridge settings (queue capacity, call timeout, retry)
//   - PowerPoint: host application settings (window class, dismissal pause)
//   - Media: remote media fetch limits and icon cache TTL
//   - Export / Templates: output directory and template discovery
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting for the HTTP transport
//   - Auth: optional bearer token for the HTTP transport
//
// Example Usage:
//
//	cfg, err := config.Load("slidewire.yaml")
//	bridge := com.NewBridge(com.Config{CallTimeout: cfg.Bridge.CallTimeout}, ...)
//
// Environment Variables:
//   - SLIDEWIRE_HOST, SLIDEWIRE_PORT
//   - SLIDEWIRE_BRIDGE_CALL_TIMEOUT, SLIDEWIRE_BRIDGE_RETRY_ATTEMPTS
//   - SLIDEWIRE_LOG_LEVEL, SLIDEWIRE_LOG_DEV
//   - SLIDEWIRE_RATE_LIMIT_RPS, SLIDEWIRE_RATE_LIMIT_BURST
package config
