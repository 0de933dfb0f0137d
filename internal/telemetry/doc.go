// Package telemetry provides Prometheus metrics for the server.
//
// Metrics cover four areas:
//   - HTTP request counts and latencies (via Gin middleware)
//   - Tool call counts, durations, and errors
//   - MCP protocol requests and WebSocket traffic
//   - Bridge internals (queue depth, in-flight work, retry counters),
//     observed through a snapshot closure supplied at wiring time
//
// All metrics carry the slidewire_ prefix and register on the default
// Prometheus registry, exposed at /metrics.
package telemetry
