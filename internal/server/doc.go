// Package server assembles the HTTP transport.
//
// It wires the middleware stack and endpoint set over the assembled
// dependencies:
//   - Routing with the Gin framework
//   - Middleware: recovery, request IDs, structured logging, CORS,
//     per-IP rate limiting, optional bearer auth, Prometheus metrics
//   - Probes: GET /health (liveness), GET /ready (bridge running)
//   - GET /metrics for Prometheus scrapes
//   - /api group: tool discovery and execution
//   - GET /ws: MCP over WebSocket
//
// Server Lifecycle:
//  1. The app layer builds Options from configuration
//  2. New assembles the router and http.Server
//  3. Run blocks serving traffic
//  4. Shutdown drains in-flight requests on signal
//
// Example Usage:
//
//	srv := server.New(server.Options{...})
//	go srv.Run()
//	...
//	srv.Shutdown(ctx)
package server
