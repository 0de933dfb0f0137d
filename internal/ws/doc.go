// Package ws serves the MCP protocol over a WebSocket for clients that
// prefer a socket to stdio.
//
// Each text frame carries exactly one JSON-RPC 2.0 message, mirroring
// the newline framing of the stdio transport. Dispatch is shared with
// the stdio server, so both transports answer identically.
//
// Message flow:
//  1. HTTP request upgrades at GET /ws
//  2. Client sends initialize and receives capabilities
//  3. tools/list and tools/call frames flow until either side closes
//
// Notifications receive no reply frame, matching stdio behavior.
//
// Example Usage:
//
//	handler := ws.NewHandler(mcpServer, logger, metrics)
//	router.GET("/ws", handler.HandleConnection)
package ws
