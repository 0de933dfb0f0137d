// Package main is the entry point for the slidewire server.
//
// The binary bridges MCP clients to a live PowerPoint instance over
// COM automation. Every native call runs on one dedicated automation
// thread; the transports in front of it are fully asynchronous.
//
// Architecture:
//
//	MCP client (stdio) → slidewire → PowerPoint (COM)
//	HTTP / WebSocket  ↗
//
// The server provides:
//   - MCP over stdio and WebSocket
//   - REST API mirroring the tool registry
//   - Session-scoped presentation targeting
//   - Busy-retry with dialog dismissal for modal lockups
//
// Configuration:
//   - Defaults tuned for a local desktop install
//   - Optional YAML or TOML config file (--config)
//   - SLIDEWIRE_* environment variables override the file
//
// Usage:
//
//	# MCP over stdio (how MCP clients launch it)
//	./slidewire serve
//
//	# REST plus WebSocket on the configured address
//	./slidewire serve --transport http
//
//	# Inspect the tool catalog without starting anything
//	./slidewire tools
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
