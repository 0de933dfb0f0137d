package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/slidewire/slidewire/internal/logging"
	"github.com/slidewire/slidewire/internal/registry"
	"github.com/slidewire/slidewire/internal/types"
)

const (
	// initialBuffer is the scanner's starting line buffer; tool calls
	// with embedded text payloads routinely exceed the bufio default.
	initialBuffer = 64 * 1024

	// maxMessageSize caps one wire message.
	maxMessageSize = 1 << 20
)

// transportName tags tool calls that arrive over this protocol.
const transportName = "mcp"

// Info identifies the server during initialize.
type Info struct {
	Name         string
	Version      string
	Instructions string
}

// Recorder observes protocol and tool activity. A nil recorder
// disables observation.
type Recorder interface {
	RecordMCPRequest(method, status string)
	RecordToolCall(tool, status string, duration time.Duration)
	RecordToolError(tool, errorType string)
}

// Server answers MCP messages against a tool registry. Dispatch is
// transport-neutral so the stdio loop and the WebSocket endpoint share
// one implementation.
type Server struct {
	registry *registry.Registry
	log      *logging.Logger
	info     Info
	metrics  Recorder
}

// NewServer creates an MCP server over the given registry. rec may be
// nil.
func NewServer(reg *registry.Registry, log *logging.Logger, info Info, rec Recorder) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	return &Server{
		registry: reg,
		log:      log,
		info:     info,
		metrics:  rec,
	}
}

// Serve reads one JSON-RPC message per line from in and writes one
// response per line to out. It returns once in is exhausted or ctx is
// canceled between messages.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, initialBuffer), maxMessageSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		reply := s.Dispatch(ctx, line)
		if reply == nil {
			continue
		}
		if _, err := out.Write(append(reply, '\n')); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

// Dispatch handles one raw JSON-RPC message and returns the serialized
// response, or nil for notifications.
func (s *Server) Dispatch(ctx context.Context, raw []byte) []byte {
	var req request
	if err := sonic.Unmarshal(raw, &req); err != nil {
		s.record("", "parse_error")
		return s.encode(errorResponse(nil, codeParse, "parse error: invalid JSON"))
	}
	if req.JSONRPC != "2.0" {
		s.record(req.Method, "invalid_request")
		return s.encode(errorResponse(req.ID, codeInvalidRequest, "jsonrpc must be 2.0"))
	}

	if req.isNotification() {
		s.handleNotification(&req)
		return nil
	}

	result, rpcErr := s.handle(ctx, &req)
	if rpcErr != nil {
		s.record(req.Method, "error")
		resp := errorResponse(req.ID, rpcErr.Code, rpcErr.Message)
		resp.Error.Data = rpcErr.Data
		return s.encode(resp)
	}
	s.record(req.Method, "ok")
	return s.encode(resultResponse(req.ID, result))
}

func (s *Server) handle(ctx context.Context, req *request) (interface{}, *rpcError) {
	switch req.Method {
	case "initialize":
		return s.initialize(req.Params)
	case "ping":
		return struct{}{}, nil
	case "tools/list":
		return s.listTools(), nil
	case "tools/call":
		return s.callTool(ctx, req.Params)
	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)}
	}
}

// handleNotification accepts client notifications without replying;
// JSON-RPC forbids answering messages that carry no ID.
func (s *Server) handleNotification(req *request) {
	switch req.Method {
	case "notifications/initialized", "notifications/cancelled":
	default:
		s.log.Debug("ignoring notification", zap.String("method", req.Method))
	}
}

func (s *Server) initialize(raw json.RawMessage) (interface{}, *rpcError) {
	var params initializeParams
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &params); err != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: "invalid initialize params"}
		}
	}

	version := negotiateVersion(params.ProtocolVersion)
	s.log.Info("client initialized",
		zap.String("client", params.ClientInfo.Name),
		zap.String("client_version", params.ClientInfo.Version),
		zap.String("protocol_version", version),
	)

	return initializeResult{
		ProtocolVersion: version,
		Capabilities:    capabilities{Tools: toolsCapability{ListChanged: false}},
		ServerInfo:      serverInfo{Name: s.info.Name, Version: s.info.Version},
		Instructions:    s.info.Instructions,
	}, nil
}

func (s *Server) listTools() listToolsResult {
	tools := s.registry.Tools()
	descriptors := make([]toolDescriptor, 0, len(tools))
	for _, tool := range tools {
		descriptors = append(descriptors, descriptor(tool))
	}
	return listToolsResult{Tools: descriptors}
}

func (s *Server) callTool(ctx context.Context, raw json.RawMessage) (interface{}, *rpcError) {
	var params callParams
	if err := sonic.Unmarshal(raw, &params); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "invalid tools/call params"}
	}
	if params.Name == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "tool name required"}
	}

	id := toolID(params.Name)
	if _, ok := s.registry.Tool(id); !ok {
		return nil, &rpcError{Code: codeInvalidParams, Message: fmt.Sprintf("unknown tool: %s", params.Name)}
	}

	transport := transportName
	callCtx := &types.Context{Transport: &transport}

	start := time.Now()
	result, err := s.registry.Execute(ctx, id, params.Arguments, callCtx)
	duration := time.Since(start)

	if err != nil || result == nil || !result.Success {
		return s.softError(id, result, err, duration), nil
	}

	payload := result.Data
	if payload == nil {
		payload = map[string]interface{}{}
	}
	text, merr := sonic.Marshal(payload)
	if merr != nil {
		return nil, &rpcError{Code: codeInternal, Message: "failed to encode tool result"}
	}

	s.recordTool(id, "success", duration)
	return callResult{Content: textContent(string(text))}, nil
}

// softError renders a tool failure inside a successful response so the
// calling agent can read the message and react instead of aborting.
func (s *Server) softError(toolID string, result *types.Result, err error, duration time.Duration) callResult {
	message := "tool call failed"
	switch {
	case result != nil && result.Error != nil:
		message = *result.Error
	case err != nil:
		message = err.Error()
	}

	category, retryable := Classify(err)
	s.recordTool(toolID, "error", duration)
	if s.metrics != nil {
		s.metrics.RecordToolError(toolID, string(category))
	}
	s.log.Warn("tool call failed",
		zap.String("tool", toolID),
		zap.String("category", string(category)),
		zap.String("message", message),
	)

	text, merr := sonic.Marshal(map[string]interface{}{
		"error":     message,
		"category":  category,
		"retryable": retryable,
	})
	if merr != nil {
		text = []byte(message)
	}
	return callResult{Content: textContent(string(text)), IsError: true}
}

func (s *Server) encode(resp *response) []byte {
	data, err := sonic.Marshal(resp)
	if err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
		return []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"response encoding failed"}}`)
	}
	return data
}

func (s *Server) record(method, status string) {
	if s.metrics != nil {
		s.metrics.RecordMCPRequest(method, status)
	}
}

func (s *Server) recordTool(tool, status string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordToolCall(tool, status, duration)
	}
}
