package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec
	ToolErrors   *prometheus.CounterVec

	// MCP metrics
	MCPRequests   *prometheus.CounterVec
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// Connection state (0 = disconnected, 1 = attached, 2 = launched)
	ConnectionState prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for the JSON status API
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON status API
type Snapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalDuration float64
	RequestCount  int64
}

// BridgeStats is the bridge counter snapshot observed by Prometheus.
// The bridge itself stays metrics-free; the app layer supplies a
// snapshot closure at wiring time.
type BridgeStats struct {
	QueueDepth int
	InFlight   int
	Running    bool
	Executed   uint64
	Retries    uint64
	Dismissals uint64
	Timeouts   uint64
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidewire_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slidewire_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),

		// Tool metrics
		ToolCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidewire_tool_calls_total",
				Help: "Total number of tool calls",
			},
			[]string{"tool", "status"},
		),
		ToolDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slidewire_tool_duration_seconds",
				Help:    "Tool call duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"tool"},
		),
		ToolErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidewire_tool_errors_total",
				Help: "Total number of tool errors",
			},
			[]string{"tool", "error_type"},
		),

		// MCP metrics
		MCPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidewire_mcp_requests_total",
				Help: "Total number of MCP requests",
			},
			[]string{"method", "status"},
		),
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "slidewire_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidewire_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		ConnectionState: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "slidewire_connection_state",
				Help: "Host application connection state (0=disconnected, 1=attached, 2=launched)",
			},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "slidewire_uptime_seconds",
				Help: "Server uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// ObserveBridge registers gauge and counter functions over a bridge
// stats snapshot closure.
func (m *Metrics) ObserveBridge(stats func() BridgeStats) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "slidewire_bridge_queue_depth",
			Help: "Number of calls waiting on the execution queue",
		},
		func() float64 { return float64(stats().QueueDepth) },
	)
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "slidewire_bridge_in_flight",
			Help: "Number of calls currently executing on the worker",
		},
		func() float64 { return float64(stats().InFlight) },
	)
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "slidewire_bridge_running",
			Help: "Whether the bridge worker is running (0 or 1)",
		},
		func() float64 {
			if stats().Running {
				return 1
			}
			return 0
		},
	)
	promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "slidewire_bridge_executed_total",
			Help: "Total units of work executed on the worker",
		},
		func() float64 { return float64(stats().Executed) },
	)
	promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "slidewire_bridge_retries_total",
			Help: "Total busy-retry attempts",
		},
		func() float64 { return float64(stats().Retries) },
	)
	promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "slidewire_bridge_dismissals_total",
			Help: "Total dialog dismissal attempts",
		},
		func() float64 { return float64(stats().Dismissals) },
	)
	promauto.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "slidewire_bridge_timeouts_total",
			Help: "Total calls abandoned by their caller after the wall-clock timeout",
		},
		func() float64 { return float64(stats().Timeouts) },
	)
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordToolCall records a tool call
func (m *Metrics) RecordToolCall(tool, status string, duration time.Duration) {
	m.ToolCalls.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordToolError records a tool error
func (m *Metrics) RecordToolError(tool, errorType string) {
	m.ToolErrors.WithLabelValues(tool, errorType).Inc()
}

// RecordMCPRequest records an MCP protocol request
func (m *Metrics) RecordMCPRequest(method, status string) {
	m.MCPRequests.WithLabelValues(method, status).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// SetConnectionState sets the host connection state gauge
func (m *Metrics) SetConnectionState(state int) {
	m.ConnectionState.Set(float64(state))
}

// CurrentSnapshot returns a copy of the JSON status snapshot
func (m *Metrics) CurrentSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
