// Package http serves the REST surface: health probes, tool discovery,
// and tool execution. Domain failures travel inside the result envelope
// with HTTP 200; only protocol failures map to 4xx/5xx.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slidewire/slidewire/internal/api/middleware"
	"github.com/slidewire/slidewire/internal/com"
	"github.com/slidewire/slidewire/internal/logging"
	"github.com/slidewire/slidewire/internal/registry"
	"github.com/slidewire/slidewire/internal/telemetry"
	"github.com/slidewire/slidewire/internal/types"
)

// Bridge reports automation bridge state for health and status.
type Bridge interface {
	BridgeStats() com.Stats
}

// discoverLimit caps how many providers one discovery query returns.
const discoverLimit = 20

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *registry.Registry
	bridge   Bridge
	metrics  *telemetry.Metrics
	log      *logging.Logger
	version  string
	started  time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(reg *registry.Registry, bridge Bridge, metrics *telemetry.Metrics, log *logging.Logger, version string) *Handlers {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handlers{
		registry: reg,
		bridge:   bridge,
		metrics:  metrics,
		log:      log,
		version:  version,
		started:  time.Now(),
	}
}

// Root identifies the service
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "slidewire",
		"version": h.version,
	})
}

// Health reports liveness with registry and bridge detail
func (h *Handlers) Health(c *gin.Context) {
	stats := h.bridge.BridgeStats()
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"registry": h.registry.Stats(),
		"bridge": gin.H{
			"running":     stats.Running,
			"queue_depth": stats.QueueDepth,
		},
	})
}

// Ready reports readiness; the service can take traffic once the
// automation bridge worker is running
func (h *Handlers) Ready(c *gin.Context) {
	if !h.bridge.BridgeStats().Running {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ready":  false,
			"reason": "automation bridge is not running",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

// ListTools lists provider definitions, optionally by category
func (h *Handlers) ListTools(c *gin.Context) {
	categoryStr := c.Query("category")

	var category *types.Category
	if categoryStr != "" {
		if !validCategory(categoryStr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + categoryStr})
			return
		}
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverTools finds the providers most relevant to a query
func (h *Handlers) DiscoverTools(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit < 1 || limit > discoverLimit {
		limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"services": h.registry.Discover(req.Query, limit),
	})
}

// ExecuteTool executes a tool and returns the result envelope
func (h *Handlers) ExecuteTool(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := h.registry.Tool(req.ToolID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + req.ToolID})
		return
	}

	transport := "http"
	callCtx := &types.Context{Transport: &transport}
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		callCtx.RequestID = &id
	}

	timer := telemetry.NewTimer(h.metrics, req.ToolID)
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, callCtx)

	if err != nil || result == nil || !result.Success {
		timer.Stop("error")
		if result == nil {
			message := "tool call failed"
			if err != nil {
				message = err.Error()
			}
			result = &types.Result{Success: false, Error: &message}
		}
		c.JSON(http.StatusOK, result)
		return
	}

	timer.Stop("success")
	c.JSON(http.StatusOK, result)
}

// Status reports server runtime counters for dashboards
func (h *Handlers) Status(c *gin.Context) {
	stats := h.bridge.BridgeStats()
	snapshot := h.metrics.CurrentSnapshot()

	var avgMillis float64
	if snapshot.RequestCount > 0 {
		avgMillis = snapshot.TotalDuration / float64(snapshot.RequestCount) * 1000
	}

	c.JSON(http.StatusOK, gin.H{
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"registry":       h.registry.Stats(),
		"bridge": gin.H{
			"running":     stats.Running,
			"queue_depth": stats.QueueDepth,
			"in_flight":   stats.InFlight,
			"executed":    stats.Executed,
			"retries":     stats.Retries,
			"dismissals":  stats.Dismissals,
			"timeouts":    stats.Timeouts,
		},
		"http": gin.H{
			"requests":        snapshot.TotalRequests,
			"errors":          snapshot.TotalErrors,
			"avg_duration_ms": avgMillis,
		},
	})
}

func validCategory(s string) bool {
	switch types.Category(s) {
	case types.CategoryApplication, types.CategoryPresentation, types.CategorySlides,
		types.CategoryContent, types.CategoryMedia, types.CategoryExport,
		types.CategoryPlayback, types.CategorySystem:
		return true
	}
	return false
}
