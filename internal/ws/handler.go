package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/slidewire/slidewire/internal/logging"
	"github.com/slidewire/slidewire/internal/mcp"
	"github.com/slidewire/slidewire/internal/telemetry"
)

// maxMessageSize caps one inbound frame, matching the stdio transport.
const maxMessageSize = 1 << 20

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Origin policy belongs to the CORS middleware in front of the
	// upgrade; the token middleware guards unauthorized callers.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests and relays MCP frames.
type Handler struct {
	mcp     *mcp.Server
	log     *logging.Logger
	metrics *telemetry.Metrics
}

// NewHandler creates a WebSocket MCP handler. metrics may be nil.
func NewHandler(srv *mcp.Server, log *logging.Logger, metrics *telemetry.Metrics) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{
		mcp:     srv,
		log:     log,
		metrics: metrics,
	}
}

// HandleConnection upgrades the request and answers MCP messages until
// the peer disconnects.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	conn.SetReadLimit(maxMessageSize)
	h.log.Debug("websocket client connected", zap.String("remote", conn.RemoteAddr().String()))

	ctx := c.Request.Context()
	for {
		kind, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("websocket read ended", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		h.record("in")

		reply := h.mcp.Dispatch(ctx, raw)
		if reply == nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			h.log.Warn("websocket write failed", zap.Error(err))
			return
		}
		h.record("out")
	}
}

func (h *Handler) record(direction string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, "jsonrpc")
	}
}
