package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/slidewire/slidewire/internal/mcp"
	"github.com/slidewire/slidewire/internal/registry"
)

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := mcp.NewServer(registry.New(), nil, mcp.Info{Name: "slidewire", Version: "test"}, nil)
	handler := NewHandler(srv, nil, nil)

	router := gin.New()
	router.GET("/ws", handler.HandleConnection)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandlesMCPFrames(t *testing.T) {
	conn := dialTestServer(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.Equal(t, "2.0", resp.JSONRPC)
	require.Equal(t, "1", string(resp.ID))
	require.JSONEq(t, `{}`, string(resp.Result))
}

func TestNotificationsProduceNoFrame(t *testing.T) {
	conn := dialTestServer(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)))

	// A follow-up request must be the first reply; the notification
	// produced none.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"2.0","id":2,"method":"ping"}`)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp struct {
		ID json.RawMessage `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.Equal(t, "2", string(resp.ID))
}

func TestToolsListOverSocket(t *testing.T) {
	conn := dialTestServer(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Tools []json.RawMessage `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.NotNil(t, resp.Result.Tools)
	require.Empty(t, resp.Result.Tools, "empty registry lists no tools")
}
