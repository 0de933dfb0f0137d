package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/slidewire/slidewire/internal/api/http"
	"github.com/slidewire/slidewire/internal/api/middleware"
	"github.com/slidewire/slidewire/internal/config"
	"github.com/slidewire/slidewire/internal/logging"
	"github.com/slidewire/slidewire/internal/mcp"
	"github.com/slidewire/slidewire/internal/registry"
	"github.com/slidewire/slidewire/internal/telemetry"
	"github.com/slidewire/slidewire/internal/ws"
)

// Options carries the assembled dependencies.
type Options struct {
	Config   *config.Config
	Registry *registry.Registry
	Bridge   apihttp.Bridge
	MCP      *mcp.Server
	Metrics  *telemetry.Metrics
	Log      *logging.Logger
	Version  string
}

// Server wraps the HTTP server and its router.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *logging.Logger
}

// New assembles the router, middleware chain, and endpoint set.
func New(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = logging.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if opts.Config.RateLimit.Enabled {
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: opts.Config.RateLimit.RequestsPerSecond,
			Burst:             opts.Config.RateLimit.Burst,
		}))
	}
	engine.Use(telemetry.Middleware(opts.Metrics))

	handlers := apihttp.NewHandlers(opts.Registry, opts.Bridge, opts.Metrics, log, opts.Version)
	wsHandler := ws.NewHandler(opts.MCP, log, opts.Metrics)

	// Probes and metrics stay unauthenticated so orchestration can
	// reach them.
	engine.GET("/", handlers.Root)
	engine.GET("/health", handlers.Health)
	engine.GET("/ready", handlers.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := func(group *gin.RouterGroup) *gin.RouterGroup {
		if opts.Config.Auth.Token != "" {
			group.Use(middleware.BearerAuth(opts.Config.Auth.Token))
		}
		return group
	}

	api := authed(engine.Group("/api"))
	api.GET("/tools", handlers.ListTools)
	api.POST("/discover", handlers.DiscoverTools)
	api.POST("/execute", handlers.ExecuteTool)
	api.GET("/status", handlers.Status)

	socket := authed(engine.Group("/ws"))
	socket.GET("", wsHandler.HandleConnection)

	cfg := opts.Config.Server
	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log,
	}
}

// Run serves until the listener fails or Shutdown closes it.
func (s *Server) Run() error {
	s.log.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
