package app

import (
	"context"
	"fmt"
	"os"

	"github.com/slidewire/slidewire/internal/com"
	"github.com/slidewire/slidewire/internal/config"
	"github.com/slidewire/slidewire/internal/logging"
	"github.com/slidewire/slidewire/internal/mcp"
	"github.com/slidewire/slidewire/internal/powerpoint"
	appprov "github.com/slidewire/slidewire/internal/providers/app"
	"github.com/slidewire/slidewire/internal/providers/deck"
	"github.com/slidewire/slidewire/internal/providers/export"
	"github.com/slidewire/slidewire/internal/providers/media"
	"github.com/slidewire/slidewire/internal/providers/sections"
	"github.com/slidewire/slidewire/internal/providers/shape"
	"github.com/slidewire/slidewire/internal/providers/show"
	"github.com/slidewire/slidewire/internal/providers/slide"
	"github.com/slidewire/slidewire/internal/providers/system"
	"github.com/slidewire/slidewire/internal/providers/table"
	"github.com/slidewire/slidewire/internal/providers/text"
	"github.com/slidewire/slidewire/internal/registry"
	"github.com/slidewire/slidewire/internal/server"
	"github.com/slidewire/slidewire/internal/telemetry"
	"github.com/slidewire/slidewire/internal/win32"
)

// instructions is handed to MCP clients during initialize.
const instructions = "Tools drive a live PowerPoint instance. Open or attach to a " +
	"presentation with the deck tools first; the session then pins that " +
	"presentation as the target for every other call. Calls execute " +
	"sequentially on a single automation thread, so long operations such " +
	"as exports delay the calls behind them."

// App assembles the full service: logger, metrics, automation bridge,
// session, tool registry, and both transports.
type App struct {
	cfg      *config.Config
	log      *logging.Logger
	metrics  *telemetry.Metrics
	bridge   *com.Bridge
	session  *com.Session
	client   *powerpoint.Client
	registry *registry.Registry
	mcp      *mcp.Server
	version  string
}

// New wires every subsystem and starts the automation worker. The
// returned App owns the worker thread; call Close to release it.
func New(cfg *config.Config, version string) (*App, error) {
	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}

	metrics := telemetry.NewMetrics()

	connector := powerpoint.NewConnector(log.Component("connector"))
	session := com.NewSession(connector, log.Component("session"))

	bridge := com.New(com.Config{
		QueueCapacity: cfg.Bridge.QueueCapacity,
		CallTimeout:   cfg.Bridge.CallTimeout,
		JoinTimeout:   cfg.Bridge.JoinTimeout,
		RetryAttempts: cfg.Bridge.RetryAttempts,
		RetryInterval: cfg.Bridge.RetryInterval,
		Recovery: func() {
			win32.DismissDialog(cfg.PowerPoint.WindowClass, cfg.PowerPoint.DismissPause)
		},
		Cleanup: session.Release,
	}, log.Component("bridge"))
	bridge.Start()

	client := powerpoint.NewClient(bridge, session)

	reg, err := NewRegistry(client, cfg)
	if err != nil {
		bridge.Stop()
		return nil, fmt.Errorf("build registry: %w", err)
	}

	mcpServer := mcp.NewServer(reg, log.Component("mcp"), mcp.Info{
		Name:         "slidewire",
		Version:      version,
		Instructions: instructions,
	}, metrics)

	metrics.ObserveBridge(func() telemetry.BridgeStats {
		s := client.BridgeStats()
		return telemetry.BridgeStats{
			QueueDepth: s.QueueDepth,
			InFlight:   s.InFlight,
			Running:    s.Running,
			Executed:   s.Executed,
			Retries:    s.Retries,
			Dismissals: s.Dismissals,
			Timeouts:   s.Timeouts,
		}
	})

	return &App{
		cfg:      cfg,
		log:      log,
		metrics:  metrics,
		bridge:   bridge,
		session:  session,
		client:   client,
		registry: reg,
		mcp:      mcpServer,
		version:  version,
	}, nil
}

// NewRegistry wires every tool provider against the automation client.
// Tool definitions never touch the client, so a nil client is fine for
// catalog inspection.
func NewRegistry(client *powerpoint.Client, cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New()
	providers := []registry.Provider{
		appprov.NewProvider(client),
		deck.NewProvider(client, cfg.Templates.Dirs, cfg.Templates.Pattern),
		slide.NewProvider(client),
		shape.NewProvider(client),
		text.NewProvider(client),
		table.NewProvider(client),
		media.NewProvider(client, cfg.Media),
		export.NewProvider(client, cfg.Export),
		show.NewProvider(client),
		sections.NewProvider(client),
		system.NewProvider(client),
	}
	for _, p := range providers {
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// RunStdio serves MCP over stdin and stdout until ctx is canceled or
// stdin closes. Logs go to stderr so the protocol stream stays clean.
func (a *App) RunStdio(ctx context.Context) error {
	a.log.Info("serving MCP over stdio")
	return a.mcp.Serve(ctx, os.Stdin, os.Stdout)
}

// RunHTTP serves the REST and WebSocket transports until ctx is
// canceled, then drains in-flight requests within the shutdown budget.
func (a *App) RunHTTP(ctx context.Context) error {
	srv := server.New(server.Options{
		Config:   a.cfg,
		Registry: a.registry,
		Bridge:   a.client,
		MCP:      a.mcp,
		Metrics:  a.metrics,
		Log:      a.log,
		Version:  a.version,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Registry exposes the tool registry, mainly for catalog commands.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Close stops the automation worker. The worker releases the session,
// runs a garbage collection pass, and leaves its apartment before
// exiting. Safe to call repeatedly.
func (a *App) Close() {
	a.bridge.Stop()
	_ = a.log.Sync()
}
