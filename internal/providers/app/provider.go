// Package app exposes application-level tools: connection management,
// status introspection, visibility, ribbon commands, and undo/redo.
package app

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/com"
	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

// Client is the automation surface this provider drives
type Client interface {
	Connect(ctx context.Context, visible *bool) (string, error)
	Status(ctx context.Context) (*powerpoint.StatusInfo, error)
	Quit(ctx context.Context) error
	WithApp(ctx context.Context, fn func(app *powerpoint.Application) (interface{}, error)) (interface{}, error)
	BridgeStats() com.Stats
}

// Provider implements application tools
type Provider struct {
	client Client
}

// NewProvider creates an app provider
func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "app",
		Name:        "Application",
		Description: "PowerPoint application connection, visibility, and ribbon commands",
		Category:    types.CategoryApplication,
		Capabilities: []string{
			"connect",
			"status",
			"visibility",
			"ribbon_commands",
			"undo_redo",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "app.connect",
			Name:        "Connect",
			Description: "Attach to a running PowerPoint instance or launch a new one",
			Parameters: []types.Parameter{
				{Name: "visible", Type: "boolean", Description: "Make the window visible (applies to fresh launches)", Required: false},
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "app.status",
			Name:        "Status",
			Description: "Report connection state, application version, visibility, open presentation count, and bridge counters",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "app.set_visible",
			Name:        "Set Visible",
			Description: "Show or hide the application window",
			Parameters: []types.Parameter{
				{Name: "visible", Type: "boolean", Description: "Window visibility", Required: true},
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "app.execute_mso",
			Name:        "Execute Ribbon Command",
			Description: "Run a named ribbon (idMso) command, e.g. SlideNewSlide",
			Parameters: []types.Parameter{
				{Name: "command", Type: "string", Description: "Ribbon command identifier", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "app.undo",
			Name:        "Undo",
			Description: "Undo the last application action",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "app.redo",
			Name:        "Redo",
			Description: "Redo the last undone application action",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "app.quit",
			Name:        "Quit",
			Description: "Exit the application; unsaved changes may prompt or be lost",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			Destructive: true,
		},
	}
}

// Execute runs an application tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "app.connect":
		return p.connect(ctx, params)
	case "app.status":
		return p.status(ctx)
	case "app.set_visible":
		return p.setVisible(ctx, params)
	case "app.execute_mso":
		return p.executeMso(ctx, params)
	case "app.undo":
		return p.undo(ctx)
	case "app.redo":
		return p.redo(ctx)
	case "app.quit":
		return p.quit(ctx)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) connect(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	visible, err := params.BoolPtr(args, "visible")
	if err != nil {
		return failure(err.Error())
	}

	mode, err := p.client.Connect(ctx, visible)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"connected": true,
		"mode":      mode,
	})
}

func (p *Provider) status(ctx context.Context) (*types.Result, error) {
	info, err := p.client.Status(ctx)
	if err != nil {
		return failure(err.Error())
	}

	stats := p.client.BridgeStats()
	return success(map[string]interface{}{
		"connected":     info.Connected,
		"launched":      info.Launched,
		"pinned":        info.Pinned,
		"version":       info.Version,
		"build":         info.Build,
		"visible":       info.Visible,
		"presentations": info.Presentations,
		"bridge": map[string]interface{}{
			"running":     stats.Running,
			"queue_depth": stats.QueueDepth,
			"in_flight":   stats.InFlight,
			"executed":    stats.Executed,
			"retries":     stats.Retries,
			"dismissals":  stats.Dismissals,
			"timeouts":    stats.Timeouts,
		},
	})
}

func (p *Provider) setVisible(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	visible, err := params.BoolPtr(args, "visible")
	if err != nil {
		return failure(err.Error())
	}
	if visible == nil {
		return failure("visible parameter required")
	}

	_, err = p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		return nil, app.SetVisible(*visible)
	})
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"visible": *visible})
}

func (p *Provider) executeMso(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	command, err := params.String(args, "command", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		return nil, app.ExecuteMso(command)
	})
	if err != nil {
		return failure(fmt.Sprintf("ribbon command %s failed: %v", command, err))
	}

	return success(map[string]interface{}{"executed": command})
}

func (p *Provider) undo(ctx context.Context) (*types.Result, error) {
	_, err := p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		return nil, app.Undo()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"undone": true})
}

func (p *Provider) redo(ctx context.Context) (*types.Result, error) {
	_, err := p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		return nil, app.Redo()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"redone": true})
}

func (p *Provider) quit(ctx context.Context) (*types.Result, error) {
	if err := p.client.Quit(ctx); err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"quit": true})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    data,
	}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{
		Success: false,
		Error:   &errMsg,
	}, fmt.Errorf("%s", message)
}
