// Package show controls slide shows: start, end, navigation, and
// state queries against the running show window.
package show

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/types"
)

// Client is the automation surface this provider drives
type Client interface {
	WithApp(ctx context.Context, fn func(app *powerpoint.Application) (interface{}, error)) (interface{}, error)
	WithTarget(ctx context.Context, fn func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error)) (interface{}, error)
}

// Provider implements slide show tools
type Provider struct {
	client Client
}

// NewProvider creates a show provider
func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "show",
		Name:        "Slide Show",
		Description: "Slide show control: start, end, navigation, and state",
		Category:    types.CategoryPlayback,
		Capabilities: []string{
			"start",
			"navigation",
			"state",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "show.start",
			Name:        "Start Show",
			Description: "Start the target presentation as a slide show",
			Parameters: []types.Parameter{
				{Name: "from", Type: "number", Description: "1-based slide to start from; omit to start at the beginning", Required: false},
				{Name: "kiosk", Type: "boolean", Description: "Run full screen without speaker controls", Required: false},
				{Name: "loop", Type: "boolean", Description: "Restart the show when it reaches the end", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "show.end",
			Name:        "End Show",
			Description: "End the running slide show; succeeds when none is running",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			Idempotent:  true,
		},
		{
			ID:          "show.next",
			Name:        "Next Step",
			Description: "Advance the running show by one step",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "show.previous",
			Name:        "Previous Step",
			Description: "Step the running show back",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "show.goto",
			Name:        "Go To Slide",
			Description: "Jump the running show to a slide",
			Parameters: []types.Parameter{
				{Name: "slide", Type: "number", Description: "1-based slide index", Required: true},
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "show.state",
			Name:        "Show State",
			Description: "Report whether a show is running, its position, and its state",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			ReadOnly:    true,
			Idempotent:  true,
		},
	}
}

// Execute runs a slide show tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "show.start":
		return p.start(ctx, params)
	case "show.end":
		return p.end(ctx)
	case "show.next":
		return p.next(ctx)
	case "show.previous":
		return p.previous(ctx)
	case "show.goto":
		return p.goTo(ctx, params)
	case "show.state":
		return p.state(ctx)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
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
