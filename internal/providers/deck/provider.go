// Package deck exposes presentation lifecycle tools: open, create,
// save, close, session target pinning, document properties, and
// template discovery.
package deck

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
	PinByName(ctx context.Context, name string) (*powerpoint.PinnedInfo, error)
	PinByPosition(ctx context.Context, position int) (*powerpoint.PinnedInfo, error)
	Unpin(ctx context.Context) error
}

// Provider implements presentation tools
type Provider struct {
	client          Client
	templateDirs    []string
	templatePattern string
}

// NewProvider creates a deck provider. templateDirs and pattern feed
// the template discovery tool.
func NewProvider(client Client, templateDirs []string, templatePattern string) *Provider {
	if templatePattern == "" {
		templatePattern = "**/*.{potx,pptx}"
	}
	return &Provider{
		client:          client,
		templateDirs:    templateDirs,
		templatePattern: templatePattern,
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "deck",
		Name:        "Presentations",
		Description: "Presentation lifecycle: open, create, save, close, target pinning, and properties",
		Category:    types.CategoryPresentation,
		Capabilities: []string{
			"open",
			"create",
			"save",
			"target_pinning",
			"properties",
			"templates",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "deck.list",
			Name:        "List Presentations",
			Description: "List open presentations with their 1-based positions",
			Parameters:  []types.Parameter{},
			Returns:     "array",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "deck.open",
			Name:        "Open Presentation",
			Description: "Open a presentation file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path to open", Required: true},
				{Name: "read_only", Type: "boolean", Description: "Open without write access", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "deck.create",
			Name:        "Create Presentation",
			Description: "Create a new presentation, optionally from a template file",
			Parameters: []types.Parameter{
				{Name: "template", Type: "string", Description: "Template file path (.potx or .pptx)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "deck.save",
			Name:        "Save Presentation",
			Description: "Save the target presentation to its existing path",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			Idempotent:  true,
		},
		{
			ID:          "deck.save_as",
			Name:        "Save Presentation As",
			Description: "Save the target presentation to a new path, converting by format or extension",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Destination file path", Required: true},
				{Name: "format", Type: "string", Description: "File format (pptx, ppt, potx, ppsx, pdf, xps, png, jpg); inferred from the extension when omitted", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "deck.close",
			Name:        "Close Presentation",
			Description: "Close the target presentation, discarding unsaved changes unless save is set",
			Parameters: []types.Parameter{
				{Name: "save", Type: "boolean", Description: "Save before closing", Required: false},
			},
			Returns:     "object",
			Destructive: true,
		},
		{
			ID:          "deck.target",
			Name:        "Target Presentation",
			Description: "Pin the presentation that later tools act on, by 1-based position or by name",
			Parameters: []types.Parameter{
				{Name: "position", Type: "number", Description: "1-based position in the open presentation list", Required: false},
				{Name: "name", Type: "string", Description: "Presentation name or full path (case-insensitive)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "deck.untarget",
			Name:        "Clear Target",
			Description: "Clear the pinned target so tools follow the active presentation again",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			Idempotent:  true,
		},
		{
			ID:          "deck.properties",
			Name:        "Get Properties",
			Description: "Read built-in document properties of the target presentation",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "deck.set_properties",
			Name:        "Set Properties",
			Description: "Write built-in document properties such as Title, Author, or Company",
			Parameters: []types.Parameter{
				{Name: "properties", Type: "object", Description: "Property name to value map", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "deck.templates",
			Name:        "List Templates",
			Description: "List presentation template files under the configured template directories",
			Parameters:  []types.Parameter{},
			Returns:     "array",
			ReadOnly:    true,
			Idempotent:  true,
		},
	}
}

// Execute runs a presentation tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "deck.list":
		return p.list(ctx)
	case "deck.open":
		return p.open(ctx, params)
	case "deck.create":
		return p.create(ctx, params)
	case "deck.save":
		return p.save(ctx)
	case "deck.save_as":
		return p.saveAs(ctx, params)
	case "deck.close":
		return p.close(ctx, params)
	case "deck.target":
		return p.target(ctx, params)
	case "deck.untarget":
		return p.untarget(ctx)
	case "deck.properties":
		return p.properties(ctx)
	case "deck.set_properties":
		return p.setProperties(ctx, params)
	case "deck.templates":
		return p.templates(ctx)
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
