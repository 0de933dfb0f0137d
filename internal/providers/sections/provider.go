// Package sections groups slides into named sections: list, add,
// rename, reorder, delete, and slide assignment.
package sections

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/types"
)

// Client is the automation surface this provider drives
type Client interface {
	WithTarget(ctx context.Context, fn func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error)) (interface{}, error)
	WithSlide(ctx context.Context, index int, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error)) (interface{}, error)
}

// Provider implements section tools
type Provider struct {
	client Client
}

// NewProvider creates a sections provider
func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "sections",
		Name:        "Sections",
		Description: "Slide sections: list, add, rename, reorder, delete, and slide assignment",
		Category:    types.CategorySlides,
		Capabilities: []string{
			"list",
			"add",
			"rename",
			"move",
			"delete",
			"move_slide",
		},
		Tools: p.getTools(),
	}
}

func sectionParam() types.Parameter {
	return types.Parameter{
		Name:        "section",
		Type:        "number",
		Description: "1-based section index",
		Required:    true,
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "sections.list",
			Name:        "List Sections",
			Description: "List the presentation's sections with their slide spans",
			Parameters:  []types.Parameter{},
			Returns:     "array",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "sections.add",
			Name:        "Add Section",
			Description: "Add a section starting at a slide",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Description: "Section name", Required: true},
				{Name: "slide", Type: "number", Description: "1-based slide the new section starts at", Required: false, Default: 1},
			},
			Returns: "object",
		},
		{
			ID:          "sections.rename",
			Name:        "Rename Section",
			Description: "Rename a section",
			Parameters: []types.Parameter{
				sectionParam(),
				{Name: "name", Type: "string", Description: "New section name", Required: true},
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "sections.move",
			Name:        "Move Section",
			Description: "Move a section, with its slides, to a new position",
			Parameters: []types.Parameter{
				sectionParam(),
				{Name: "to", Type: "number", Description: "1-based position to move the section to", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "sections.delete",
			Name:        "Delete Section",
			Description: "Delete a section, keeping its slides unless delete_slides is set",
			Parameters: []types.Parameter{
				sectionParam(),
				{Name: "delete_slides", Type: "boolean", Description: "Also delete the section's slides", Required: false},
			},
			Returns:     "object",
			Destructive: true,
		},
		{
			ID:          "sections.move_slide",
			Name:        "Move Slide To Section",
			Description: "Move a slide to the start of a section",
			Parameters: []types.Parameter{
				{Name: "slide", Type: "number", Description: "1-based slide index", Required: true},
				sectionParam(),
			},
			Returns: "object",
		},
	}
}

// Execute runs a section tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "sections.list":
		return p.list(ctx)
	case "sections.add":
		return p.add(ctx, params)
	case "sections.rename":
		return p.rename(ctx, params)
	case "sections.move":
		return p.move(ctx, params)
	case "sections.delete":
		return p.delete(ctx, params)
	case "sections.move_slide":
		return p.moveSlide(ctx, params)
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
