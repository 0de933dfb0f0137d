// Package slide exposes slide-level tools: listing, CRUD, ordering,
// layouts, speaker notes, and backgrounds.
package slide

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

// Provider implements slide tools
type Provider struct {
	client Client
}

// NewProvider creates a slide provider
func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "slide",
		Name:        "Slides",
		Description: "Slide CRUD, ordering, layouts, speaker notes, and backgrounds",
		Category:    types.CategorySlides,
		Capabilities: []string{
			"list",
			"add",
			"reorder",
			"layouts",
			"notes",
			"background",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "slide.list",
			Name:        "List Slides",
			Description: "List slides of the target presentation with layout and shape counts",
			Parameters:  []types.Parameter{},
			Returns:     "array",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "slide.get",
			Name:        "Get Slide",
			Description: "Describe one slide: layout, shape inventory, and notes presence",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based slide index", Required: true},
			},
			Returns:    "object",
			ReadOnly:   true,
			Idempotent: true,
		},
		{
			ID:          "slide.add",
			Name:        "Add Slide",
			Description: "Insert a slide, blank or from a named custom layout",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based insert position; appends when omitted", Required: false},
				{Name: "layout", Type: "string", Description: "Custom layout name from slide.layouts; blank when omitted", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "slide.delete",
			Name:        "Delete Slide",
			Description: "Delete the slide at the given index",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based slide index", Required: true},
			},
			Returns:     "object",
			Destructive: true,
		},
		{
			ID:          "slide.duplicate",
			Name:        "Duplicate Slide",
			Description: "Duplicate the slide at the given index",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based slide index", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "slide.move",
			Name:        "Move Slide",
			Description: "Move a slide to a new position",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based slide index", Required: true},
				{Name: "to", Type: "number", Description: "1-based destination position", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "slide.select",
			Name:        "Select Slide",
			Description: "Navigate the editing view to a slide",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based slide index", Required: true},
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "slide.layouts",
			Name:        "List Layouts",
			Description: "List the custom layouts available from the slide master",
			Parameters:  []types.Parameter{},
			Returns:     "array",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "slide.notes_get",
			Name:        "Get Notes",
			Description: "Read the speaker notes of a slide",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based slide index", Required: true},
			},
			Returns:    "object",
			ReadOnly:   true,
			Idempotent: true,
		},
		{
			ID:          "slide.notes_set",
			Name:        "Set Notes",
			Description: "Replace the speaker notes of a slide",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based slide index", Required: true},
				{Name: "text", Type: "string", Description: "Notes text", Required: true},
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "slide.background",
			Name:        "Set Background",
			Description: "Set a solid color or picture background on a slide",
			Parameters: []types.Parameter{
				{Name: "index", Type: "number", Description: "1-based slide index", Required: true},
				{Name: "color", Type: "string", Description: "Hex color like #RRGGBB", Required: false},
				{Name: "picture", Type: "string", Description: "Image file path", Required: false},
			},
			Returns: "object",
		},
	}
}

// Execute runs a slide tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "slide.list":
		return p.list(ctx)
	case "slide.get":
		return p.get(ctx, params)
	case "slide.add":
		return p.add(ctx, params)
	case "slide.delete":
		return p.delete(ctx, params)
	case "slide.duplicate":
		return p.duplicate(ctx, params)
	case "slide.move":
		return p.move(ctx, params)
	case "slide.select":
		return p.selectSlide(ctx, params)
	case "slide.layouts":
		return p.layouts(ctx)
	case "slide.notes_get":
		return p.notesGet(ctx, params)
	case "slide.notes_set":
		return p.notesSet(ctx, params)
	case "slide.background":
		return p.background(ctx, params)
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
