// Package text exposes text tools: reading slide text, editing shape
// text, fonts, bullets, find and replace, and text boxes.
package text

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
	WithShape(ctx context.Context, slideIndex int, ref powerpoint.ShapeRef, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error)) (interface{}, error)
}

// Provider implements text tools
type Provider struct {
	client Client
}

// NewProvider creates a text provider
func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "text",
		Name:        "Text",
		Description: "Slide text inventory, shape text editing, fonts, bullets, and find/replace",
		Category:    types.CategoryContent,
		Capabilities: []string{
			"read",
			"edit",
			"format",
			"bullets",
			"find_replace",
		},
		Tools: p.getTools(),
	}
}

func shapeRefParams() []types.Parameter {
	return []types.Parameter{
		{Name: "slide", Type: "number", Description: "1-based slide index", Required: true},
		{Name: "shape", Type: "string", Description: "Shape name", Required: false},
		{Name: "shape_index", Type: "number", Description: "1-based shape index, used when no name is given", Required: false},
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "text.get",
			Name:        "Get Slide Text",
			Description: "Read the text of every shape on a slide",
			Parameters: []types.Parameter{
				{Name: "slide", Type: "number", Description: "1-based slide index", Required: true},
			},
			Returns:    "array",
			ReadOnly:   true,
			Idempotent: true,
		},
		{
			ID:          "text.set",
			Name:        "Set Text",
			Description: "Replace the text of a shape",
			Parameters: append(shapeRefParams(),
				types.Parameter{Name: "text", Type: "string", Description: "New text", Required: true},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "text.append",
			Name:        "Append Text",
			Description: "Append text to a shape",
			Parameters: append(shapeRefParams(),
				types.Parameter{Name: "text", Type: "string", Description: "Text to append", Required: true},
			),
			Returns: "object",
		},
		{
			ID:          "text.format",
			Name:        "Format Text",
			Description: "Apply font attributes to a shape's text",
			Parameters: append(shapeRefParams(),
				types.Parameter{Name: "font", Type: "string", Description: "Font family name", Required: false},
				types.Parameter{Name: "size", Type: "number", Description: "Font size in points", Required: false},
				types.Parameter{Name: "bold", Type: "boolean", Description: "Bold", Required: false},
				types.Parameter{Name: "italic", Type: "boolean", Description: "Italic", Required: false},
				types.Parameter{Name: "underline", Type: "boolean", Description: "Underline", Required: false},
				types.Parameter{Name: "color", Type: "string", Description: "Hex color like #RRGGBB", Required: false},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "text.bullets",
			Name:        "Set Bullets",
			Description: "Set the bullet style and indent level of a shape's paragraphs",
			Parameters: append(shapeRefParams(),
				types.Parameter{Name: "style", Type: "string", Description: "Bullet style", Required: true, Enum: []string{"none", "bullet", "number"}},
				types.Parameter{Name: "level", Type: "number", Description: "Indent level 1-5", Required: false},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "text.find",
			Name:        "Find Text",
			Description: "Find text across the presentation or on one slide",
			Parameters: []types.Parameter{
				{Name: "text", Type: "string", Description: "Text to find", Required: true},
				{Name: "slide", Type: "number", Description: "Restrict the search to one slide", Required: false},
				{Name: "match_case", Type: "boolean", Description: "Case-sensitive match", Required: false},
				{Name: "whole_words", Type: "boolean", Description: "Whole word match", Required: false},
			},
			Returns:    "array",
			ReadOnly:   true,
			Idempotent: true,
		},
		{
			ID:          "text.replace",
			Name:        "Replace Text",
			Description: "Replace text across the presentation or on one slide",
			Parameters: []types.Parameter{
				{Name: "find", Type: "string", Description: "Text to replace", Required: true},
				{Name: "replace", Type: "string", Description: "Replacement text", Required: true},
				{Name: "slide", Type: "number", Description: "Restrict the replacement to one slide", Required: false},
				{Name: "match_case", Type: "boolean", Description: "Case-sensitive match", Required: false},
				{Name: "whole_words", Type: "boolean", Description: "Whole word match", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "text.add_textbox",
			Name:        "Add Text Box",
			Description: "Add a text box to a slide",
			Parameters: []types.Parameter{
				{Name: "slide", Type: "number", Description: "1-based slide index", Required: true},
				{Name: "text", Type: "string", Description: "Initial text", Required: false},
				{Name: "left", Type: "number", Description: "Left edge in points", Required: false, Default: 100},
				{Name: "top", Type: "number", Description: "Top edge in points", Required: false, Default: 100},
				{Name: "width", Type: "number", Description: "Width in points", Required: false, Default: 400},
				{Name: "height", Type: "number", Description: "Height in points", Required: false, Default: 50},
			},
			Returns: "object",
		},
		{
			ID:          "text.autofit",
			Name:        "Set Autofit",
			Description: "Control whether a shape grows to fit its text",
			Parameters: append(shapeRefParams(),
				types.Parameter{Name: "mode", Type: "string", Description: "Autofit mode", Required: true, Enum: []string{"none", "fit"}},
			),
			Returns:    "object",
			Idempotent: true,
		},
	}
}

// Execute runs a text tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "text.get":
		return p.get(ctx, params)
	case "text.set":
		return p.set(ctx, params)
	case "text.append":
		return p.append(ctx, params)
	case "text.format":
		return p.format(ctx, params)
	case "text.bullets":
		return p.bullets(ctx, params)
	case "text.find":
		return p.find(ctx, params)
	case "text.replace":
		return p.replace(ctx, params)
	case "text.add_textbox":
		return p.addTextbox(ctx, params)
	case "text.autofit":
		return p.autofit(ctx, params)
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
