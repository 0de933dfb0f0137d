// Package shape exposes shape tools: creation, geometry, styling,
// arrangement, and z-ordering on a slide.
package shape

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/types"
)

// Client is the automation surface this provider drives
type Client interface {
	WithSlide(ctx context.Context, index int, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error)) (interface{}, error)
	WithShape(ctx context.Context, slideIndex int, ref powerpoint.ShapeRef, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error)) (interface{}, error)
}

// Provider implements shape tools
type Provider struct {
	client Client
}

// NewProvider creates a shape provider
func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "shape",
		Name:        "Shapes",
		Description: "Shape creation, geometry, fill and line styling, grouping, and ordering",
		Category:    types.CategoryContent,
		Capabilities: []string{
			"add",
			"geometry",
			"styling",
			"alignment",
			"grouping",
			"z_order",
		},
		Tools: p.getTools(),
	}
}

func slideParam() types.Parameter {
	return types.Parameter{Name: "slide", Type: "number", Description: "1-based slide index", Required: true}
}

func refParams() []types.Parameter {
	return []types.Parameter{
		slideParam(),
		{Name: "shape", Type: "string", Description: "Shape name", Required: false},
		{Name: "shape_index", Type: "number", Description: "1-based shape index, used when no name is given", Required: false},
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "shape.list",
			Name:        "List Shapes",
			Description: "List the shapes on a slide with type, geometry, and text",
			Parameters:  []types.Parameter{slideParam()},
			Returns:     "array",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "shape.get",
			Name:        "Get Shape",
			Description: "Describe one shape: type, geometry, rotation, and text",
			Parameters:  refParams(),
			Returns:     "object",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "shape.add",
			Name:        "Add Shape",
			Description: "Add an autoshape to a slide",
			Parameters: []types.Parameter{
				slideParam(),
				{Name: "type", Type: "string", Description: "Autoshape type", Required: true, Enum: powerpoint.AutoShapeTypeNames()},
				{Name: "left", Type: "number", Description: "Left edge in points", Required: false, Default: 100},
				{Name: "top", Type: "number", Description: "Top edge in points", Required: false, Default: 100},
				{Name: "width", Type: "number", Description: "Width in points", Required: false, Default: 200},
				{Name: "height", Type: "number", Description: "Height in points", Required: false, Default: 100},
			},
			Returns: "object",
		},
		{
			ID:          "shape.add_line",
			Name:        "Add Line",
			Description: "Add a straight line between two points",
			Parameters: []types.Parameter{
				slideParam(),
				{Name: "x1", Type: "number", Description: "Start X in points", Required: true},
				{Name: "y1", Type: "number", Description: "Start Y in points", Required: true},
				{Name: "x2", Type: "number", Description: "End X in points", Required: true},
				{Name: "y2", Type: "number", Description: "End Y in points", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "shape.delete",
			Name:        "Delete Shape",
			Description: "Delete a shape from a slide",
			Parameters:  refParams(),
			Returns:     "object",
			Destructive: true,
		},
		{
			ID:          "shape.set_geometry",
			Name:        "Set Geometry",
			Description: "Move or resize a shape; omitted dimensions keep their values",
			Parameters: append(refParams(),
				types.Parameter{Name: "left", Type: "number", Description: "Left edge in points", Required: false},
				types.Parameter{Name: "top", Type: "number", Description: "Top edge in points", Required: false},
				types.Parameter{Name: "width", Type: "number", Description: "Width in points", Required: false},
				types.Parameter{Name: "height", Type: "number", Description: "Height in points", Required: false},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "shape.set_fill",
			Name:        "Set Fill",
			Description: "Set fill color, transparency, or visibility",
			Parameters: append(refParams(),
				types.Parameter{Name: "color", Type: "string", Description: "Hex color like #RRGGBB", Required: false},
				types.Parameter{Name: "transparency", Type: "number", Description: "0 opaque to 1 transparent", Required: false},
				types.Parameter{Name: "visible", Type: "boolean", Description: "Fill visibility", Required: false},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "shape.set_line",
			Name:        "Set Line",
			Description: "Set outline color, weight, or visibility",
			Parameters: append(refParams(),
				types.Parameter{Name: "color", Type: "string", Description: "Hex color like #RRGGBB", Required: false},
				types.Parameter{Name: "weight", Type: "number", Description: "Line weight in points", Required: false},
				types.Parameter{Name: "visible", Type: "boolean", Description: "Outline visibility", Required: false},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "shape.set_shadow",
			Name:        "Set Shadow",
			Description: "Toggle the shape shadow",
			Parameters: append(refParams(),
				types.Parameter{Name: "visible", Type: "boolean", Description: "Shadow visibility", Required: true},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "shape.set_rotation",
			Name:        "Set Rotation",
			Description: "Rotate a shape to an absolute angle",
			Parameters: append(refParams(),
				types.Parameter{Name: "degrees", Type: "number", Description: "Clockwise rotation in degrees", Required: true},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "shape.align",
			Name:        "Align Shapes",
			Description: "Align shapes to each other or to the slide",
			Parameters: []types.Parameter{
				slideParam(),
				{Name: "shapes", Type: "array", Description: "Shape names", Required: true, Items: "string"},
				{Name: "command", Type: "string", Description: "Alignment edge", Required: true, Enum: []string{"left", "center", "right", "top", "middle", "bottom"}},
				{Name: "relative_to_slide", Type: "boolean", Description: "Align against the slide instead of the group extent", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "shape.distribute",
			Name:        "Distribute Shapes",
			Description: "Distribute shapes evenly",
			Parameters: []types.Parameter{
				slideParam(),
				{Name: "shapes", Type: "array", Description: "Shape names", Required: true, Items: "string"},
				{Name: "direction", Type: "string", Description: "Distribution axis", Required: true, Enum: []string{"horizontal", "vertical"}},
				{Name: "relative_to_slide", Type: "boolean", Description: "Distribute across the slide instead of the group extent", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "shape.group",
			Name:        "Group Shapes",
			Description: "Group two or more shapes",
			Parameters: []types.Parameter{
				slideParam(),
				{Name: "shapes", Type: "array", Description: "Shape names, at least two", Required: true, Items: "string"},
			},
			Returns: "object",
		},
		{
			ID:          "shape.ungroup",
			Name:        "Ungroup Shape",
			Description: "Ungroup a grouped shape",
			Parameters:  refParams(),
			Returns:     "object",
		},
		{
			ID:          "shape.z_order",
			Name:        "Set Z-Order",
			Description: "Change the stacking order of a shape",
			Parameters: append(refParams(),
				types.Parameter{Name: "command", Type: "string", Description: "Stacking move", Required: true, Enum: []string{"bring_to_front", "send_to_back", "bring_forward", "send_backward"}},
			),
			Returns: "object",
		},
		{
			ID:          "shape.duplicate",
			Name:        "Duplicate Shape",
			Description: "Duplicate a shape on its slide",
			Parameters:  refParams(),
			Returns:     "object",
		},
		{
			ID:          "shape.set_name",
			Name:        "Rename Shape",
			Description: "Set the name of a shape",
			Parameters: append(refParams(),
				types.Parameter{Name: "name", Type: "string", Description: "New shape name", Required: true},
			),
			Returns:    "object",
			Idempotent: true,
		},
	}
}

// Execute runs a shape tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "shape.list":
		return p.list(ctx, params)
	case "shape.get":
		return p.get(ctx, params)
	case "shape.add":
		return p.add(ctx, params)
	case "shape.add_line":
		return p.addLine(ctx, params)
	case "shape.delete":
		return p.delete(ctx, params)
	case "shape.set_geometry":
		return p.setGeometry(ctx, params)
	case "shape.set_fill":
		return p.setFill(ctx, params)
	case "shape.set_line":
		return p.setLine(ctx, params)
	case "shape.set_shadow":
		return p.setShadow(ctx, params)
	case "shape.set_rotation":
		return p.setRotation(ctx, params)
	case "shape.align":
		return p.align(ctx, params)
	case "shape.distribute":
		return p.distribute(ctx, params)
	case "shape.group":
		return p.group(ctx, params)
	case "shape.ungroup":
		return p.ungroup(ctx, params)
	case "shape.z_order":
		return p.zOrder(ctx, params)
	case "shape.duplicate":
		return p.duplicate(ctx, params)
	case "shape.set_name":
		return p.setName(ctx, params)
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
