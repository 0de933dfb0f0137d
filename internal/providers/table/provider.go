// Package table exposes table tools: creation, cell text and
// formatting, and row/column structure.
package table

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

// Provider implements table tools
type Provider struct {
	client Client
}

// NewProvider creates a table provider
func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "table",
		Name:        "Tables",
		Description: "Table creation, cell text and formatting, and row and column structure",
		Category:    types.CategoryContent,
		Capabilities: []string{
			"add",
			"read",
			"cells",
			"structure",
			"merge",
			"sizing",
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
		{Name: "shape", Type: "string", Description: "Table shape name", Required: false},
		{Name: "shape_index", Type: "number", Description: "1-based shape index, used when no name is given", Required: false},
	}
}

func cellParams() []types.Parameter {
	return append(refParams(),
		types.Parameter{Name: "row", Type: "number", Description: "1-based row", Required: true},
		types.Parameter{Name: "col", Type: "number", Description: "1-based column", Required: true},
	)
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "table.add",
			Name:        "Add Table",
			Description: "Add a table to a slide",
			Parameters: []types.Parameter{
				slideParam(),
				{Name: "rows", Type: "number", Description: "Number of rows", Required: true},
				{Name: "cols", Type: "number", Description: "Number of columns", Required: true},
				{Name: "left", Type: "number", Description: "Left edge in points", Required: false, Default: 50},
				{Name: "top", Type: "number", Description: "Top edge in points", Required: false, Default: 100},
				{Name: "width", Type: "number", Description: "Width in points", Required: false, Default: 600},
				{Name: "height", Type: "number", Description: "Height in points", Required: false, Default: 300},
				{Name: "row_heights", Type: "array", Description: "Heights in points for leading rows; shorter lists leave the rest at default", Required: false, Items: "number"},
				{Name: "col_widths", Type: "array", Description: "Widths in points for leading columns; shorter lists leave the rest at default", Required: false, Items: "number"},
			},
			Returns: "object",
		},
		{
			ID:          "table.get",
			Name:        "Get Table",
			Description: "Read table dimensions and the text of every cell",
			Parameters:  refParams(),
			Returns:     "object",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "table.set_cell",
			Name:        "Set Cell",
			Description: "Replace the text of one cell",
			Parameters: append(cellParams(),
				types.Parameter{Name: "text", Type: "string", Description: "Cell text; empty clears the cell", Required: true},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "table.format_cell",
			Name:        "Format Cell",
			Description: "Set fill and font attributes of one cell",
			Parameters: append(cellParams(),
				types.Parameter{Name: "fill", Type: "string", Description: "Cell background as hex like #RRGGBB", Required: false},
				types.Parameter{Name: "font", Type: "string", Description: "Font name", Required: false},
				types.Parameter{Name: "size", Type: "number", Description: "Font size in points", Required: false},
				types.Parameter{Name: "bold", Type: "boolean", Description: "Bold on or off", Required: false},
				types.Parameter{Name: "italic", Type: "boolean", Description: "Italic on or off", Required: false},
				types.Parameter{Name: "color", Type: "string", Description: "Font color as hex like #RRGGBB", Required: false},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "table.insert_row",
			Name:        "Insert Row",
			Description: "Insert a row before a position, or append one",
			Parameters: append(refParams(),
				types.Parameter{Name: "before", Type: "number", Description: "1-based row to insert before; omit to append", Required: false},
				types.Parameter{Name: "height", Type: "number", Description: "Height of the new row in points", Required: false},
			),
			Returns: "object",
		},
		{
			ID:          "table.insert_column",
			Name:        "Insert Column",
			Description: "Insert a column before a position, or append one",
			Parameters: append(refParams(),
				types.Parameter{Name: "before", Type: "number", Description: "1-based column to insert before; omit to append", Required: false},
				types.Parameter{Name: "width", Type: "number", Description: "Width of the new column in points", Required: false},
			),
			Returns: "object",
		},
		{
			ID:          "table.delete_row",
			Name:        "Delete Row",
			Description: "Delete a row",
			Parameters: append(refParams(),
				types.Parameter{Name: "row", Type: "number", Description: "1-based row to delete", Required: true},
			),
			Returns:     "object",
			Destructive: true,
		},
		{
			ID:          "table.delete_column",
			Name:        "Delete Column",
			Description: "Delete a column",
			Parameters: append(refParams(),
				types.Parameter{Name: "column", Type: "number", Description: "1-based column to delete", Required: true},
			),
			Returns:     "object",
			Destructive: true,
		},
		{
			ID:          "table.merge_cells",
			Name:        "Merge Cells",
			Description: "Merge the rectangle spanned by two cells",
			Parameters: append(refParams(),
				types.Parameter{Name: "start_row", Type: "number", Description: "Top-left cell row", Required: true},
				types.Parameter{Name: "start_col", Type: "number", Description: "Top-left cell column", Required: true},
				types.Parameter{Name: "end_row", Type: "number", Description: "Bottom-right cell row", Required: true},
				types.Parameter{Name: "end_col", Type: "number", Description: "Bottom-right cell column", Required: true},
			),
			Returns: "object",
		},
		{
			ID:          "table.set_column_width",
			Name:        "Set Column Width",
			Description: "Set the width of one column",
			Parameters: append(refParams(),
				types.Parameter{Name: "column", Type: "number", Description: "1-based column", Required: true},
				types.Parameter{Name: "width", Type: "number", Description: "Width in points", Required: true},
			),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "table.set_row_height",
			Name:        "Set Row Height",
			Description: "Set the height of one row",
			Parameters: append(refParams(),
				types.Parameter{Name: "row", Type: "number", Description: "1-based row", Required: true},
				types.Parameter{Name: "height", Type: "number", Description: "Height in points", Required: true},
			),
			Returns:    "object",
			Idempotent: true,
		},
	}
}

// Execute runs a table tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "table.add":
		return p.add(ctx, params)
	case "table.get":
		return p.get(ctx, params)
	case "table.set_cell":
		return p.setCell(ctx, params)
	case "table.format_cell":
		return p.formatCell(ctx, params)
	case "table.insert_row":
		return p.insertRow(ctx, params)
	case "table.insert_column":
		return p.insertColumn(ctx, params)
	case "table.delete_row":
		return p.deleteRow(ctx, params)
	case "table.delete_column":
		return p.deleteColumn(ctx, params)
	case "table.merge_cells":
		return p.mergeCells(ctx, params)
	case "table.set_column_width":
		return p.setColumnWidth(ctx, params)
	case "table.set_row_height":
		return p.setRowHeight(ctx, params)
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
