package table

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

func tableArgs(args map[string]interface{}) (int, powerpoint.ShapeRef, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return 0, powerpoint.ShapeRef{}, err
	}
	name, err := params.String(args, "shape", false)
	if err != nil {
		return 0, powerpoint.ShapeRef{}, err
	}
	index := params.IntDefault(args, "shape_index", 0)
	return slideIndex, powerpoint.ShapeRef{Name: name, Index: index}, nil
}

// withTable resolves the referenced shape to its table and hands both
// to fn. The table handle is released after fn returns.
func (p *Provider) withTable(ctx context.Context, slideIndex int, ref powerpoint.ShapeRef, fn func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error)) (interface{}, error) {
	return p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		table, err := shape.Table()
		if err != nil {
			return nil, err
		}
		defer table.Release()
		return fn(shape, table)
	})
}

func (p *Provider) add(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	rows, err := params.Int(args, "rows", true)
	if err != nil {
		return failure(err.Error())
	}
	cols, err := params.Int(args, "cols", true)
	if err != nil {
		return failure(err.Error())
	}
	if rows < 1 {
		return failure("rows must be at least 1")
	}
	if cols < 1 {
		return failure("cols must be at least 1")
	}
	left := params.FloatDefault(args, "left", 50)
	top := params.FloatDefault(args, "top", 100)
	width := params.FloatDefault(args, "width", 600)
	height := params.FloatDefault(args, "height", 300)
	rowHeights, err := params.FloatSlice(args, "row_heights", false)
	if err != nil {
		return failure(err.Error())
	}
	colWidths, err := params.FloatSlice(args, "col_widths", false)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shape, err := slide.AddTable(rows, cols, left, top, width, height)
		if err != nil {
			return nil, err
		}
		defer shape.Release()

		table, err := shape.Table()
		if err != nil {
			return nil, err
		}
		defer table.Release()

		for i, h := range rowHeights {
			if i >= rows {
				break
			}
			if err := table.SetRowHeight(i+1, h); err != nil {
				return nil, err
			}
		}
		for i, w := range colWidths {
			if i >= cols {
				break
			}
			if err := table.SetColumnWidth(i+1, w); err != nil {
				return nil, err
			}
		}
		return shape.Name()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide": slideIndex,
		"name":  value.(string),
		"rows":  rows,
		"cols":  cols,
	})
}

func (p *Provider) get(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		name, err := shape.Name()
		if err != nil {
			return nil, err
		}
		rows, cols, err := table.Dimensions()
		if err != nil {
			return nil, err
		}
		data, err := table.Contents()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"name": name,
			"rows": rows,
			"cols": cols,
			"data": data,
		}, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) setCell(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	row, err := params.Int(args, "row", true)
	if err != nil {
		return failure(err.Error())
	}
	col, err := params.Int(args, "col", true)
	if err != nil {
		return failure(err.Error())
	}
	text, err := params.String(args, "text", false)
	if err != nil {
		return failure(err.Error())
	}
	if _, present := args["text"]; !present {
		return failure("text parameter required")
	}

	_, err = p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		return nil, table.SetCellText(row, col, text)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide": slideIndex,
		"row":   row,
		"col":   col,
	})
}

func (p *Provider) formatCell(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	row, err := params.Int(args, "row", true)
	if err != nil {
		return failure(err.Error())
	}
	col, err := params.Int(args, "col", true)
	if err != nil {
		return failure(err.Error())
	}

	var fill *int
	fillHex, err := params.String(args, "fill", false)
	if err != nil {
		return failure(err.Error())
	}
	if fillHex != "" {
		bgr, err := powerpoint.ParseHexColor(fillHex)
		if err != nil {
			return failure(err.Error())
		}
		fill = &bgr
	}

	opts := powerpoint.FontOptions{}
	if opts.Name, err = params.StringPtr(args, "font"); err != nil {
		return failure(err.Error())
	}
	if opts.Size, err = params.FloatPtr(args, "size"); err != nil {
		return failure(err.Error())
	}
	if opts.Bold, err = params.BoolPtr(args, "bold"); err != nil {
		return failure(err.Error())
	}
	if opts.Italic, err = params.BoolPtr(args, "italic"); err != nil {
		return failure(err.Error())
	}
	colorHex, err := params.String(args, "color", false)
	if err != nil {
		return failure(err.Error())
	}
	if colorHex != "" {
		bgr, err := powerpoint.ParseHexColor(colorHex)
		if err != nil {
			return failure(err.Error())
		}
		opts.Color = &bgr
	}

	hasFont := opts.Name != nil || opts.Size != nil || opts.Bold != nil || opts.Italic != nil || opts.Color != nil
	if fill == nil && !hasFont {
		return failure("at least one of fill, font, size, bold, italic, color required")
	}

	_, err = p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		cell, err := table.CellShape(row, col)
		if err != nil {
			return nil, err
		}
		defer cell.Release()

		if fill != nil {
			if err := cell.SetFillColor(*fill); err != nil {
				return nil, err
			}
		}
		if hasFont {
			rng, err := cell.TextRange()
			if err != nil {
				return nil, err
			}
			defer rng.Release()
			if err := rng.SetFont(opts); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide": slideIndex,
		"row":   row,
		"col":   col,
	})
}

func (p *Provider) insertRow(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	before, err := params.IntPtr(args, "before")
	if err != nil {
		return failure(err.Error())
	}
	height, err := params.FloatPtr(args, "height")
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		position := 0
		if before != nil {
			position = *before
		}
		if err := table.InsertRow(position); err != nil {
			return nil, err
		}

		rows, cols, err := table.Dimensions()
		if err != nil {
			return nil, err
		}
		if height != nil {
			at := rows
			if before != nil {
				at = *before
			}
			if err := table.SetRowHeight(at, *height); err != nil {
				return nil, err
			}
		}
		return dims(rows, cols), nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) insertColumn(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	before, err := params.IntPtr(args, "before")
	if err != nil {
		return failure(err.Error())
	}
	width, err := params.FloatPtr(args, "width")
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		position := 0
		if before != nil {
			position = *before
		}
		if err := table.InsertColumn(position); err != nil {
			return nil, err
		}

		rows, cols, err := table.Dimensions()
		if err != nil {
			return nil, err
		}
		if width != nil {
			at := cols
			if before != nil {
				at = *before
			}
			if err := table.SetColumnWidth(at, *width); err != nil {
				return nil, err
			}
		}
		return dims(rows, cols), nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) deleteRow(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	row, err := params.Int(args, "row", true)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		if err := table.DeleteRow(row); err != nil {
			return nil, err
		}
		rows, cols, err := table.Dimensions()
		if err != nil {
			return nil, err
		}
		return dims(rows, cols), nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) deleteColumn(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	column, err := params.Int(args, "column", true)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		if err := table.DeleteColumn(column); err != nil {
			return nil, err
		}
		rows, cols, err := table.Dimensions()
		if err != nil {
			return nil, err
		}
		return dims(rows, cols), nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) mergeCells(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	startRow, err := params.Int(args, "start_row", true)
	if err != nil {
		return failure(err.Error())
	}
	startCol, err := params.Int(args, "start_col", true)
	if err != nil {
		return failure(err.Error())
	}
	endRow, err := params.Int(args, "end_row", true)
	if err != nil {
		return failure(err.Error())
	}
	endCol, err := params.Int(args, "end_col", true)
	if err != nil {
		return failure(err.Error())
	}
	if endRow < startRow {
		return failure("end_row must not be less than start_row")
	}
	if endCol < startCol {
		return failure("end_col must not be less than start_col")
	}

	_, err = p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		return nil, table.MergeCells(startRow, startCol, endRow, endCol)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":  slideIndex,
		"merged": fmt.Sprintf("(%d,%d) to (%d,%d)", startRow, startCol, endRow, endCol),
	})
}

func (p *Provider) setColumnWidth(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	column, err := params.Int(args, "column", true)
	if err != nil {
		return failure(err.Error())
	}
	width, err := params.Float(args, "width", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		return nil, table.SetColumnWidth(column, width)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":  slideIndex,
		"column": column,
		"width":  width,
	})
}

func (p *Provider) setRowHeight(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, ref, err := tableArgs(args)
	if err != nil {
		return failure(err.Error())
	}
	row, err := params.Int(args, "row", true)
	if err != nil {
		return failure(err.Error())
	}
	height, err := params.Float(args, "height", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.withTable(ctx, slideIndex, ref, func(shape *powerpoint.Shape, table *powerpoint.Table) (interface{}, error) {
		return nil, table.SetRowHeight(row, height)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":  slideIndex,
		"row":    row,
		"height": height,
	})
}

func dims(rows, cols int) map[string]interface{} {
	return map[string]interface{}{
		"rows": rows,
		"cols": cols,
	}
}
