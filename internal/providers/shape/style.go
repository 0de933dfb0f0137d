package shape

import (
	"context"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

func (p *Provider) setGeometry(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}

	left, err := params.FloatPtr(args, "left")
	if err != nil {
		return failure(err.Error())
	}
	top, err := params.FloatPtr(args, "top")
	if err != nil {
		return failure(err.Error())
	}
	width, err := params.FloatPtr(args, "width")
	if err != nil {
		return failure(err.Error())
	}
	height, err := params.FloatPtr(args, "height")
	if err != nil {
		return failure(err.Error())
	}
	if left == nil && top == nil && width == nil && height == nil {
		return failure("at least one of left, top, width, height required")
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		return nil, shape.SetGeometry(left, top, width, height)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "updated": true})
}

func (p *Provider) setFill(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}

	color, err := params.String(args, "color", false)
	if err != nil {
		return failure(err.Error())
	}
	transparency, err := params.FloatPtr(args, "transparency")
	if err != nil {
		return failure(err.Error())
	}
	visible, err := params.BoolPtr(args, "visible")
	if err != nil {
		return failure(err.Error())
	}
	if color == "" && transparency == nil && visible == nil {
		return failure("at least one of color, transparency, visible required")
	}
	if transparency != nil && (*transparency < 0 || *transparency > 1) {
		return failure("transparency must be between 0 and 1")
	}

	var bgr int
	if color != "" {
		if bgr, err = powerpoint.ParseHexColor(color); err != nil {
			return failure(err.Error())
		}
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		if visible != nil {
			if err := shape.SetFillVisible(*visible); err != nil {
				return nil, err
			}
		}
		if color != "" {
			if err := shape.SetFillColor(bgr); err != nil {
				return nil, err
			}
		}
		if transparency != nil {
			if err := shape.SetFillTransparency(*transparency); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "updated": true})
}

func (p *Provider) setLine(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}

	color, err := params.String(args, "color", false)
	if err != nil {
		return failure(err.Error())
	}
	weight, err := params.FloatPtr(args, "weight")
	if err != nil {
		return failure(err.Error())
	}
	visible, err := params.BoolPtr(args, "visible")
	if err != nil {
		return failure(err.Error())
	}
	if color == "" && weight == nil && visible == nil {
		return failure("at least one of color, weight, visible required")
	}

	var bgr int
	if color != "" {
		if bgr, err = powerpoint.ParseHexColor(color); err != nil {
			return failure(err.Error())
		}
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		if visible != nil {
			if err := shape.SetLineVisible(*visible); err != nil {
				return nil, err
			}
		}
		if color != "" {
			if err := shape.SetLineColor(bgr); err != nil {
				return nil, err
			}
		}
		if weight != nil {
			if err := shape.SetLineWeight(*weight); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "updated": true})
}

func (p *Provider) setShadow(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}
	visible, err := params.BoolPtr(args, "visible")
	if err != nil {
		return failure(err.Error())
	}
	if visible == nil {
		return failure("visible parameter required")
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		return nil, shape.SetShadowVisible(*visible)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "shadow": *visible})
}

func (p *Provider) setRotation(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}
	degrees, err := params.Float(args, "degrees", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		return nil, shape.SetRotation(degrees)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "rotation": degrees})
}

func (p *Provider) zOrder(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}
	command, err := params.String(args, "command", true)
	if err != nil {
		return failure(err.Error())
	}
	cmd, err := powerpoint.ZOrderCommand(command)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		if err := shape.ZOrder(cmd); err != nil {
			return nil, err
		}
		return shape.ZOrderPosition()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":    slideIndex,
		"command":  command,
		"position": value.(int),
	})
}
