package shape

import (
	"context"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

// shapeRef reads the shape addressing parameters. Resolution order is
// name first, then 1-based index.
func shapeRef(args map[string]interface{}) (powerpoint.ShapeRef, error) {
	name, err := params.String(args, "shape", false)
	if err != nil {
		return powerpoint.ShapeRef{}, err
	}
	index := params.IntDefault(args, "shape_index", 0)
	return powerpoint.ShapeRef{Name: name, Index: index}, nil
}

func (p *Provider) list(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shapes, err := slide.Shapes()
		if err != nil {
			return nil, err
		}

		infos := make([]powerpoint.ShapeInfo, 0, len(shapes))
		for _, shape := range shapes {
			info, err := shape.Info()
			shape.Release()
			if err != nil {
				return nil, err
			}
			infos = append(infos, info)
		}
		return infos, nil
	})
	if err != nil {
		return failure(err.Error())
	}

	infos := value.([]powerpoint.ShapeInfo)
	return success(map[string]interface{}{
		"slide":  slideIndex,
		"shapes": infos,
		"count":  len(infos),
	})
}

func (p *Provider) get(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		return shape.Info()
	})
	if err != nil {
		return failure(err.Error())
	}

	info := value.(powerpoint.ShapeInfo)
	return success(map[string]interface{}{
		"slide": slideIndex,
		"shape": info,
	})
}

func (p *Provider) add(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	typeName, err := params.String(args, "type", true)
	if err != nil {
		return failure(err.Error())
	}
	shapeType, err := powerpoint.AutoShapeType(typeName)
	if err != nil {
		return failure(err.Error())
	}

	left := params.FloatDefault(args, "left", 100)
	top := params.FloatDefault(args, "top", 100)
	width := params.FloatDefault(args, "width", 200)
	height := params.FloatDefault(args, "height", 100)

	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shape, err := slide.AddShape(shapeType, left, top, width, height)
		if err != nil {
			return nil, err
		}
		defer shape.Release()
		return shape.Name()
	})
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"slide": slideIndex,
		"name":  value.(string),
		"type":  typeName,
	})
}

func (p *Provider) addLine(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}

	coords := make(map[string]float64, 4)
	for _, key := range []string{"x1", "y1", "x2", "y2"} {
		v, err := params.Float(args, key, true)
		if err != nil {
			return failure(err.Error())
		}
		coords[key] = v
	}

	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shape, err := slide.AddLine(coords["x1"], coords["y1"], coords["x2"], coords["y2"])
		if err != nil {
			return nil, err
		}
		defer shape.Release()
		return shape.Name()
	})
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"slide": slideIndex,
		"name":  value.(string),
	})
}

func (p *Provider) delete(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		name, err := shape.Name()
		if err != nil {
			return nil, err
		}
		return name, shape.Delete()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":   slideIndex,
		"deleted": value.(string),
	})
}

func (p *Provider) duplicate(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		copy, err := shape.Duplicate()
		if err != nil {
			return nil, err
		}
		defer copy.Release()
		return copy.Name()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide": slideIndex,
		"copy":  value.(string),
	})
}

func (p *Provider) setName(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}
	name, err := params.String(args, "name", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		return nil, shape.SetName(name)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide": slideIndex,
		"name":  name,
	})
}
