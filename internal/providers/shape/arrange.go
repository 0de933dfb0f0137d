package shape

import (
	"context"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

// selectNamed resolves names on the slide and selects them as a group.
// Callers release the returned shapes.
func selectNamed(slide *powerpoint.Slide, names []string) ([]*powerpoint.Shape, error) {
	shapes := make([]*powerpoint.Shape, 0, len(names))
	for _, name := range names {
		shape, err := slide.ShapeByName(name)
		if err != nil {
			releaseAll(shapes)
			return nil, err
		}
		shapes = append(shapes, shape)
	}

	if err := powerpoint.SelectShapes(shapes); err != nil {
		releaseAll(shapes)
		return nil, err
	}
	return shapes, nil
}

func releaseAll(shapes []*powerpoint.Shape) {
	for _, shape := range shapes {
		shape.Release()
	}
}

func (p *Provider) align(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	names, err := params.StringSlice(args, "shapes", true)
	if err != nil {
		return failure(err.Error())
	}
	if len(names) == 0 {
		return failure("shapes parameter required")
	}
	command, err := params.String(args, "command", true)
	if err != nil {
		return failure(err.Error())
	}
	cmd, err := powerpoint.AlignCommand(command)
	if err != nil {
		return failure(err.Error())
	}
	relative := params.Bool(args, "relative_to_slide", false)

	_, err = p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shapes, err := selectNamed(slide, names)
		if err != nil {
			return nil, err
		}
		defer releaseAll(shapes)
		return nil, app.AlignSelection(cmd, relative)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":   slideIndex,
		"aligned": names,
		"command": command,
	})
}

func (p *Provider) distribute(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	names, err := params.StringSlice(args, "shapes", true)
	if err != nil {
		return failure(err.Error())
	}
	if len(names) < 2 {
		return failure("at least two shape names required")
	}
	direction, err := params.String(args, "direction", true)
	if err != nil {
		return failure(err.Error())
	}
	cmd, err := powerpoint.DistributeCommand(direction)
	if err != nil {
		return failure(err.Error())
	}
	relative := params.Bool(args, "relative_to_slide", false)

	_, err = p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shapes, err := selectNamed(slide, names)
		if err != nil {
			return nil, err
		}
		defer releaseAll(shapes)
		return nil, app.DistributeSelection(cmd, relative)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":       slideIndex,
		"distributed": names,
		"direction":   direction,
	})
}

func (p *Provider) group(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	names, err := params.StringSlice(args, "shapes", true)
	if err != nil {
		return failure(err.Error())
	}
	if len(names) < 2 {
		return failure("at least two shape names required")
	}

	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shapes, err := selectNamed(slide, names)
		if err != nil {
			return nil, err
		}
		defer releaseAll(shapes)

		grouped, err := app.GroupSelection()
		if err != nil {
			return nil, err
		}
		defer grouped.Release()
		return grouped.Name()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide": slideIndex,
		"group": value.(string),
	})
}

func (p *Provider) ungroup(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		return nil, shape.Ungroup()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "ungrouped": true})
}
