package slide

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

func (p *Provider) list(ctx context.Context) (*types.Result, error) {
	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		slides, err := pres.Slides()
		if err != nil {
			return nil, err
		}

		entries := make([]map[string]interface{}, 0, len(slides))
		for i, slide := range slides {
			name, err := slide.Name()
			if err != nil {
				slide.Release()
				return nil, err
			}
			layout, _ := slide.LayoutName()
			shapes, _ := slide.ShapeCount()
			entries = append(entries, map[string]interface{}{
				"index":  i + 1,
				"name":   name,
				"layout": layout,
				"shapes": shapes,
			})
			slide.Release()
		}
		return entries, nil
	})
	if err != nil {
		return failure(err.Error())
	}

	entries := value.([]map[string]interface{})
	return success(map[string]interface{}{
		"slides": entries,
		"count":  len(entries),
	})
}

func (p *Provider) get(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.Int(args, "index", true)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithSlide(ctx, index, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		name, err := slide.Name()
		if err != nil {
			return nil, err
		}
		id, _ := slide.ID()
		layout, _ := slide.LayoutName()
		notes, _ := slide.NotesText()

		shapes, err := slide.Shapes()
		if err != nil {
			return nil, err
		}
		shapeNames := make([]string, 0, len(shapes))
		for _, shape := range shapes {
			shapeName, err := shape.Name()
			shape.Release()
			if err != nil {
				return nil, err
			}
			shapeNames = append(shapeNames, shapeName)
		}

		return map[string]interface{}{
			"index":     index,
			"id":        id,
			"name":      name,
			"layout":    layout,
			"shapes":    shapeNames,
			"has_notes": strings.TrimSpace(notes) != "",
		}, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) add(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.IntPtr(args, "index")
	if err != nil {
		return failure(err.Error())
	}
	layout, err := params.String(args, "layout", false)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		count, err := pres.SlideCount()
		if err != nil {
			return nil, err
		}

		position := count + 1
		if index != nil {
			if *index < 1 || *index > count+1 {
				return nil, fmt.Errorf("insert position %d is out of range; valid positions are 1-%d", *index, count+1)
			}
			position = *index
		}

		layoutIndex := 0
		if layout != "" {
			layoutIndex, err = resolveLayout(pres, layout)
			if err != nil {
				return nil, err
			}
		}

		slide, err := pres.AddSlide(position, layoutIndex)
		if err != nil {
			return nil, err
		}
		defer slide.Release()

		name, err := slide.Name()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"index":  position,
			"name":   name,
			"layout": layout,
		}, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) delete(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.Int(args, "index", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithSlide(ctx, index, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		return nil, slide.Delete()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"deleted": index})
}

func (p *Provider) duplicate(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.Int(args, "index", true)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithSlide(ctx, index, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		copy, err := slide.Duplicate()
		if err != nil {
			return nil, err
		}
		defer copy.Release()
		return copy.Index()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"duplicated": index,
		"copy_index": value.(int),
	})
}

func (p *Provider) move(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.Int(args, "index", true)
	if err != nil {
		return failure(err.Error())
	}
	to, err := params.Int(args, "to", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithSlide(ctx, index, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		count, err := pres.SlideCount()
		if err != nil {
			return nil, err
		}
		if to < 1 || to > count {
			return nil, fmt.Errorf("destination %d is out of range; valid positions are 1-%d", to, count)
		}
		return nil, slide.MoveTo(to)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"moved": index, "to": to})
}

func (p *Provider) selectSlide(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.Int(args, "index", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithSlide(ctx, index, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		return nil, app.GotoSlide(index)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"selected": index})
}

func (p *Provider) layouts(ctx context.Context) (*types.Result, error) {
	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		names, err := pres.LayoutNames()
		if err != nil {
			return nil, err
		}
		return names, nil
	})
	if err != nil {
		return failure(err.Error())
	}

	names := value.([]string)
	return success(map[string]interface{}{
		"layouts": names,
		"count":   len(names),
	})
}

func (p *Provider) notesGet(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.Int(args, "index", true)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithSlide(ctx, index, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		return slide.NotesText()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"index": index,
		"notes": value.(string),
	})
}

func (p *Provider) notesSet(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.Int(args, "index", true)
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

	_, err = p.client.WithSlide(ctx, index, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		return nil, slide.SetNotesText(text)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"index": index, "notes_set": true})
}

func (p *Provider) background(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	index, err := params.Int(args, "index", true)
	if err != nil {
		return failure(err.Error())
	}
	color, err := params.String(args, "color", false)
	if err != nil {
		return failure(err.Error())
	}
	picture, err := params.String(args, "picture", false)
	if err != nil {
		return failure(err.Error())
	}

	if color == "" && picture == "" {
		return failure("color or picture parameter required")
	}
	if color != "" && picture != "" {
		return failure("color and picture are mutually exclusive")
	}

	var bgr int
	if color != "" {
		if bgr, err = powerpoint.ParseHexColor(color); err != nil {
			return failure(err.Error())
		}
	}
	if picture != "" {
		if picture, err = filepath.Abs(picture); err != nil {
			return failure(fmt.Sprintf("invalid picture path: %v", err))
		}
	}

	_, err = p.client.WithSlide(ctx, index, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		if picture != "" {
			return nil, slide.SetBackgroundPicture(picture)
		}
		return nil, slide.SetBackgroundColor(bgr)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"index": index, "background_set": true})
}

// resolveLayout matches a layout name against the slide master's
// custom layouts, case-insensitively.
func resolveLayout(pres *powerpoint.Presentation, name string) (int, error) {
	names, err := pres.LayoutNames()
	if err != nil {
		return 0, err
	}
	for i, candidate := range names {
		if strings.EqualFold(candidate, name) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unknown layout %q; available layouts: %s", name, strings.Join(names, ", "))
}
