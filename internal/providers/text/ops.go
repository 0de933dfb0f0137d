package text

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

func shapeRef(args map[string]interface{}) (powerpoint.ShapeRef, error) {
	name, err := params.String(args, "shape", false)
	if err != nil {
		return powerpoint.ShapeRef{}, err
	}
	index := params.IntDefault(args, "shape_index", 0)
	return powerpoint.ShapeRef{Name: name, Index: index}, nil
}

func (p *Provider) get(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shapes, err := slide.Shapes()
		if err != nil {
			return nil, err
		}

		entries := []map[string]interface{}{}
		for _, shape := range shapes {
			entry, err := readShapeText(shape)
			shape.Release()
			if err != nil {
				return nil, err
			}
			if entry != nil {
				entries = append(entries, entry)
			}
		}
		return entries, nil
	})
	if err != nil {
		return failure(err.Error())
	}

	entries := value.([]map[string]interface{})
	return success(map[string]interface{}{
		"slide": slideIndex,
		"texts": entries,
		"count": len(entries),
	})
}

func readShapeText(shape *powerpoint.Shape) (map[string]interface{}, error) {
	hasText, err := shape.HasTextFrame()
	if err != nil {
		return nil, err
	}
	if !hasText {
		return nil, nil
	}

	name, err := shape.Name()
	if err != nil {
		return nil, err
	}
	rng, err := shape.TextRange()
	if err != nil {
		return nil, err
	}
	defer rng.Release()

	text, err := rng.Text()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"shape": name,
		"text":  text,
	}, nil
}

func (p *Provider) set(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	return p.write(ctx, args, func(rng *powerpoint.TextRange, text string) error {
		return rng.SetText(text)
	})
}

func (p *Provider) append(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	return p.write(ctx, args, func(rng *powerpoint.TextRange, text string) error {
		return rng.Append(text)
	})
}

func (p *Provider) write(ctx context.Context, args map[string]interface{}, apply func(rng *powerpoint.TextRange, text string) error) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
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

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		rng, err := shape.TextRange()
		if err != nil {
			return nil, err
		}
		defer rng.Release()
		return nil, apply(rng, text)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "written": true})
}

func (p *Provider) format(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
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
	if opts.Underline, err = params.BoolPtr(args, "underline"); err != nil {
		return failure(err.Error())
	}

	color, err := params.String(args, "color", false)
	if err != nil {
		return failure(err.Error())
	}
	if color != "" {
		bgr, err := powerpoint.ParseHexColor(color)
		if err != nil {
			return failure(err.Error())
		}
		opts.Color = &bgr
	}

	if opts.Name == nil && opts.Size == nil && opts.Bold == nil && opts.Italic == nil && opts.Underline == nil && opts.Color == nil {
		return failure("at least one font attribute required")
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		rng, err := shape.TextRange()
		if err != nil {
			return nil, err
		}
		defer rng.Release()
		return nil, rng.SetFont(opts)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "formatted": true})
}

func (p *Provider) bullets(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}
	style, err := params.String(args, "style", true)
	if err != nil {
		return failure(err.Error())
	}
	switch style {
	case "none", "bullet", "number":
	default:
		return failure(fmt.Sprintf("unknown bullet style %q; use none, bullet, or number", style))
	}
	level := params.IntDefault(args, "level", 0)
	if level < 0 || level > 5 {
		return failure("level must be between 1 and 5")
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		rng, err := shape.TextRange()
		if err != nil {
			return nil, err
		}
		defer rng.Release()
		return nil, rng.SetBulletStyle(style, level)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "style": style})
}

func (p *Provider) find(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	what, err := params.String(args, "text", true)
	if err != nil {
		return failure(err.Error())
	}
	only, err := params.IntPtr(args, "slide")
	if err != nil {
		return failure(err.Error())
	}
	matchCase := params.Bool(args, "match_case", false)
	wholeWords := params.Bool(args, "whole_words", false)

	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		matches := []map[string]interface{}{}
		err := eachSlide(pres, only, func(index int, slide *powerpoint.Slide) error {
			return eachTextRange(slide, func(shapeName string, rng *powerpoint.TextRange) error {
				found, err := rng.Find(what, matchCase, wholeWords)
				if err != nil {
					return err
				}
				if found {
					matches = append(matches, map[string]interface{}{
						"slide": index,
						"shape": shapeName,
					})
				}
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
		return matches, nil
	})
	if err != nil {
		return failure(err.Error())
	}

	matches := value.([]map[string]interface{})
	return success(map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

func (p *Provider) replace(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	what, err := params.String(args, "find", true)
	if err != nil {
		return failure(err.Error())
	}
	with, err := params.String(args, "replace", false)
	if err != nil {
		return failure(err.Error())
	}
	if _, present := args["replace"]; !present {
		return failure("replace parameter required")
	}
	only, err := params.IntPtr(args, "slide")
	if err != nil {
		return failure(err.Error())
	}
	matchCase := params.Bool(args, "match_case", false)
	wholeWords := params.Bool(args, "whole_words", false)

	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		total := 0
		err := eachSlide(pres, only, func(index int, slide *powerpoint.Slide) error {
			return eachTextRange(slide, func(_ string, rng *powerpoint.TextRange) error {
				n, err := rng.ReplaceAll(what, with, matchCase, wholeWords)
				if err != nil {
					return err
				}
				total += n
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
		return total, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"replacements": value.(int)})
}

func (p *Provider) addTextbox(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	text, err := params.String(args, "text", false)
	if err != nil {
		return failure(err.Error())
	}
	left := params.FloatDefault(args, "left", 100)
	top := params.FloatDefault(args, "top", 100)
	width := params.FloatDefault(args, "width", 400)
	height := params.FloatDefault(args, "height", 50)

	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shape, err := slide.AddTextbox(left, top, width, height)
		if err != nil {
			return nil, err
		}
		defer shape.Release()

		if text != "" {
			rng, err := shape.TextRange()
			if err != nil {
				return nil, err
			}
			defer rng.Release()
			if err := rng.SetText(text); err != nil {
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
	})
}

func (p *Provider) autofit(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	ref, err := shapeRef(args)
	if err != nil {
		return failure(err.Error())
	}
	modeName, err := params.String(args, "mode", true)
	if err != nil {
		return failure(err.Error())
	}
	mode, err := powerpoint.AutoSizeMode(modeName)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithShape(ctx, slideIndex, ref, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error) {
		return nil, shape.SetAutoSize(mode)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"slide": slideIndex, "mode": modeName})
}

// eachSlide visits one slide when only is set, otherwise every slide.
func eachSlide(pres *powerpoint.Presentation, only *int, fn func(index int, slide *powerpoint.Slide) error) error {
	if only != nil {
		slide, err := pres.Slide(*only)
		if err != nil {
			return err
		}
		defer slide.Release()
		return fn(*only, slide)
	}

	slides, err := pres.Slides()
	if err != nil {
		return err
	}
	for i, slide := range slides {
		err := fn(i+1, slide)
		slide.Release()
		if err != nil {
			return err
		}
	}
	return nil
}

// eachTextRange visits every shape on the slide that holds text.
func eachTextRange(slide *powerpoint.Slide, fn func(shapeName string, rng *powerpoint.TextRange) error) error {
	shapes, err := slide.Shapes()
	if err != nil {
		return err
	}
	for _, shape := range shapes {
		err := visitShapeText(shape, fn)
		shape.Release()
		if err != nil {
			return err
		}
	}
	return nil
}

func visitShapeText(shape *powerpoint.Shape, fn func(shapeName string, rng *powerpoint.TextRange) error) error {
	hasText, err := shape.HasTextFrame()
	if err != nil {
		return err
	}
	if !hasText {
		return nil
	}

	name, err := shape.Name()
	if err != nil {
		return err
	}
	rng, err := shape.TextRange()
	if err != nil {
		return err
	}
	defer rng.Release()
	return fn(name, rng)
}
