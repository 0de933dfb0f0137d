package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

func placement(args map[string]interface{}) (left, top, width, height float64, err error) {
	left = params.FloatDefault(args, "left", 100)
	top = params.FloatDefault(args, "top", 100)

	w, err := params.FloatPtr(args, "width")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	h, err := params.FloatPtr(args, "height")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if w != nil {
		width = *w
	}
	if h != nil {
		height = *h
	}
	return left, top, width, height, nil
}

func (p *Provider) addPicture(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	path, err := params.String(args, "path", true)
	if err != nil {
		return failure(err.Error())
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return failure(err.Error())
	}
	if _, err := os.Stat(abs); err != nil {
		return failure(fmt.Sprintf("picture file not found: %s", abs))
	}
	left, top, width, height, err := placement(args)
	if err != nil {
		return failure(err.Error())
	}

	name, err := p.insertPicture(ctx, slideIndex, abs, left, top, width, height)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide": slideIndex,
		"name":  name,
		"path":  abs,
	})
}

func (p *Provider) addPictureURL(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	rawURL, err := params.String(args, "url", true)
	if err != nil {
		return failure(err.Error())
	}
	left, top, width, height, err := placement(args)
	if err != nil {
		return failure(err.Error())
	}

	tmpPath, contentType, err := p.fetcher.FetchImage(ctx, rawURL)
	if err != nil {
		return failure(err.Error())
	}
	defer os.Remove(tmpPath)

	name, err := p.insertPicture(ctx, slideIndex, tmpPath, left, top, width, height)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":        slideIndex,
		"name":         name,
		"source_url":   rawURL,
		"content_type": contentType,
	})
}

func (p *Provider) iconSearch(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	query, err := params.String(args, "query", true)
	if err != nil {
		return failure(err.Error())
	}
	limit := params.IntDefault(args, "limit", 20)
	if limit < 1 || limit > 100 {
		return failure("limit must be between 1 and 100")
	}

	matches, err := p.icons.search(ctx, query, limit)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"query": query,
		"icons": matches,
		"count": len(matches),
	})
}

func (p *Provider) addIcon(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	iconName, err := params.String(args, "name", true)
	if err != nil {
		return failure(err.Error())
	}
	style := params.StringDefault(args, "style", "outlined")
	switch style {
	case "outlined", "rounded", "sharp":
	default:
		return failure(fmt.Sprintf("unknown icon style %q; use outlined, rounded, or sharp", style))
	}
	color := params.StringDefault(args, "color", "#000000")
	if _, err := powerpoint.ParseHexColor(color); err != nil {
		return failure(err.Error())
	}
	filled := params.Bool(args, "filled", false)
	left := params.FloatDefault(args, "left", 100)
	top := params.FloatDefault(args, "top", 100)
	width := params.FloatDefault(args, "width", 72)
	height := params.FloatDefault(args, "height", 72)

	svgURL := iconURL(iconName, style, filled)
	svg, err := p.fetcher.FetchText(ctx, svgURL)
	if err != nil {
		return failure(fmt.Sprintf("icon %q (style %s) could not be fetched: %v", iconName, style, err))
	}

	tmpPath, err := writeTemp([]byte(colorizeSVG(svg, color)), ".svg")
	if err != nil {
		return failure(err.Error())
	}
	defer os.Remove(tmpPath)

	name, err := p.insertPicture(ctx, slideIndex, tmpPath, left, top, width, height)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":      slideIndex,
		"name":       name,
		"icon":       iconName,
		"source_url": svgURL,
	})
}

func (p *Provider) addMedia(ctx context.Context, args map[string]interface{}, kind string) (*types.Result, error) {
	slideIndex, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	path, err := params.String(args, "path", true)
	if err != nil {
		return failure(err.Error())
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return failure(err.Error())
	}
	if _, err := os.Stat(abs); err != nil {
		return failure(fmt.Sprintf("%s file not found: %s", kind, abs))
	}
	left, top, width, height, err := placement(args)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shape, err := slide.AddMedia(abs, left, top, width, height)
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
		"path":  abs,
	})
}

func (p *Provider) insertPicture(ctx context.Context, slideIndex int, path string, left, top, width, height float64) (string, error) {
	value, err := p.client.WithSlide(ctx, slideIndex, func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error) {
		shape, err := slide.AddPicture(path, left, top, width, height)
		if err != nil {
			return nil, err
		}
		defer shape.Release()
		return shape.Name()
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}
