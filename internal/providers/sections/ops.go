package sections

import (
	"context"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

func (p *Provider) list(ctx context.Context) (*types.Result, error) {
	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		return pres.Sections()
	})
	if err != nil {
		return failure(err.Error())
	}

	sections := value.([]powerpoint.Section)
	return success(map[string]interface{}{
		"sections": sections,
		"count":    len(sections),
	})
}

func (p *Provider) add(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	name, err := params.String(args, "name", true)
	if err != nil {
		return failure(err.Error())
	}
	slide := params.IntDefault(args, "slide", 1)
	if slide < 1 {
		return failure("slide must be at least 1")
	}

	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		return pres.AddSectionBeforeSlide(slide, name)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"section": value.(int),
		"name":    name,
		"slide":   slide,
	})
}

func (p *Provider) rename(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	section, err := params.Int(args, "section", true)
	if err != nil {
		return failure(err.Error())
	}
	if section < 1 {
		return failure("section must be at least 1")
	}
	name, err := params.String(args, "name", true)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		return nil, pres.RenameSection(section, name)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"section": section,
		"name":    name,
	})
}

func (p *Provider) move(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	section, err := params.Int(args, "section", true)
	if err != nil {
		return failure(err.Error())
	}
	if section < 1 {
		return failure("section must be at least 1")
	}
	to, err := params.Int(args, "to", true)
	if err != nil {
		return failure(err.Error())
	}
	if to < 1 {
		return failure("to must be at least 1")
	}

	_, err = p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		return nil, pres.MoveSection(section, to)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"section": section,
		"to":      to,
	})
}

func (p *Provider) delete(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	section, err := params.Int(args, "section", true)
	if err != nil {
		return failure(err.Error())
	}
	if section < 1 {
		return failure("section must be at least 1")
	}
	deleteSlides := params.Bool(args, "delete_slides", false)

	_, err = p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		return nil, pres.DeleteSection(section, deleteSlides)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"deleted":        true,
		"section":        section,
		"slides_deleted": deleteSlides,
	})
}

func (p *Provider) moveSlide(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slide, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	section, err := params.Int(args, "section", true)
	if err != nil {
		return failure(err.Error())
	}
	if section < 1 {
		return failure("section must be at least 1")
	}

	_, err = p.client.WithSlide(ctx, slide, func(app *powerpoint.Application, pres *powerpoint.Presentation, s *powerpoint.Slide) (interface{}, error) {
		return nil, s.MoveToSectionStart(section)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"slide":   slide,
		"section": section,
	})
}
