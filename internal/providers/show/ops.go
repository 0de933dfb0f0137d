package show

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

func (p *Provider) start(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	from, err := params.IntPtr(args, "from")
	if err != nil {
		return failure(err.Error())
	}
	if from != nil && *from < 1 {
		return failure("from must be at least 1")
	}
	kiosk := params.Bool(args, "kiosk", false)
	loop := params.Bool(args, "loop", false)

	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		count, err := pres.SlideCount()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("the presentation has no slides")
		}

		opts := powerpoint.StartShowOptions{Kiosk: kiosk, Loop: loop}
		first := 1
		if from != nil {
			if *from > count {
				return nil, fmt.Errorf("from %d is out of range; the presentation has %d slides", *from, count)
			}
			opts.FromSlide = *from
			first = *from
		}
		if err := pres.StartSlideShow(opts); err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"started": true,
			"from":    first,
			"slides":  count,
			"kiosk":   kiosk,
			"loop":    loop,
		}, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) end(ctx context.Context) (*types.Result, error) {
	value, err := p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		count, err := app.SlideShowCount()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return false, nil
		}

		view, err := app.SlideShowView()
		if err != nil {
			return nil, err
		}
		defer view.Release()

		if err := view.Exit(); err != nil {
			return nil, err
		}
		return true, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"ended": value.(bool)})
}

func (p *Provider) next(ctx context.Context) (*types.Result, error) {
	value, err := p.withView(ctx, func(view *powerpoint.SlideShowView) (interface{}, error) {
		if err := view.Next(); err != nil {
			return nil, err
		}
		return viewStatus(view)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) previous(ctx context.Context) (*types.Result, error) {
	value, err := p.withView(ctx, func(view *powerpoint.SlideShowView) (interface{}, error) {
		if err := view.Previous(); err != nil {
			return nil, err
		}
		return viewStatus(view)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) goTo(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slide, err := params.Int(args, "slide", true)
	if err != nil {
		return failure(err.Error())
	}
	if slide < 1 {
		return failure("slide must be at least 1")
	}

	value, err := p.withView(ctx, func(view *powerpoint.SlideShowView) (interface{}, error) {
		if err := view.GotoSlide(slide); err != nil {
			return nil, err
		}
		return viewStatus(view)
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) state(ctx context.Context) (*types.Result, error) {
	value, err := p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		count, err := app.SlideShowCount()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return map[string]interface{}{"running": false}, nil
		}

		view, err := app.SlideShowView()
		if err != nil {
			return nil, err
		}
		defer view.Release()

		status, err := viewStatus(view)
		if err != nil {
			return nil, err
		}
		status["running"] = true
		// The slide property is unavailable once the show reaches the
		// done state, so report it only while it resolves.
		if slide, err := view.CurrentSlideIndex(); err == nil {
			status["slide"] = slide
		}
		return status, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

// withView runs fn against the view of the running slide show.
func (p *Provider) withView(ctx context.Context, fn func(view *powerpoint.SlideShowView) (interface{}, error)) (interface{}, error) {
	return p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		view, err := app.SlideShowView()
		if err != nil {
			return nil, err
		}
		defer view.Release()
		return fn(view)
	})
}

func viewStatus(view *powerpoint.SlideShowView) (map[string]interface{}, error) {
	position, err := view.Position()
	if err != nil {
		return nil, err
	}
	state, err := view.State()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"position": position,
		"state":    powerpoint.SlideShowStateName(state),
	}, nil
}
