package deck

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
	value, err := p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		presentations, err := app.OpenPresentations()
		if err != nil {
			return nil, err
		}

		entries := make([]map[string]interface{}, 0, len(presentations))
		for i, pres := range presentations {
			name, err := pres.Name()
			if err != nil {
				pres.Release()
				return nil, err
			}
			path, _ := pres.FullName()
			saved, _ := pres.Saved()
			entries = append(entries, map[string]interface{}{
				"position": i + 1,
				"name":     name,
				"path":     path,
				"saved":    saved,
			})
			pres.Release()
		}
		return entries, nil
	})
	if err != nil {
		return failure(err.Error())
	}

	entries := value.([]map[string]interface{})
	return success(map[string]interface{}{
		"presentations": entries,
		"count":         len(entries),
	})
}

func (p *Provider) open(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	path, err := params.String(args, "path", true)
	if err != nil {
		return failure(err.Error())
	}
	readOnly := params.Bool(args, "read_only", false)

	abs, err := filepath.Abs(path)
	if err != nil {
		return failure(fmt.Sprintf("invalid path %s: %v", path, err))
	}

	value, err := p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		pres, err := app.OpenPresentation(abs, readOnly, true)
		if err != nil {
			return nil, err
		}
		defer pres.Release()
		return describe(pres)
	})
	if err != nil {
		return failure(fmt.Sprintf("open %s failed: %v", abs, err))
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) create(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	template, err := params.String(args, "template", false)
	if err != nil {
		return failure(err.Error())
	}
	if template != "" {
		if template, err = filepath.Abs(template); err != nil {
			return failure(fmt.Sprintf("invalid template path: %v", err))
		}
	}

	value, err := p.client.WithApp(ctx, func(app *powerpoint.Application) (interface{}, error) {
		pres, err := app.NewPresentation(template)
		if err != nil {
			return nil, err
		}
		defer pres.Release()
		return describe(pres)
	})
	if err != nil {
		return failure(fmt.Sprintf("create failed: %v", err))
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) save(ctx context.Context) (*types.Result, error) {
	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		dir, err := pres.Path()
		if err != nil {
			return nil, err
		}
		if dir == "" {
			return nil, fmt.Errorf("presentation has never been saved; use deck.save_as with a path")
		}
		if err := pres.Save(); err != nil {
			return nil, err
		}
		return pres.FullName()
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"saved": true, "path": value.(string)})
}

func (p *Provider) saveAs(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	path, err := params.String(args, "path", true)
	if err != nil {
		return failure(err.Error())
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return failure(fmt.Sprintf("invalid path %s: %v", path, err))
	}

	formatName, err := params.String(args, "format", false)
	if err != nil {
		return failure(err.Error())
	}
	if formatName == "" {
		formatName = strings.TrimPrefix(filepath.Ext(abs), ".")
	}
	if formatName == "" {
		formatName = "pptx"
	}
	format, err := powerpoint.SaveFormat(formatName)
	if err != nil {
		return failure(err.Error())
	}

	_, err = p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		return nil, pres.SaveAs(abs, format)
	})
	if err != nil {
		return failure(fmt.Sprintf("save as %s failed: %v", abs, err))
	}
	return success(map[string]interface{}{
		"saved":  true,
		"path":   abs,
		"format": strings.ToLower(formatName),
	})
}

func (p *Provider) close(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	save := params.Bool(args, "save", false)

	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		name, err := pres.Name()
		if err != nil {
			return nil, err
		}

		if save {
			dir, err := pres.Path()
			if err != nil {
				return nil, err
			}
			if dir == "" {
				return nil, fmt.Errorf("presentation has never been saved; use deck.save_as before closing with save")
			}
			if err := pres.Save(); err != nil {
				return nil, err
			}
		} else {
			// Marking the presentation saved suppresses the close prompt.
			if err := pres.SetSaved(true); err != nil {
				return nil, err
			}
		}

		if err := pres.Close(); err != nil {
			return nil, err
		}
		return name, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"closed": value.(string), "saved": save})
}

func describe(pres *powerpoint.Presentation) (map[string]interface{}, error) {
	name, err := pres.Name()
	if err != nil {
		return nil, err
	}
	path, _ := pres.FullName()
	slides, err := pres.SlideCount()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"name":   name,
		"path":   path,
		"slides": slides,
	}, nil
}
