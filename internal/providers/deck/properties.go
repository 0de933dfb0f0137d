package deck

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

// builtinProperties are the document properties the get tool reads.
// Writes accept any name the host collection knows.
var builtinProperties = []string{
	"Title",
	"Subject",
	"Author",
	"Keywords",
	"Comments",
	"Category",
	"Company",
	"Last Author",
	"Revision Number",
}

func (p *Provider) target(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	position, err := params.IntPtr(args, "position")
	if err != nil {
		return failure(err.Error())
	}
	name, err := params.String(args, "name", false)
	if err != nil {
		return failure(err.Error())
	}

	if position == nil && name == "" {
		return failure("position or name parameter required")
	}
	if position != nil && name != "" {
		return failure("position and name are mutually exclusive")
	}

	var pinned *powerpoint.PinnedInfo
	if position != nil {
		pinned, err = p.client.PinByPosition(ctx, *position)
	} else {
		pinned, err = p.client.PinByName(ctx, name)
	}
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"targeted": true,
		"name":     pinned.Name,
		"path":     pinned.Path,
	})
}

func (p *Provider) untarget(ctx context.Context) (*types.Result, error) {
	if err := p.client.Unpin(ctx); err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"targeted": false})
}

func (p *Provider) properties(ctx context.Context) (*types.Result, error) {
	value, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		out := map[string]interface{}{}
		for _, name := range builtinProperties {
			v, err := pres.Property(name)
			if err != nil {
				continue
			}
			out[name] = v
		}

		docName, err := pres.Name()
		if err != nil {
			return nil, err
		}
		path, _ := pres.FullName()
		slides, _ := pres.SlideCount()
		saved, _ := pres.Saved()
		out["name"] = docName
		out["path"] = path
		out["slides"] = slides
		out["saved"] = saved
		return out, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) setProperties(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	props, ok := args["properties"].(map[string]interface{})
	if !ok || len(props) == 0 {
		return failure("properties parameter required")
	}

	_, err := p.client.WithTarget(ctx, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		for name, value := range props {
			if err := pres.SetProperty(name, value); err != nil {
				return nil, fmt.Errorf("set %s: %w", name, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return failure(err.Error())
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	return success(map[string]interface{}{"updated": names})
}
