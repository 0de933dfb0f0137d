// Package media exposes picture, icon, video, and audio tools,
// including remote fetch with content sniffing and Material Symbols
// icon search.
package media

import (
	"context"
	"fmt"

	"github.com/slidewire/slidewire/internal/config"
	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/types"
)

// Client is the automation surface this provider drives
type Client interface {
	WithSlide(ctx context.Context, index int, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error)) (interface{}, error)
}

// Provider implements media tools
type Provider struct {
	client  Client
	fetcher *Fetcher
	icons   *iconIndex
}

// NewProvider creates a media provider
func NewProvider(client Client, cfg config.MediaConfig) *Provider {
	fetcher := NewFetcher(cfg)
	return &Provider{
		client:  client,
		fetcher: fetcher,
		icons:   newIconIndex(fetcher, cfg.IconCacheTTL),
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "media",
		Name:        "Media",
		Description: "Pictures from disk or URL, Material Symbols icons, video, and audio",
		Category:    types.CategoryMedia,
		Capabilities: []string{
			"pictures",
			"remote_fetch",
			"icons",
			"video",
			"audio",
		},
		Tools: p.getTools(),
	}
}

func slideParam() types.Parameter {
	return types.Parameter{Name: "slide", Type: "number", Description: "1-based slide index", Required: true}
}

func placementParams() []types.Parameter {
	return []types.Parameter{
		{Name: "left", Type: "number", Description: "Left edge in points", Required: false, Default: 100},
		{Name: "top", Type: "number", Description: "Top edge in points", Required: false, Default: 100},
		{Name: "width", Type: "number", Description: "Width in points; omit to keep the natural size", Required: false},
		{Name: "height", Type: "number", Description: "Height in points; omit to keep the natural size", Required: false},
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "media.add_picture",
			Name:        "Add Picture",
			Description: "Insert an image file from disk",
			Parameters: append([]types.Parameter{
				slideParam(),
				{Name: "path", Type: "string", Description: "Path to the image file", Required: true},
			}, placementParams()...),
			Returns: "object",
		},
		{
			ID:          "media.add_picture_url",
			Name:        "Add Picture from URL",
			Description: "Download an image and insert it; SVG content is rejected",
			Parameters: append([]types.Parameter{
				slideParam(),
				{Name: "url", Type: "string", Description: "HTTP or HTTPS address of the image", Required: true},
			}, placementParams()...),
			Returns:   "object",
			OpenWorld: true,
		},
		{
			ID:          "media.icon_search",
			Name:        "Search Icons",
			Description: "Search Material Symbols icons by keyword",
			Parameters: []types.Parameter{
				{Name: "query", Type: "string", Description: "Search keywords, multiple words narrow the match", Required: true},
				{Name: "limit", Type: "number", Description: "Maximum results", Required: false, Default: 20},
			},
			Returns:    "object",
			ReadOnly:   true,
			Idempotent: true,
			OpenWorld:  true,
		},
		{
			ID:          "media.add_icon",
			Name:        "Add Icon",
			Description: "Insert a Material Symbols icon as a vector image",
			Parameters: []types.Parameter{
				slideParam(),
				{Name: "name", Type: "string", Description: "Icon name, as returned by media.icon_search", Required: true},
				{Name: "left", Type: "number", Description: "Left edge in points", Required: false, Default: 100},
				{Name: "top", Type: "number", Description: "Top edge in points", Required: false, Default: 100},
				{Name: "width", Type: "number", Description: "Width in points", Required: false, Default: 72},
				{Name: "height", Type: "number", Description: "Height in points", Required: false, Default: 72},
				{Name: "color", Type: "string", Description: "Icon color as hex like #RRGGBB", Required: false, Default: "#000000"},
				{Name: "style", Type: "string", Description: "Icon style", Required: false, Default: "outlined", Enum: []string{"outlined", "rounded", "sharp"}},
				{Name: "filled", Type: "boolean", Description: "Use the filled variant", Required: false},
			},
			Returns:   "object",
			OpenWorld: true,
		},
		{
			ID:          "media.add_video",
			Name:        "Add Video",
			Description: "Insert a video file from disk",
			Parameters: append([]types.Parameter{
				slideParam(),
				{Name: "path", Type: "string", Description: "Path to the video file", Required: true},
			}, placementParams()...),
			Returns: "object",
		},
		{
			ID:          "media.add_audio",
			Name:        "Add Audio",
			Description: "Insert an audio file from disk",
			Parameters: append([]types.Parameter{
				slideParam(),
				{Name: "path", Type: "string", Description: "Path to the audio file", Required: true},
			}, placementParams()...),
			Returns: "object",
		},
	}
}

// Execute runs a media tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "media.add_picture":
		return p.addPicture(ctx, params)
	case "media.add_picture_url":
		return p.addPictureURL(ctx, params)
	case "media.icon_search":
		return p.iconSearch(ctx, params)
	case "media.add_icon":
		return p.addIcon(ctx, params)
	case "media.add_video":
		return p.addMedia(ctx, params, "video")
	case "media.add_audio":
		return p.addMedia(ctx, params, "audio")
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    data,
	}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{
		Success: false,
		Error:   &errMsg,
	}, fmt.Errorf("%s", message)
}
