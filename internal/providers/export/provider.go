// Package export renders presentations to PDF files, per-slide
// images, thumbnails, and gzip-compressed image archives.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/slidewire/slidewire/internal/config"
	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/types"
)

// Rendering a full deck can outlive the default call budget, so export
// tools run with their own timeout.
const exportTimeout = 2 * time.Minute

// Client is the automation surface this provider drives
type Client interface {
	WithTargetTimeout(ctx context.Context, timeout time.Duration, fn func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error)) (interface{}, error)
}

// Provider implements export tools
type Provider struct {
	client Client
	dir    string
}

// NewProvider creates an export provider. cfg.Dir sets where relative
// output paths land; empty means alongside the presentation file.
func NewProvider(client Client, cfg config.ExportConfig) *Provider {
	return &Provider{client: client, dir: cfg.Dir}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "export",
		Name:        "Export",
		Description: "Render presentations to PDF, slide images, and packaged archives",
		Category:    types.CategoryExport,
		Capabilities: []string{
			"pdf",
			"pdf_range",
			"images",
			"thumbnails",
			"archives",
		},
		Tools: p.getTools(),
	}
}

// pathParam builds the optional output path parameter shared by the
// file-producing tools.
func pathParam(description string) types.Parameter {
	return types.Parameter{
		Name:        "path",
		Type:        "string",
		Description: description + "; relative paths land in the export directory or alongside the presentation",
		Required:    false,
	}
}

func formatParam() types.Parameter {
	return types.Parameter{
		Name:        "format",
		Type:        "string",
		Description: "Image format",
		Required:    false,
		Enum:        []string{"png", "jpg", "gif", "bmp"},
		Default:     "png",
	}
}

func sizeParams() []types.Parameter {
	return []types.Parameter{
		{Name: "width", Type: "number", Description: "Image width in pixels; supply both width and height to scale", Required: false},
		{Name: "height", Type: "number", Description: "Image height in pixels; supply both width and height to scale", Required: false},
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "export.pdf",
			Name:        "Export PDF",
			Description: "Export the whole presentation to a PDF file",
			Parameters: []types.Parameter{
				pathParam("Output PDF path; defaults to the presentation name with a .pdf extension"),
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "export.pdf_range",
			Name:        "Export PDF Range",
			Description: "Export a contiguous slide range to a PDF file",
			Parameters: []types.Parameter{
				{Name: "from", Type: "number", Description: "First slide of the range, 1-based", Required: true},
				{Name: "to", Type: "number", Description: "Last slide of the range, inclusive", Required: true},
				pathParam("Output PDF path; defaults to the presentation name with the range appended"),
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "export.images",
			Name:        "Export Images",
			Description: "Render the whole deck, or a single slide, to image files in a directory",
			Parameters: append([]types.Parameter{
				{Name: "dir", Type: "string", Description: "Output directory, created when missing; relative paths resolve like output paths", Required: true},
				formatParam(),
				{Name: "slide", Type: "number", Description: "1-based slide index; omit to export every slide", Required: false},
			}, sizeParams()...),
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "export.thumbnail",
			Name:        "Export Thumbnail",
			Description: "Render one slide to a PNG preview scaled to the given width",
			Parameters: []types.Parameter{
				{Name: "slide", Type: "number", Description: "1-based slide index", Required: false, Default: 1},
				{Name: "width", Type: "number", Description: "Thumbnail width in pixels", Required: false, Default: 512},
				{Name: "height", Type: "number", Description: "Thumbnail height in pixels; computed from the slide aspect when omitted", Required: false},
				pathParam("Output PNG path; defaults to the presentation name with the slide appended"),
			},
			Returns:    "object",
			Idempotent: true,
		},
		{
			ID:          "export.archive",
			Name:        "Export Archive",
			Description: "Render every slide to images and pack them into a gzip-compressed tarball",
			Parameters: append([]types.Parameter{
				pathParam("Output archive path; defaults to the presentation name with a .tar.gz extension"),
				formatParam(),
			}, sizeParams()...),
			Returns:    "object",
			Idempotent: true,
		},
	}
}

// Execute runs an export tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "export.pdf":
		return p.pdf(ctx, params)
	case "export.pdf_range":
		return p.pdfRange(ctx, params)
	case "export.images":
		return p.images(ctx, params)
	case "export.thumbnail":
		return p.thumbnail(ctx, params)
	case "export.archive":
		return p.archive(ctx, params)
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
