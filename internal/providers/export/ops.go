package export

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

func (p *Provider) pdf(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	path, err := params.String(args, "path", false)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithTargetTimeout(ctx, exportTimeout, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		out := path
		if out == "" {
			base, err := stem(pres)
			if err != nil {
				return nil, err
			}
			out = base + ".pdf"
		}
		dest, err := p.resolveOutput(pres, out)
		if err != nil {
			return nil, err
		}
		if err := ensureDir(dest); err != nil {
			return nil, err
		}

		if err := pres.ExportPDF(dest); err != nil {
			return nil, fmt.Errorf("PDF export to %s failed: %w", dest, err)
		}
		slides, err := pres.SlideCount()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"path":   dest,
			"slides": slides,
		}, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) pdfRange(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	from, err := params.Int(args, "from", true)
	if err != nil {
		return failure(err.Error())
	}
	to, err := params.Int(args, "to", true)
	if err != nil {
		return failure(err.Error())
	}
	if from < 1 {
		return failure("from must be at least 1")
	}
	if to < from {
		return failure("to must not be less than from")
	}
	path, err := params.String(args, "path", false)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithTargetTimeout(ctx, exportTimeout, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		total, err := pres.SlideCount()
		if err != nil {
			return nil, err
		}
		if to > total {
			return nil, fmt.Errorf("to %d is out of range; the presentation has %d slides", to, total)
		}

		out := path
		if out == "" {
			base, err := stem(pres)
			if err != nil {
				return nil, err
			}
			out = fmt.Sprintf("%s_%d-%d.pdf", base, from, to)
		}
		dest, err := p.resolveOutput(pres, out)
		if err != nil {
			return nil, err
		}
		if err := ensureDir(dest); err != nil {
			return nil, err
		}

		// The PDF exporter has no print-range argument, so trim a
		// throwaway copy down to the range and export that instead.
		tmp := filepath.Join(os.TempDir(), fmt.Sprintf("slidewire-range-%d.pptx", time.Now().UnixNano()))
		if err := pres.SaveCopyAs(tmp); err != nil {
			return nil, fmt.Errorf("range copy failed: %w", err)
		}
		defer os.Remove(tmp)

		scratch, err := app.OpenPresentation(tmp, false, false)
		if err != nil {
			return nil, fmt.Errorf("range copy open failed: %w", err)
		}
		defer func() {
			scratch.SetSaved(true)
			scratch.Close()
			scratch.Release()
		}()

		// Delete from the back first so earlier indexes stay stable.
		for i := total; i > to; i-- {
			if err := deleteSlide(scratch, i); err != nil {
				return nil, err
			}
		}
		for i := from - 1; i >= 1; i-- {
			if err := deleteSlide(scratch, i); err != nil {
				return nil, err
			}
		}

		if err := scratch.ExportPDF(dest); err != nil {
			return nil, fmt.Errorf("PDF export to %s failed: %w", dest, err)
		}
		return map[string]interface{}{
			"path":   dest,
			"from":   from,
			"to":     to,
			"slides": to - from + 1,
		}, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) images(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	dir, err := params.String(args, "dir", true)
	if err != nil {
		return failure(err.Error())
	}
	format := strings.ToLower(params.StringDefault(args, "format", "png"))
	filter, err := powerpoint.ExportFilter(format)
	if err != nil {
		return failure(err.Error())
	}
	slide, err := params.IntPtr(args, "slide")
	if err != nil {
		return failure(err.Error())
	}
	width := params.IntDefault(args, "width", 0)
	height := params.IntDefault(args, "height", 0)

	value, err := p.client.WithTargetTimeout(ctx, exportTimeout, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		absDir, err := p.resolveOutput(pres, dir)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(absDir, 0o755); err != nil {
			return nil, err
		}

		if slide != nil {
			target, err := pres.Slide(*slide)
			if err != nil {
				return nil, err
			}
			defer target.Release()

			file := filepath.Join(absDir, fmt.Sprintf("Slide%d.%s", *slide, format))
			if err := target.Export(file, filter, width, height); err != nil {
				return nil, fmt.Errorf("image export to %s failed: %w", file, err)
			}
			return map[string]interface{}{
				"dir":    absDir,
				"format": format,
				"slide":  *slide,
				"files":  []string{file},
			}, nil
		}

		if err := pres.ExportImages(absDir, filter, width, height); err != nil {
			return nil, fmt.Errorf("image export to %s failed: %w", absDir, err)
		}
		files, err := collectImages(absDir, format)
		if err != nil {
			return nil, err
		}
		slides, err := pres.SlideCount()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"dir":    absDir,
			"format": format,
			"slides": slides,
			"count":  len(files),
			"files":  files,
		}, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

func (p *Provider) thumbnail(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	slide := params.IntDefault(args, "slide", 1)
	if slide < 1 {
		return failure("slide must be at least 1")
	}
	width := params.IntDefault(args, "width", 512)
	if width < 1 {
		return failure("width must be at least 1")
	}
	height, err := params.IntPtr(args, "height")
	if err != nil {
		return failure(err.Error())
	}
	path, err := params.String(args, "path", false)
	if err != nil {
		return failure(err.Error())
	}

	value, err := p.client.WithTargetTimeout(ctx, exportTimeout, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		target, err := pres.Slide(slide)
		if err != nil {
			return nil, err
		}
		defer target.Release()

		h := 0
		if height != nil {
			h = *height
		} else {
			// Keep the slide aspect when only a width is given.
			sw, sh, err := pres.SlideSize()
			if err != nil {
				return nil, err
			}
			if sw > 0 {
				h = int(math.Round(float64(width) * sh / sw))
			}
		}
		if h < 1 {
			h = 1
		}

		out := path
		if out == "" {
			base, err := stem(pres)
			if err != nil {
				return nil, err
			}
			out = fmt.Sprintf("%s_slide%d.png", base, slide)
		}
		dest, err := p.resolveOutput(pres, out)
		if err != nil {
			return nil, err
		}
		if err := ensureDir(dest); err != nil {
			return nil, err
		}

		if err := target.Export(dest, "PNG", width, h); err != nil {
			return nil, fmt.Errorf("thumbnail export to %s failed: %w", dest, err)
		}
		return map[string]interface{}{
			"path":   dest,
			"slide":  slide,
			"width":  width,
			"height": h,
		}, nil
	})
	if err != nil {
		return failure(err.Error())
	}
	return success(value.(map[string]interface{}))
}

// resolveOutput turns path into an absolute destination. Relative
// paths land in the configured export directory when one is set,
// otherwise next to the presentation file; presentations that were
// never saved fall back to the working directory.
func (p *Provider) resolveOutput(pres *powerpoint.Presentation, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	base := p.dir
	if base == "" {
		presDir, err := pres.Path()
		if err != nil {
			return "", err
		}
		base = presDir
	}
	if base == "" {
		return filepath.Abs(path)
	}
	return filepath.Join(base, path), nil
}

// stem returns the presentation file name without its extension.
func stem(pres *powerpoint.Presentation) (string, error) {
	name, err := pres.Name()
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = "presentation"
	}
	return base, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func deleteSlide(pres *powerpoint.Presentation, index int) error {
	slide, err := pres.Slide(index)
	if err != nil {
		return err
	}
	defer slide.Release()
	return slide.Delete()
}

// collectImages lists the exported image files in dir. The exporter
// names files in the UI language, so match on extension rather than
// on a name prefix.
func collectImages(dir, format string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	ext := "." + format
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
