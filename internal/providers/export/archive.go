package export

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/slidewire/slidewire/internal/powerpoint"
	"github.com/slidewire/slidewire/internal/providers/params"
	"github.com/slidewire/slidewire/internal/types"
)

// archiveSource is what the automation closure hands back for packing.
type archiveSource struct {
	files  []string
	dest   string
	slides int
}

func (p *Provider) archive(ctx context.Context, args map[string]interface{}) (*types.Result, error) {
	format := strings.ToLower(params.StringDefault(args, "format", "png"))
	filter, err := powerpoint.ExportFilter(format)
	if err != nil {
		return failure(err.Error())
	}
	width := params.IntDefault(args, "width", 0)
	height := params.IntDefault(args, "height", 0)
	path, err := params.String(args, "path", false)
	if err != nil {
		return failure(err.Error())
	}

	staging, err := os.MkdirTemp("", "slidewire-archive-")
	if err != nil {
		return failure(fmt.Sprintf("staging directory failed: %v", err))
	}
	defer os.RemoveAll(staging)

	value, err := p.client.WithTargetTimeout(ctx, exportTimeout, func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error) {
		out := path
		if out == "" {
			base, err := stem(pres)
			if err != nil {
				return nil, err
			}
			out = base + ".tar.gz"
		}
		dest, err := p.resolveOutput(pres, out)
		if err != nil {
			return nil, err
		}

		if err := pres.ExportImages(staging, filter, width, height); err != nil {
			return nil, fmt.Errorf("image export failed: %w", err)
		}
		files, err := collectImages(staging, format)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("export produced no %s files", format)
		}
		slides, err := pres.SlideCount()
		if err != nil {
			return nil, err
		}
		return &archiveSource{files: files, dest: dest, slides: slides}, nil
	})
	if err != nil {
		return failure(err.Error())
	}

	// Packing is plain file IO, so it runs here instead of holding the
	// automation thread.
	src := value.(*archiveSource)
	if err := ensureDir(src.dest); err != nil {
		return failure(err.Error())
	}
	written, err := packImages(src.dest, src.files)
	if err != nil {
		return failure(fmt.Sprintf("archive %s failed: %v", src.dest, err))
	}
	return success(map[string]interface{}{
		"path":   src.dest,
		"format": format,
		"slides": src.slides,
		"files":  len(src.files),
		"bytes":  written,
	})
}

// packImages writes files into a gzip-compressed tarball at dest.
// Entries keep only their base names.
func packImages(dest string, files []string) (written int64, err error) {
	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			os.Remove(dest)
		}
	}()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	for _, file := range files {
		n, ferr := packFile(tw, file)
		if ferr != nil {
			tw.Close()
			gz.Close()
			out.Close()
			return 0, ferr
		}
		written += n
	}

	if err = tw.Close(); err == nil {
		err = gz.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	return written, nil
}

func packFile(tw *tar.Writer, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, err
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return 0, err
	}
	header.Name = filepath.Base(path)

	if err := tw.WriteHeader(header); err != nil {
		return 0, err
	}
	return io.Copy(tw, file)
}
