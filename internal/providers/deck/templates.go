package deck

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/slidewire/slidewire/internal/types"
)

func (p *Provider) templates(ctx context.Context) (*types.Result, error) {
	entries := []map[string]interface{}{}
	var mu sync.Mutex

	for _, dir := range p.templateDirs {
		root, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}

		conf := fastwalk.Config{Follow: false}
		err = fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil || d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			matched, _ := doublestar.Match(p.templatePattern, filepath.ToSlash(rel))
			if !matched {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}
			mu.Lock()
			entries = append(entries, map[string]interface{}{
				"name":     d.Name(),
				"path":     path,
				"size":     info.Size(),
				"modified": info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
			})
			mu.Unlock()
			return nil
		})
		if err != nil {
			return failure(err.Error())
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i]["path"].(string) < entries[j]["path"].(string)
	})
	return success(map[string]interface{}{
		"templates": entries,
		"count":     len(entries),
	})
}
