package media

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

const (
	iconMetadataURL = "https://fonts.google.com/metadata/icons"
	iconCDNBase     = "https://cdn.jsdelivr.net/npm/@material-symbols/svg-400@0.31.3"
)

type icon struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Popularity int      `json:"popularity"`
}

type iconMatch struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Popularity int      `json:"popularity"`
	Score      float64  `json:"score"`
}

// iconIndex caches the Material Symbols metadata and answers keyword
// searches against it.
type iconIndex struct {
	fetcher     *Fetcher
	metadataURL string
	ttl         time.Duration

	mu        sync.Mutex
	icons     []icon
	fetchedAt time.Time
}

func newIconIndex(fetcher *Fetcher, ttl time.Duration) *iconIndex {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &iconIndex{
		fetcher:     fetcher,
		metadataURL: iconMetadataURL,
		ttl:         ttl,
	}
}

func (ix *iconIndex) load(ctx context.Context) ([]icon, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.icons != nil && time.Since(ix.fetchedAt) < ix.ttl {
		return ix.icons, nil
	}

	raw, err := ix.fetcher.FetchText(ctx, ix.metadataURL)
	if err != nil {
		return nil, fmt.Errorf("icon metadata fetch failed: %w", err)
	}

	// The metadata endpoint prepends a )]}' guard line before the JSON.
	if strings.HasPrefix(raw, ")]}'") {
		if i := strings.IndexByte(raw, '\n'); i >= 0 {
			raw = raw[i+1:]
		}
	}

	var payload struct {
		Icons []icon `json:"icons"`
	}
	if err := sonic.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("icon metadata parse failed: %w", err)
	}

	ix.icons = payload.Icons
	ix.fetchedAt = time.Now()
	return ix.icons, nil
}

// search scores every icon against the query and returns the best
// matches, highest score first.
func (ix *iconIndex) search(ctx context.Context, query string, limit int) ([]iconMatch, error) {
	icons, err := ix.load(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(query)

	matches := []iconMatch{}
	for _, ic := range icons {
		score := scoreIcon(ic, query, words)
		if score <= 0 {
			continue
		}
		tags := ic.Tags
		if len(tags) > 8 {
			tags = tags[:8]
		}
		matches = append(matches, iconMatch{
			Name:       ic.Name,
			Categories: ic.Categories,
			Tags:       tags,
			Popularity: ic.Popularity,
			Score:      math.Round(score*100) / 100,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name < matches[j].Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func scoreIcon(ic icon, query string, words []string) float64 {
	name := strings.ToLower(ic.Name)

	score := 0.0
	switch {
	case name == query:
		score += 100
	case name == strings.ReplaceAll(query, " ", "_"):
		score += 90
	case strings.Contains(name, query):
		score += 50
	}

	if len(words) > 1 {
		all := true
		for _, w := range words {
			if !strings.Contains(name, w) {
				all = false
				break
			}
		}
		if all {
			score += 40
		}
	}

	for _, w := range words {
		if strings.Contains(name, w) {
			score += 30
		}
		for _, tag := range ic.Tags {
			tag = strings.ToLower(tag)
			if w == tag {
				score += 20
			} else if strings.Contains(tag, w) {
				score += 10
			}
		}
		for _, cat := range ic.Categories {
			if strings.Contains(strings.ToLower(cat), w) {
				score += 5
			}
		}
	}

	if score > 0 {
		score += math.Min(float64(ic.Popularity)/1000, 10)
	}
	return score
}

// iconURL builds the CDN address of one icon variant.
func iconURL(name, style string, filled bool) string {
	file := name
	if filled {
		file += "-fill"
	}
	return fmt.Sprintf("%s/%s/%s.svg", iconCDNBase, style, file)
}

// colorizeSVG replaces currentColor with hex and makes sure the root
// element carries an explicit fill.
func colorizeSVG(svg, hex string) string {
	svg = strings.ReplaceAll(svg, "currentColor", hex)
	if !strings.Contains(svg, `fill="`+hex+`"`) {
		svg = strings.Replace(svg, "<svg ", `<svg fill="`+hex+`" `, 1)
	}
	return svg
}
