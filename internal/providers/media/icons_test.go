package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/slidewire/slidewire/internal/config"
)

const metadataBody = `)]}'
{"icons": [
  {"name": "home", "categories": ["action"], "tags": ["house", "main"], "popularity": 5000},
  {"name": "home_work", "categories": ["navigation"], "tags": ["house", "office"], "popularity": 900},
  {"name": "search", "categories": ["action"], "tags": ["magnifying", "find"], "popularity": 8000}
]}`

func testIndex(t *testing.T, hits *int) (*iconIndex, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Write([]byte(metadataBody))
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(config.MediaConfig{FetchTimeout: 5 * time.Second})
	index := newIconIndex(fetcher, time.Hour)
	index.metadataURL = server.URL
	return index, server
}

func TestSearchStripsGuardPrefix(t *testing.T) {
	hits := 0
	index, _ := testIndex(t, &hits)

	matches, err := index.search(context.Background(), "home", 20)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Name != "home" {
		t.Errorf("Exact name match should rank first, got %s", matches[0].Name)
	}
	if matches[1].Name != "home_work" {
		t.Errorf("Expected home_work second, got %s", matches[1].Name)
	}
}

func TestSearchCachesMetadata(t *testing.T) {
	hits := 0
	index, _ := testIndex(t, &hits)

	ctx := context.Background()
	if _, err := index.search(ctx, "home", 20); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if _, err := index.search(ctx, "search", 20); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("Expected one metadata fetch, got %d", hits)
	}

	index.mu.Lock()
	index.fetchedAt = time.Now().Add(-25 * time.Hour)
	index.mu.Unlock()

	if _, err := index.search(ctx, "home", 20); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits != 2 {
		t.Errorf("Expired cache should refetch, got %d hits", hits)
	}
}

func TestSearchHonorsLimit(t *testing.T) {
	hits := 0
	index, _ := testIndex(t, &hits)

	matches, err := index.search(context.Background(), "house", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Name != "home" {
		t.Errorf("Popularity should break the tag tie, got %s", matches[0].Name)
	}
}

func TestScoreIcon(t *testing.T) {
	ic := icon{Name: "arrow_forward", Tags: []string{"arrow", "next"}, Categories: []string{"navigation"}, Popularity: 2000}

	exact := scoreIcon(ic, "arrow_forward", []string{"arrow_forward"})
	joined := scoreIcon(ic, "arrow forward", []string{"arrow", "forward"})
	partial := scoreIcon(ic, "arrow", []string{"arrow"})
	miss := scoreIcon(ic, "database", []string{"database"})

	if exact <= partial || joined <= partial {
		t.Errorf("Expected full-name queries to beat partial, got %.1f %.1f %.1f", exact, joined, partial)
	}
	if miss != 0 {
		t.Errorf("Unrelated query should score zero, got %.1f", miss)
	}
}

func TestIconURL(t *testing.T) {
	url := iconURL("bolt", "rounded", true)
	if !strings.HasSuffix(url, "/rounded/bolt-fill.svg") {
		t.Errorf("Unexpected icon URL: %s", url)
	}

	url = iconURL("bolt", "outlined", false)
	if !strings.HasSuffix(url, "/outlined/bolt.svg") {
		t.Errorf("Unexpected icon URL: %s", url)
	}
}

func TestColorizeSVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><path fill="currentColor" d="M0 0"/></svg>`
	out := colorizeSVG(svg, "#FF0000")
	if strings.Contains(out, "currentColor") {
		t.Error("currentColor should be replaced")
	}
	if !strings.Contains(out, `fill="#FF0000"`) {
		t.Error("Fill color missing after replacement")
	}

	plain := `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`
	out = colorizeSVG(plain, "#00FF00")
	if !strings.HasPrefix(out, `<svg fill="#00FF00" `) {
		t.Errorf("Root fill should be injected, got %s", out)
	}
}
