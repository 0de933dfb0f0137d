package export

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/slidewire/slidewire/internal/config"
	"github.com/slidewire/slidewire/internal/powerpoint"
)

// mockClient returns canned values; the closures need live automation
// objects, so they never run here.
type mockClient struct {
	targetValue interface{}
	targetErr   error
	targetCalls int
	lastTimeout time.Duration
}

func (m *mockClient) WithTargetTimeout(ctx context.Context, timeout time.Duration, fn func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error)) (interface{}, error) {
	m.targetCalls++
	m.lastTimeout = timeout
	if m.targetErr != nil {
		return nil, m.targetErr
	}
	return m.targetValue, nil
}

func TestDefinition(t *testing.T) {
	provider := NewProvider(&mockClient{}, config.ExportConfig{})
	def := provider.Definition()

	if def.ID != "export" {
		t.Errorf("Expected service ID export, got %s", def.ID)
	}
	if len(def.Tools) != 5 {
		t.Fatalf("Expected 5 tools, got %d", len(def.Tools))
	}
	for _, tool := range def.Tools {
		if !tool.Idempotent {
			t.Errorf("Expected %s to be idempotent", tool.ID)
		}
		if tool.ReadOnly {
			t.Errorf("Expected %s not to be read-only", tool.ID)
		}
		if tool.Destructive {
			t.Errorf("Expected %s not to be destructive", tool.ID)
		}
	}
}

func TestPDFReportsDestination(t *testing.T) {
	client := &mockClient{targetValue: map[string]interface{}{
		"path":   `C:\decks\q3.pdf`,
		"slides": 9,
	}}
	provider := NewProvider(client, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.pdf", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatal("Expected success")
	}
	if result.Data["path"] != `C:\decks\q3.pdf` {
		t.Errorf("Unexpected path %v", result.Data["path"])
	}
	if client.lastTimeout != exportTimeout {
		t.Errorf("Expected timeout %v, got %v", exportTimeout, client.lastTimeout)
	}
}

func TestPDFRangeValidatesOrder(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.pdf_range", map[string]interface{}{
		"from": float64(4),
		"to":   float64(2),
	}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected inverted range to fail")
	}
	if client.targetCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestPDFRangeRequiresFrom(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.pdf_range", map[string]interface{}{
		"to": float64(2),
	}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected missing from to fail")
	}
	if client.targetCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestImagesRequiresDir(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.images", map[string]interface{}{}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected missing dir to fail")
	}
	if client.targetCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestImagesRejectsUnknownFormat(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.images", map[string]interface{}{
		"dir":    "out",
		"format": "tiff",
	}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected unknown format to fail")
	}
	if client.targetCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestThumbnailRejectsZeroWidth(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.thumbnail", map[string]interface{}{
		"width": float64(0),
	}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected zero width to fail")
	}
	if client.targetCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestArchivePacksExportedImages(t *testing.T) {
	staging := t.TempDir()
	files := []string{
		filepath.Join(staging, "Slide1.png"),
		filepath.Join(staging, "Slide2.png"),
	}
	for i, file := range files {
		if err := os.WriteFile(file, bytes.Repeat([]byte{byte(i + 1)}, 64), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	dest := filepath.Join(t.TempDir(), "deck.tar.gz")

	client := &mockClient{targetValue: &archiveSource{files: files, dest: dest, slides: 2}}
	provider := NewProvider(client, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.archive", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Data["files"] != 2 {
		t.Errorf("Expected 2 packed files, got %v", result.Data["files"])
	}
	if written := result.Data["bytes"].(int64); written != 128 {
		t.Errorf("Expected 128 content bytes, got %d", written)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("Expected archive at %s: %v", dest, err)
	}
}

func TestArchiveRejectsUnknownFormat(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.archive", map[string]interface{}{
		"format": "webp",
	}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected unknown format to fail")
	}
	if client.targetCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Slide1.png", "Slide2.PNG", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "extra.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := collectImages(dir, "png")
	if err != nil {
		t.Fatalf("collectImages failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 images, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "Slide1.png" || filepath.Base(files[1]) != "Slide2.PNG" {
		t.Errorf("Unexpected files %v", files)
	}
}

func TestPackImagesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	contents := map[string][]byte{
		"Slide1.png": []byte("first slide bits"),
		"Slide2.png": []byte("second slide bits"),
	}
	files := make([]string, 0, len(contents))
	total := int64(0)
	for name, data := range contents {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, path)
		total += int64(len(data))
	}
	sort.Strings(files)

	dest := filepath.Join(t.TempDir(), "slides.tar.gz")
	written, err := packImages(dest, files)
	if err != nil {
		t.Fatalf("packImages failed: %v", err)
	}
	if written != total {
		t.Errorf("Expected %d bytes written, got %d", total, written)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip open failed: %v", err)
	}
	tr := tar.NewReader(gz)

	seen := map[string][]byte{}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar read failed: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		seen[header.Name] = data
	}
	if len(seen) != len(contents) {
		t.Fatalf("Expected %d entries, got %d", len(contents), len(seen))
	}
	for name, want := range contents {
		if !bytes.Equal(seen[name], want) {
			t.Errorf("Entry %s mismatch: got %q", name, seen[name])
		}
	}
}

func TestUnknownTool(t *testing.T) {
	provider := NewProvider(&mockClient{}, config.ExportConfig{})

	result, err := provider.Execute(context.Background(), "export.fax", map[string]interface{}{}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected unknown tool to fail")
	}
}
