package slide

import (
	"context"
	"testing"

	"github.com/slidewire/slidewire/internal/powerpoint"
)

type mockClient struct {
	targetValue interface{}
	targetErr   error
	slideValue  interface{}
	slideErr    error
	slideIndex  int
	slideCalls  int
}

func (m *mockClient) WithTarget(ctx context.Context, fn func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error)) (interface{}, error) {
	return m.targetValue, m.targetErr
}

func (m *mockClient) WithSlide(ctx context.Context, index int, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error)) (interface{}, error) {
	m.slideIndex = index
	m.slideCalls++
	return m.slideValue, m.slideErr
}

func TestDefinition(t *testing.T) {
	p := NewProvider(&mockClient{})
	def := p.Definition()

	if def.ID != "slide" {
		t.Errorf("Expected slide, got %s", def.ID)
	}
	if len(def.Tools) != 11 {
		t.Fatalf("Expected 11 tools, got %d", len(def.Tools))
	}

	for _, tool := range def.Tools {
		switch tool.ID {
		case "slide.list", "slide.get", "slide.layouts", "slide.notes_get":
			if !tool.ReadOnly {
				t.Errorf("%s should be read-only", tool.ID)
			}
		case "slide.delete":
			if !tool.Destructive {
				t.Error("slide.delete should be destructive")
			}
		}
	}
}

func TestGetRequiresIndex(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "slide.get", map[string]interface{}{}, nil)
	if err == nil || result.Success {
		t.Error("Missing index should fail")
	}
	if client.slideCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestNotesGet(t *testing.T) {
	client := &mockClient{slideValue: "Remember the demo."}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "slide.notes_get", map[string]interface{}{"index": 3.0}, nil)
	if err != nil || !result.Success {
		t.Fatalf("NotesGet failed: %v", err)
	}
	if client.slideIndex != 3 {
		t.Errorf("Expected index 3, got %d", client.slideIndex)
	}
	if result.Data["notes"] != "Remember the demo." {
		t.Errorf("Unexpected notes: %v", result.Data["notes"])
	}
}

func TestNotesSetRequiresText(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "slide.notes_set", map[string]interface{}{"index": 1.0}, nil)
	if err == nil || result.Success {
		t.Error("Missing text should fail")
	}
}

func TestNotesSetAcceptsEmptyText(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "slide.notes_set", map[string]interface{}{
		"index": 1.0,
		"text":  "",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Empty text should clear notes: %v", err)
	}
	if client.slideCalls != 1 {
		t.Error("Expected the client to be reached")
	}
}

func TestBackgroundValidation(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "slide.background", map[string]interface{}{"index": 1.0}, nil)
	if err == nil || result.Success {
		t.Error("Missing color and picture should fail")
	}

	result, err = p.Execute(context.Background(), "slide.background", map[string]interface{}{
		"index":   1.0,
		"color":   "#FF0000",
		"picture": "bg.png",
	}, nil)
	if err == nil || result.Success {
		t.Error("Color and picture together should fail")
	}

	result, err = p.Execute(context.Background(), "slide.background", map[string]interface{}{
		"index": 1.0,
		"color": "red",
	}, nil)
	if err == nil || result.Success {
		t.Error("Invalid hex color should fail")
	}
}

func TestBackgroundColor(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "slide.background", map[string]interface{}{
		"index": 2.0,
		"color": "#336699",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Background failed: %v", err)
	}
	if client.slideIndex != 2 {
		t.Errorf("Expected index 2, got %d", client.slideIndex)
	}
}

func TestMoveRequiresDestination(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "slide.move", map[string]interface{}{"index": 1.0}, nil)
	if err == nil || result.Success {
		t.Error("Missing destination should fail")
	}
}

func TestDuplicateReportsCopyIndex(t *testing.T) {
	client := &mockClient{slideValue: 4}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "slide.duplicate", map[string]interface{}{"index": 3.0}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if result.Data["copy_index"] != 4 {
		t.Errorf("Expected copy at 4, got %v", result.Data["copy_index"])
	}
}

func TestUnknownTool(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "slide.bogus", nil, nil)
	if err == nil || result.Success {
		t.Error("Unknown tool should fail")
	}
}
