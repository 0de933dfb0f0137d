package text

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
	shapeValue  interface{}
	shapeErr    error

	shapeCalls int
	lastRef    powerpoint.ShapeRef
}

func (m *mockClient) WithTarget(ctx context.Context, fn func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error)) (interface{}, error) {
	return m.targetValue, m.targetErr
}

func (m *mockClient) WithSlide(ctx context.Context, index int, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error)) (interface{}, error) {
	return m.slideValue, m.slideErr
}

func (m *mockClient) WithShape(ctx context.Context, slideIndex int, ref powerpoint.ShapeRef, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error)) (interface{}, error) {
	m.lastRef = ref
	m.shapeCalls++
	return m.shapeValue, m.shapeErr
}

func TestDefinition(t *testing.T) {
	p := NewProvider(&mockClient{})
	def := p.Definition()

	if def.ID != "text" {
		t.Errorf("Expected text, got %s", def.ID)
	}
	if len(def.Tools) != 9 {
		t.Fatalf("Expected 9 tools, got %d", len(def.Tools))
	}

	for _, tool := range def.Tools {
		switch tool.ID {
		case "text.get", "text.find":
			if !tool.ReadOnly {
				t.Errorf("%s should be read-only", tool.ID)
			}
		}
	}
}

func TestSetRequiresText(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "text.set", map[string]interface{}{
		"slide": 1.0,
		"shape": "Title 1",
	}, nil)
	if err == nil || result.Success {
		t.Error("Missing text should fail")
	}
	if client.shapeCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestSetAcceptsEmptyText(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "text.set", map[string]interface{}{
		"slide": 1.0,
		"shape": "Title 1",
		"text":  "",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Empty text should clear the shape: %v", err)
	}
	if client.lastRef.Name != "Title 1" {
		t.Errorf("Expected name ref, got %+v", client.lastRef)
	}
}

func TestFormatRequiresAttribute(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "text.format", map[string]interface{}{
		"slide": 1.0,
		"shape": "Title 1",
	}, nil)
	if err == nil || result.Success {
		t.Error("No font attribute should fail")
	}
}

func TestFormatRejectsBadColor(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "text.format", map[string]interface{}{
		"slide": 1.0,
		"shape": "Title 1",
		"color": "bright red",
	}, nil)
	if err == nil || result.Success {
		t.Error("Invalid color should fail")
	}
}

func TestBulletsValidatesStyle(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "text.bullets", map[string]interface{}{
		"slide": 1.0,
		"shape": "Body",
		"style": "stars",
	}, nil)
	if err == nil || result.Success {
		t.Error("Unknown bullet style should fail")
	}
}

func TestFindResults(t *testing.T) {
	client := &mockClient{targetValue: []map[string]interface{}{
		{"slide": 1, "shape": "Title 1"},
		{"slide": 3, "shape": "Body 2"},
	}}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "text.find", map[string]interface{}{
		"text": "revenue",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Find failed: %v", err)
	}
	if result.Data["count"] != 2 {
		t.Errorf("Expected 2 matches, got %v", result.Data["count"])
	}
}

func TestReplaceRequiresReplacement(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "text.replace", map[string]interface{}{
		"find": "Q3",
	}, nil)
	if err == nil || result.Success {
		t.Error("Missing replacement should fail")
	}
}

func TestReplaceCountsAcrossDeck(t *testing.T) {
	client := &mockClient{targetValue: 7}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "text.replace", map[string]interface{}{
		"find":    "Q3",
		"replace": "Q4",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Replace failed: %v", err)
	}
	if result.Data["replacements"] != 7 {
		t.Errorf("Expected 7 replacements, got %v", result.Data["replacements"])
	}
}

func TestAutofitRejectsUnknownMode(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "text.autofit", map[string]interface{}{
		"slide": 1.0,
		"shape": "Body",
		"mode":  "shrink",
	}, nil)
	if err == nil || result.Success {
		t.Error("Unknown autofit mode should fail")
	}
}

func TestAddTextbox(t *testing.T) {
	client := &mockClient{slideValue: "TextBox 3"}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "text.add_textbox", map[string]interface{}{
		"slide": 2.0,
		"text":  "Agenda",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("AddTextbox failed: %v", err)
	}
	if result.Data["name"] != "TextBox 3" {
		t.Errorf("Expected TextBox 3, got %v", result.Data["name"])
	}
}
