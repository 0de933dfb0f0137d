package shape

import (
	"context"
	"testing"

	"github.com/slidewire/slidewire/internal/powerpoint"
)

type mockClient struct {
	slideValue interface{}
	slideErr   error
	shapeValue interface{}
	shapeErr   error

	slideIndex int
	slideCalls int
	shapeCalls int
	lastRef    powerpoint.ShapeRef
}

func (m *mockClient) WithSlide(ctx context.Context, index int, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error)) (interface{}, error) {
	m.slideIndex = index
	m.slideCalls++
	return m.slideValue, m.slideErr
}

func (m *mockClient) WithShape(ctx context.Context, slideIndex int, ref powerpoint.ShapeRef, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error)) (interface{}, error) {
	m.slideIndex = slideIndex
	m.lastRef = ref
	m.shapeCalls++
	return m.shapeValue, m.shapeErr
}

func TestDefinition(t *testing.T) {
	p := NewProvider(&mockClient{})
	def := p.Definition()

	if def.ID != "shape" {
		t.Errorf("Expected shape, got %s", def.ID)
	}
	if len(def.Tools) != 17 {
		t.Fatalf("Expected 17 tools, got %d", len(def.Tools))
	}

	for _, tool := range def.Tools {
		switch tool.ID {
		case "shape.list", "shape.get":
			if !tool.ReadOnly {
				t.Errorf("%s should be read-only", tool.ID)
			}
		case "shape.delete":
			if !tool.Destructive {
				t.Error("shape.delete should be destructive")
			}
		}
	}
}

func TestAddResolvesType(t *testing.T) {
	client := &mockClient{slideValue: "Rectangle 1"}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "shape.add", map[string]interface{}{
		"slide": 1.0,
		"type":  "rectangle",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Add failed: %v", err)
	}
	if result.Data["name"] != "Rectangle 1" {
		t.Errorf("Expected Rectangle 1, got %v", result.Data["name"])
	}
}

func TestAddRejectsUnknownType(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "shape.add", map[string]interface{}{
		"slide": 1.0,
		"type":  "dodecahedron",
	}, nil)
	if err == nil || result.Success {
		t.Error("Unknown autoshape type should fail")
	}
	if client.slideCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestShapeRefByName(t *testing.T) {
	client := &mockClient{shapeValue: powerpoint.ShapeInfo{Name: "Title 1"}}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "shape.get", map[string]interface{}{
		"slide": 2.0,
		"shape": "Title 1",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Get failed: %v", err)
	}
	if client.lastRef.Name != "Title 1" {
		t.Errorf("Expected name ref, got %+v", client.lastRef)
	}
}

func TestShapeRefByIndex(t *testing.T) {
	client := &mockClient{shapeValue: powerpoint.ShapeInfo{}}
	p := NewProvider(client)

	_, err := p.Execute(context.Background(), "shape.get", map[string]interface{}{
		"slide":       2.0,
		"shape_index": 3.0,
	}, nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if client.lastRef.Index != 3 || client.lastRef.Name != "" {
		t.Errorf("Expected index ref, got %+v", client.lastRef)
	}
}

func TestSetGeometryRequiresDimension(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "shape.set_geometry", map[string]interface{}{
		"slide": 1.0,
		"shape": "Box",
	}, nil)
	if err == nil || result.Success {
		t.Error("No dimensions should fail")
	}
	if client.shapeCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestSetFillValidation(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "shape.set_fill", map[string]interface{}{
		"slide": 1.0,
		"shape": "Box",
	}, nil)
	if err == nil || result.Success {
		t.Error("No fill attributes should fail")
	}

	result, err = p.Execute(context.Background(), "shape.set_fill", map[string]interface{}{
		"slide":        1.0,
		"shape":        "Box",
		"transparency": 1.5,
	}, nil)
	if err == nil || result.Success {
		t.Error("Out-of-range transparency should fail")
	}
}

func TestAlignValidation(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "shape.align", map[string]interface{}{
		"slide":   1.0,
		"shapes":  []interface{}{"A", "B"},
		"command": "diagonal",
	}, nil)
	if err == nil || result.Success {
		t.Error("Unknown alignment should fail")
	}
}

func TestDistributeNeedsTwoShapes(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "shape.distribute", map[string]interface{}{
		"slide":     1.0,
		"shapes":    []interface{}{"A"},
		"direction": "horizontal",
	}, nil)
	if err == nil || result.Success {
		t.Error("Single shape distribution should fail")
	}
}

func TestGroupNeedsTwoShapes(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "shape.group", map[string]interface{}{
		"slide":  1.0,
		"shapes": []interface{}{"A"},
	}, nil)
	if err == nil || result.Success {
		t.Error("Single shape group should fail")
	}
}

func TestZOrder(t *testing.T) {
	client := &mockClient{shapeValue: 5}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "shape.z_order", map[string]interface{}{
		"slide":   1.0,
		"shape":   "Box",
		"command": "bring_to_front",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("ZOrder failed: %v", err)
	}
	if result.Data["position"] != 5 {
		t.Errorf("Expected position 5, got %v", result.Data["position"])
	}
}

func TestZOrderRejectsUnknownCommand(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "shape.z_order", map[string]interface{}{
		"slide":   1.0,
		"shape":   "Box",
		"command": "sideways",
	}, nil)
	if err == nil || result.Success {
		t.Error("Unknown z-order command should fail")
	}
}
