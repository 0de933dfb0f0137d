package table

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

	slideCalls int
	shapeCalls int
	lastRef    powerpoint.ShapeRef
}

func (m *mockClient) WithSlide(ctx context.Context, index int, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide) (interface{}, error)) (interface{}, error) {
	m.slideCalls++
	return m.slideValue, m.slideErr
}

func (m *mockClient) WithShape(ctx context.Context, slideIndex int, ref powerpoint.ShapeRef, fn func(app *powerpoint.Application, pres *powerpoint.Presentation, slide *powerpoint.Slide, shape *powerpoint.Shape) (interface{}, error)) (interface{}, error) {
	m.shapeCalls++
	m.lastRef = ref
	return m.shapeValue, m.shapeErr
}

func TestDefinition(t *testing.T) {
	p := NewProvider(&mockClient{})
	def := p.Definition()

	if def.ID != "table" {
		t.Errorf("Expected table, got %s", def.ID)
	}
	if len(def.Tools) != 11 {
		t.Fatalf("Expected 11 tools, got %d", len(def.Tools))
	}

	for _, tool := range def.Tools {
		switch tool.ID {
		case "table.get":
			if !tool.ReadOnly {
				t.Error("table.get should be read-only")
			}
		case "table.delete_row", "table.delete_column":
			if !tool.Destructive {
				t.Errorf("%s should be destructive", tool.ID)
			}
		}
	}
}

func TestAdd(t *testing.T) {
	client := &mockClient{slideValue: "Table 5"}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "table.add", map[string]interface{}{
		"slide": 2.0,
		"rows":  3.0,
		"cols":  4.0,
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Add failed: %v", err)
	}
	if result.Data["name"] != "Table 5" {
		t.Errorf("Expected Table 5, got %v", result.Data["name"])
	}
	if result.Data["rows"] != 3 || result.Data["cols"] != 4 {
		t.Errorf("Expected 3x4, got %vx%v", result.Data["rows"], result.Data["cols"])
	}
}

func TestAddValidatesDimensions(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "table.add", map[string]interface{}{
		"slide": 1.0,
		"rows":  0.0,
		"cols":  2.0,
	}, nil)
	if err == nil || result.Success {
		t.Error("Zero rows should fail")
	}
	if client.slideCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestGetResolvesByName(t *testing.T) {
	client := &mockClient{shapeValue: map[string]interface{}{
		"name": "Quarterly",
		"rows": 2,
		"cols": 3,
		"data": [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
	}}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "table.get", map[string]interface{}{
		"slide": 1.0,
		"shape": "Quarterly",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Get failed: %v", err)
	}
	if client.lastRef.Name != "Quarterly" {
		t.Errorf("Expected name ref, got %+v", client.lastRef)
	}
	if result.Data["rows"] != 2 {
		t.Errorf("Expected 2 rows, got %v", result.Data["rows"])
	}
}

func TestSetCellRequiresText(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "table.set_cell", map[string]interface{}{
		"slide": 1.0,
		"shape": "Table 1",
		"row":   1.0,
		"col":   1.0,
	}, nil)
	if err == nil || result.Success {
		t.Error("Missing text should fail")
	}
	if client.shapeCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestSetCellAcceptsEmptyText(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "table.set_cell", map[string]interface{}{
		"slide": 1.0,
		"shape": "Table 1",
		"row":   2.0,
		"col":   3.0,
		"text":  "",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Empty text should clear the cell: %v", err)
	}
	if result.Data["row"] != 2 || result.Data["col"] != 3 {
		t.Errorf("Expected cell (2,3), got (%v,%v)", result.Data["row"], result.Data["col"])
	}
}

func TestFormatCellRequiresAttribute(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "table.format_cell", map[string]interface{}{
		"slide": 1.0,
		"shape": "Table 1",
		"row":   1.0,
		"col":   1.0,
	}, nil)
	if err == nil || result.Success {
		t.Error("No attribute should fail")
	}
}

func TestFormatCellRejectsBadFill(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "table.format_cell", map[string]interface{}{
		"slide": 1.0,
		"shape": "Table 1",
		"row":   1.0,
		"col":   1.0,
		"fill":  "plaid",
	}, nil)
	if err == nil || result.Success {
		t.Error("Invalid fill color should fail")
	}
}

func TestInsertRowReportsDimensions(t *testing.T) {
	client := &mockClient{shapeValue: map[string]interface{}{"rows": 4, "cols": 3}}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "table.insert_row", map[string]interface{}{
		"slide": 1.0,
		"shape": "Table 1",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("InsertRow failed: %v", err)
	}
	if result.Data["rows"] != 4 {
		t.Errorf("Expected 4 rows, got %v", result.Data["rows"])
	}
}

func TestDeleteRowRequiresRow(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "table.delete_row", map[string]interface{}{
		"slide": 1.0,
		"shape": "Table 1",
	}, nil)
	if err == nil || result.Success {
		t.Error("Missing row should fail")
	}
	if client.shapeCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestMergeValidatesRange(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "table.merge_cells", map[string]interface{}{
		"slide":     1.0,
		"shape":     "Table 1",
		"start_row": 3.0,
		"start_col": 1.0,
		"end_row":   1.0,
		"end_col":   2.0,
	}, nil)
	if err == nil || result.Success {
		t.Error("Inverted range should fail")
	}
	if client.shapeCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestUnknownTool(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "table.pivot", map[string]interface{}{}, nil)
	if err == nil || result.Success {
		t.Error("Unknown tool should fail")
	}
}
