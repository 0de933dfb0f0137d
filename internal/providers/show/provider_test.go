package show

import (
	"context"
	"testing"

	"github.com/slidewire/slidewire/internal/powerpoint"
)

// mockClient returns canned values; the closures need live automation
// objects, so they never run here.
type mockClient struct {
	appValue    interface{}
	appErr      error
	appCalls    int
	targetValue interface{}
	targetErr   error
	targetCalls int
}

func (m *mockClient) WithApp(ctx context.Context, fn func(app *powerpoint.Application) (interface{}, error)) (interface{}, error) {
	m.appCalls++
	if m.appErr != nil {
		return nil, m.appErr
	}
	return m.appValue, nil
}

func (m *mockClient) WithTarget(ctx context.Context, fn func(app *powerpoint.Application, pres *powerpoint.Presentation) (interface{}, error)) (interface{}, error) {
	m.targetCalls++
	if m.targetErr != nil {
		return nil, m.targetErr
	}
	return m.targetValue, nil
}

func TestDefinition(t *testing.T) {
	provider := NewProvider(&mockClient{})
	def := provider.Definition()

	if def.ID != "show" {
		t.Errorf("Expected service ID show, got %s", def.ID)
	}
	if len(def.Tools) != 6 {
		t.Fatalf("Expected 6 tools, got %d", len(def.Tools))
	}

	byID := make(map[string]bool)
	for _, tool := range def.Tools {
		byID[tool.ID] = true
		switch tool.ID {
		case "show.state":
			if !tool.ReadOnly || !tool.Idempotent {
				t.Error("Expected show.state to be read-only and idempotent")
			}
		case "show.end", "show.goto":
			if !tool.Idempotent {
				t.Errorf("Expected %s to be idempotent", tool.ID)
			}
		}
	}
	for _, id := range []string{"show.start", "show.next", "show.previous"} {
		if !byID[id] {
			t.Errorf("Missing tool %s", id)
		}
	}
}

func TestStartValidatesFrom(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client)

	result, err := provider.Execute(context.Background(), "show.start", map[string]interface{}{
		"from": float64(0),
	}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected zero from to fail")
	}
	if client.targetCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestStartReportsRange(t *testing.T) {
	client := &mockClient{targetValue: map[string]interface{}{
		"started": true,
		"from":    3,
		"slides":  10,
		"kiosk":   true,
		"loop":    false,
	}}
	provider := NewProvider(client)

	result, err := provider.Execute(context.Background(), "show.start", map[string]interface{}{
		"from":  float64(3),
		"kiosk": true,
	}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Data["from"] != 3 || result.Data["kiosk"] != true {
		t.Errorf("Unexpected data %v", result.Data)
	}
}

func TestEndWhenNotRunning(t *testing.T) {
	client := &mockClient{appValue: false}
	provider := NewProvider(client)

	result, err := provider.Execute(context.Background(), "show.end", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatal("Expected ending an idle show to succeed")
	}
	if result.Data["ended"] != false {
		t.Errorf("Expected ended false, got %v", result.Data["ended"])
	}
}

func TestNextReportsPosition(t *testing.T) {
	client := &mockClient{appValue: map[string]interface{}{
		"position": 4,
		"state":    "running",
	}}
	provider := NewProvider(client)

	result, err := provider.Execute(context.Background(), "show.next", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Data["position"] != 4 {
		t.Errorf("Expected position 4, got %v", result.Data["position"])
	}
	if result.Data["state"] != "running" {
		t.Errorf("Expected running state, got %v", result.Data["state"])
	}
}

func TestGotoRequiresSlide(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client)

	result, err := provider.Execute(context.Background(), "show.goto", map[string]interface{}{}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected missing slide to fail")
	}
	if client.appCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestGotoRejectsZeroSlide(t *testing.T) {
	client := &mockClient{}
	provider := NewProvider(client)

	result, err := provider.Execute(context.Background(), "show.goto", map[string]interface{}{
		"slide": float64(0),
	}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected zero slide to fail")
	}
	if client.appCalls != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestStateWhenIdle(t *testing.T) {
	client := &mockClient{appValue: map[string]interface{}{"running": false}}
	provider := NewProvider(client)

	result, err := provider.Execute(context.Background(), "show.state", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Data["running"] != false {
		t.Errorf("Expected running false, got %v", result.Data["running"])
	}
}

func TestUnknownTool(t *testing.T) {
	provider := NewProvider(&mockClient{})

	result, err := provider.Execute(context.Background(), "show.rewind", map[string]interface{}{}, nil)
	if err == nil || result.Success {
		t.Fatal("Expected unknown tool to fail")
	}
}
