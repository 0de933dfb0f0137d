package app

import (
	"context"
	"errors"
	"testing"

	"github.com/slidewire/slidewire/internal/com"
	"github.com/slidewire/slidewire/internal/powerpoint"
)

type mockClient struct {
	mode        string
	visible     *bool
	status      *powerpoint.StatusInfo
	stats       com.Stats
	withAppErr  error
	withAppRuns int
	quitCalls   int
}

func (m *mockClient) Connect(ctx context.Context, visible *bool) (string, error) {
	m.visible = visible
	return m.mode, nil
}

func (m *mockClient) Status(ctx context.Context) (*powerpoint.StatusInfo, error) {
	return m.status, nil
}

func (m *mockClient) Quit(ctx context.Context) error {
	m.quitCalls++
	return nil
}

func (m *mockClient) WithApp(ctx context.Context, fn func(app *powerpoint.Application) (interface{}, error)) (interface{}, error) {
	m.withAppRuns++
	return nil, m.withAppErr
}

func (m *mockClient) BridgeStats() com.Stats {
	return m.stats
}

func TestDefinition(t *testing.T) {
	p := NewProvider(&mockClient{})
	def := p.Definition()

	if def.ID != "app" {
		t.Errorf("Expected app, got %s", def.ID)
	}
	if len(def.Tools) != 7 {
		t.Fatalf("Expected 7 tools, got %d", len(def.Tools))
	}

	byID := make(map[string]bool)
	for _, tool := range def.Tools {
		byID[tool.ID] = true
		if tool.ID[:4] != "app." {
			t.Errorf("Tool ID %s should be app-prefixed", tool.ID)
		}
	}
	for _, id := range []string{"app.connect", "app.status", "app.quit", "app.execute_mso"} {
		if !byID[id] {
			t.Errorf("Missing tool %s", id)
		}
	}

	for _, tool := range def.Tools {
		switch tool.ID {
		case "app.status":
			if !tool.ReadOnly || !tool.Idempotent {
				t.Error("app.status should be read-only and idempotent")
			}
		case "app.quit":
			if !tool.Destructive {
				t.Error("app.quit should be destructive")
			}
		}
	}
}

func TestConnect(t *testing.T) {
	client := &mockClient{mode: "attached"}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "app.connect", map[string]interface{}{"visible": true}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Connect failed: %v", err)
	}

	if result.Data["mode"] != "attached" {
		t.Errorf("Expected attached, got %v", result.Data["mode"])
	}
	if client.visible == nil || !*client.visible {
		t.Error("Visible flag should reach the client")
	}
}

func TestConnectDefaultVisibility(t *testing.T) {
	client := &mockClient{mode: "launched"}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "app.connect", map[string]interface{}{}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Connect failed: %v", err)
	}

	if client.visible != nil {
		t.Error("Absent visible flag should stay nil")
	}
}

func TestStatus(t *testing.T) {
	client := &mockClient{
		status: &powerpoint.StatusInfo{Connected: true, Version: "16.0", Presentations: 2},
		stats:  com.Stats{Running: true, Executed: 9},
	}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "app.status", nil, nil)
	if err != nil || !result.Success {
		t.Fatalf("Status failed: %v", err)
	}

	if result.Data["version"] != "16.0" {
		t.Errorf("Expected version 16.0, got %v", result.Data["version"])
	}
	bridge := result.Data["bridge"].(map[string]interface{})
	if bridge["executed"] != uint64(9) {
		t.Errorf("Expected 9 executed, got %v", bridge["executed"])
	}
}

func TestSetVisibleRequiresFlag(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "app.set_visible", map[string]interface{}{}, nil)
	if err == nil || result.Success {
		t.Error("Missing visible parameter should fail")
	}
}

func TestExecuteMsoRequiresCommand(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "app.execute_mso", map[string]interface{}{}, nil)
	if err == nil || result.Success {
		t.Error("Missing command parameter should fail")
	}
	if client.withAppRuns != 0 {
		t.Error("Validation failures should not reach the client")
	}
}

func TestExecuteMsoReportsFailure(t *testing.T) {
	client := &mockClient{withAppErr: errors.New("command unavailable")}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "app.execute_mso", map[string]interface{}{"command": "SlideNewSlide"}, nil)
	if err == nil || result.Success {
		t.Error("Client failure should propagate")
	}
	if result.Error == nil {
		t.Fatal("Expected error message in result")
	}
}

func TestQuit(t *testing.T) {
	client := &mockClient{}
	p := NewProvider(client)

	result, err := p.Execute(context.Background(), "app.quit", nil, nil)
	if err != nil || !result.Success {
		t.Fatalf("Quit failed: %v", err)
	}
	if client.quitCalls != 1 {
		t.Errorf("Expected 1 quit call, got %d", client.quitCalls)
	}
}

func TestUnknownTool(t *testing.T) {
	p := NewProvider(&mockClient{})

	result, err := p.Execute(context.Background(), "app.bogus", nil, nil)
	if err == nil || result.Success {
		t.Error("Unknown tool should fail")
	}
}
