package registry

import (
	"context"
	"testing"

	"github.com/slidewire/slidewire/internal/types"
)

type mockProvider struct {
	id string
}

func (m *mockProvider) Definition() types.Service {
	return types.Service{
		ID:           m.id,
		Name:         "Mock Provider",
		Description:  "A mock provider for testing",
		Category:     types.CategorySlides,
		Capabilities: []string{"list", "add"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".list",
				Name:        "List",
				Description: "A listing tool",
				Returns:     "array",
			},
			{
				ID:          m.id + ".add",
				Name:        "Add",
				Description: "An adding tool",
				Returns:     "object",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"tool": toolID},
	}, nil
}

func TestRegister(t *testing.T) {
	r := New()
	p := &mockProvider{id: "slide"}

	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := r.Get("slide"); !ok {
		t.Error("Provider should be registered")
	}
}

func TestRegisterRejectsDottedID(t *testing.T) {
	r := New()
	if err := r.Register(&mockProvider{id: "slide.extra"}); err == nil {
		t.Error("Dotted provider ID should be rejected")
	}
}

func TestList(t *testing.T) {
	r := New()
	r.Register(&mockProvider{id: "slide"})
	r.Register(&mockProvider{id: "deck"})

	services := r.List(nil)
	if len(services) != 2 {
		t.Fatalf("Expected 2 providers, got %d", len(services))
	}
	if services[0].ID != "deck" || services[1].ID != "slide" {
		t.Errorf("Expected sorted IDs, got %s, %s", services[0].ID, services[1].ID)
	}

	cat := types.CategorySlides
	filtered := r.List(&cat)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 slides providers, got %d", len(filtered))
	}
}

func TestTools(t *testing.T) {
	r := New()
	r.Register(&mockProvider{id: "slide"})
	r.Register(&mockProvider{id: "deck"})

	tools := r.Tools()
	if len(tools) != 4 {
		t.Fatalf("Expected 4 tools, got %d", len(tools))
	}
	if tools[0].ID != "deck.add" {
		t.Errorf("Expected deck.add first, got %s", tools[0].ID)
	}

	tool, ok := r.Tool("slide.list")
	if !ok {
		t.Fatal("slide.list should resolve")
	}
	if tool.Name != "List" {
		t.Errorf("Expected List, got %s", tool.Name)
	}

	if _, ok := r.Tool("slide.missing"); ok {
		t.Error("Unknown tool should not resolve")
	}
	if _, ok := r.Tool("nodot"); ok {
		t.Error("Malformed tool ID should not resolve")
	}
}

func TestDiscover(t *testing.T) {
	r := New()
	r.Register(&mockProvider{id: "slide"})

	results := r.Discover("slide list add", 5)
	if len(results) == 0 {
		t.Fatal("Should discover slide provider")
	}

	if results[0].ID != "slide" {
		t.Errorf("Expected slide provider, got %s", results[0].ID)
	}
}

func TestExecute(t *testing.T) {
	r := New()
	r.Register(&mockProvider{id: "slide"})

	ctx := context.Background()
	result, err := r.Execute(ctx, "slide.list", nil, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected successful execution")
	}
	if result.Data["tool"] != "slide.list" {
		t.Errorf("Expected tool ID passthrough, got %v", result.Data["tool"])
	}
}

func TestExecuteUnknown(t *testing.T) {
	r := New()

	if _, err := r.Execute(context.Background(), "ghost.walk", nil, nil); err == nil {
		t.Error("Unknown provider should error")
	}
	if _, err := r.Execute(context.Background(), "nodot", nil, nil); err == nil {
		t.Error("Malformed tool ID should error")
	}
}

func TestStats(t *testing.T) {
	r := New()
	r.Register(&mockProvider{id: "slide"})
	r.Register(&mockProvider{id: "deck"})

	stats := r.Stats()
	if stats["total_providers"].(int) != 2 {
		t.Errorf("Expected 2 providers, got %v", stats["total_providers"])
	}
	if stats["total_tools"].(int) != 4 {
		t.Errorf("Expected 4 tools, got %v", stats["total_tools"])
	}
}
