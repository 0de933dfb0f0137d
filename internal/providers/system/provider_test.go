package system

import (
	"context"
	"runtime"
	"testing"

	"github.com/slidewire/slidewire/internal/com"
)

// mockBridge returns canned counters.
type mockBridge struct {
	stats com.Stats
}

func (m *mockBridge) BridgeStats() com.Stats {
	return m.stats
}

func TestDefinition(t *testing.T) {
	p := NewProvider(&mockBridge{})
	def := p.Definition()

	if def.ID != "system" {
		t.Errorf("Expected service ID 'system', got %s", def.ID)
	}
	if len(def.Tools) != 3 {
		t.Fatalf("Expected 3 tools, got %d", len(def.Tools))
	}
	for _, tool := range def.Tools {
		if !tool.ReadOnly {
			t.Errorf("Expected %s to be read-only", tool.ID)
		}
		if !tool.Idempotent {
			t.Errorf("Expected %s to be idempotent", tool.ID)
		}
	}
}

func TestHostReportsRuntime(t *testing.T) {
	p := NewProvider(&mockBridge{})

	result, err := p.Execute(context.Background(), "system.host", nil, nil)
	if err != nil || !result.Success {
		t.Fatalf("Host info failed: %v", err)
	}

	if result.Data["os"] != runtime.GOOS {
		t.Errorf("Expected os %q, got %v", runtime.GOOS, result.Data["os"])
	}
	server, ok := result.Data["server"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected server stats in response")
	}
	if server["go_version"] != runtime.Version() {
		t.Errorf("Expected go_version %q, got %v", runtime.Version(), server["go_version"])
	}
}

func TestProcessReportsShape(t *testing.T) {
	p := NewProvider(&mockBridge{})

	result, err := p.Execute(context.Background(), "system.process", nil, nil)
	if err != nil || !result.Success {
		t.Fatalf("Process report failed: %v", err)
	}

	running, ok := result.Data["running"].(bool)
	if !ok {
		t.Fatal("Expected running flag in response")
	}
	procs, ok := result.Data["processes"].([]map[string]interface{})
	if !ok {
		t.Fatal("Expected process list in response")
	}
	if running != (len(procs) > 0) {
		t.Errorf("Expected running=%v for %d processes", len(procs) > 0, len(procs))
	}
	if result.Data["count"] != len(procs) {
		t.Errorf("Expected count %d, got %v", len(procs), result.Data["count"])
	}
}

func TestMatchesProcess(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"POWERPNT.EXE", true},
		{"powerpnt.exe", true},
		{"powerpnt", true},
		{"powerpoint", false},
		{"winword.exe", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := matchesProcess(tc.name); got != tc.want {
			t.Errorf("matchesProcess(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBridgeReportsCounters(t *testing.T) {
	bridge := &mockBridge{stats: com.Stats{
		Running:    true,
		QueueDepth: 3,
		InFlight:   1,
		Executed:   42,
		Retries:    2,
		Dismissals: 1,
	}}
	p := NewProvider(bridge)

	result, err := p.Execute(context.Background(), "system.bridge", nil, nil)
	if err != nil || !result.Success {
		t.Fatalf("Bridge stats failed: %v", err)
	}

	if result.Data["running"] != true {
		t.Error("Expected running bridge")
	}
	if result.Data["queue_depth"] != 3 {
		t.Errorf("Expected queue depth 3, got %v", result.Data["queue_depth"])
	}
	if result.Data["executed"] != uint64(42) {
		t.Errorf("Expected 42 executed calls, got %v", result.Data["executed"])
	}
	if result.Data["timeouts"] != uint64(0) {
		t.Errorf("Expected no timeouts, got %v", result.Data["timeouts"])
	}
}

func TestUnknownTool(t *testing.T) {
	p := NewProvider(&mockBridge{})

	result, err := p.Execute(context.Background(), "system.reboot", nil, nil)
	if err == nil || result.Success {
		t.Error("Expected unknown tool to fail")
	}
}
