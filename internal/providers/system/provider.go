// Package system reports host health, the automation process, and
// bridge counters.
package system

import (
	"context"
	"fmt"
	"time"

	"github.com/slidewire/slidewire/internal/com"
	"github.com/slidewire/slidewire/internal/types"
)

// Bridge exposes the automation bridge counters.
type Bridge interface {
	BridgeStats() com.Stats
}

// Provider implements system tools
type Provider struct {
	bridge    Bridge
	startTime time.Time
}

// NewProvider creates a system provider
func NewProvider(bridge Bridge) *Provider {
	return &Provider{
		bridge:    bridge,
		startTime: time.Now(),
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System",
		Description: "Host health, automation process, and bridge counters",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"host",
			"process",
			"bridge",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "system.host",
			Name:        "Host Info",
			Description: "Report OS, uptime, load, memory, and server runtime stats",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "system.process",
			Name:        "Automation Process",
			Description: "Report CPU and memory usage of the presentation process",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			ReadOnly:    true,
			Idempotent:  true,
		},
		{
			ID:          "system.bridge",
			Name:        "Bridge Stats",
			Description: "Report bridge state, queue depth, and call counters",
			Parameters:  []types.Parameter{},
			Returns:     "object",
			ReadOnly:    true,
			Idempotent:  true,
		},
	}
}

// Execute runs a system tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "system.host":
		return p.host(ctx)
	case "system.process":
		return p.process(ctx)
	case "system.bridge":
		return p.bridgeStats()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    data,
	}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{
		Success: false,
		Error:   &errMsg,
	}, fmt.Errorf("%s", message)
}
