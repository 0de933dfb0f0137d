package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/slidewire/slidewire/internal/types"
)

// Registry manages provider discovery and tool execution
type Registry struct {
	providers sync.Map
}

// Provider interface for tool implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error)
}

// New creates an empty registry
func New() *Registry {
	return &Registry{}
}

// Register adds a provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("provider ID cannot be empty")
	}
	if strings.Contains(def.ID, ".") {
		return fmt.Errorf("provider ID cannot contain dots: %s", def.ID)
	}

	r.providers.Store(def.ID, provider)
	return nil
}

// Unregister removes a provider
func (r *Registry) Unregister(providerID string) {
	r.providers.Delete(providerID)
}

// Get retrieves a provider by ID
func (r *Registry) Get(providerID string) (Provider, bool) {
	val, ok := r.providers.Load(providerID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns registered provider definitions, sorted by ID so tool
// listings are stable across calls.
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.providers.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})

	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Tools flattens every registered tool definition, sorted by tool ID.
func (r *Registry) Tools() []types.Tool {
	var tools []types.Tool
	r.providers.Range(func(_, value interface{}) bool {
		tools = append(tools, value.(Provider).Definition().Tools...)
		return true
	})

	sort.Slice(tools, func(i, j int) bool {
		return tools[i].ID < tools[j].ID
	})
	return tools
}

// Tool looks up a single tool definition by full ID.
func (r *Registry) Tool(toolID string) (types.Tool, bool) {
	providerID, _, ok := strings.Cut(toolID, ".")
	if !ok {
		return types.Tool{}, false
	}
	provider, ok := r.Get(providerID)
	if !ok {
		return types.Tool{}, false
	}
	for _, tool := range provider.Definition().Tools {
		if tool.ID == toolID {
			return tool, true
		}
	}
	return types.Tool{}, false
}

// Discover finds relevant providers for a given intent
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scored struct {
		service types.Service
		score   float64
	}

	intentLower := strings.ToLower(intent)
	var results []scored

	r.providers.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		score := relevance(intentLower, def)
		if score > 0 {
			results = append(results, scored{service: def, score: score})
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].service.ID < results[j].service.ID
	})

	output := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].service)
	}
	return output
}

// Execute routes a tool call to the owning provider
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, callCtx *types.Context) (*types.Result, error) {
	providerID, _, ok := strings.Cut(toolID, ".")
	if !ok {
		return &types.Result{
			Success: false,
			Error:   stringPtr(fmt.Sprintf("invalid tool ID format: %s", toolID)),
		}, fmt.Errorf("invalid tool ID format: %s", toolID)
	}

	provider, found := r.Get(providerID)
	if !found {
		return &types.Result{
			Success: false,
			Error:   stringPtr(fmt.Sprintf("provider not found: %s", providerID)),
		}, fmt.Errorf("provider not found: %s", providerID)
	}

	if params == nil {
		params = map[string]interface{}{}
	}
	return provider.Execute(ctx, toolID, params, callCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.providers.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_providers": total,
		"total_tools":     totalTools,
		"categories":      categories,
	}
}

func relevance(intent string, service types.Service) float64 {
	score := 0.0

	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10.0
	}

	for _, word := range strings.Fields(strings.ToLower(service.Description)) {
		if strings.Contains(intent, word) {
			score += 5.0
		}
	}

	for _, cap := range service.Capabilities {
		capClean := strings.ReplaceAll(strings.ToLower(cap), "_", " ")
		if strings.Contains(intent, capClean) {
			score += 3.0
		}
	}

	if strings.Contains(intent, string(service.Category)) {
		score += 2.0
	}

	return score
}

func stringPtr(s string) *string {
	return &s
}
