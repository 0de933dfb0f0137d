package mcp

import (
	"strings"

	"github.com/slidewire/slidewire/internal/types"
)

// wireName flattens a tool ID for clients that reject dots in tool
// names; "deck.open" becomes "deck_open".
func wireName(toolID string) string {
	return strings.ReplaceAll(toolID, ".", "_")
}

// toolID reverses wireName. Provider IDs never contain underscores, so
// only the first underscore switches back to a dot. Dotted names pass
// through untouched.
func toolID(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return strings.Replace(name, "_", ".", 1)
}

// descriptor converts a tool definition to its tools/list wire form.
func descriptor(tool types.Tool) toolDescriptor {
	return toolDescriptor{
		Name:        wireName(tool.ID),
		Description: tool.Description,
		InputSchema: inputSchema(tool.Parameters),
		Annotations: &toolAnnotations{
			Title:           tool.Name,
			ReadOnlyHint:    tool.ReadOnly,
			DestructiveHint: tool.Destructive,
			IdempotentHint:  tool.Idempotent,
			OpenWorldHint:   tool.OpenWorld,
		},
	}
}

// inputSchema renders parameter definitions as a JSON Schema object.
func inputSchema(parameters []types.Parameter) map[string]interface{} {
	properties := make(map[string]interface{}, len(parameters))
	var required []string

	for _, param := range parameters {
		prop := map[string]interface{}{
			"type": param.Type,
		}
		if param.Description != "" {
			prop["description"] = param.Description
		}
		if len(param.Enum) > 0 {
			prop["enum"] = param.Enum
		}
		if param.Default != nil {
			prop["default"] = param.Default
		}
		if param.Type == "array" && param.Items != "" {
			prop["items"] = map[string]interface{}{"type": param.Items}
		}
		properties[param.Name] = prop

		if param.Required {
			required = append(required, param.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
