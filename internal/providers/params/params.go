// Package params extracts typed values from tool parameter maps.
//
// Tool parameters arrive as map[string]interface{} decoded from JSON,
// so numbers are float64 and arrays are []interface{}. The accessors
// here normalize those shapes once so provider packages stay focused
// on automation calls.
package params

import "fmt"

// String extracts a string parameter
func String(params map[string]interface{}, key string, required bool) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// StringDefault extracts a string parameter with a fallback
func StringDefault(params map[string]interface{}, key, defaultVal string) string {
	str, err := String(params, key, false)
	if err != nil || str == "" {
		return defaultVal
	}
	return str
}

// Bool extracts a bool parameter with a fallback
func Bool(params map[string]interface{}, key string, defaultVal bool) bool {
	val, ok := params[key]
	if !ok {
		return defaultVal
	}

	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}

	return b
}

// Float extracts a numeric parameter
func Float(params map[string]interface{}, key string, required bool) (float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return 0, fmt.Errorf("%s parameter required", key)
		}
		return 0, nil
	}

	return toFloat(val, key)
}

// FloatDefault extracts a numeric parameter with a fallback
func FloatDefault(params map[string]interface{}, key string, defaultVal float64) float64 {
	val, ok := params[key]
	if !ok || val == nil {
		return defaultVal
	}
	f, err := toFloat(val, key)
	if err != nil {
		return defaultVal
	}
	return f
}

// Int extracts an integer parameter
func Int(params map[string]interface{}, key string, required bool) (int, error) {
	f, err := Float(params, key, required)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// IntDefault extracts an integer parameter with a fallback
func IntDefault(params map[string]interface{}, key string, defaultVal int) int {
	val, ok := params[key]
	if !ok || val == nil {
		return defaultVal
	}
	f, err := toFloat(val, key)
	if err != nil {
		return defaultVal
	}
	return int(f)
}

// FloatPtr extracts an optional numeric parameter, nil when absent
func FloatPtr(params map[string]interface{}, key string) (*float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return nil, nil
	}
	f, err := toFloat(val, key)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// IntPtr extracts an optional integer parameter, nil when absent
func IntPtr(params map[string]interface{}, key string) (*int, error) {
	f, err := FloatPtr(params, key)
	if err != nil || f == nil {
		return nil, err
	}
	i := int(*f)
	return &i, nil
}

// BoolPtr extracts an optional bool parameter, nil when absent
func BoolPtr(params map[string]interface{}, key string) (*bool, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return nil, nil
	}
	b, ok := val.(bool)
	if !ok {
		return nil, fmt.Errorf("%s must be boolean", key)
	}
	return &b, nil
}

// StringPtr extracts an optional string parameter, nil when absent
func StringPtr(params map[string]interface{}, key string) (*string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return nil, nil
	}
	str, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be string", key)
	}
	return &str, nil
}

// StringSlice extracts a string array parameter
func StringSlice(params map[string]interface{}, key string, required bool) ([]string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return nil, fmt.Errorf("%s parameter required", key)
		}
		return nil, nil
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must contain strings", key)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be array", key)
	}
}

// FloatSlice extracts a numeric array parameter
func FloatSlice(params map[string]interface{}, key string, required bool) ([]float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return nil, fmt.Errorf("%s parameter required", key)
		}
		return nil, nil
	}

	switch v := val.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, err := toFloat(item, key)
			if err != nil {
				return nil, fmt.Errorf("%s must contain numbers", key)
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be array", key)
	}
}

// IntSlice extracts an integer array parameter
func IntSlice(params map[string]interface{}, key string, required bool) ([]int, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return nil, fmt.Errorf("%s parameter required", key)
		}
		return nil, nil
	}

	switch v := val.(type) {
	case []int:
		return v, nil
	case []interface{}:
		out := make([]int, 0, len(v))
		for _, item := range v {
			f, err := toFloat(item, key)
			if err != nil {
				return nil, fmt.Errorf("%s must contain numbers", key)
			}
			out = append(out, int(f))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be array", key)
	}
}

func toFloat(val interface{}, key string) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s must be number", key)
	}
}
