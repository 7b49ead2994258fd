package widget

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON array of widget specifications.
func DecodeJSON(data []byte) ([]Spec, error) {
	var specs []Spec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("widget: decode json: %w", err)
	}
	return specs, nil
}

// DecodeYAML decodes a YAML sequence of widget specifications. Payload values
// are normalised to the shapes encoding/json produces (map[string]any, []any,
// float64) so both paths yield identical trees.
func DecodeYAML(data []byte) ([]Spec, error) {
	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("widget: decode yaml: %w", err)
	}
	NormalizePayloads(specs)
	return specs, nil
}

// NormalizePayloads rewrites YAML-decoded payload values in place to the
// encoding/json shapes.
func NormalizePayloads(specs []Spec) {
	for idx := range specs {
		specs[idx].FormSpec = normalizeMap(specs[idx].FormSpec)
		specs[idx].Data = normalizeMap(specs[idx].Data)
		NormalizePayloads(specs[idx].Items)
	}
}

func normalizeMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	for key, value := range in {
		in[key] = normalizeValue(value)
	}
	return in
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			out[fmt.Sprint(key)] = normalizeValue(nested)
		}
		return out
	case []any:
		for idx := range v {
			v[idx] = normalizeValue(v[idx])
		}
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return value
	}
}
