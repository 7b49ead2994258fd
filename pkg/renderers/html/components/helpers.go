package components

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

func controlID(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ""
	}
	return "qs-" + strings.ReplaceAll(trimmed, ".", "-")
}

func fieldPath(id, field string) string {
	if field == "" {
		return id
	}
	if id == "" {
		return field
	}
	return id + "." + field
}

func writeAttr(builder *strings.Builder, name, value string) {
	builder.WriteByte(' ')
	builder.WriteString(name)
	builder.WriteString(`="`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`"`)
}

func writeMessages(builder *strings.Builder, messages []string) {
	if len(messages) == 0 {
		return
	}
	builder.WriteString(`<ul class="qs-errors" role="alert">`)
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		builder.WriteString(`<li>`)
		builder.WriteString(html.EscapeString(trimmed))
		builder.WriteString(`</li>`)
	}
	builder.WriteString(`</ul>`)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprint(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+": "+formatValue(v[key]))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
