// Package formspec turns the schema payload carried by a form_spec widget into
// an ordered list of fields that rendering surfaces can present.
//
// Payloads follow the OpenAPI 3 schema dialect and are parsed with
// kin-openapi. Object schemas yield one field per property; any other schema
// yields a single unnamed field whose value is stored directly under the
// form-spec id.
package formspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OrderKey lists property names in display order. Properties not listed follow
// in alphabetical order.
const OrderKey = "x-order"

// ScalarKey holds the value of a scalar form inside recap data maps.
const ScalarKey = "value"

// ErrEmptyPayload is returned when a form_spec widget carries no schema.
var ErrEmptyPayload = errors.New("formspec: payload is empty")

// Field describes one input derived from a schema property.
type Field struct {
	Name        string
	Label       string
	Description string
	Type        string
	Format      string
	Required    bool
	Enum        []any
	Default     any
}

// Secret reports whether the field should be masked.
func (f Field) Secret() bool {
	return strings.EqualFold(f.Format, "password")
}

// Form is the parsed payload.
type Form struct {
	Title       string
	Description string
	// Scalar is true when the schema is not an object; Fields then holds a
	// single entry with an empty Name.
	Scalar bool
	Fields []Field
}

// Parse converts a form_spec payload into a Form.
func Parse(payload map[string]any) (Form, error) {
	if len(payload) == 0 {
		return Form{}, ErrEmptyPayload
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Form{}, fmt.Errorf("formspec: encode payload: %w", err)
	}
	var schema openapi3.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return Form{}, fmt.Errorf("formspec: decode schema: %w", err)
	}

	form := Form{
		Title:       schema.Title,
		Description: schema.Description,
	}

	if schemaType(schema.Type) != "object" && len(schema.Properties) == 0 {
		field := convertField("", &schema, false)
		field.Label = schema.Title
		form.Scalar = true
		form.Fields = []Field{field}
		return form, nil
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	for _, name := range propertyOrder(payload, schema.Properties) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[name]
		form.Fields = append(form.Fields, convertField(name, ref.Value, isRequired))
	}
	return form, nil
}

func convertField(name string, src *openapi3.Schema, required bool) Field {
	field := Field{
		Name:        name,
		Label:       strings.TrimSpace(src.Title),
		Description: src.Description,
		Type:        schemaType(src.Type),
		Format:      src.Format,
		Required:    required,
		Default:     src.Default,
	}
	if field.Label == "" {
		field.Label = name
	}
	if field.Type == "" {
		field.Type = "string"
	}
	if len(src.Enum) > 0 {
		field.Enum = append([]any(nil), src.Enum...)
	}
	return field
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func propertyOrder(payload map[string]any, properties openapi3.Schemas) []string {
	names := make([]string, 0, len(properties))
	seen := make(map[string]struct{}, len(properties))

	if listed, ok := payload[OrderKey].([]any); ok {
		for _, entry := range listed {
			name, ok := entry.(string)
			if !ok {
				continue
			}
			if _, exists := properties[name]; !exists {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	rest := make([]string, 0, len(properties))
	for name := range properties {
		if _, ok := seen[name]; ok {
			continue
		}
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(names, rest...)
}
