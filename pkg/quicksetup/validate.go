package quicksetup

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-quicksetup/pkg/formspec"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// formatTags maps string formats onto validator tags. Formats not listed are
// not checked.
var formatTags = map[string]string{
	"email":    "email",
	"hostname": "hostname",
	"ip":       "ip",
	"ipv4":     "ipv4",
	"ipv6":     "ipv6",
	"uri":      "url",
	"url":      "url",
	"uuid":     "uuid",
}

// SchemaValidator checks stage data against what the stage's form specs
// declare: required fields, enums and string formats. Messages are keyed the
// way surfaces look them up, "id" for scalar forms and "id.field" otherwise.
// Form specs that fail to parse are skipped.
func SchemaValidator(doc Document) Validator {
	return func(_ context.Context, index int, data widget.StageData) (widget.ValidationMessages, error) {
		if index < 0 || index >= len(doc.Stages) {
			return nil, fmt.Errorf("quicksetup: validate stage %d: %w", index, ErrNoStage)
		}
		messages := widget.ValidationMessages{}
		for _, spec := range widget.ExtractFormSpecs(doc.Stages[index].Components) {
			form, err := formspec.Parse(spec.FormSpec)
			if err != nil {
				continue
			}
			for _, field := range form.Fields {
				key := spec.ID
				value, present := data[spec.ID], true
				if !form.Scalar {
					key = spec.ID + "." + field.Name
					value, present = fieldValue(data[spec.ID], field.Name)
				}
				if message := checkField(form, field, value, present); message != "" {
					messages[key] = append(messages[key], message)
				}
			}
		}
		return messages, nil
	}
}

func fieldValue(raw any, name string) (any, bool) {
	values, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := values[name]
	return value, ok
}

func checkField(form formspec.Form, field formspec.Field, value any, present bool) string {
	label := field.Label
	if label == "" {
		label = form.Title
	}
	if label == "" {
		label = "Value"
	}

	if !present || value == nil {
		if field.Required {
			return label + " is required"
		}
		return ""
	}

	text, isText := value.(string)
	if isText && field.Required {
		if err := validate.Var(text, "required"); err != nil {
			return label + " is required"
		}
	}
	if isText && text == "" {
		return ""
	}

	if len(field.Enum) > 0 && !inEnum(field.Enum, value) {
		return label + " must be one of " + enumList(field.Enum)
	}
	if tag, ok := formatTags[strings.ToLower(field.Format)]; ok && isText {
		if err := validate.Var(text, tag); err != nil {
			return fmt.Sprintf("%s must be a valid %s", label, field.Format)
		}
	}
	switch field.Type {
	case "integer":
		if isText {
			return label + " must be a whole number"
		}
		if number, ok := value.(float64); ok && number != float64(int64(number)) {
			return label + " must be a whole number"
		}
	case "number":
		if isText {
			return label + " must be a number"
		}
	}
	return ""
}

func inEnum(enum []any, value any) bool {
	want := fmt.Sprint(value)
	for _, option := range enum {
		if fmt.Sprint(option) == want {
			return true
		}
	}
	return false
}

func enumList(enum []any) string {
	parts := make([]string, len(enum))
	for idx, option := range enum {
		parts[idx] = fmt.Sprint(option)
	}
	return strings.Join(parts, ", ")
}
