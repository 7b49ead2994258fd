package html

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
	"github.com/goliatone/go-quicksetup/pkg/formspec"
	"github.com/goliatone/go-quicksetup/pkg/stage"
)

// ActionField is the form key carrying the pressed button variant.
const ActionField = "action"

// ApplyForm maps posted values onto the form specs of node and publishes the
// merged stage data through a single Replace call. Field names follow the
// markup emitted by the form_spec component ("id" or "id.field"). Empty
// password inputs keep their previous value; unchecked checkboxes are false.
func ApplyForm(node *stage.Content, values url.Values) error {
	if node == nil {
		return errors.New("html renderer: content node is nil")
	}
	next := node.Values()

	for _, spec := range node.FormSpecs() {
		form, err := formspec.Parse(spec.FormSpec)
		if err != nil {
			continue
		}
		if form.Scalar {
			field := form.Fields[0]
			if value, ok := postedValue(values, spec.ID, field); ok {
				next[spec.ID] = value
			}
			continue
		}

		fields, ok := next[spec.ID].(map[string]any)
		if !ok {
			fields = make(map[string]any, len(form.Fields))
		}
		for _, field := range form.Fields {
			if value, ok := postedValue(values, spec.ID+"."+field.Name, field); ok {
				fields[field.Name] = value
			}
		}
		next[spec.ID] = fields
	}

	node.Replace(next)
	return nil
}

// Pressed returns the button whose variant matches the posted action.
func Pressed(values url.Values, specs ...buttons.Spec) (buttons.Spec, bool) {
	action := strings.TrimSpace(values.Get(ActionField))
	if action == "" {
		return buttons.Spec{}, false
	}
	for _, spec := range specs {
		if string(spec.Variant) == action {
			return spec, true
		}
	}
	return buttons.Spec{}, false
}

func postedValue(values url.Values, name string, field formspec.Field) (any, bool) {
	raw, present := values[name]
	if field.Type == "boolean" {
		return present && len(raw) > 0 && raw[0] == "true", true
	}
	if !present || len(raw) == 0 {
		return nil, false
	}
	text := strings.TrimSpace(raw[0])
	if field.Secret() && text == "" {
		return nil, false
	}
	return convertScalar(text, field.Type), true
}

// convertScalar coerces text to the schema type, keeping the raw string when
// it does not parse; validation happens elsewhere.
func convertScalar(text, fieldType string) any {
	switch fieldType {
	case "integer":
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v
		}
	}
	return text
}
