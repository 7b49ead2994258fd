package components

import (
	"bytes"
	"html"
	"strings"

	"github.com/goliatone/go-quicksetup/pkg/formspec"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

const maskedValue = "******"

func formSpecRenderer(buf *bytes.Buffer, spec widget.Spec, data ComponentData) error {
	form, parseErr := formspec.Parse(spec.FormSpec)

	var builder strings.Builder
	builder.WriteString(`<fieldset class="qs-form-spec"`)
	if id := controlID(spec.ID); id != "" {
		writeAttr(&builder, "id", id+"-form")
	}
	writeAttr(&builder, "data-form-spec", spec.ID)
	builder.WriteString(`>`)

	if title := strings.TrimSpace(form.Title); title != "" {
		builder.WriteString(`<legend>`)
		builder.WriteString(html.EscapeString(title))
		builder.WriteString(`</legend>`)
	}
	if desc := strings.TrimSpace(form.Description); desc != "" {
		builder.WriteString(`<p class="qs-help">`)
		builder.WriteString(html.EscapeString(desc))
		builder.WriteString(`</p>`)
	}
	// A scalar form's only field shares the form id, so its messages are
	// written once, next to the control.
	if parseErr != nil || !form.Scalar {
		writeMessages(&builder, data.Errors.For(spec.ID))
	}

	if parseErr != nil {
		builder.WriteString(`<p class="qs-notice">Form specification unavailable.</p></fieldset>`)
		buf.WriteString(builder.String())
		return nil
	}

	current := data.Values[spec.ID]
	for _, field := range form.Fields {
		path := fieldPath(spec.ID, field.Name)
		value := fieldValue(current, form.Scalar, field)
		writeField(&builder, path, field, value, data.Errors.For(path))
	}

	builder.WriteString(`</fieldset>`)
	buf.WriteString(builder.String())
	return nil
}

func fieldValue(current any, scalar bool, field formspec.Field) any {
	var value any
	if scalar {
		value = current
	} else if values, ok := current.(map[string]any); ok {
		value = values[field.Name]
	}
	if value == nil {
		value = field.Default
	}
	return value
}

func writeField(builder *strings.Builder, path string, field formspec.Field, value any, messages []string) {
	id := controlID(path)

	builder.WriteString(`<div class="qs-field"`)
	writeAttr(builder, "data-field", path)
	if len(messages) > 0 {
		builder.WriteString(` data-invalid="true"`)
	}
	builder.WriteString(`>`)

	if field.Type == "boolean" {
		builder.WriteString(`<label><input type="checkbox"`)
		writeAttr(builder, "id", id)
		writeAttr(builder, "name", path)
		builder.WriteString(` value="true"`)
		if checked, _ := value.(bool); checked {
			builder.WriteString(` checked`)
		}
		builder.WriteString(`> `)
		builder.WriteString(html.EscapeString(field.Label))
		builder.WriteString(`</label>`)
	} else {
		builder.WriteString(`<label`)
		writeAttr(builder, "for", id)
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(field.Label))
		if field.Required {
			builder.WriteString(` <span class="qs-required" aria-hidden="true">*</span>`)
		}
		builder.WriteString(`</label>`)
		if len(field.Enum) > 0 {
			writeSelect(builder, id, path, field, value)
		} else {
			writeInput(builder, id, path, field, value)
		}
	}

	if desc := strings.TrimSpace(field.Description); desc != "" {
		builder.WriteString(`<p class="qs-help">`)
		builder.WriteString(html.EscapeString(desc))
		builder.WriteString(`</p>`)
	}
	writeMessages(builder, messages)
	builder.WriteString(`</div>`)
}

func writeSelect(builder *strings.Builder, id, path string, field formspec.Field, value any) {
	selected := formatValue(value)
	builder.WriteString(`<select`)
	writeAttr(builder, "id", id)
	writeAttr(builder, "name", path)
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
	for _, option := range field.Enum {
		text := formatValue(option)
		builder.WriteString(`<option`)
		writeAttr(builder, "value", text)
		if text == selected {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(text))
		builder.WriteString(`</option>`)
	}
	builder.WriteString(`</select>`)
}

func writeInput(builder *strings.Builder, id, path string, field formspec.Field, value any) {
	inputType := "text"
	switch {
	case field.Secret():
		inputType = "password"
	case field.Type == "integer" || field.Type == "number":
		inputType = "number"
	}

	builder.WriteString(`<input`)
	writeAttr(builder, "type", inputType)
	writeAttr(builder, "id", id)
	writeAttr(builder, "name", path)
	if inputType != "password" {
		if text := formatValue(value); text != "" {
			writeAttr(builder, "value", text)
		}
	}
	if field.Type == "integer" {
		builder.WriteString(` step="1"`)
	}
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
}

func formSpecRecapRenderer(buf *bytes.Buffer, spec widget.Spec, _ ComponentData) error {
	var builder strings.Builder
	builder.WriteString(`<dl class="qs-recap"`)
	writeAttr(&builder, "data-form-spec", spec.ID)
	builder.WriteString(`>`)

	form, err := formspec.Parse(spec.FormSpec)
	if err != nil {
		for _, key := range sortedKeys(spec.Data) {
			writeRecapEntry(&builder, key, formatValue(spec.Data[key]))
		}
	} else {
		for _, field := range form.Fields {
			key := field.Name
			if form.Scalar {
				key = formspec.ScalarKey
			}
			value, ok := spec.Data[key]
			if !ok {
				continue
			}
			text := formatValue(value)
			if field.Secret() && text != "" {
				text = maskedValue
			}
			label := field.Label
			if label == "" {
				label = form.Title
			}
			writeRecapEntry(&builder, label, text)
		}
	}

	builder.WriteString(`</dl>`)
	buf.WriteString(builder.String())
	return nil
}

func writeRecapEntry(builder *strings.Builder, label, value string) {
	builder.WriteString(`<dt>`)
	builder.WriteString(html.EscapeString(label))
	builder.WriteString(`</dt><dd>`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`</dd>`)
}
