package components

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-quicksetup/pkg/formspec"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

const templatePrefix = "templates/components/"

var noneDescriptor = Descriptor{Name: NameNone, Renderer: noneRenderer}

// NewDefaultRegistry constructs a registry with the built-in quick setup
// components and the none fallback.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameText, Descriptor{
		Renderer: templateComponentRenderer(PartialText, templatePrefix+"text.tmpl"),
	})
	registry.MustRegister(NameNoteText, Descriptor{
		Renderer: templateComponentRenderer(PartialNoteText, templatePrefix+"note_text.tmpl"),
	})
	registry.MustRegister(NameListOfWidgets, Descriptor{Renderer: listRenderer})
	registry.MustRegister(NameFormSpec, Descriptor{Renderer: formSpecRenderer})
	registry.MustRegister(NameCollapsible, Descriptor{Renderer: collapsibleRenderer})
	registry.MustRegister(NameFormSpecRecap, Descriptor{Renderer: formSpecRecapRenderer})
	registry.MustRegister(NameNone, noneDescriptor)

	return registry
}

func noneRenderer(*bytes.Buffer, widget.Spec, ComponentData) error {
	return nil
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, spec widget.Spec, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if data.ThemePartials != nil {
			if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
				resolved = candidate
			}
		}

		payload := map[string]any{
			"text":    SanitizeText(spec.Text),
			"tooltip": strings.TrimSpace(spec.Tooltip),
		}
		rendered, err := data.Template.RenderTemplate(resolved, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// listRenderer renders one entry per item. List items are not form containers:
// ApplyForm and the validators only see form specs at the top level or inside
// collapsibles. A form_spec item is therefore shown as a read-only recap of its
// current value, never as live inputs.
func listRenderer(buf *bytes.Buffer, spec widget.Spec, data ComponentData) error {
	tag := "ul"
	if spec.ListType == widget.ListOrdered {
		tag = "ol"
	}

	var builder strings.Builder
	builder.WriteString(`<`)
	builder.WriteString(tag)
	builder.WriteString(` class="qs-list qs-list-`)
	builder.WriteString(tag)
	builder.WriteString(`">`)
	for _, item := range spec.Items {
		builder.WriteString(`<li>`)
		if item.WidgetType == widget.TypeFormSpec {
			item = listedFormSpec(item, data.Values)
		}
		if data.RenderChild != nil {
			child, err := data.RenderChild(item)
			if err != nil {
				return err
			}
			builder.WriteString(child)
		}
		builder.WriteString(`</li>`)
	}
	builder.WriteString(`</`)
	builder.WriteString(tag)
	builder.WriteString(`>`)

	buf.WriteString(builder.String())
	return nil
}

func listedFormSpec(item widget.Spec, values widget.StageData) widget.Spec {
	recap := widget.Spec{
		WidgetType: widget.TypeFormSpecRecap,
		ID:         item.ID,
		FormSpec:   item.FormSpec,
	}
	switch value := values[item.ID].(type) {
	case nil:
	case map[string]any:
		recap.Data = value
	default:
		recap.Data = map[string]any{formspec.ScalarKey: value}
	}
	return recap
}

func collapsibleRenderer(buf *bytes.Buffer, spec widget.Spec, data ComponentData) error {
	var builder strings.Builder
	builder.WriteString(`<details class="qs-collapsible"`)
	if spec.Open {
		builder.WriteString(` open`)
	}
	builder.WriteString(`>`)

	builder.WriteString(`<summary class="qs-collapsible-title">`)
	builder.WriteString(html.EscapeString(strings.TrimSpace(spec.Title)))
	builder.WriteString(`</summary>`)
	if help := strings.TrimSpace(spec.HelpText); help != "" {
		builder.WriteString(`<p class="qs-help">`)
		builder.WriteString(html.EscapeString(help))
		builder.WriteString(`</p>`)
	}

	builder.WriteString(`<div class="qs-collapsible-body">`)
	if data.RenderChild != nil {
		for _, item := range spec.Items {
			child, err := data.RenderChild(item)
			if err != nil {
				return err
			}
			builder.WriteString(child)
		}
	}
	builder.WriteString(`</div></details>`)

	buf.WriteString(builder.String())
	return nil
}
