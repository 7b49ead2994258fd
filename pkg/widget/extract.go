package widget

// ExtractFormSpecs walks components in document order and returns every
// form_spec widget. Collapsible containers are the only nodes descended into;
// every other type, including list_of_widgets, is an opaque leaf. The result
// is never nil.
func ExtractFormSpecs(components []Spec) []FormSpecWidget {
	out := make([]FormSpecWidget, 0)
	return appendFormSpecs(out, components)
}

func appendFormSpecs(out []FormSpecWidget, components []Spec) []FormSpecWidget {
	for _, component := range components {
		switch component.WidgetType {
		case TypeFormSpec:
			out = append(out, FormSpecWidget{Spec: component})
		case TypeCollapsible:
			out = appendFormSpecs(out, component.Items)
		}
	}
	return out
}

// FormSpecIDs returns the ids of the extracted form specs in the same order.
func FormSpecIDs(components []Spec) []string {
	specs := ExtractFormSpecs(components)
	ids := make([]string, 0, len(specs))
	for _, spec := range specs {
		ids = append(ids, spec.ID)
	}
	return ids
}
