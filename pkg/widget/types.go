package widget

// Type identifies a widget variant. The zero value and any unrecognised string
// are valid; renderers fall back to a no-op component for them.
type Type string

// Built-in widget identifiers.
const (
	TypeText          Type = "text"
	TypeNoteText      Type = "note_text"
	TypeListOfWidgets Type = "list_of_widgets"
	TypeFormSpec      Type = "form_spec"
	TypeCollapsible   Type = "collapsible"
	TypeFormSpecRecap Type = "form_spec_recap"
)

// DiscriminantKey is the document key carrying the widget type.
const DiscriminantKey = "widget_type"

// ListType selects the container used by list_of_widgets.
type ListType string

const (
	ListBullet  ListType = "bullet"
	ListOrdered ListType = "ordered"
)

// Known reports whether t is one of the built-in widget types.
func (t Type) Known() bool {
	switch t {
	case TypeText, TypeNoteText, TypeListOfWidgets, TypeFormSpec, TypeCollapsible, TypeFormSpecRecap:
		return true
	default:
		return false
	}
}

// Spec is a single widget specification. Only the fields relevant to
// WidgetType are populated; Items is shared by list_of_widgets and
// collapsible containers.
type Spec struct {
	WidgetType Type           `json:"widget_type" yaml:"widget_type"`
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Text       string         `json:"text,omitempty" yaml:"text,omitempty"`
	Tooltip    string         `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Title      string         `json:"title,omitempty" yaml:"title,omitempty"`
	HelpText   string         `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	Open       bool           `json:"open,omitempty" yaml:"open,omitempty"`
	ListType   ListType       `json:"list_type,omitempty" yaml:"list_type,omitempty"`
	Items      []Spec         `json:"items,omitempty" yaml:"items,omitempty"`
	FormSpec   map[string]any `json:"form_spec,omitempty" yaml:"form_spec,omitempty"`
	Data       map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// FormSpecWidget is a Spec known to carry a form-spec payload. Its ID is the
// identity used for stage data and validation messages.
type FormSpecWidget struct {
	Spec
}

// StageData maps form-spec ids to the values entered for the active stage.
type StageData map[string]any

// Clone returns a shallow copy with nested maps copied one level deep so
// field edits on the copy never reach the original.
func (d StageData) Clone() StageData {
	out := make(StageData, len(d))
	for key, value := range d {
		if nested, ok := value.(map[string]any); ok {
			copied := make(map[string]any, len(nested))
			for k, v := range nested {
				copied[k] = v
			}
			out[key] = copied
			continue
		}
		out[key] = value
	}
	return out
}

// ValidationMessages maps a form-spec id ("host") or a field path
// ("host.address") to the messages reported by an external validation pass.
type ValidationMessages map[string][]string

// For returns the messages recorded for key, or nil.
func (m ValidationMessages) For(key string) []string {
	if m == nil {
		return nil
	}
	return m[key]
}

// Empty reports whether no messages are recorded.
func (m ValidationMessages) Empty() bool {
	for _, messages := range m {
		if len(messages) > 0 {
			return false
		}
	}
	return true
}
