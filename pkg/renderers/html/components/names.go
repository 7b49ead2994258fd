package components

import "github.com/goliatone/go-quicksetup/pkg/widget"

// Canonical component names used by the default registry.
const (
	NameText          = string(widget.TypeText)
	NameNoteText      = string(widget.TypeNoteText)
	NameListOfWidgets = string(widget.TypeListOfWidgets)
	NameFormSpec      = string(widget.TypeFormSpec)
	NameCollapsible   = string(widget.TypeCollapsible)
	NameFormSpecRecap = string(widget.TypeFormSpecRecap)
	NameNone          = "none"
)

// Theme partial keys consulted by template-backed components.
const (
	PartialText     = "quicksetup.text"
	PartialNoteText = "quicksetup.note_text"
)
