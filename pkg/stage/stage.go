package stage

import (
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

// Node is an opaque renderable handle interpreted by a rendering surface. The
// concrete types are *Recap and *Content.
type Node interface {
	stageNode()
}

// UpdateFunc receives the complete stage data after every edit.
type UpdateFunc func(data widget.StageData)

// Nothing reports whether node is the "nothing to render" sentinel.
func Nothing(node Node) bool {
	return node == nil
}

// Recap lays out the widgets of a completed stage for read-only display.
type Recap struct {
	items []widget.Spec
}

func (*Recap) stageNode() {}

// Items returns the recap widgets in document order.
func (r *Recap) Items() []widget.Spec {
	return append([]widget.Spec(nil), r.items...)
}

// RenderRecap wraps items into a single recap node, or returns nil when there
// is nothing to show.
func RenderRecap(items []widget.Spec) Node {
	if len(items) == 0 {
		return nil
	}
	return &Recap{items: append([]widget.Spec(nil), items...)}
}

// ContentOption configures optional inputs of RenderContent.
type ContentOption func(*Content)

// WithErrors supplies validation messages from an external validation pass.
func WithErrors(messages widget.ValidationMessages) ContentOption {
	return func(c *Content) {
		if messages != nil {
			c.errors = messages
		}
	}
}

// WithUserInput supplies the current stage data. The map is copied; it is
// never mutated by the node.
func WithUserInput(data widget.StageData) ContentOption {
	return func(c *Content) {
		if data != nil {
			c.values = data.Clone()
		}
	}
}

// Content is the editable view of the active stage. Surfaces call Update,
// UpdateField or Replace from their event handling; each call forwards the
// complete stage data to the update callback.
type Content struct {
	components []widget.Spec
	errors     widget.ValidationMessages
	values     widget.StageData
	onUpdate   UpdateFunc
}

func (*Content) stageNode() {}

// RenderContent binds components, validation messages, stage data and the
// update callback into a content node. Omitted errors and user input are
// empty maps, never nil. It returns nil when components is empty.
func RenderContent(components []widget.Spec, onUpdate UpdateFunc, opts ...ContentOption) Node {
	if len(components) == 0 {
		return nil
	}
	content := &Content{
		components: append([]widget.Spec(nil), components...),
		errors:     widget.ValidationMessages{},
		values:     widget.StageData{},
		onUpdate:   onUpdate,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(content)
		}
	}
	return content
}

// Components returns the stage widgets in document order.
func (c *Content) Components() []widget.Spec {
	return append([]widget.Spec(nil), c.components...)
}

// FormSpecs returns the form specs embedded in the stage widgets.
func (c *Content) FormSpecs() []widget.FormSpecWidget {
	return widget.ExtractFormSpecs(c.components)
}

// Errors returns the validation messages bound to the node.
func (c *Content) Errors() widget.ValidationMessages {
	return c.errors
}

// Values returns a copy of the latest stage data.
func (c *Content) Values() widget.StageData {
	return c.values.Clone()
}

// Update sets the value of one form spec and publishes the full stage data.
func (c *Content) Update(id string, value any) {
	next := c.values.Clone()
	next[id] = value
	c.publish(next)
}

// UpdateField sets a single field inside an object-valued form spec and
// publishes the full stage data. A non-map value under id is replaced.
func (c *Content) UpdateField(id, field string, value any) {
	if field == "" {
		c.Update(id, value)
		return
	}
	next := c.values.Clone()
	fields, ok := next[id].(map[string]any)
	if !ok {
		fields = make(map[string]any)
	}
	fields[field] = value
	next[id] = fields
	c.publish(next)
}

// Replace publishes data as the complete stage data.
func (c *Content) Replace(data widget.StageData) {
	next := data.Clone()
	c.publish(next)
}

func (c *Content) publish(next widget.StageData) {
	c.values = next
	if c.onUpdate != nil {
		c.onUpdate(next.Clone())
	}
}
