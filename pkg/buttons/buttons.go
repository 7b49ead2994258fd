// Package buttons packages wizard navigation callbacks into declarative
// button descriptors. Which stage comes next, and whether moving is allowed,
// is decided by the caller before the callbacks are supplied.
package buttons

// Variant tags the role of a button.
type Variant string

const (
	VariantNext Variant = "next"
	VariantPrev Variant = "prev"
	VariantSave Variant = "save"
)

// Spec is a button descriptor: a label, a variant and the action to run.
type Spec struct {
	Label   string
	Variant Variant
	Action  func()
}

// Press runs the action. A nil action is a no-op.
func (s Spec) Press() {
	if s.Action != nil {
		s.Action()
	}
}

// Definer builds button specs bound to fixed callbacks.
type Definer struct {
	onNext func()
	onPrev func()
	onSave func()
}

// Define returns a Definer whose factories close over the given callbacks.
// Nil callbacks yield buttons whose action does nothing.
func Define(onNext, onPrev, onSave func()) Definer {
	return Definer{
		onNext: orNoop(onNext),
		onPrev: orNoop(onPrev),
		onSave: orNoop(onSave),
	}
}

// Next returns a next button with label.
func (d Definer) Next(label string) Spec {
	return Spec{Label: label, Variant: VariantNext, Action: d.onNext}
}

// Prev returns a previous button with label.
func (d Definer) Prev(label string) Spec {
	return Spec{Label: label, Variant: VariantPrev, Action: d.onPrev}
}

// Save returns a save button with label.
func (d Definer) Save(label string) Spec {
	return Spec{Label: label, Variant: VariantSave, Action: d.onSave}
}

func orNoop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
