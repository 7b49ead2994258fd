package quicksetup

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
	"github.com/goliatone/go-quicksetup/pkg/formspec"
	"github.com/goliatone/go-quicksetup/pkg/stage"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

// ErrValidation is returned when the validator reports messages for the
// active stage.
var ErrValidation = errors.New("quicksetup: stage has validation errors")

// Default button labels.
const (
	DefaultNextLabel = "Next"
	DefaultPrevLabel = "Back"
	DefaultSaveLabel = "Save"
)

// Validator checks the data of one stage and returns the messages to show.
// An empty result lets the wizard advance.
type Validator func(ctx context.Context, stageIndex int, data widget.StageData) (widget.ValidationMessages, error)

// SaveFunc receives the data of every stage, in stage order.
type SaveFunc func(ctx context.Context, data []widget.StageData) error

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithValidator gates next and save on an external validation pass.
func WithValidator(fn Validator) WizardOption {
	return func(w *Wizard) {
		w.validator = fn
	}
}

// WithSaveFunc sets the callback run by the save button.
func WithSaveFunc(fn SaveFunc) WizardOption {
	return func(w *Wizard) {
		w.save = fn
	}
}

// WithInitialData seeds stage data, indexed by stage.
func WithInitialData(data []widget.StageData) WizardOption {
	return func(w *Wizard) {
		for idx := range w.data {
			if idx < len(data) && data[idx] != nil {
				w.data[idx] = data[idx].Clone()
			}
		}
	}
}

// Wizard tracks the active stage and the data entered for each stage. It is
// not safe for concurrent use.
type Wizard struct {
	doc       Document
	current   int
	data      []widget.StageData
	errors    widget.ValidationMessages
	validator Validator
	save      SaveFunc
	saved     bool
	lastErr   error
}

// NewWizard starts a wizard at the first stage of doc.
func NewWizard(doc Document, opts ...WizardOption) (*Wizard, error) {
	if len(doc.Stages) == 0 {
		return nil, fmt.Errorf("quicksetup: document %q: %w", doc.ID, ErrNoStage)
	}
	w := &Wizard{
		doc:    doc,
		data:   make([]widget.StageData, len(doc.Stages)),
		errors: widget.ValidationMessages{},
	}
	for idx := range w.data {
		w.data[idx] = widget.StageData{}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Document returns the wizard's document.
func (w *Wizard) Document() Document {
	return w.doc
}

// Current returns the active stage index.
func (w *Wizard) Current() int {
	return w.current
}

// Stage returns the active stage specification.
func (w *Wizard) Stage() StageSpec {
	return w.doc.Stages[w.current]
}

// Last reports whether the active stage is the final one.
func (w *Wizard) Last() bool {
	return w.current == len(w.doc.Stages)-1
}

// Saved reports whether the save action completed.
func (w *Wizard) Saved() bool {
	return w.saved
}

// Err returns the error of the most recent button action, if any.
func (w *Wizard) Err() error {
	return w.lastErr
}

// Errors returns the validation messages of the active stage.
func (w *Wizard) Errors() widget.ValidationMessages {
	return w.errors
}

// Data returns a copy of the data of every stage.
func (w *Wizard) Data() []widget.StageData {
	out := make([]widget.StageData, len(w.data))
	for idx, data := range w.data {
		out[idx] = data.Clone()
	}
	return out
}

// Content renders the active stage. Edits made through the returned node
// replace the stored stage data.
func (w *Wizard) Content() stage.Node {
	index := w.current
	return stage.RenderContent(
		w.doc.Stages[index].Components,
		func(data widget.StageData) { w.data[index] = data },
		stage.WithErrors(w.errors),
		stage.WithUserInput(w.data[index]),
	)
}

// Recap renders the recap of stage index. It returns nil for the active
// stage and for stages not yet completed.
func (w *Wizard) Recap(index int) (stage.Node, error) {
	if index < 0 || index >= len(w.doc.Stages) {
		return nil, fmt.Errorf("quicksetup: recap %d: %w", index, ErrNoStage)
	}
	if index >= w.current && !w.saved {
		return nil, nil
	}
	spec := w.doc.Stages[index]
	if len(spec.Recap) > 0 {
		return stage.RenderRecap(spec.Recap), nil
	}
	return stage.RenderRecap(RecapItems(spec.Components, w.data[index])), nil
}

// Buttons returns the navigation buttons of the active stage: prev unless on
// the first stage, then next, or save on the last stage. Errors raised by the
// actions are available from Err.
func (w *Wizard) Buttons(ctx context.Context) []buttons.Spec {
	definer := buttons.Define(
		func() { w.lastErr = w.Next(ctx) },
		func() { w.lastErr = w.Prev() },
		func() { w.lastErr = w.Save(ctx) },
	)
	spec := w.Stage()

	var out []buttons.Spec
	if w.current > 0 {
		out = append(out, definer.Prev(labelOr(spec.PrevLabel, DefaultPrevLabel)))
	}
	if w.Last() {
		out = append(out, definer.Save(labelOr(w.doc.SaveLabel, DefaultSaveLabel)))
	} else {
		out = append(out, definer.Next(labelOr(spec.NextLabel, DefaultNextLabel)))
	}
	return out
}

// Next validates the active stage and advances when no messages are
// reported.
func (w *Wizard) Next(ctx context.Context) error {
	if w.Last() {
		return fmt.Errorf("quicksetup: next from final stage: %w", ErrNoStage)
	}
	if err := w.validate(ctx); err != nil {
		return err
	}
	w.current++
	return nil
}

// Prev moves back one stage, keeping entered data and clearing messages.
func (w *Wizard) Prev() error {
	if w.current == 0 {
		return fmt.Errorf("quicksetup: prev from first stage: %w", ErrNoStage)
	}
	w.current--
	w.errors = widget.ValidationMessages{}
	return nil
}

// Save validates the active stage and hands the data of every stage to the
// save callback.
func (w *Wizard) Save(ctx context.Context) error {
	if err := w.validate(ctx); err != nil {
		return err
	}
	if w.save != nil {
		if err := w.save(ctx, w.Data()); err != nil {
			return fmt.Errorf("quicksetup: save: %w", err)
		}
	}
	w.saved = true
	return nil
}

func (w *Wizard) validate(ctx context.Context) error {
	w.errors = widget.ValidationMessages{}
	if w.validator == nil {
		return nil
	}
	messages, err := w.validator(ctx, w.current, w.data[w.current].Clone())
	if err != nil {
		return fmt.Errorf("quicksetup: validate stage %d: %w", w.current, err)
	}
	if !messages.Empty() {
		w.errors = messages
		return ErrValidation
	}
	return nil
}

// RecapItems builds form_spec_recap widgets for the form specs of components
// that have data. Scalar values are stored under formspec.ScalarKey.
func RecapItems(components []widget.Spec, data widget.StageData) []widget.Spec {
	specs := widget.ExtractFormSpecs(components)
	items := make([]widget.Spec, 0, len(specs))
	for _, spec := range specs {
		recap := widget.Spec{
			WidgetType: widget.TypeFormSpecRecap,
			ID:         spec.ID,
			FormSpec:   spec.FormSpec,
		}
		switch value := data[spec.ID].(type) {
		case nil:
			continue
		case map[string]any:
			recap.Data = value
		default:
			recap.Data = map[string]any{formspec.ScalarKey: value}
		}
		items = append(items, recap)
	}
	return items
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
