// Package tui is the terminal rendering surface for quick setup stages. It
// prints informational widgets, prompts for every field of the stage's form
// specs and pushes each answer through the stage node.
package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
	"github.com/goliatone/go-quicksetup/pkg/formspec"
	"github.com/goliatone/go-quicksetup/pkg/stage"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

// Theme holds optional prefixes applied to printed messages.
type Theme struct {
	InfoPrefix  string
	NotePrefix  string
	ErrorPrefix string
}

// Option configures the terminal surface.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints informational
// lines. It has no effect when a custom driver is supplied.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		if out != nil {
			r.out = out
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// Renderer walks stage nodes in the terminal.
type Renderer struct {
	driver PromptDriver
	out    io.Writer
	theme  Theme
}

// New constructs a terminal surface backed by survey prompts.
func New(options ...Option) *Renderer {
	r := &Renderer{
		out:   os.Stdout,
		theme: Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

// Run renders node. Recap nodes are printed; content nodes are printed and
// their form specs prompted field by field. The nil sentinel is a no-op.
func (r *Renderer) Run(ctx context.Context, node stage.Node) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	switch n := node.(type) {
	case nil:
		return nil
	case *stage.Recap:
		if n == nil {
			return nil
		}
		for _, item := range n.Items() {
			if err := r.walk(ctx, item, nil, 0); err != nil {
				return err
			}
		}
		return nil
	case *stage.Content:
		if n == nil {
			return nil
		}
		for _, item := range n.Components() {
			if err := r.walk(ctx, item, n, 0); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("tui: unsupported node %T", node)
	}
}

// Choose asks the user to pick one of the buttons and presses it.
func (r *Renderer) Choose(ctx context.Context, specs ...buttons.Spec) (buttons.Spec, error) {
	if len(specs) == 0 {
		return buttons.Spec{}, ErrNoButtons
	}
	options := make([]string, 0, len(specs))
	for _, spec := range specs {
		options = append(options, spec.Label)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Continue with",
		Options:      options,
		DefaultIndex: len(options) - 1,
	})
	if err != nil {
		return buttons.Spec{}, err
	}
	if idx < 0 || idx >= len(specs) {
		return buttons.Spec{}, fmt.Errorf("tui: selection %d out of range", idx)
	}
	chosen := specs[idx]
	chosen.Press()
	return chosen, nil
}

func (r *Renderer) walk(ctx context.Context, spec widget.Spec, content *stage.Content, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch spec.WidgetType {
	case widget.TypeText:
		return r.info(ctx, indent+r.theme.InfoPrefix+plainText(spec.Text))
	case widget.TypeNoteText:
		return r.info(ctx, indent+r.theme.NotePrefix+plainText(spec.Text))
	case widget.TypeListOfWidgets:
		for idx, item := range spec.Items {
			marker := "-"
			if spec.ListType == widget.ListOrdered {
				marker = strconv.Itoa(idx+1) + "."
			}
			if err := r.info(ctx, indent+marker+" "+summary(item)); err != nil {
				return err
			}
		}
		return nil
	case widget.TypeCollapsible:
		if title := strings.TrimSpace(spec.Title); title != "" {
			if err := r.info(ctx, indent+title); err != nil {
				return err
			}
		}
		for _, item := range spec.Items {
			if err := r.walk(ctx, item, content, depth+1); err != nil {
				return err
			}
		}
		return nil
	case widget.TypeFormSpec:
		if content == nil {
			return nil
		}
		return r.promptFormSpec(ctx, spec, content, indent)
	case widget.TypeFormSpecRecap:
		return r.printRecap(ctx, spec, indent)
	default:
		return nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return r.driver.Info(ctx, msg)
}

func (r *Renderer) promptFormSpec(ctx context.Context, spec widget.Spec, content *stage.Content, indent string) error {
	form, err := formspec.Parse(spec.FormSpec)
	if err != nil {
		return r.info(ctx, indent+r.theme.ErrorPrefix+"form specification unavailable for "+spec.ID)
	}
	if title := strings.TrimSpace(form.Title); title != "" && !form.Scalar {
		if err := r.info(ctx, indent+title); err != nil {
			return err
		}
	}
	errs := content.Errors()
	for _, message := range errs.For(spec.ID) {
		if err := r.info(ctx, indent+r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}

	for _, field := range form.Fields {
		current := currentValue(content.Values(), spec.ID, form.Scalar, field)
		help := strings.Join(errs.For(joinPath(spec.ID, field.Name)), "; ")
		value, answered, err := r.promptField(ctx, field, current, help)
		if err != nil {
			return err
		}
		if !answered {
			continue
		}
		if form.Scalar {
			content.Update(spec.ID, value)
		} else {
			content.UpdateField(spec.ID, field.Name, value)
		}
	}
	return nil
}

// promptField asks for one field. It reports false when the answer leaves the
// stored value untouched: an empty password over an existing secret, or a
// blank optional number.
func (r *Renderer) promptField(ctx context.Context, field formspec.Field, current any, help string) (any, bool, error) {
	if help == "" {
		help = field.Description
	}
	label := field.Label
	if label == "" {
		label = "Value"
	}

	switch {
	case field.Type == "boolean":
		def, _ := current.(bool)
		value, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: help})
		return value, err == nil, err
	case len(field.Enum) > 0:
		options := make([]string, 0, len(field.Enum))
		def := 0
		for idx, option := range field.Enum {
			text := fmt.Sprint(option)
			if text == fmt.Sprint(current) {
				def = idx
			}
			options = append(options, text)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: def, Help: help})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(field.Enum) {
			return nil, false, fmt.Errorf("tui: selection %d out of range for %q", idx, field.Name)
		}
		return field.Enum[idx], true, nil
	case field.Secret():
		text, err := r.driver.Password(ctx, InputConfig{Message: label, Help: help})
		if err != nil {
			return nil, false, err
		}
		if text == "" && current != nil {
			return nil, false, nil
		}
		return text, true, nil
	case field.Type == "integer":
		return r.promptNumber(ctx, field, label, current, help, func(s string) (any, error) {
			return strconv.ParseInt(s, 10, 64)
		})
	case field.Type == "number":
		return r.promptNumber(ctx, field, label, current, help, func(s string) (any, error) {
			return strconv.ParseFloat(s, 64)
		})
	default:
		text, err := r.driver.Input(ctx, InputConfig{Message: label, Default: defaultText(current), Help: help})
		return text, err == nil, err
	}
}

// promptNumber reads a numeric answer. Optional fields accept a blank answer,
// which leaves the stored value as is.
func (r *Renderer) promptNumber(ctx context.Context, field formspec.Field, label string, current any, help string, parse func(string) (any, error)) (any, bool, error) {
	text, err := r.driver.Input(ctx, InputConfig{
		Message: label,
		Default: defaultText(current),
		Help:    help,
		Validator: func(s string) error {
			trimmed := strings.TrimSpace(s)
			if trimmed == "" && !field.Required {
				return nil
			}
			if _, err := parse(trimmed); err != nil {
				return fmt.Errorf("invalid number %q", s)
			}
			return nil
		},
	})
	if err != nil {
		return nil, false, err
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" && !field.Required {
		return nil, false, nil
	}
	value, err := parse(trimmed)
	if err != nil {
		return nil, false, fmt.Errorf("tui: %s: invalid number %q", field.Name, text)
	}
	return value, true, nil
}

func (r *Renderer) printRecap(ctx context.Context, spec widget.Spec, indent string) error {
	form, err := formspec.Parse(spec.FormSpec)
	if err != nil {
		keys := make([]string, 0, len(spec.Data))
		for key := range spec.Data {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := r.info(ctx, fmt.Sprintf("%s%s: %v", indent, key, spec.Data[key])); err != nil {
				return err
			}
		}
		return nil
	}
	for _, field := range form.Fields {
		key := field.Name
		if form.Scalar {
			key = formspec.ScalarKey
		}
		value, ok := spec.Data[key]
		if !ok {
			continue
		}
		text := fmt.Sprint(value)
		if field.Secret() {
			text = "******"
		}
		label := field.Label
		if label == "" {
			label = form.Title
		}
		if err := r.info(ctx, fmt.Sprintf("%s%s: %s", indent, label, text)); err != nil {
			return err
		}
	}
	return nil
}

func currentValue(values widget.StageData, id string, scalar bool, field formspec.Field) any {
	var value any
	if scalar {
		value = values[id]
	} else if fields, ok := values[id].(map[string]any); ok {
		value = fields[field.Name]
	}
	if value == nil {
		value = field.Default
	}
	return value
}

func defaultText(value any) string {
	if value == nil {
		return ""
	}
	if f, ok := value.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(value)
}

func joinPath(id, field string) string {
	if field == "" {
		return id
	}
	return id + "." + field
}

func summary(spec widget.Spec) string {
	switch {
	case spec.Text != "":
		return plainText(spec.Text)
	case spec.Title != "":
		return spec.Title
	default:
		return string(spec.WidgetType)
	}
}

var (
	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy
)

// plainText removes markup from text widgets for terminal output.
func plainText(raw string) string {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(raw)))
}
