// Package html is the server-side rendering surface for quick setup stages.
// It turns stage nodes and button specs into HTML and maps posted form values
// back into whole-state updates.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
	rendertemplate "github.com/goliatone/go-quicksetup/pkg/render/template"
	"github.com/goliatone/go-quicksetup/pkg/render/template/gotemplate"
	"github.com/goliatone/go-quicksetup/pkg/renderers/html/components"
	"github.com/goliatone/go-quicksetup/pkg/stage"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

const (
	templateContent = "templates/stage_content.tmpl"
	templateRecap   = "templates/stage_recap.tmpl"
	templateButtons = "templates/buttons.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry overrides the component registry.
func WithRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithTheme applies go-theme partial overrides and CSS variables.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	partials  map[string]string
	style     string
}

// New constructs the HTML surface applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates: renderer,
		registry:  cfg.registry,
	}
	if cfg.theme != nil {
		r.partials = copyStringMap(cfg.theme.Partials)
		r.style = cssVarsStyle(cfg.theme.CSSVars)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderNode renders a stage node. The nil sentinel renders to empty output.
func (r *Renderer) RenderNode(ctx context.Context, node stage.Node) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch n := node.(type) {
	case nil:
		return nil, nil
	case *stage.Recap:
		if n == nil {
			return nil, nil
		}
		return r.renderItems(templateRecap, n.Items(), components.ComponentData{
			Values: widget.StageData{},
			Errors: widget.ValidationMessages{},
		})
	case *stage.Content:
		if n == nil {
			return nil, nil
		}
		return r.renderItems(templateContent, n.Components(), components.ComponentData{
			Values: n.Values(),
			Errors: n.Errors(),
		})
	default:
		return nil, fmt.Errorf("html renderer: unsupported node %T", node)
	}
}

// RenderButtons renders the given buttons as submit controls whose value is
// the button variant.
func (r *Renderer) RenderButtons(ctx context.Context, specs ...buttons.Spec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, nil
	}
	payload := make([]map[string]any, 0, len(specs))
	for _, spec := range specs {
		payload = append(payload, map[string]any{
			"label":   spec.Label,
			"variant": string(spec.Variant),
		})
	}
	rendered, err := r.templates.RenderTemplate(templateButtons, map[string]any{"buttons": payload})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render buttons: %w", err)
	}
	return []byte(rendered), nil
}

func (r *Renderer) renderItems(templateName string, items []widget.Spec, data components.ComponentData) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	data.Template = r.templates
	data.ThemePartials = r.partials
	data.RenderChild = func(spec widget.Spec) (string, error) {
		return r.renderWidget(spec, data)
	}

	rendered := make([]string, 0, len(items))
	for _, item := range items {
		out, err := r.renderWidget(item, data)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, out)
	}

	result, err := r.templates.RenderTemplate(templateName, map[string]any{
		"items": rendered,
		"style": r.style,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderWidget(spec widget.Spec, data components.ComponentData) (string, error) {
	descriptor := r.registry.Resolve(spec.WidgetType)
	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, spec, data); err != nil {
		return "", fmt.Errorf("html renderer: component %q: %w", descriptor.Name, err)
	}
	return buf.String(), nil
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}
