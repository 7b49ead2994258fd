package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-quicksetup/pkg/render/template"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

// Renderer writes the markup for a single widget into buf.
type Renderer func(buf *bytes.Buffer, spec widget.Spec, data ComponentData) error

// ComponentData carries helpers and the stage state for component renderers.
// Values and Errors are never nil when supplied by the html surface.
type ComponentData struct {
	Template      rendertemplate.TemplateRenderer
	ThemePartials map[string]string
	RenderChild   func(spec widget.Spec) (string, error)
	Values        widget.StageData
	Errors        widget.ValidationMessages
}

// Descriptor bundles a component name with its renderer.
type Descriptor struct {
	Name     string
	Renderer Renderer
}

// Registry maps widget types to component descriptors. Lookups for
// unregistered types resolve to the none component.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry. Resolve still falls back to the none
// component.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a copy of the registry to allow isolated overrides.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates a descriptor with name. Existing entries are replaced.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a registered descriptor by name without falling back.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[name]
	return descriptor, ok
}

// Resolve returns the component for a widget type. Unknown types, including
// the empty string, resolve to the none component; Resolve never fails.
func (r *Registry) Resolve(widgetType widget.Type) Descriptor {
	if r != nil {
		if descriptor, ok := r.Descriptor(string(widgetType)); ok {
			return descriptor
		}
		if descriptor, ok := r.Descriptor(NameNone); ok {
			return descriptor
		}
	}
	return noneDescriptor
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Registration trims names; lookups match widget type tags exactly.
func normalize(name string) string {
	return strings.TrimSpace(name)
}
