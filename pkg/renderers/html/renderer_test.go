package html_test

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
	"github.com/goliatone/go-quicksetup/pkg/renderers/html"
	"github.com/goliatone/go-quicksetup/pkg/renderers/html/components"
	"github.com/goliatone/go-quicksetup/pkg/stage"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

func stageComponents() []widget.Spec {
	return []widget.Spec{
		{WidgetType: widget.TypeText, Text: "Connect a <b>host</b>", Tooltip: "a&b"},
		{WidgetType: widget.TypeNoteText, Text: "All fields can be changed later."},
		{
			WidgetType: widget.TypeListOfWidgets,
			ListType:   widget.ListOrdered,
			Items: []widget.Spec{
				{WidgetType: widget.TypeText, Text: "first"},
				{WidgetType: widget.TypeText, Text: "second"},
			},
		},
		{
			WidgetType: widget.TypeCollapsible,
			Title:      "Connection",
			Open:       true,
			Items: []widget.Spec{{
				WidgetType: widget.TypeFormSpec,
				ID:         "host",
				FormSpec: map[string]any{
					"type":    "object",
					"x-order": []any{"address", "port", "tls"},
					"properties": map[string]any{
						"address": map[string]any{"type": "string"},
						"port":    map[string]any{"type": "integer"},
						"tls":     map[string]any{"type": "boolean"},
					},
				},
			}},
		},
		{WidgetType: "sparkles", Text: "never shown"},
	}
}

func newRenderer(t *testing.T, opts ...html.Option) *html.Renderer {
	t.Helper()
	renderer, err := html.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRenderNode_Content(t *testing.T) {
	renderer := newRenderer(t)
	node := stage.RenderContent(stageComponents(), nil,
		stage.WithUserInput(widget.StageData{"host": map[string]any{"address": "10.0.0.1"}}),
		stage.WithErrors(widget.ValidationMessages{"host.port": {"Port is required"}}),
	)

	out, err := renderer.RenderNode(context.Background(), node)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)

	for _, want := range []string{
		`<section class="qs-stage-content">`,
		`<p class="qs-text" title="a&amp;b">Connect a <b>host</b></p>`,
		`<p class="qs-note-text">All fields can be changed later.</p>`,
		`<ol class="qs-list qs-list-ol"><li><p class="qs-text">first</p></li><li><p class="qs-text">second</p></li></ol>`,
		`<details class="qs-collapsible" open>`,
		`name="host.address" value="10.0.0.1"`,
		`<li>Port is required</li>`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("expected markup to contain %q\n%s", want, markup)
		}
	}
	if strings.Contains(markup, "never shown") {
		t.Fatalf("unknown widget should render nothing")
	}
}

func TestRenderNode_RecapAndNothing(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.RenderNode(context.Background(), stage.RenderRecap(nil))
	if err != nil || len(out) != 0 {
		t.Fatalf("nothing sentinel should render empty output, got %q (%v)", out, err)
	}

	recap := stage.RenderRecap([]widget.Spec{{
		WidgetType: widget.TypeFormSpecRecap,
		ID:         "site",
		Data:       map[string]any{"name": "prod"},
	}})
	out, err = renderer.RenderNode(context.Background(), recap)
	if err != nil {
		t.Fatalf("render recap: %v", err)
	}
	want := `<section class="qs-stage-recap"><div class="qs-recap-item"><dl class="qs-recap" data-form-spec="site"><dt>name</dt><dd>prod</dd></dl></div></section>`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("recap mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderNode_ThemePartialsAndCSSVars(t *testing.T) {
	renderer := newRenderer(t, html.WithTheme(&theme.RendererConfig{
		Partials: map[string]string{
			components.PartialText: "templates/components/note_text.tmpl",
		},
		CSSVars: map[string]string{"--qs-brand": "#123456"},
	}))

	node := stage.RenderContent([]widget.Spec{{WidgetType: widget.TypeText, Text: "themed"}}, nil)
	out, err := renderer.RenderNode(context.Background(), node)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<section class="qs-stage-content" style="--qs-brand: #123456"><p class="qs-note-text">themed</p></section>`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("themed markup mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderButtons(t *testing.T) {
	renderer := newRenderer(t)
	definer := buttons.Define(nil, nil, nil)

	out, err := renderer.RenderButtons(context.Background(), definer.Prev("Back"), definer.Next("Continue"))
	if err != nil {
		t.Fatalf("render buttons: %v", err)
	}
	want := `<div class="qs-buttons">` +
		`<button type="submit" name="action" value="prev" class="qs-button qs-button-prev" data-variant="prev">Back</button>` +
		`<button type="submit" name="action" value="next" class="qs-button qs-button-next" data-variant="next">Continue</button>` +
		`</div>`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPage_ActiveStage(t *testing.T) {
	renderer := newRenderer(t)
	definer := buttons.Define(nil, nil, nil)

	out, err := renderer.RenderPage(context.Background(), html.Page{
		Title: "Add <host>",
		Done: []html.PageSection{
			{Title: "Site", Recap: stage.RenderRecap([]widget.Spec{{
				WidgetType: widget.TypeFormSpecRecap,
				ID:         "site",
				Data:       map[string]any{"name": "prod"},
			}})},
			{Title: "Skipped", Recap: stage.RenderRecap(nil)},
		},
		Active: &html.ActiveStage{
			Position: 2,
			Total:    3,
			Title:    "Connection",
			SubTitle: "Where the host lives",
			Content:  stage.RenderContent([]widget.Spec{{WidgetType: widget.TypeText, Text: "Connect"}}, nil),
			Buttons:  []buttons.Spec{definer.Next("Continue")},
		},
	})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	markup := string(out)

	for _, want := range []string{
		`<title>Add &lt;host&gt;</title>`,
		`<link rel="stylesheet" href="/assets/` + html.StylesheetName + `">`,
		`<section class="qs-stage qs-stage-done"><h2>Site</h2><section class="qs-stage-recap">`,
		`<dt>name</dt><dd>prod</dd>`,
		`<h2>2/3 Connection</h2><p class="qs-stage-subtitle">Where the host lives</p>`,
		`<form method="post" action="/"><section class="qs-stage-content"><p class="qs-text">Connect</p></section><div class="qs-buttons">`,
		`value="next"`,
	} {
		if !strings.Contains(markup, want) {
			t.Fatalf("expected page to contain %q\n%s", want, markup)
		}
	}
	if strings.Contains(markup, "Skipped") {
		t.Fatalf("nothing recaps should not get a section\n%s", markup)
	}
}

func TestRenderPage_Saved(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.RenderPage(context.Background(), html.Page{
		Title:   "Add host",
		DataURL: "/api/data",
		Saved:   true,
		Active:  &html.ActiveStage{Title: "ignored once saved"},
	})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	markup := string(out)
	if !strings.Contains(markup, `<p class="qs-saved">Saved. <a href="/api/data">View data</a></p>`) {
		t.Fatalf("expected saved notice\n%s", markup)
	}
	if strings.Contains(markup, "<form") || strings.Contains(markup, "ignored once saved") {
		t.Fatalf("saved page should not render the active stage\n%s", markup)
	}
}

func TestRenderPage_TemplatesDirOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	layout := `<main>{{ title }}{% if saved %} done{% endif %}</main>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.tmpl"), []byte(layout), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	renderer := newRenderer(t, html.WithTemplatesDir(dir))

	out, err := renderer.RenderPage(context.Background(), html.Page{Title: "Custom", Saved: true})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if diff := cmp.Diff("<main>Custom done</main>", string(out)); diff != "" {
		t.Fatalf("override mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyForm_PublishesWholeState(t *testing.T) {
	var published []widget.StageData
	node := stage.RenderContent(stageComponents(), func(data widget.StageData) {
		published = append(published, data)
	}, stage.WithUserInput(widget.StageData{
		"host":  map[string]any{"address": "old", "tls": true},
		"extra": "kept",
	})).(*stage.Content)

	err := html.ApplyForm(node, url.Values{
		"host.address": {"10.0.0.2"},
		"host.port":    {"2222"},
		"action":       {"next"},
	})
	if err != nil {
		t.Fatalf("apply form: %v", err)
	}

	want := []widget.StageData{{
		"host":  map[string]any{"address": "10.0.0.2", "port": int64(2222), "tls": false},
		"extra": "kept",
	}}
	if diff := cmp.Diff(want, published); diff != "" {
		t.Fatalf("published mismatch (-want +got):\n%s", diff)
	}
}

func TestPressed(t *testing.T) {
	pressed := 0
	definer := buttons.Define(func() { pressed++ }, nil, nil)
	specs := []buttons.Spec{definer.Prev("Back"), definer.Next("Continue")}

	spec, ok := html.Pressed(url.Values{"action": {"next"}}, specs...)
	if !ok || spec.Label != "Continue" {
		t.Fatalf("expected next button, got %+v (%v)", spec, ok)
	}
	spec.Press()
	if pressed != 1 {
		t.Fatalf("expected next callback once, got %d", pressed)
	}
	if _, ok := html.Pressed(url.Values{}, specs...); ok {
		t.Fatalf("expected no button without action")
	}
}

func TestAssetsFS(t *testing.T) {
	data, err := fs.ReadFile(html.AssetsFS(), html.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".qs-form-spec") {
		t.Fatalf("stylesheet missing form spec rules")
	}
}
