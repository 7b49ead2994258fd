package html

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
	"github.com/goliatone/go-quicksetup/pkg/stage"
)

const templatePage = "templates/page.tmpl"

// Page describes a full wizard page: recaps of the stages already completed
// followed by the active stage wrapped in a form.
type Page struct {
	Title string
	// AssetsPath is the URL prefix the stylesheet is served under.
	AssetsPath string
	// Action is the form target. Defaults to "/".
	Action string
	// DataURL is linked once the wizard is saved.
	DataURL string
	Done    []PageSection
	Active  *ActiveStage
	Saved   bool
}

// PageSection is a completed stage. Nothing recaps are skipped.
type PageSection struct {
	Title string
	Recap stage.Node
}

// ActiveStage is the stage currently being edited.
type ActiveStage struct {
	Position int // 1-based
	Total    int
	Title    string
	SubTitle string
	Content  stage.Node
	Buttons  []buttons.Spec
}

// RenderPage renders page through the page template. Override it with a
// templates/page.tmpl in the directory given to WithTemplatesDir.
func (r *Renderer) RenderPage(ctx context.Context, page Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	done := make([]map[string]any, 0, len(page.Done))
	for _, section := range page.Done {
		if stage.Nothing(section.Recap) {
			continue
		}
		body, err := r.RenderNode(ctx, section.Recap)
		if err != nil {
			return nil, err
		}
		done = append(done, map[string]any{
			"title": section.Title,
			"body":  string(body),
		})
	}

	data := map[string]any{
		"title":      page.Title,
		"stylesheet": strings.TrimSuffix(defaultString(page.AssetsPath, "/assets"), "/") + "/" + StylesheetName,
		"action":     defaultString(page.Action, "/"),
		"data_url":   defaultString(page.DataURL, "/data"),
		"done":       done,
		"saved":      page.Saved,
	}

	if !page.Saved && page.Active != nil {
		active := page.Active
		body, err := r.RenderNode(ctx, active.Content)
		if err != nil {
			return nil, err
		}
		controls, err := r.RenderButtons(ctx, active.Buttons...)
		if err != nil {
			return nil, err
		}
		data["active"] = map[string]any{
			// formatted here since template data reaches pongo2 as JSON numbers
			"step":     fmt.Sprintf("%d/%d", active.Position, active.Total),
			"title":    active.Title,
			"subtitle": active.SubTitle,
			"body":     string(body),
			"controls": string(controls),
		}
	}

	rendered, err := r.templates.RenderTemplate(templatePage, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return []byte(rendered), nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
