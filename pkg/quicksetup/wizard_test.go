package quicksetup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quicksetup/pkg/buttons"
	"github.com/goliatone/go-quicksetup/pkg/quicksetup"
	"github.com/goliatone/go-quicksetup/pkg/stage"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

func requireAddress(_ context.Context, index int, data widget.StageData) (widget.ValidationMessages, error) {
	if index != 0 {
		return nil, nil
	}
	host, _ := data["host"].(map[string]any)
	if address, _ := host["address"].(string); address == "" {
		return widget.ValidationMessages{"host.address": {"Address is required"}}, nil
	}
	return nil, nil
}

func labels(specs []buttons.Spec) []string {
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		out = append(out, string(spec.Variant)+":"+spec.Label)
	}
	return out
}

func TestWizard_ValidationGatesNext(t *testing.T) {
	ctx := context.Background()
	var saved []widget.StageData
	wizard, err := quicksetup.NewWizard(loadFixture(t, "add_host.yaml"),
		quicksetup.WithValidator(requireAddress),
		quicksetup.WithSaveFunc(func(_ context.Context, data []widget.StageData) error {
			saved = data
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}

	first := wizard.Buttons(ctx)
	if diff := cmp.Diff([]string{"next:Continue"}, labels(first)); diff != "" {
		t.Fatalf("first stage buttons mismatch (-want +got):\n%s", diff)
	}

	first[0].Press()
	if !errors.Is(wizard.Err(), quicksetup.ErrValidation) {
		t.Fatalf("expected validation error, got %v", wizard.Err())
	}
	if wizard.Current() != 0 {
		t.Fatalf("wizard advanced despite validation errors")
	}
	content := wizard.Content().(*stage.Content)
	if diff := cmp.Diff([]string{"Address is required"}, content.Errors().For("host.address")); diff != "" {
		t.Fatalf("content errors mismatch (-want +got):\n%s", diff)
	}

	content.UpdateField("host", "address", "10.0.0.1")
	wizard.Buttons(ctx)[0].Press()
	if err := wizard.Err(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if wizard.Current() != 1 || !wizard.Errors().Empty() {
		t.Fatalf("expected to advance with cleared errors, at %d", wizard.Current())
	}

	second := wizard.Buttons(ctx)
	if diff := cmp.Diff([]string{"prev:Previous", "save:Create host"}, labels(second)); diff != "" {
		t.Fatalf("last stage buttons mismatch (-want +got):\n%s", diff)
	}

	wizard.Content().(*stage.Content).Update("monitored", true)
	second[1].Press()
	if err := wizard.Err(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !wizard.Saved() {
		t.Fatalf("expected wizard to be saved")
	}
	want := []widget.StageData{
		{"host": map[string]any{"address": "10.0.0.1"}},
		{"monitored": true},
	}
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Fatalf("saved data mismatch (-want +got):\n%s", diff)
	}
}

func TestWizard_PrevKeepsData(t *testing.T) {
	wizard, err := quicksetup.NewWizard(loadFixture(t, "add_host.json"),
		quicksetup.WithInitialData([]widget.StageData{{"host": map[string]any{"address": "a"}}}),
	)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	if err := wizard.Prev(); !errors.Is(err, quicksetup.ErrNoStage) {
		t.Fatalf("expected ErrNoStage on first stage, got %v", err)
	}
	if err := wizard.Next(context.Background()); err != nil {
		t.Fatalf("next: %v", err)
	}
	if err := wizard.Next(context.Background()); !errors.Is(err, quicksetup.ErrNoStage) {
		t.Fatalf("expected ErrNoStage past final stage, got %v", err)
	}
	wizard.Buttons(context.Background())[0].Press()
	if wizard.Current() != 0 {
		t.Fatalf("prev button did not move back")
	}
	values := wizard.Content().(*stage.Content).Values()
	if diff := cmp.Diff(widget.StageData{"host": map[string]any{"address": "a"}}, values); diff != "" {
		t.Fatalf("data lost on prev (-want +got):\n%s", diff)
	}
}

func TestWizard_RecapDerivedFromFormSpecs(t *testing.T) {
	wizard, err := quicksetup.NewWizard(loadFixture(t, "add_host.yaml"),
		quicksetup.WithInitialData([]widget.StageData{
			{"host": map[string]any{"address": "10.0.0.1", "port": int64(2222)}},
		}),
	)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}

	node, err := wizard.Recap(0)
	if err != nil || node != nil {
		t.Fatalf("active stage should have no recap, got %v (%v)", node, err)
	}
	if _, err := wizard.Recap(5); !errors.Is(err, quicksetup.ErrNoStage) {
		t.Fatalf("expected ErrNoStage, got %v", err)
	}

	if err := wizard.Next(context.Background()); err != nil {
		t.Fatalf("next: %v", err)
	}
	node, err = wizard.Recap(0)
	if err != nil {
		t.Fatalf("recap: %v", err)
	}
	recap, ok := node.(*stage.Recap)
	if !ok {
		t.Fatalf("expected recap node, got %T", node)
	}
	items := recap.Items()
	if len(items) != 1 || items[0].WidgetType != widget.TypeFormSpecRecap || items[0].ID != "host" {
		t.Fatalf("unexpected recap items: %+v", items)
	}
	if diff := cmp.Diff(map[string]any{"address": "10.0.0.1", "port": int64(2222)}, items[0].Data); diff != "" {
		t.Fatalf("recap data mismatch (-want +got):\n%s", diff)
	}
}
