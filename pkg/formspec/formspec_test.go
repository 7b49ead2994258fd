package formspec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quicksetup/pkg/formspec"
)

func TestParse_ObjectSchema(t *testing.T) {
	payload := map[string]any{
		"type":     "object",
		"title":    "Host",
		"required": []any{"address"},
		"x-order":  []any{"port", "address", "missing", "port"},
		"properties": map[string]any{
			"address": map[string]any{"type": "string", "title": "Address"},
			"port":    map[string]any{"type": "integer", "default": 22},
			"mode":    map[string]any{"type": "string", "enum": []any{"active", "passive"}},
			"secret":  map[string]any{"type": "string", "format": "password"},
		},
	}

	form, err := formspec.Parse(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form.Scalar {
		t.Fatalf("object schema should not be scalar")
	}
	if form.Title != "Host" {
		t.Fatalf("title mismatch: %q", form.Title)
	}

	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"port", "address", "mode", "secret"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	address := form.Fields[1]
	if !address.Required || address.Label != "Address" || address.Type != "string" {
		t.Fatalf("unexpected address field: %+v", address)
	}
	if form.Fields[0].Label != "port" {
		t.Fatalf("label should fall back to property name, got %q", form.Fields[0].Label)
	}
	if diff := cmp.Diff([]any{"active", "passive"}, form.Fields[2].Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if !form.Fields[3].Secret() {
		t.Fatalf("password format should be secret")
	}
}

func TestParse_ScalarSchema(t *testing.T) {
	form, err := formspec.Parse(map[string]any{"type": "boolean", "title": "Enable"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !form.Scalar || len(form.Fields) != 1 {
		t.Fatalf("expected a single scalar field, got %+v", form)
	}
	if got := form.Fields[0]; got.Name != "" || got.Type != "boolean" || got.Label != "Enable" {
		t.Fatalf("unexpected scalar field: %+v", got)
	}
}

func TestParse_EmptyPayload(t *testing.T) {
	if _, err := formspec.Parse(nil); !errors.Is(err, formspec.ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}
