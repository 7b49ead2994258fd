package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-quicksetup/pkg/quicksetup"
	"github.com/goliatone/go-quicksetup/pkg/renderers/html"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

func newTestServer(t *testing.T) *wizardServer {
	t.Helper()
	doc, err := quicksetup.LoadFile(fixture)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	wizard, err := quicksetup.NewWizard(doc, quicksetup.WithValidator(quicksetup.SchemaValidator(doc)))
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return &wizardServer{wizard: wizard, renderer: renderer, logger: zap.NewNop()}
}

func get(t *testing.T, handler http.Handler, path string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, rec.Code)
	}
	return rec.Body.String()
}

func post(t *testing.T, handler http.Handler, form url.Values) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST: status %d", rec.Code)
	}
}

func TestServe_WalksDocument(t *testing.T) {
	server := newTestServer(t)
	stages := server.stageHandler()

	page := get(t, stages, "/")
	for _, want := range []string{`<form method="post" action="/">`, `1/2 Connection`, `value="next"`} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected first page to contain %q\n%s", want, page)
		}
	}

	post(t, stages, url.Values{"action": {"next"}})
	if server.wizard.Current() != 0 {
		t.Fatalf("missing address should keep the first stage")
	}
	if page = get(t, stages, "/"); !strings.Contains(page, "Address is required") {
		t.Fatalf("expected validation message\n%s", page)
	}

	post(t, stages, url.Values{"action": {"next"}, "host.address": {"10.0.0.1"}, "host.port": {"2222"}})
	if server.wizard.Current() != 1 {
		t.Fatalf("expected second stage, got %d", server.wizard.Current())
	}
	page = get(t, stages, "/")
	for _, want := range []string{`<dt>Address</dt><dd>10.0.0.1</dd>`, `2/2 Options`, `value="save"`} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected second page to contain %q\n%s", want, page)
		}
	}

	post(t, stages, url.Values{"action": {"save"}, "monitored": {"true"}})
	if !server.wizard.Saved() {
		t.Fatalf("expected wizard to be saved: %v", server.wizard.Err())
	}

	var data []widget.StageData
	if err := json.Unmarshal([]byte(get(t, server.dataHandler(), "/data")), &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	want := []widget.StageData{
		{"host": map[string]any{"address": "10.0.0.1", "port": float64(2222)}},
		{"monitored": true},
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestServe_RejectsOtherMethods(t *testing.T) {
	server := newTestServer(t)
	rec := httptest.NewRecorder()
	server.stageHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
