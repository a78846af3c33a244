package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestRouter_Health(t *testing.T) {
	router := NewRouter(nil, nil, nil, "", nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("health body is not json: %v", err)
	}
	if body["status"] != "OK" || body["timestamp"] == "" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestRouter_WebhookMountedAtTokenPath(t *testing.T) {
	hit := false
	webhook := func(w http.ResponseWriter, r *http.Request) { hit = true }

	router := NewRouter(nil, nil, nil, "/bot123:token", webhook, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/bot123:token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !hit {
		t.Fatal("webhook handler not reached")
	}
}

func TestRouter_WebhookOmittedWhenUnconfigured(t *testing.T) {
	router := NewRouter(nil, nil, nil, "", nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/bot123:token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
