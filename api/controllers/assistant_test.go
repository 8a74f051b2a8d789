package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/assistant"
)

func TestAssistantMessage(t *testing.T) {
	svc := assistant.NewService(nil)
	body := strings.NewReader(`{"message":"how does shipping work?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/messages", body)

	rec := httptest.NewRecorder()
	AssistantMessage(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"intent":"how-it-works"`) {
		t.Fatalf("expected how-it-works intent, got %s", rec.Body.String())
	}
}

func TestAssistantMessageRequiresBody(t *testing.T) {
	svc := assistant.NewService(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/messages", strings.NewReader(`{}`))

	rec := httptest.NewRecorder()
	AssistantMessage(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
