package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHomeRendersLandingForAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/login") {
		t.Fatal("expected landing page to link to login")
	}
}

func TestHomeRedirectsAuthenticatedUsers(t *testing.T) {
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req := sessionRequest(t, sm, http.MethodGet, "/", nil)
	signIn(t, sm, req, 1)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect to dashboard, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected /dashboard, got %q", loc)
	}
}

func TestHomeUnknownPathRenders404(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/definitely-not-a-page", nil)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
