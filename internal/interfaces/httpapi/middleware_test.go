package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireOperatorToken_AcceptsValidToken(t *testing.T) {
	handler := RequireOperatorToken("secret", okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/registrations/pending", nil)
	req.Header.Set("X-Operator-Token", "secret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireOperatorToken_RejectsMissingOrWrongToken(t *testing.T) {
	handler := RequireOperatorToken("secret", okHandler())

	for _, token := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/registrations/pending", nil)
		if token != "" {
			req.Header.Set("X-Operator-Token", token)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for token %q, got %d", token, rec.Code)
		}
	}
}

func TestRequireOperatorToken_UnconfiguredTokenIsUnavailable(t *testing.T) {
	handler := RequireOperatorToken("", okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/registrations/pending", nil)
	req.Header.Set("X-Operator-Token", "anything")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://pedalnorte.cl"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	req.Header.Set("Origin", "https://pedalnorte.cl")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://pedalnorte.cl" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/events", nil)
	req.Header.Set("Origin", "https://pedalnorte.cl")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://pedalnorte.cl"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no Access-Control-Allow-Origin header, got %q", got)
	}
}

func TestShouldTraceRequest_FiltersHealthEndpoints(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz"} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected %s to be filtered from tracing", path)
		}
	}
	if !shouldTraceRequest("/v1/events") {
		t.Fatalf("expected domain routes to be traced")
	}
}
