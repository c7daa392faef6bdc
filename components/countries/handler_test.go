package countries

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeOptions(t *testing.T, rec *httptest.ResponseRecorder) []Option {
	t.Helper()
	var payload optionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload.Data
}

func TestHandler_ReturnsDirectoryOptions(t *testing.T) {
	entries := []Entry{
		{Name: "India", Code: "IN", Prefix: "+91"},
		{Name: "United States", Code: "US", Prefix: "+1"},
	}
	handler := Handler(WithEntries(entries))

	req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := decodeOptions(t, rec)
	if len(data) != 2 {
		t.Fatalf("expected 2 options, got %d", len(data))
	}
	if data[0].Value != "IN" || data[0].Prefix != "+91" {
		t.Fatalf("unexpected first option: %#v", data[0])
	}
}

func TestHandler_FiltersByQuery(t *testing.T) {
	entries := []Entry{
		{Name: "India", Code: "IN", Prefix: "+91"},
		{Name: "United States", Code: "US", Prefix: "+1"},
	}
	handler := Handler(WithEntries(entries))

	req := httptest.NewRequest(http.MethodGet, "/api/countries?q=united", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	data := decodeOptions(t, rec)
	if len(data) != 1 || data[0].Value != "US" {
		t.Fatalf("unexpected filtered options: %#v", data)
	}
}

func TestHandler_RejectsWriteMethods(t *testing.T) {
	handler := Handler(WithEntries([]Entry{{Name: "India", Code: "IN", Prefix: "+91"}}))

	req := httptest.NewRequest(http.MethodPost, "/api/countries", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow == "" {
		t.Fatalf("expected Allow header on 405")
	}
}

func TestHandler_HeadOmitsBody(t *testing.T) {
	handler := Handler(WithEntries([]Entry{{Name: "India", Code: "IN", Prefix: "+91"}}))

	req := httptest.NewRequest(http.MethodHead, "/api/countries", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("HEAD response should carry no body, got %q", rec.Body.String())
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	handler := Handler(
		WithEntries([]Entry{{Name: "India", Code: "IN", Prefix: "+91"}}),
		WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRegisterRoutes_MountsUnderBasePath(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/forms", WithEntries([]Entry{{Name: "India", Code: "IN", Prefix: "+91"}}))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/forms/api/countries" {
		t.Fatalf("pattern = %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/forms/api/countries", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRegisterRoutes_RequiresMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
