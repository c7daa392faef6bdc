package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestContract_LoadsAndValidates(t *testing.T) {
	doc, err := Contract(context.Background())
	if err != nil {
		t.Fatalf("Contract: %v", err)
	}
	if doc.Paths.Find(ContactRoutePath) == nil {
		t.Fatalf("contract missing %s", ContactRoutePath)
	}
	if doc.Paths.Find("/api/countries") == nil {
		t.Fatalf("contract missing /api/countries")
	}
}

func TestContractHandler_ServesJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil)
	rec := httptest.NewRecorder()
	ContractHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded["openapi"] != "3.0.3" {
		t.Fatalf("openapi version = %v", decoded["openapi"])
	}
}

func TestContractHandler_MethodGate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/openapi.json", nil)
	rec := httptest.NewRecorder()
	ContractHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}
