package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	allocationapp "warehouse-cloud/internal/allocation/application"
	allocation "warehouse-cloud/internal/allocation/domain"
)

type staticSource []allocation.Location

func (s staticSource) CandidateLocations(ctx context.Context) ([]allocation.Location, error) {
	return s, nil
}

func newTestHandler(t *testing.T, candidates ...allocation.Location) *Handler {
	t.Helper()
	service, err := allocationapp.NewService(staticSource(candidates), allocation.DefaultCapacityTable())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewHandler(service)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func TestSuggest_ReturnsBestSlot(t *testing.T) {
	handler := newTestHandler(t,
		allocation.Location{ID: "loc-1", Code: "B01-0", Row: "B", Bay: "01", Level: "0", MaxWeightKg: 500, Available: true, Verified: true},
		allocation.Location{ID: "loc-2", Code: "A01-0", Row: "A", Bay: "01", Level: "0", MaxWeightKg: 500, Available: true, Verified: true},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/suggest", strings.NewReader(`{"weight_kg": 100}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body SuggestResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.LocationCode != "A01-0" {
		t.Fatalf("expected A01-0, got %q", body.LocationCode)
	}
}

func TestSuggest_NoViableLocation(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/suggest", strings.NewReader(`{"weight_kg": 100}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSuggest_UnknownTierIsUnprocessable(t *testing.T) {
	handler := newTestHandler(t,
		allocation.Location{ID: "loc-1", Code: "A01-9", Row: "A", Bay: "01", Level: "9", MaxWeightKg: 500, Available: true, Verified: true},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/suggest", strings.NewReader(`{"weight_kg": 100}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestSuggest_RejectsNonPositiveWeight(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/suggest", strings.NewReader(`{"weight_kg": 0}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSuggest_RejectsInvalidJSON(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/suggest", strings.NewReader(`{`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSuggest_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/allocations/suggest", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}
