package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"investdesk/internal/refdata"
	"investdesk/internal/storage"
	"investdesk/internal/suitability"
)

type profileSource struct {
	store *storage.InMemoryStore[refdata.InvestmentProfile]
}

func (p profileSource) ProfileByClient(ctx context.Context, clientID string) (refdata.InvestmentProfile, error) {
	return p.store.FindOne(ctx, func(pr refdata.InvestmentProfile) bool {
		return pr.ClientID == clientID
	})
}

func newSuitabilityRouter(t *testing.T) http.Handler {
	t.Helper()

	catalog, err := refdata.Embedded()
	if err != nil {
		t.Fatalf("load reference data: %v", err)
	}
	profiles := storage.NewInMemoryStore[refdata.InvestmentProfile]()
	for _, p := range catalog.Profiles() {
		if _, err := profiles.Create(context.Background(), p); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	h := New(suitability.New(profileSource{store: profiles}, catalog), nil)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func get(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, body
}

func TestCheckRequiresBothParams(t *testing.T) {
	router := newSuitabilityRouter(t)

	rec, body := get(t, router, "/suitability/check?clientId=CLI-001")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
}

func TestCheckSuitableClient(t *testing.T) {
	router := newSuitabilityRouter(t)

	rec, body := get(t, router, "/suitability/check?clientId=CLI-001&productId=PROD-002")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := body["data"].(map[string]any)
	if data["isSuitable"] != true {
		t.Fatalf("expected suitable verdict, got %v", data)
	}
}

func TestCheckRiskMismatch(t *testing.T) {
	router := newSuitabilityRouter(t)

	rec, body := get(t, router, "/suitability/check?clientId=CLI-001&productId=PROD-003")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 (soft failure), got %d", rec.Code)
	}
	data := body["data"].(map[string]any)
	if data["isSuitable"] != false {
		t.Fatalf("expected unsuitable verdict, got %v", data)
	}
}

func TestInvestmentGroupLookup(t *testing.T) {
	router := newSuitabilityRouter(t)

	rec, body := get(t, router, "/suitability/investment-group/CLI-002")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := body["data"].(map[string]any)
	if data["investmentGroup"] != "Aggressive" {
		t.Fatalf("expected Aggressive group, got %v", data["investmentGroup"])
	}

	rec, _ = get(t, router, "/suitability/investment-group/CLI-999")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown client, got %d", rec.Code)
	}
}
