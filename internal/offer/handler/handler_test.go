package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"investdesk/internal/offer"
	"investdesk/internal/refdata"
	"investdesk/internal/storage"
	"investdesk/internal/suitability"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type profileSource struct {
	store *storage.InMemoryStore[refdata.InvestmentProfile]
}

func (p profileSource) ProfileByClient(ctx context.Context, clientID string) (refdata.InvestmentProfile, error) {
	return p.store.FindOne(ctx, func(pr refdata.InvestmentProfile) bool {
		return pr.ClientID == clientID
	})
}

// fixture bundles the router with the underlying service for direct seeding.
type fixture struct {
	router  http.Handler
	service *offer.Service
}

func newOfferFixture(t *testing.T) fixture {
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

	checks := suitability.New(profileSource{store: profiles}, catalog)
	service := offer.New(storage.NewInMemoryStore[offer.Offer](), checks, catalog)

	h := New(service, nil)
	r := chi.NewRouter()
	h.Register(r)
	return fixture{router: r, service: service}
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var raw []byte
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec, env
}

// seedWaitingOffer creates an offer in Wait for the given client via the
// conversion path plus one transition.
func (f fixture) seedWaitingOffer(t *testing.T, clientID, productID string) offer.Offer {
	t.Helper()
	ctx := context.Background()

	created, err := f.service.CreateFromInquiry(ctx, offer.InquirySnapshot{
		InquiryID:       "INQ-20250314-001",
		ClientID:        clientID,
		ProductID:       productID,
		RequestedAmount: 50000,
		CreatedBy:       "EMP-001",
	})
	if err != nil {
		t.Fatalf("seed offer: %v", err)
	}

	wait := offer.StatusWait
	waiting, err := f.service.Update(ctx, created.ID, offer.UpdateRequest{Status: &wait})
	if err != nil {
		t.Fatalf("move offer to Wait: %v", err)
	}
	return waiting
}

func TestSendAcceptConfirmViaHandlers(t *testing.T) {
	f := newOfferFixture(t)
	waiting := f.seedWaitingOffer(t, "CLI-001", "PROD-002")

	rec, env := doJSON(t, f.router, http.MethodPost, "/offers/"+waiting.ID+"/send", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 sending offer, got %d", rec.Code)
	}
	var sent offer.Offer
	if err := json.Unmarshal(env.Data, &sent); err != nil {
		t.Fatalf("decode offer: %v", err)
	}
	if sent.Status != offer.StatusSent || sent.SentDate == nil {
		t.Fatalf("expected Sent offer with sentDate, got %+v", sent)
	}

	rec, env = doJSON(t, f.router, http.MethodPost, "/offers/"+waiting.ID+"/accept", map[string]string{
		"clientId":      "CLI-001",
		"paymentMethod": "Bank Transfer",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 accepting offer, got %d", rec.Code)
	}
	var accepted offer.Offer
	if err := json.Unmarshal(env.Data, &accepted); err != nil {
		t.Fatalf("decode offer: %v", err)
	}
	if accepted.Status != offer.StatusAccepted || !accepted.OTPVerified {
		t.Fatalf("expected Accepted offer with otpVerified, got %+v", accepted)
	}

	rec, env = doJSON(t, f.router, http.MethodPost, "/offers/"+waiting.ID+"/confirm", map[string]string{
		"approvedBy": "EMP-003",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 confirming order, got %d", rec.Code)
	}
	var confirmed offer.Offer
	if err := json.Unmarshal(env.Data, &confirmed); err != nil {
		t.Fatalf("decode offer: %v", err)
	}
	if confirmed.Status != offer.StatusConfirmed || confirmed.ApprovedBy != "EMP-003" {
		t.Fatalf("expected Confirmed offer approved by EMP-003, got %+v", confirmed)
	}
}

func TestSendComplianceFailure(t *testing.T) {
	f := newOfferFixture(t)
	// CLI-004 carries a KYC Fail fact from AML screening.
	waiting := f.seedWaitingOffer(t, "CLI-004", "PROD-001")

	rec, env := doJSON(t, f.router, http.MethodPost, "/offers/"+waiting.ID+"/send", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for compliance failure, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "compliance_failed" {
		t.Fatalf("expected compliance_failed, got %+v", env.Error)
	}

	// The offer is untouched.
	rec, env = doJSON(t, f.router, http.MethodGet, "/offers/"+waiting.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var after offer.Offer
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("decode offer: %v", err)
	}
	if after.Status != offer.StatusWait || after.SentDate != nil {
		t.Fatalf("expected untouched Wait offer, got %+v", after)
	}
}

func TestAcceptClientMismatch(t *testing.T) {
	f := newOfferFixture(t)
	waiting := f.seedWaitingOffer(t, "CLI-001", "PROD-002")

	rec, _ := doJSON(t, f.router, http.MethodPost, "/offers/"+waiting.ID+"/send", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, env := doJSON(t, f.router, http.MethodPost, "/offers/"+waiting.ID+"/accept", map[string]string{
		"clientId":      "CLI-002",
		"paymentMethod": "Bank Transfer",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client mismatch, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "client_mismatch" {
		t.Fatalf("expected client_mismatch, got %+v", env.Error)
	}
}

func TestDeleteRejectsOffer(t *testing.T) {
	f := newOfferFixture(t)
	waiting := f.seedWaitingOffer(t, "CLI-001", "PROD-002")

	rec, env := doJSON(t, f.router, http.MethodDelete, "/offers/"+waiting.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var rejected offer.Offer
	if err := json.Unmarshal(env.Data, &rejected); err != nil {
		t.Fatalf("decode offer: %v", err)
	}
	if rejected.Status != offer.StatusRejected {
		t.Fatalf("expected Rejected, got %s", rejected.Status)
	}
}

func TestListOffersWithFilter(t *testing.T) {
	f := newOfferFixture(t)
	f.seedWaitingOffer(t, "CLI-001", "PROD-002")

	rec, env := doJSON(t, f.router, http.MethodGet, "/offers?clientId=CLI-001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.Total == nil || *env.Total != 1 {
		t.Fatalf("expected total 1, got %v", env.Total)
	}

	rec, env = doJSON(t, f.router, http.MethodGet, "/offers?clientId=CLI-002", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.Total == nil || *env.Total != 0 {
		t.Fatalf("expected total 0, got %v", env.Total)
	}
}

func TestCreateOfferManually(t *testing.T) {
	f := newOfferFixture(t)

	rec, env := doJSON(t, f.router, http.MethodPost, "/offers", map[string]any{
		"clientId":          "CLI-002",
		"productId":         "PROD-003",
		"investmentAmount":  100000,
		"expectedReturn":    "6.5% p.a.",
		"kycStatus":         "Pass",
		"suitabilityStatus": "Pass",
		"createdBy":         "EMP-002",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created offer.Offer
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode offer: %v", err)
	}
	if created.Status != offer.StatusProposal {
		t.Fatalf("expected Proposal default, got %s", created.Status)
	}
	if created.KYCStatus != suitability.Pass {
		t.Fatalf("expected caller-supplied KYC fact, got %s", created.KYCStatus)
	}
}

func TestGetUnknownOffer(t *testing.T) {
	f := newOfferFixture(t)

	rec, env := doJSON(t, f.router, http.MethodGet, "/offers/OFF-20250101-001", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "not_found" {
		t.Fatalf("expected not_found, got %+v", env.Error)
	}
}
