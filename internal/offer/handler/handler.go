// Package handler exposes the offer workflow over HTTP, including the
// first-class transition endpoints for send, accept, and confirm.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"investdesk/internal/offer"
	"investdesk/pkg/platform/httputil"
	"investdesk/pkg/requestcontext"
)

// Service defines the offer operations the handler depends on.
type Service interface {
	List(ctx context.Context, filter offer.Filter) ([]offer.Offer, error)
	Get(ctx context.Context, id string) (offer.Offer, error)
	Create(ctx context.Context, req offer.CreateRequest) (offer.Offer, error)
	Update(ctx context.Context, id string, req offer.UpdateRequest) (offer.Offer, error)
	Delete(ctx context.Context, id string) (offer.Offer, error)
	SendToClient(ctx context.Context, id string) (offer.Offer, error)
	AcceptOffer(ctx context.Context, id, clientID, paymentMethod string) (offer.Offer, error)
	ConfirmOrder(ctx context.Context, id, approvedBy string) (offer.Offer, error)
}

// Handler wires offer endpoints to the offer service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an offer handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts offer endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/offers", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
		r.Post("/{id}/send", h.HandleSend)
		r.Post("/{id}/accept", h.HandleAccept)
		r.Post("/{id}/confirm", h.HandleConfirm)
	})
}

// HandleList handles GET /offers.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := offer.Filter{
		Status:    offer.Status(r.URL.Query().Get("status")),
		ClientID:  r.URL.Query().Get("clientId"),
		CreatedBy: r.URL.Query().Get("createdBy"),
	}

	offers, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if offers == nil {
		offers = []offer.Offer{}
	}
	httputil.WriteList(w, offers, len(offers))
}

// HandleCreate handles POST /offers.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[offer.CreateRequest](w, r, h.logger)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "offer creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"client_id", req.ClientID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusCreated, created)
}

// HandleGet handles GET /offers/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, found)
}

// HandleUpdate handles PUT /offers/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	req, ok := httputil.Decode[offer.UpdateRequest](w, r, h.logger)
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "offer update failed",
			"request_id", requestcontext.RequestID(ctx),
			"offer_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /offers/{id}. Deletion is a forced transition
// to Rejected, so the rejected record is returned rather than a bare OK.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, deleted, "offer rejected")
}

// HandleSend handles POST /offers/{id}/send.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	sent, err := h.service.SendToClient(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "offer send failed",
			"request_id", requestcontext.RequestID(ctx),
			"offer_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, sent, "offer sent to client")
}

// AcceptRequest is the body for POST /offers/{id}/accept.
type AcceptRequest struct {
	ClientID      string `json:"clientId"`
	PaymentMethod string `json:"paymentMethod"`
}

// HandleAccept handles POST /offers/{id}/accept.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	req, ok := httputil.Decode[AcceptRequest](w, r, h.logger)
	if !ok {
		return
	}

	accepted, err := h.service.AcceptOffer(ctx, id, req.ClientID, req.PaymentMethod)
	if err != nil {
		h.logger.ErrorContext(ctx, "offer acceptance failed",
			"request_id", requestcontext.RequestID(ctx),
			"offer_id", id,
			"client_id", req.ClientID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, accepted, "offer accepted")
}

// ConfirmRequest is the body for POST /offers/{id}/confirm.
type ConfirmRequest struct {
	ApprovedBy string `json:"approvedBy"`
}

// HandleConfirm handles POST /offers/{id}/confirm.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	req, ok := httputil.Decode[ConfirmRequest](w, r, h.logger)
	if !ok {
		return
	}

	confirmed, err := h.service.ConfirmOrder(ctx, id, req.ApprovedBy)
	if err != nil {
		h.logger.ErrorContext(ctx, "order confirmation failed",
			"request_id", requestcontext.RequestID(ctx),
			"offer_id", id,
			"approved_by", req.ApprovedBy,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, confirmed, "order confirmed")
}
