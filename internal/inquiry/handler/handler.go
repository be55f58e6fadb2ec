// Package handler exposes the inquiry workflow over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"investdesk/internal/inquiry"
	"investdesk/internal/offer"
	"investdesk/pkg/platform/httputil"
	"investdesk/pkg/requestcontext"
)

// Service defines the inquiry operations the handler depends on.
type Service interface {
	List(ctx context.Context, filter inquiry.Filter) ([]inquiry.Inquiry, error)
	Get(ctx context.Context, id string) (inquiry.Inquiry, error)
	Create(ctx context.Context, req inquiry.CreateRequest) (inquiry.Inquiry, error)
	Update(ctx context.Context, id string, req inquiry.UpdateRequest) (inquiry.Inquiry, error)
	Delete(ctx context.Context, id string) error
	Convert(ctx context.Context, id string) (offer.Offer, error)
}

// Handler wires inquiry endpoints to the inquiry service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an inquiry handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts inquiry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/inquiries", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
		r.Post("/{id}/convert", h.HandleConvert)
	})
}

// HandleList handles GET /inquiries.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := inquiry.Filter{
		Status:   inquiry.Status(r.URL.Query().Get("status")),
		ClientID: r.URL.Query().Get("clientId"),
		Source:   inquiry.Source(r.URL.Query().Get("source")),
	}

	inquiries, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if inquiries == nil {
		inquiries = []inquiry.Inquiry{}
	}
	httputil.WriteList(w, inquiries, len(inquiries))
}

// HandleCreate handles POST /inquiries.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[inquiry.CreateRequest](w, r, h.logger)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "inquiry creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"client_id", req.ClientID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusCreated, created)
}

// HandleGet handles GET /inquiries/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, found)
}

// HandleUpdate handles PUT /inquiries/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	req, ok := httputil.Decode[inquiry.UpdateRequest](w, r, h.logger)
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "inquiry update failed",
			"request_id", requestcontext.RequestID(ctx),
			"inquiry_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /inquiries/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, nil, "inquiry deleted")
}

// HandleConvert handles POST /inquiries/{id}/convert.
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	converted, err := h.service.Convert(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "inquiry conversion failed",
			"request_id", requestcontext.RequestID(ctx),
			"inquiry_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, converted, "inquiry converted to offer")
}
