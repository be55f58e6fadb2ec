// Package handler exposes investment profile maintenance over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"investdesk/internal/profile"
	"investdesk/internal/refdata"
	"investdesk/pkg/platform/httputil"
)

// Service defines the profile operations the handler depends on.
type Service interface {
	List(ctx context.Context) ([]refdata.InvestmentProfile, error)
	ByClient(ctx context.Context, clientID string) (refdata.InvestmentProfile, error)
	Update(ctx context.Context, clientID string, req profile.UpdateRequest) (refdata.InvestmentProfile, error)
}

// Handler wires profile endpoints to the profile service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a profile handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts profile endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/customer-profiles", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/{clientId}", h.HandleGet)
		r.Put("/{clientId}", h.HandleUpdate)
	})
}

// HandleList handles GET /customer-profiles.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if profiles == nil {
		profiles = []refdata.InvestmentProfile{}
	}
	httputil.WriteList(w, profiles, len(profiles))
}

// HandleGet handles GET /customer-profiles/{clientId}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.ByClient(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, found)
}

// HandleUpdate handles PUT /customer-profiles/{clientId}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := chi.URLParam(r, "clientId")

	req, ok := httputil.Decode[profile.UpdateRequest](w, r, h.logger)
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, clientID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "profile update failed",
			"client_id", clientID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, updated)
}
