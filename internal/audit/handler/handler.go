// Package handler exposes the audit trail over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"investdesk/internal/audit"
	"investdesk/pkg/platform/httputil"
)

// Trail defines the audit lookups the handler depends on.
type Trail interface {
	ByEntityID(ctx context.Context, entityID string) ([]audit.Event, error)
}

// Handler serves audit trail lookups.
type Handler struct {
	trail Trail
}

// New constructs an audit handler.
func New(trail Trail) *Handler {
	return &Handler{trail: trail}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/{entityId}", h.HandleByEntity)
}

// HandleByEntity handles GET /audit/{entityId}, returning the workflow events
// recorded for one inquiry or offer, oldest first.
func (h *Handler) HandleByEntity(w http.ResponseWriter, r *http.Request) {
	events, err := h.trail.ByEntityID(r.Context(), chi.URLParam(r, "entityId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteList(w, events, len(events))
}
