// Package handler exposes the suitability checks over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"investdesk/internal/refdata"
	"investdesk/internal/suitability"
	domainerrors "investdesk/pkg/domain-errors"
	"investdesk/pkg/platform/httputil"
)

// Service defines the suitability operations the handler depends on.
type Service interface {
	CheckSuitability(ctx context.Context, clientID, productID string) (suitability.CheckResult, error)
	InvestmentGroup(ctx context.Context, clientID string) (refdata.InvestmentGroup, error)
}

// Handler wires suitability endpoints to the check engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a suitability handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts suitability endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/suitability", func(r chi.Router) {
		r.Get("/check", h.HandleCheck)
		r.Get("/investment-group/{clientId}", h.HandleInvestmentGroup)
	})
}

// HandleCheck handles GET /suitability/check?clientId=...&productId=...
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	productID := r.URL.Query().Get("productId")
	if clientID == "" || productID == "" {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest,
			"both clientId and productId are required"))
		return
	}

	result, err := h.service.CheckSuitability(r.Context(), clientID, productID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "suitability check failed",
			"client_id", clientID,
			"product_id", productID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}

// GroupResponse is the body for the investment-group lookup.
type GroupResponse struct {
	ClientID        string                  `json:"clientId"`
	InvestmentGroup refdata.InvestmentGroup `json:"investmentGroup"`
	AllowedRisks    []refdata.RiskLevel     `json:"allowedRiskLevels"`
}

// HandleInvestmentGroup handles GET /suitability/investment-group/{clientId}.
func (h *Handler) HandleInvestmentGroup(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	group, err := h.service.InvestmentGroup(r.Context(), clientID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, GroupResponse{
		ClientID:        clientID,
		InvestmentGroup: group,
		AllowedRisks:    group.AllowedRisks(),
	})
}
