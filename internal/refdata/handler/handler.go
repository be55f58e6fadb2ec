// Package handler exposes the read-only reference collections over HTTP.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"investdesk/internal/refdata"
	"investdesk/pkg/platform/httputil"
)

// Handler serves the reference catalog.
type Handler struct {
	catalog *refdata.Catalog
}

// New constructs a reference data handler.
func New(catalog *refdata.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// Register mounts reference data endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/clients", h.HandleClients)
	r.Get("/products", h.HandleProducts)
	r.Get("/employees", h.HandleEmployees)
	r.Get("/templates", h.HandleTemplates)
	r.Get("/investments", h.HandleInvestments)
}

// HandleClients handles GET /clients.
func (h *Handler) HandleClients(w http.ResponseWriter, _ *http.Request) {
	clients := h.catalog.Clients()
	httputil.WriteList(w, clients, len(clients))
}

// HandleProducts handles GET /products.
func (h *Handler) HandleProducts(w http.ResponseWriter, _ *http.Request) {
	products := h.catalog.Products()
	httputil.WriteList(w, products, len(products))
}

// HandleEmployees handles GET /employees.
func (h *Handler) HandleEmployees(w http.ResponseWriter, _ *http.Request) {
	employees := h.catalog.Employees()
	httputil.WriteList(w, employees, len(employees))
}

// HandleTemplates handles GET /templates.
func (h *Handler) HandleTemplates(w http.ResponseWriter, _ *http.Request) {
	templates := h.catalog.Templates()
	httputil.WriteList(w, templates, len(templates))
}

// HandleInvestments handles GET /investments. These are the seed profiles as
// shipped; live, operator-maintained profiles are under /customer-profiles.
func (h *Handler) HandleInvestments(w http.ResponseWriter, _ *http.Request) {
	profiles := h.catalog.Profiles()
	httputil.WriteList(w, profiles, len(profiles))
}
