// Package httptransport assembles the HTTP surface: middleware chain, the
// /api mount with every domain handler, and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"investdesk/internal/platform/middleware"
	domainerrors "investdesk/pkg/domain-errors"
	"investdesk/pkg/platform/httputil"
)

// Registrar is anything that can mount its routes on a chi router. Every
// domain handler satisfies it.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the middleware chain and mounts all handlers under /api.
func NewRouter(logger *slog.Logger, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Actor)
	r.Use(middleware.Logging(logger))

	r.Route("/api", func(api chi.Router) {
		for _, h := range handlers {
			h.Register(api)
		}
		api.Get("/health", handleHealth)
	})

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, domainerrors.Newf(domainerrors.CodeNotFound, "route not found: %s", r.URL.Path))
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}
