package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	router.Group(func(r chi.Router) {
		r.Use(h.withTraceID, h.withLogging)

		r.Get("/api/sync/status", h.getStatus)
		r.Get("/api/sync/state", h.getState)
		r.Post("/api/sync/full-sync", h.requestFullSync)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
