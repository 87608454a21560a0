package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Post("/compute-relay", h.computeRelay)
	router.Post("/encrypt-relay", h.encryptRelay)
	router.Get("/health-relay", h.healthRelay)
	router.Post("/pnl-relay", h.pnlRelay)
	router.Get("/prices-history", h.pricesHistory)

	return router
}
