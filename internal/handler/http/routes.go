package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)

	// sales
	router.Post("/api/sales", h.createSale)
	router.Get("/api/sales", h.listSales)

	// sync engine
	router.Get("/api/sync/stats", h.getSyncStats)
	router.Post("/api/sync/recover", h.forceRecovery)
	router.Post("/api/sync/trigger", h.triggerSync)
	router.Post("/api/sync/wake", h.wake)
	router.Put("/api/connectivity", h.setConnectivity)

	// catalog
	router.Get("/api/catalog/barcode/{code}", h.findByBarcode)
	router.Get("/api/catalog/search", h.searchCatalog)
	router.Post("/api/catalog/refresh", h.refreshCatalog)

	// preferences
	router.Get("/api/preferences", h.getPreferences)
	router.Put("/api/preferences", h.putPreferences)

	router.Get("/api/version", h.getVersion)

	if h.metrics != nil {
		router.Handle("/metrics", h.metrics.Handler())
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
