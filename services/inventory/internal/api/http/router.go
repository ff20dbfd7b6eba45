package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/GoShopSim/platform/health/http"
	platformobservability "github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"
)

// NewRouter создаёт и настраивает HTTP роутер для Inventory Service
// readiness - функция для проверки готовности сервиса.
// logger используется для observability HTTP middleware (trace_id в логах).
func NewRouter(handler *Handler, version string, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware(topology.InventoryService, logger))
	}

	router.Get("/", handler.Root)
	router.Get("/products", handler.ListProducts)
	router.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		handler.GetProduct(w, r, chi.URLParam(r, "id"))
	})
	router.Post("/check", handler.CheckStock)
	router.Post("/reserve", handler.Reserve)
	router.Post("/release", handler.Release)

	router.Get("/health", platformhealth.Handler(topology.InventoryService, version, readiness))

	return router
}
