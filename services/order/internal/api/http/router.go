package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/GoShopSim/platform/health/http"
	platformobservability "github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"
)

// NewRouter создаёт и настраивает HTTP роутер для Order Service
// readiness - функция для проверки готовности сервиса.
// logger используется для observability HTTP middleware (trace_id в логах).
func NewRouter(handler *Handler, version string, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware(topology.OrderService, logger))
	}

	router.Get("/", handler.Root)
	router.Post("/checkout", handler.Checkout)
	router.Get("/orders", handler.ListOrders)
	router.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		handler.GetOrder(w, r, chi.URLParam(r, "id"))
	})

	router.Get("/health", platformhealth.Handler(topology.OrderService, version, readiness))

	return router
}
