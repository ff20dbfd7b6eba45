package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/GoShopSim/platform/health/http"
	platformobservability "github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"
)

// NewRouter создаёт и настраивает HTTP роутер для API Gateway
// readiness - функция для проверки готовности сервиса.
// logger используется для observability HTTP middleware (trace_id в логах).
func NewRouter(handler *Handler, version string, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware(topology.APIGateway, logger))
	}

	router.Get("/", handler.Root)
	router.Post("/api/login", handler.Login)
	router.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		handler.GetUser(w, r, chi.URLParam(r, "id"))
	})
	router.Put("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		handler.UpdateUser(w, r, chi.URLParam(r, "id"))
	})
	router.Post("/api/checkout", handler.Checkout)
	router.Get("/api/orders", handler.ListOrders)
	router.Post("/api/search", handler.Search)
	router.Get("/api/products", handler.ListProducts)
	router.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		handler.GetProduct(w, r, chi.URLParam(r, "id"))
	})
	router.Get("/api/dashboard", handler.Dashboard)

	router.Get("/api/health", platformhealth.Handler(topology.APIGateway, version, readiness))

	return router
}
