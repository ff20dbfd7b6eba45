package httpapi

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/GoShopSim/platform/health/http"
	platformobservability "github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"
)

// NewRouter создаёт и настраивает HTTP роутер для Analytics Service
// readiness - функция для проверки готовности сервиса.
// logger используется для observability HTTP middleware (trace_id в логах).
func NewRouter(handler *Handler, version string, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware(topology.AnalyticsService, logger))
	}

	router.Get("/", handler.Root)
	router.Post("/track", handler.Track)
	router.Post("/events", handler.TrackBatch)
	router.Post("/pageview", handler.TrackPageview)
	router.Get("/metrics", handler.Metrics)
	router.Get("/funnel", handler.Funnel)

	router.Get("/health", platformhealth.Handler(topology.AnalyticsService, version, readiness))

	return router
}
