package httpapi

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/GoShopSim/platform/health/http"
	platformobservability "github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"
)

// NewRouter создаёт и настраивает HTTP роутер для Notification Service
// readiness - функция для проверки готовности сервиса.
// logger используется для observability HTTP middleware (trace_id в логах).
func NewRouter(handler *Handler, version string, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware(topology.NotificationService, logger))
	}

	router.Get("/", handler.Root)
	router.Post("/send", handler.Send)
	router.Post("/email", handler.SendEmail)
	router.Post("/push", handler.SendPush)
	router.Post("/sms", handler.SendSMS)
	router.Get("/templates", handler.Templates)

	router.Get("/health", platformhealth.Handler(topology.NotificationService, version, readiness))

	return router
}
