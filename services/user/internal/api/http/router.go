package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/GoShopSim/platform/health/http"
	platformobservability "github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"
)

// NewRouter создаёт и настраивает HTTP роутер для User Service
// readiness - функция для проверки готовности сервиса.
// logger используется для observability HTTP middleware (trace_id в логах).
func NewRouter(handler *Handler, version string, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware(topology.UserService, logger))
	}

	router.Get("/", handler.Root)
	router.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		handler.GetProfile(w, r, chi.URLParam(r, "id"))
	})
	router.Put("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		handler.UpdateProfile(w, r, chi.URLParam(r, "id"))
	})
	router.Get("/users/{id}/preferences", func(w http.ResponseWriter, r *http.Request) {
		handler.GetPreferences(w, r, chi.URLParam(r, "id"))
	})
	router.Put("/users/{id}/preferences", func(w http.ResponseWriter, r *http.Request) {
		handler.UpdatePreferences(w, r, chi.URLParam(r, "id"))
	})
	router.Get("/profile", handler.CurrentProfile)

	router.Get("/health", platformhealth.Handler(topology.UserService, version, readiness))

	return router
}
