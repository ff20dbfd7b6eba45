package http

import (
	"encoding/json"
	"net/http"
)

// Handler возвращает HTTP handler для health check endpoint.
// Отдаёт 200 OK с телом {"status":"healthy","service":...,"version":...}
// если readiness функция не указана или возвращает true.
// Возвращает 503 Service Unavailable если readiness указана и возвращает false.
// Health никогда не проходит через движок инъекций: liveness должен быть честным
func Handler(service, version string, readiness func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if readiness != nil && !readiness() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "not ready",
				"service": service,
				"version": version,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": service,
			"version": version,
		})
	}
}
