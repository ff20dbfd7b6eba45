package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/errinject"
	"github.com/shestoi/GoShopSim/platform/httperr"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/analytics/internal/service"
)

// Handler содержит HTTP-обработчики Analytics Service
type Handler struct {
	analyticsService *service.AnalyticsService
	engine           *errinject.Engine
	version          string
	logger           *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(analyticsService *service.AnalyticsService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		analyticsService: analyticsService,
		engine:           engine,
		version:          version,
		logger:           logger,
	}
}

// EventDTO отслеженное событие в HTTP ответе
type EventDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UserKey   string  `json:"user_key"`
	Timestamp float64 `json:"timestamp"`
}

// TrackResponse тело ответа POST /track
type TrackResponse struct {
	Success bool     `json:"success"`
	Service string   `json:"service"`
	Event   EventDTO `json:"event"`
}

// BatchResponse тело ответа POST /events
type BatchResponse struct {
	Success   bool   `json:"success"`
	Service   string `json:"service"`
	Processed int    `json:"processed"`
}

// PageviewDTO просмотр страницы в HTTP ответе
type PageviewDTO struct {
	Page      string  `json:"page"`
	UserKey   string  `json:"user_key"`
	Timestamp float64 `json:"timestamp"`
}

// PageviewResponse тело ответа POST /pageview
type PageviewResponse struct {
	Success  bool        `json:"success"`
	Service  string      `json:"service"`
	Pageview PageviewDTO `json:"pageview"`
}

// TopEventDTO событие в топе метрик
type TopEventDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MetricsDTO агрегированные метрики в HTTP ответе
type MetricsDTO struct {
	DailyActiveUsers   int           `json:"daily_active_users"`
	SessionsToday      int           `json:"sessions_today"`
	AvgSessionDuration int           `json:"avg_session_duration"`
	ConversionRate     float64       `json:"conversion_rate"`
	BounceRate         float64       `json:"bounce_rate"`
	PageViewsToday     int           `json:"page_views_today"`
	EventsTrackedToday int           `json:"events_tracked_today"`
	TopEvents          []TopEventDTO `json:"top_events"`
}

// MetricsResponse тело ответа GET /metrics
type MetricsResponse struct {
	Success bool       `json:"success"`
	Service string     `json:"service"`
	Metrics MetricsDTO `json:"metrics"`
	Period  string     `json:"period"`
}

// FunnelStepDTO шаг воронки в HTTP ответе
type FunnelStepDTO struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// FunnelDTO воронка покупки в HTTP ответе
type FunnelDTO struct {
	Name              string          `json:"name"`
	Steps             []FunnelStepDTO `json:"steps"`
	OverallConversion float64         `json:"overall_conversion"`
}

// FunnelResponse тело ответа GET /funnel
type FunnelResponse struct {
	Success bool      `json:"success"`
	Service string    `json:"service"`
	Funnel  FunnelDTO `json:"funnel"`
}

// RootResponse тело ответа корневого эндпоинта
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Track обрабатывает POST /track - одно событие
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.AnalyticsService, "/track"); ok {
		httperr.WriteInjection(w, topology.AnalyticsService, inj)
		return
	}

	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.AnalyticsService, httperr.KindValidation, err.Error())
		return
	}

	properties, _ := body["properties"].(map[string]any)
	event, err := h.analyticsService.Track(r.Context(), service.TrackInput{
		Name:       stringField(body, "event"),
		UserKey:    eventUserKey(body),
		Properties: properties,
	})
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.AnalyticsService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, TrackResponse{
		Success: true,
		Service: topology.AnalyticsService,
		Event: EventDTO{
			ID:        event.ID,
			Name:      event.Name,
			UserKey:   event.UserKey,
			Timestamp: event.Timestamp,
		},
	})
}

// TrackBatch обрабатывает POST /events - пачка событий
func (h *Handler) TrackBatch(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.AnalyticsService, "/events"); ok {
		httperr.WriteInjection(w, topology.AnalyticsService, inj)
		return
	}

	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.AnalyticsService, httperr.KindValidation, err.Error())
		return
	}

	processed, err := h.analyticsService.TrackBatch(r.Context(), batchInputs(body))
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.AnalyticsService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, BatchResponse{
		Success:   true,
		Service:   topology.AnalyticsService,
		Processed: processed,
	})
}

// TrackPageview обрабатывает POST /pageview
func (h *Handler) TrackPageview(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.AnalyticsService, httperr.KindValidation, err.Error())
		return
	}

	pageview, err := h.analyticsService.TrackPageview(r.Context(), service.PageviewInput{
		Page:     stringField(body, "page"),
		UserKey:  stringField(body, "user_key"),
		Referrer: stringField(body, "referrer"),
	})
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.AnalyticsService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, PageviewResponse{
		Success: true,
		Service: topology.AnalyticsService,
		Pageview: PageviewDTO{
			Page:      pageview.Page,
			UserKey:   pageview.UserKey,
			Timestamp: pageview.Timestamp,
		},
	})
}

// Metrics обрабатывает GET /metrics - агрегированные метрики за день
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.analyticsService.Metrics(r.Context())
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.AnalyticsService, "InternalError", err.Error())
		return
	}

	topEvents := make([]TopEventDTO, 0, len(metrics.TopEvents))
	for _, top := range metrics.TopEvents {
		topEvents = append(topEvents, TopEventDTO{Name: top.Name, Count: top.Count})
	}

	writeJSON(w, http.StatusOK, MetricsResponse{
		Success: true,
		Service: topology.AnalyticsService,
		Metrics: MetricsDTO{
			DailyActiveUsers:   metrics.DailyActiveUsers,
			SessionsToday:      metrics.SessionsToday,
			AvgSessionDuration: metrics.AvgSessionDuration,
			ConversionRate:     metrics.ConversionRate,
			BounceRate:         metrics.BounceRate,
			PageViewsToday:     metrics.PageViewsToday,
			EventsTrackedToday: metrics.EventsTrackedToday,
			TopEvents:          topEvents,
		},
		Period: "today",
	})
}

// Funnel обрабатывает GET /funnel - воронка покупки
func (h *Handler) Funnel(w http.ResponseWriter, r *http.Request) {
	funnel := h.analyticsService.Funnel(r.Context())

	steps := make([]FunnelStepDTO, 0, len(funnel.Steps))
	for _, step := range funnel.Steps {
		steps = append(steps, FunnelStepDTO{Name: step.Name, Count: step.Count, Rate: step.Rate})
	}

	writeJSON(w, http.StatusOK, FunnelResponse{
		Success: true,
		Service: topology.AnalyticsService,
		Funnel: FunnelDTO{
			Name:              funnel.Name,
			Steps:             steps,
			OverallConversion: funnel.OverallConversion,
		},
	})
}

// Root обрабатывает корневой эндпоинт - краткая информация о сервисе
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   topology.AnalyticsService,
		Version:   h.version,
		Endpoints: []string{"/health", "/track", "/events", "/pageview", "/metrics", "/funnel"},
	})
}

// stringField достаёт строковое поле из JSON тела
func stringField(body map[string]any, key string) string {
	value, _ := body[key].(string)
	return value
}

// eventUserKey достаёт ключ пользователя: сперва user_key, потом user.key
func eventUserKey(body map[string]any) string {
	if key, _ := body["user_key"].(string); key != "" {
		return key
	}
	user, _ := body["user"].(map[string]any)
	key, _ := user["key"].(string)
	return key
}

// batchInputs разбирает элементы events в события для сервиса.
// Кривой элемент не валит пачку: он станет unknown_event
func batchInputs(body map[string]any) []service.TrackInput {
	raw, _ := body["events"].([]any)
	inputs := make([]service.TrackInput, 0, len(raw))
	for _, item := range raw {
		event, _ := item.(map[string]any)
		inputs = append(inputs, service.TrackInput{
			Name:    stringField(event, "event"),
			UserKey: eventUserKey(event),
		})
	}
	return inputs
}

// decodeBody декодирует JSON тело запроса. Пустое тело не ошибка:
// все поля запросов демо-стенда опциональны
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("invalid JSON body: %v", err)
}

// writeJSON пишет успешный JSON ответ
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
