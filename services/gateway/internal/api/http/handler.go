package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/errinject"
	"github.com/shestoi/GoShopSim/platform/httperr"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/gateway/internal/service"
)

// Handler содержит HTTP-обработчики API Gateway.
// Успешный ответ downstream-сервиса отдаётся клиенту как есть,
// без переупаковки в DTO gateway
type Handler struct {
	gatewayService *service.GatewayService
	engine         *errinject.Engine
	version        string
	logger         *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(gatewayService *service.GatewayService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		gatewayService: gatewayService,
		engine:         engine,
		version:        version,
		logger:         logger,
	}
}

// DashboardDTO сводка витрины в HTTP ответе
type DashboardDTO struct {
	ActiveUsers     int     `json:"active_users"`
	OrdersToday     int     `json:"orders_today"`
	RevenueToday    float64 `json:"revenue_today"`
	PendingOrders   int     `json:"pending_orders"`
	InventoryAlerts int     `json:"inventory_alerts"`
}

// DashboardResponse тело ответа GET /api/dashboard
type DashboardResponse struct {
	Success bool         `json:"success"`
	Service string       `json:"service"`
	Data    DashboardDTO `json:"data"`
}

// RootResponse карточка сервиса для GET /
type RootResponse struct {
	Message   string   `json:"message"`
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Login обрабатывает POST /api/login - вход, проксируется в auth-service
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/login"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	body, err := decodeBody(r)
	if err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.APIGateway, httperr.KindValidation, err.Error())
		return
	}

	res := h.gatewayService.Login(r.Context(), body, observability.TraceContextFromHeaders(r.Header))
	h.respond(w, res)
}

// GetUser обрабатывает GET /api/users/{id} - профиль, проксируется в user-service
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request, userID string) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/users"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	res := h.gatewayService.GetUser(r.Context(), userID, observability.TraceContextFromHeaders(r.Header))
	h.respond(w, res)
}

// UpdateUser обрабатывает PUT /api/users/{id} - обновление профиля
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request, userID string) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/users"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	body, err := decodeBody(r)
	if err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.APIGateway, httperr.KindValidation, err.Error())
		return
	}

	res := h.gatewayService.UpdateUser(r.Context(), userID, body, observability.TraceContextFromHeaders(r.Header))
	h.respond(w, res)
}

// Checkout обрабатывает POST /api/checkout - оформление заказа
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/checkout"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	body, err := decodeBody(r)
	if err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.APIGateway, httperr.KindValidation, err.Error())
		return
	}

	res := h.gatewayService.Checkout(r.Context(), body, observability.TraceContextFromHeaders(r.Header))
	h.respond(w, res)
}

// ListOrders обрабатывает GET /api/orders - список заказов
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/orders"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	res := h.gatewayService.ListOrders(r.Context(), observability.TraceContextFromHeaders(r.Header))
	h.respond(w, res)
}

// Search обрабатывает POST /api/search - поиск по каталогу
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/search"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	body, err := decodeBody(r)
	if err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.APIGateway, httperr.KindValidation, err.Error())
		return
	}

	res := h.gatewayService.Search(r.Context(), body, observability.TraceContextFromHeaders(r.Header))
	h.respond(w, res)
}

// ListProducts обрабатывает GET /api/products - каталог товаров
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/products"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	res := h.gatewayService.ListProducts(r.Context(), observability.TraceContextFromHeaders(r.Header))
	h.respond(w, res)
}

// GetProduct обрабатывает GET /api/products/{id} - карточка товара
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, productID string) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/products"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	res := h.gatewayService.GetProduct(r.Context(), productID, observability.TraceContextFromHeaders(r.Header))
	h.respond(w, res)
}

// Dashboard обрабатывает GET /api/dashboard - сводка витрины
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.APIGateway, "/api/dashboard"); ok {
		httperr.WriteInjection(w, topology.APIGateway, inj)
		return
	}

	data := h.gatewayService.GetDashboard(r.Context())
	writeJSON(w, http.StatusOK, DashboardResponse{
		Success: true,
		Service: topology.APIGateway,
		Data: DashboardDTO{
			ActiveUsers:     data.ActiveUsers,
			OrdersToday:     data.OrdersToday,
			RevenueToday:    data.RevenueToday,
			PendingOrders:   data.PendingOrders,
			InventoryAlerts: data.InventoryAlerts,
		},
	})
}

// Root обрабатывает GET / - карточка сервиса
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "GoShopSim Observability Demo - API Gateway",
		Service: topology.APIGateway,
		Version: h.version,
		Endpoints: []string{
			"/api/health",
			"/api/login",
			"/api/users/{id}",
			"/api/checkout",
			"/api/orders",
			"/api/search",
			"/api/products",
			"/api/dashboard",
		},
	})
}

// respond возвращает клиенту исход downstream-вызова.
// Успех проксируется телом и статусом downstream-ответа. Envelope
// инъекции проходит насквозь со своим статусом и сервисом-источником,
// транспортный отказ отдаётся как 502 от имени gateway
func (h *Handler) respond(w http.ResponseWriter, res downstream.Result) {
	if res.OK() {
		status := res.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		writeJSON(w, status, res.Payload)
		return
	}
	httperr.WriteDownstream(w, topology.APIGateway, res)
}

// decodeBody декодирует JSON тело запроса в свободную форму:
// gateway передаёт его downstream-сервису без знания схемы.
// Пустое тело не ошибка
func decodeBody(r *http.Request) (map[string]any, error) {
	var body map[string]any
	err := json.NewDecoder(r.Body).Decode(&body)
	if err == nil || errors.Is(err, io.EOF) {
		return body, nil
	}
	return nil, fmt.Errorf("invalid JSON body: %v", err)
}

// writeJSON пишет успешный JSON ответ
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
