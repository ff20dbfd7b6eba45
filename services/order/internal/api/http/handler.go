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
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/order/internal/repository"
	"github.com/shestoi/GoShopSim/services/order/internal/service"
)

// Handler содержит HTTP-обработчики Order Service
// Зависит от service слоя и движка инъекций, но не знает о деталях
// реализации (HTTP клиенты, хранилище и т.д.)
type Handler struct {
	orderService *service.OrderService
	engine       *errinject.Engine
	version      string
	logger       *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(orderService *service.OrderService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		orderService: orderService,
		engine:       engine,
		version:      version,
		logger:       logger,
	}
}

// ItemDTO товар в HTTP запросе/ответе
type ItemDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CheckoutRequest тело POST /checkout. Оба поля опциональны:
// демо-стенд дозаполняет их случайными значениями
type CheckoutRequest struct {
	User  *personas.Persona `json:"user"`
	Items []ItemDTO         `json:"items"`
}

// OrderDTO заказ в HTTP ответе
type OrderDTO struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	Items     []ItemDTO        `json:"items"`
	Total     float64          `json:"total"`
	User      personas.Persona `json:"user"`
	CreatedAt string           `json:"created_at,omitempty"`
}

// CheckoutResponse тело успешного ответа POST /checkout
type CheckoutResponse struct {
	Success bool     `json:"success"`
	Service string   `json:"service"`
	Order   OrderDTO `json:"order"`
}

// OrdersResponse тело ответа GET /orders
type OrdersResponse struct {
	Success bool       `json:"success"`
	Service string     `json:"service"`
	Orders  []OrderDTO `json:"orders"`
}

// OrderResponse тело ответа GET /orders/{id}
type OrderResponse struct {
	Success bool     `json:"success"`
	Service string   `json:"service"`
	Order   OrderDTO `json:"order"`
}

// RootResponse карточка сервиса для GET /
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Checkout обрабатывает POST /checkout - оформление заказа
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.OrderService, "/checkout"); ok {
		httperr.WriteInjection(w, topology.OrderService, inj)
		return
	}

	var req CheckoutRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.OrderService, httperr.KindValidation, err.Error())
		return
	}

	input := service.CheckoutInput{
		Trace: observability.TraceContextFromHeaders(r.Header),
	}
	if req.User != nil {
		input.User = *req.User
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, repository.Item{
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
		})
	}

	result, err := h.orderService.Checkout(r.Context(), input)
	if err != nil {
		observability.L(r.Context(), h.logger).Error("checkout failed", zap.Error(err))
		httperr.Write(w, http.StatusInternalServerError, topology.OrderService, "InternalError", err.Error())
		return
	}
	if result.Failed != nil {
		httperr.WriteDownstream(w, topology.OrderService, result.Failed.Result)
		return
	}

	writeJSON(w, http.StatusOK, CheckoutResponse{
		Success: true,
		Service: topology.OrderService,
		Order:   orderDTO(result.Order),
	})
}

// ListOrders обрабатывает GET /orders - список недавних заказов
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.OrderService, "/orders"); ok {
		httperr.WriteInjection(w, topology.OrderService, inj)
		return
	}

	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.OrderService, "InternalError", err.Error())
		return
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dto := orderDTO(order)
		dto.CreatedAt = order.CreatedAt
		dtos = append(dtos, dto)
	}

	writeJSON(w, http.StatusOK, OrdersResponse{
		Success: true,
		Service: topology.OrderService,
		Orders:  dtos,
	})
}

// GetOrder обрабатывает GET /orders/{id} - детали заказа
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, id string) {
	if inj, ok := h.engine.Evaluate(topology.OrderService, "/orders"); ok {
		httperr.WriteInjection(w, topology.OrderService, inj)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.OrderService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, OrderResponse{
		Success: true,
		Service: topology.OrderService,
		Order:   orderDTO(order),
	})
}

// Root обрабатывает GET / - карточка сервиса
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   topology.OrderService,
		Version:   h.version,
		Endpoints: []string{"/health", "/checkout", "/orders", "/orders/{id}"},
	})
}

// orderDTO преобразует доменную модель в HTTP DTO.
// CreatedAt не заполняется: он нужен только в списке заказов
func orderDTO(order repository.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemDTO{
			ID:    item.ProductID,
			Name:  item.Name,
			Price: item.Price,
		})
	}
	return OrderDTO{
		ID:     order.ID,
		Status: order.Status,
		Items:  items,
		Total:  order.Total,
		User:   order.User,
	}
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
