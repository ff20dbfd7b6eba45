package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/errinject"
	"github.com/shestoi/GoShopSim/platform/httperr"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/inventory/internal/repository"
	"github.com/shestoi/GoShopSim/services/inventory/internal/service"
)

// Handler содержит HTTP-обработчики Inventory Service
type Handler struct {
	inventoryService *service.InventoryService
	engine           *errinject.Engine
	version          string
	logger           *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(inventoryService *service.InventoryService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		inventoryService: inventoryService,
		engine:           engine,
		version:          version,
		logger:           logger,
	}
}

// ProductDTO товар в HTTP ответе
type ProductDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

// ProductsResponse тело ответа GET /products
type ProductsResponse struct {
	Success  bool         `json:"success"`
	Service  string       `json:"service"`
	Products []ProductDTO `json:"products"`
}

// ProductResponse тело ответа GET /products/{id}
type ProductResponse struct {
	Success bool       `json:"success"`
	Service string     `json:"service"`
	Product ProductDTO `json:"product"`
}

// CheckItemDTO позиция запроса POST /check и POST /reserve
type CheckItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckRequest тело POST /check
type CheckRequest struct {
	Items []CheckItemDTO `json:"items"`
}

// StockCheckDTO итог проверки одной позиции
type StockCheckDTO struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	InStock   bool   `json:"in_stock"`
}

// CheckResponse тело ответа POST /check
type CheckResponse struct {
	Success      bool            `json:"success"`
	Service      string          `json:"service"`
	AllAvailable bool            `json:"all_available"`
	Items        []StockCheckDTO `json:"items"`
}

// ReserveRequest тело POST /reserve
type ReserveRequest struct {
	OrderID string         `json:"order_id"`
	Items   []CheckItemDTO `json:"items"`
}

// ReservationDTO резервация в HTTP ответе
type ReservationDTO struct {
	ID        string         `json:"id"`
	OrderID   string         `json:"order_id"`
	Items     []CheckItemDTO `json:"items"`
	Status    string         `json:"status"`
	ExpiresAt string         `json:"expires_at"`
}

// ReserveResponse тело ответа POST /reserve
type ReserveResponse struct {
	Success     bool           `json:"success"`
	Service     string         `json:"service"`
	Reservation ReservationDTO `json:"reservation"`
}

// ReleaseRequest тело POST /release
type ReleaseRequest struct {
	ReservationID string `json:"reservation_id"`
}

// ReleaseResponse тело ответа POST /release
type ReleaseResponse struct {
	Success bool   `json:"success"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// RootResponse карточка сервиса для GET /
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// ListProducts обрабатывает GET /products - каталог товаров
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.InventoryService, "/products"); ok {
		httperr.WriteInjection(w, topology.InventoryService, inj)
		return
	}

	products, err := h.inventoryService.ListProducts(r.Context())
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.InventoryService, "InternalError", err.Error())
		return
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, productDTO(p))
	}

	writeJSON(w, http.StatusOK, ProductsResponse{
		Success:  true,
		Service:  topology.InventoryService,
		Products: dtos,
	})
}

// GetProduct обрабатывает GET /products/{id} - карточка товара
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, productID string) {
	if inj, ok := h.engine.Evaluate(topology.InventoryService, "/products"); ok {
		httperr.WriteInjection(w, topology.InventoryService, inj)
		return
	}

	product, err := h.inventoryService.GetProduct(r.Context(), productID)
	if errors.Is(err, repository.ErrNotFound) {
		httperr.Write(w, http.StatusNotFound, topology.InventoryService, "ProductNotFound",
			fmt.Sprintf("Product %s not found", productID))
		return
	}
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.InventoryService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{
		Success: true,
		Service: topology.InventoryService,
		Product: productDTO(product),
	})
}

// CheckStock обрабатывает POST /check - проверка наличия
func (h *Handler) CheckStock(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.InventoryService, "/check"); ok {
		httperr.WriteInjection(w, topology.InventoryService, inj)
		return
	}

	var req CheckRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.InventoryService, httperr.KindValidation, err.Error())
		return
	}

	items := make([]service.CheckItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	result, err := h.inventoryService.CheckStock(r.Context(), items)
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.InventoryService, "InternalError", err.Error())
		return
	}

	dtos := make([]StockCheckDTO, 0, len(result.Items))
	for _, check := range result.Items {
		dtos = append(dtos, StockCheckDTO{
			ProductID: check.ProductID,
			Requested: check.Requested,
			Available: check.Available,
			InStock:   check.InStock,
		})
	}

	writeJSON(w, http.StatusOK, CheckResponse{
		Success:      true,
		Service:      topology.InventoryService,
		AllAvailable: result.AllAvailable,
		Items:        dtos,
	})
}

// Reserve обрабатывает POST /reserve - резервация товара под заказ
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.InventoryService, "/reserve"); ok {
		httperr.WriteInjection(w, topology.InventoryService, inj)
		return
	}

	var req ReserveRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.InventoryService, httperr.KindValidation, err.Error())
		return
	}

	input := service.ReserveInput{
		OrderID: req.OrderID,
		Trace:   observability.TraceContextFromHeaders(r.Header),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, repository.ReserveItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	reservation, err := h.inventoryService.Reserve(r.Context(), input)
	if err != nil {
		observability.L(r.Context(), h.logger).Error("reserve failed", zap.Error(err))
		httperr.Write(w, http.StatusInternalServerError, topology.InventoryService, "InternalError", err.Error())
		return
	}

	items := make([]CheckItemDTO, 0, len(reservation.Items))
	for _, item := range reservation.Items {
		items = append(items, CheckItemDTO{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	writeJSON(w, http.StatusOK, ReserveResponse{
		Success: true,
		Service: topology.InventoryService,
		Reservation: ReservationDTO{
			ID:        reservation.ID,
			OrderID:   reservation.OrderID,
			Items:     items,
			Status:    reservation.Status,
			ExpiresAt: reservation.ExpiresAt.Format(time.RFC3339),
		},
	})
}

// Release обрабатывает POST /release - снятие резервации
func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	var req ReleaseRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.InventoryService, httperr.KindValidation, err.Error())
		return
	}

	if err := h.inventoryService.Release(r.Context(), req.ReservationID); err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.InventoryService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ReleaseResponse{
		Success: true,
		Service: topology.InventoryService,
		Message: fmt.Sprintf("Reservation %s released", req.ReservationID),
	})
}

// Root обрабатывает GET / - карточка сервиса
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   topology.InventoryService,
		Version:   h.version,
		Endpoints: []string{"/health", "/products", "/products/{id}", "/check", "/reserve", "/release"},
	})
}

// productDTO преобразует доменную модель в HTTP DTO
func productDTO(p repository.Product) ProductDTO {
	return ProductDTO{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		Category: p.Category,
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
