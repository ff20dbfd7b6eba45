package service

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"
)

// GatewayService содержит логику единой точки входа витрины: каждый
// публичный маршрут проксируется ровно в один внутренний сервис.
// Исход вызова не интерпретируется, он возвращается наверх как есть
type GatewayService struct {
	forwarder Forwarder
	logger    *zap.Logger
}

// NewGatewayService создаёт новый экземпляр GatewayService
func NewGatewayService(forwarder Forwarder, logger *zap.Logger) *GatewayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GatewayService{
		forwarder: forwarder,
		logger:    logger,
	}
}

// Dashboard сводка витрины для админ-панели. Демо-стенд отдаёт
// фиксированные числа
type Dashboard struct {
	ActiveUsers     int
	OrdersToday     int
	RevenueToday    float64
	PendingOrders   int
	InventoryAlerts int
}

// Login подставляет в тело запроса случайную персону и передаёт его
// в auth-service. Витрина не держит реальных пользователей, поэтому
// поле user клиента всегда перезаписывается
func (s *GatewayService) Login(ctx context.Context, body map[string]any, tc observability.TraceContext) downstream.Result {
	user := personas.Random()
	body = withUser(body, user)

	observability.L(ctx, s.logger).Info("Login request",
		zap.String("user_email", user.Email))

	return s.forwarder.Call(ctx, topology.AuthService, "/login", http.MethodPost, body, tc)
}

// GetUser запрашивает профиль пользователя у user-service
func (s *GatewayService) GetUser(ctx context.Context, userID string, tc observability.TraceContext) downstream.Result {
	observability.L(ctx, s.logger).Info("Fetching user profile",
		zap.String("user_id", userID))

	return s.forwarder.Call(ctx, topology.UserService, "/users/"+userID, http.MethodGet, nil, tc)
}

// UpdateUser передаёт обновление профиля в user-service
func (s *GatewayService) UpdateUser(ctx context.Context, userID string, body map[string]any, tc observability.TraceContext) downstream.Result {
	if body == nil {
		body = map[string]any{}
	}
	observability.L(ctx, s.logger).Info("Updating user profile",
		zap.String("user_id", userID))

	return s.forwarder.Call(ctx, topology.UserService, "/users/"+userID, http.MethodPut, body, tc)
}

// Checkout подставляет случайную персону и передаёт оформление заказа
// в order-service. Состав корзины не трогается
func (s *GatewayService) Checkout(ctx context.Context, body map[string]any, tc observability.TraceContext) downstream.Result {
	user := personas.Random()
	body = withUser(body, user)

	items, _ := body["items"].([]any)
	observability.L(ctx, s.logger).Info("Checkout initiated",
		zap.String("user_email", user.Email),
		zap.Int("cart_items", len(items)))

	return s.forwarder.Call(ctx, topology.OrderService, "/checkout", http.MethodPost, body, tc)
}

// ListOrders запрашивает список недавних заказов у order-service
func (s *GatewayService) ListOrders(ctx context.Context, tc observability.TraceContext) downstream.Result {
	return s.forwarder.Call(ctx, topology.OrderService, "/orders", http.MethodGet, nil, tc)
}

// Search передаёт поисковый запрос в search-service
func (s *GatewayService) Search(ctx context.Context, body map[string]any, tc observability.TraceContext) downstream.Result {
	if body == nil {
		body = map[string]any{}
	}
	query, _ := body["query"].(string)
	observability.L(ctx, s.logger).Info("Search query",
		zap.String("query", query))

	return s.forwarder.Call(ctx, topology.SearchService, "/search", http.MethodPost, body, tc)
}

// ListProducts запрашивает каталог товаров у inventory-service
func (s *GatewayService) ListProducts(ctx context.Context, tc observability.TraceContext) downstream.Result {
	return s.forwarder.Call(ctx, topology.InventoryService, "/products", http.MethodGet, nil, tc)
}

// GetProduct запрашивает карточку товара у inventory-service
func (s *GatewayService) GetProduct(ctx context.Context, productID string, tc observability.TraceContext) downstream.Result {
	return s.forwarder.Call(ctx, topology.InventoryService, "/products/"+productID, http.MethodGet, nil, tc)
}

// GetDashboard собирает сводку витрины. Реальной агрегации по сервисам
// нет, есть имитация её длительности
func (s *GatewayService) GetDashboard(ctx context.Context) Dashboard {
	observability.L(ctx, s.logger).Info("Dashboard data requested")

	simulateWork(ctx, 100*time.Millisecond)
	return Dashboard{
		ActiveUsers:     1247,
		OrdersToday:     89,
		RevenueToday:    12450.00,
		PendingOrders:   12,
		InventoryAlerts: 3,
	}
}

// withUser перезаписывает поле user тела запроса персоной
func withUser(body map[string]any, user personas.Persona) map[string]any {
	if body == nil {
		body = map[string]any{}
	}
	body["user"] = user
	return body
}

// simulateWork имитирует полезную работу, уважая отмену контекста
func simulateWork(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
