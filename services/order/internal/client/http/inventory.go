package httpclient

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/order/internal/repository"
	"github.com/shestoi/GoShopSim/services/order/internal/service"
)

// reserveItem позиция запроса на резервирование
type reserveItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// reserveRequest тело POST /reserve
type reserveRequest struct {
	OrderID string        `json:"order_id"`
	Items   []reserveItem `json:"items"`
}

// releaseRequest тело POST /release
type releaseRequest struct {
	ReservationID string `json:"reservation_id"`
}

// InventoryClientAdapter адаптирует downstream.Client к интерфейсу
// service.InventoryClient. Это позволяет service слою не зависеть
// от HTTP деталей вызова
type InventoryClientAdapter struct {
	invoker *downstream.Client
}

// NewInventoryClient создаёт новый адаптер для Inventory клиента
func NewInventoryClient(invoker *downstream.Client) service.InventoryClient {
	return &InventoryClientAdapter{
		invoker: invoker,
	}
}

// Reserve реализует service.InventoryClient интерфейс
// Каждая позиция резервируется в количестве 1, как делает витрина
func (a *InventoryClientAdapter) Reserve(ctx context.Context, tc observability.TraceContext, orderID string, items []repository.Item) downstream.Result {
	req := reserveRequest{
		OrderID: orderID,
		Items:   make([]reserveItem, 0, len(items)),
	}
	for _, item := range items {
		req.Items = append(req.Items, reserveItem{
			ProductID: item.ProductID,
			Quantity:  1,
		})
	}

	return a.invoker.Post(ctx, topology.InventoryService, "/reserve", req, tc)
}

// Release реализует service.InventoryClient интерфейс
func (a *InventoryClientAdapter) Release(ctx context.Context, tc observability.TraceContext, reservationID string) downstream.Result {
	return a.invoker.Post(ctx, topology.InventoryService, "/release", releaseRequest{
		ReservationID: reservationID,
	}, tc)
}
