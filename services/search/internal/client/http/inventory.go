package httpclient

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/search/internal/service"
)

// InventoryClientAdapter адаптирует downstream.Client к интерфейсу
// service.InventoryClient
type InventoryClientAdapter struct {
	invoker *downstream.Client
}

// NewInventoryClient создаёт новый адаптер для Inventory клиента
func NewInventoryClient(invoker *downstream.Client) service.InventoryClient {
	return &InventoryClientAdapter{
		invoker: invoker,
	}
}

// GetProduct реализует service.InventoryClient интерфейс
func (a *InventoryClientAdapter) GetProduct(ctx context.Context, tc observability.TraceContext, productID string) downstream.Result {
	return a.invoker.Get(ctx, topology.InventoryService, "/products/"+productID, tc)
}
