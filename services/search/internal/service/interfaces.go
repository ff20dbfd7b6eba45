package service

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=InventoryClient --dir=. --output=./mocks --outpkg=mocks

// InventoryClient определяет интерфейс для работы с Inventory Service
type InventoryClient interface {
	// GetProduct запрашивает карточку товара по id
	GetProduct(ctx context.Context, tc observability.TraceContext, productID string) downstream.Result
}
