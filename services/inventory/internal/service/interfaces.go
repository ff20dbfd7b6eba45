package service

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=NotificationClient --dir=. --output=./mocks --outpkg=mocks

// NotificationClient определяет интерфейс для работы с Notification сервисом
type NotificationClient interface {
	// SendLowStockAlert отправляет алерт о низком остатке товара
	SendLowStockAlert(ctx context.Context, tc observability.TraceContext, productID string, currentStock int) downstream.Result
}
