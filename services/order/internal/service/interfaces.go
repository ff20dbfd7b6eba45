package service

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"

	"github.com/shestoi/GoShopSim/services/order/internal/repository"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=InventoryClient --dir=. --output=./mocks --outpkg=mocks

// InventoryClient определяет интерфейс для работы с Inventory сервисом
// Использует доменные типы и downstream.Result - это делает service
// независимым от HTTP деталей вызова
type InventoryClient interface {
	// Reserve резервирует товары заказа на складе
	Reserve(ctx context.Context, tc observability.TraceContext, orderID string, items []repository.Item) downstream.Result

	// Release снимает ранее сделанную резервацию
	Release(ctx context.Context, tc observability.TraceContext, reservationID string) downstream.Result
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=PaymentClient --dir=. --output=./mocks --outpkg=mocks

// PaymentClient определяет интерфейс для работы с Payment сервисом
type PaymentClient interface {
	// Process списывает сумму заказа
	Process(ctx context.Context, tc observability.TraceContext, orderID string, amount float64, user personas.Persona) downstream.Result
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=NotificationClient --dir=. --output=./mocks --outpkg=mocks

// NotificationClient определяет интерфейс для работы с Notification сервисом
type NotificationClient interface {
	// SendOrderConfirmation отправляет письмо-подтверждение заказа
	SendOrderConfirmation(ctx context.Context, tc observability.TraceContext, user personas.Persona, orderID string, total float64) downstream.Result
}
