package service

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=NotificationClient --dir=. --output=./mocks --outpkg=mocks

// NotificationClient определяет интерфейс для работы с Notification сервисом
type NotificationClient interface {
	// SendPaymentReceipt отправляет письмо-квитанцию об оплате
	SendPaymentReceipt(ctx context.Context, tc observability.TraceContext, user personas.Persona, transactionID string, amount float64) downstream.Result
}
