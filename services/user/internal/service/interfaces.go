package service

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=AnalyticsClient --dir=. --output=./mocks --outpkg=mocks
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=NotificationClient --dir=. --output=./mocks --outpkg=mocks

// AnalyticsClient определяет интерфейс для работы с Analytics сервисом
type AnalyticsClient interface {
	// TrackProfileViewed отправляет событие просмотра профиля
	TrackProfileViewed(ctx context.Context, tc observability.TraceContext, userKey string) downstream.Result
	// TrackProfileUpdated отправляет событие обновления профиля
	TrackProfileUpdated(ctx context.Context, tc observability.TraceContext, userKey string, fields []string) downstream.Result
}

// NotificationClient определяет интерфейс для работы с Notification сервисом
type NotificationClient interface {
	// SendProfileUpdated отправляет письмо об обновлении профиля
	SendProfileUpdated(ctx context.Context, tc observability.TraceContext, userKey string) downstream.Result
}
