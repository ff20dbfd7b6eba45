package service

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=AnalyticsClient --dir=. --output=./mocks --outpkg=mocks

// AnalyticsClient определяет интерфейс для работы с Analytics сервисом
type AnalyticsClient interface {
	// TrackLogin отправляет событие входа пользователя
	TrackLogin(ctx context.Context, tc observability.TraceContext, user personas.Persona) downstream.Result
	// TrackLogout отправляет событие выхода пользователя
	TrackLogout(ctx context.Context, tc observability.TraceContext, userKey string) downstream.Result
}
