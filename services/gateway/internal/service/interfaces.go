package service

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Forwarder --dir=. --output=./mocks --outpkg=mocks

// Forwarder определяет интерфейс проксирования запроса в downstream-сервис.
// Gateway не придаёт вызовам доменной формы, поэтому интерфейс повторяет
// универсальный Call клиента межсервисных вызовов
type Forwarder interface {
	// Call выполняет один вызов downstream-сервиса и классифицирует исход
	Call(ctx context.Context, service, path, method string, body any, tc observability.TraceContext) downstream.Result
}
