package httpclient

import (
	"context"
	"time"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/auth/internal/service"
)

// trackLoginRequest тело POST /track для события входа
type trackLoginRequest struct {
	Event      string           `json:"event"`
	User       personas.Persona `json:"user"`
	Properties loginProperties  `json:"properties"`
}

// loginProperties свойства события входа. Timestamp в секундах unix-эпохи
// с дробной частью
type loginProperties struct {
	AuthMethod string  `json:"auth_method"`
	Timestamp  float64 `json:"timestamp"`
}

// trackLogoutRequest тело POST /track для события выхода
type trackLogoutRequest struct {
	Event   string `json:"event"`
	UserKey string `json:"user_key"`
}

// AnalyticsClientAdapter адаптирует downstream.Client к интерфейсу
// service.AnalyticsClient
type AnalyticsClientAdapter struct {
	invoker *downstream.Client
}

// NewAnalyticsClient создаёт новый адаптер для Analytics клиента
func NewAnalyticsClient(invoker *downstream.Client) service.AnalyticsClient {
	return &AnalyticsClientAdapter{
		invoker: invoker,
	}
}

// TrackLogin реализует service.AnalyticsClient интерфейс
func (a *AnalyticsClientAdapter) TrackLogin(ctx context.Context, tc observability.TraceContext, user personas.Persona) downstream.Result {
	return a.invoker.Post(ctx, topology.AnalyticsService, "/track", trackLoginRequest{
		Event: "user.login",
		User:  user,
		Properties: loginProperties{
			AuthMethod: "password",
			Timestamp:  float64(time.Now().UnixMilli()) / 1000,
		},
	}, tc)
}

// TrackLogout реализует service.AnalyticsClient интерфейс
func (a *AnalyticsClientAdapter) TrackLogout(ctx context.Context, tc observability.TraceContext, userKey string) downstream.Result {
	return a.invoker.Post(ctx, topology.AnalyticsService, "/track", trackLogoutRequest{
		Event:   "user.logout",
		UserKey: userKey,
	}, tc)
}
