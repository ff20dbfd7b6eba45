package httpclient

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/user/internal/service"
)

// trackViewedRequest тело POST /track для события просмотра профиля
type trackViewedRequest struct {
	Event   string `json:"event"`
	UserKey string `json:"user_key"`
}

// trackUpdatedRequest тело POST /track для события обновления профиля
type trackUpdatedRequest struct {
	Event      string            `json:"event"`
	UserKey    string            `json:"user_key"`
	Properties updatedProperties `json:"properties"`
}

type updatedProperties struct {
	Fields []string `json:"fields"`
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

// TrackProfileViewed реализует service.AnalyticsClient интерфейс
func (a *AnalyticsClientAdapter) TrackProfileViewed(ctx context.Context, tc observability.TraceContext, userKey string) downstream.Result {
	return a.invoker.Post(ctx, topology.AnalyticsService, "/track", trackViewedRequest{
		Event:   "user.profile.viewed",
		UserKey: userKey,
	}, tc)
}

// TrackProfileUpdated реализует service.AnalyticsClient интерфейс
func (a *AnalyticsClientAdapter) TrackProfileUpdated(ctx context.Context, tc observability.TraceContext, userKey string, fields []string) downstream.Result {
	return a.invoker.Post(ctx, topology.AnalyticsService, "/track", trackUpdatedRequest{
		Event:      "user.profile.updated",
		UserKey:    userKey,
		Properties: updatedProperties{Fields: fields},
	}, tc)
}
