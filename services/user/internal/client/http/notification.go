package httpclient

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/user/internal/service"
)

// sendRequest тело POST /send
type sendRequest struct {
	Type     string `json:"type"`
	Template string `json:"template"`
	UserKey  string `json:"user_key"`
}

// NotificationClientAdapter адаптирует downstream.Client к интерфейсу
// service.NotificationClient
type NotificationClientAdapter struct {
	invoker *downstream.Client
}

// NewNotificationClient создаёт новый адаптер для Notification клиента
func NewNotificationClient(invoker *downstream.Client) service.NotificationClient {
	return &NotificationClientAdapter{
		invoker: invoker,
	}
}

// SendProfileUpdated реализует service.NotificationClient интерфейс
func (a *NotificationClientAdapter) SendProfileUpdated(ctx context.Context, tc observability.TraceContext, userKey string) downstream.Result {
	return a.invoker.Post(ctx, topology.NotificationService, "/send", sendRequest{
		Type:     "email",
		Template: "profile_updated",
		UserKey:  userKey,
	}, tc)
}
