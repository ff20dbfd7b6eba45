package httpclient

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/order/internal/service"
)

// sendRequest тело POST /send
type sendRequest struct {
	Type     string           `json:"type"`
	Template string           `json:"template"`
	User     personas.Persona `json:"user"`
	OrderID  string           `json:"order_id"`
	Total    float64          `json:"total"`
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

// SendOrderConfirmation реализует service.NotificationClient интерфейс
func (a *NotificationClientAdapter) SendOrderConfirmation(ctx context.Context, tc observability.TraceContext, user personas.Persona, orderID string, total float64) downstream.Result {
	return a.invoker.Post(ctx, topology.NotificationService, "/send", sendRequest{
		Type:     "email",
		Template: "order_confirmation",
		User:     user,
		OrderID:  orderID,
		Total:    total,
	}, tc)
}
