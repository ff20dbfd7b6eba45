package httpclient

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/inventory/internal/service"
)

// alertRequest тело POST /send для алерта о низком остатке
type alertRequest struct {
	Type         string `json:"type"`
	Template     string `json:"template"`
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
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

// SendLowStockAlert реализует service.NotificationClient интерфейс
func (a *NotificationClientAdapter) SendLowStockAlert(ctx context.Context, tc observability.TraceContext, productID string, currentStock int) downstream.Result {
	return a.invoker.Post(ctx, topology.NotificationService, "/send", alertRequest{
		Type:         "alert",
		Template:     "low_stock_alert",
		ProductID:    productID,
		CurrentStock: currentStock,
	}, tc)
}
