package httpclient

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/payment/internal/service"
)

// sendRequest тело POST /send
type sendRequest struct {
	Type          string           `json:"type"`
	Template      string           `json:"template"`
	User          personas.Persona `json:"user"`
	TransactionID string           `json:"transaction_id"`
	Amount        float64          `json:"amount"`
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

// SendPaymentReceipt реализует service.NotificationClient интерфейс
func (a *NotificationClientAdapter) SendPaymentReceipt(ctx context.Context, tc observability.TraceContext, user personas.Persona, transactionID string, amount float64) downstream.Result {
	return a.invoker.Post(ctx, topology.NotificationService, "/send", sendRequest{
		Type:          "email",
		Template:      "payment_receipt",
		User:          user,
		TransactionID: transactionID,
		Amount:        amount,
	}, tc)
}
