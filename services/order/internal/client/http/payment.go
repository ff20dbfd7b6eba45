package httpclient

import (
	"context"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/order/internal/service"
)

// processRequest тело POST /process
type processRequest struct {
	OrderID  string           `json:"order_id"`
	Amount   float64          `json:"amount"`
	Currency string           `json:"currency"`
	User     personas.Persona `json:"user"`
}

// PaymentClientAdapter адаптирует downstream.Client к интерфейсу
// service.PaymentClient
type PaymentClientAdapter struct {
	invoker *downstream.Client
}

// NewPaymentClient создаёт новый адаптер для Payment клиента
func NewPaymentClient(invoker *downstream.Client) service.PaymentClient {
	return &PaymentClientAdapter{
		invoker: invoker,
	}
}

// Process реализует service.PaymentClient интерфейс
// Валюта всегда USD: витрина торгует в одной валюте
func (a *PaymentClientAdapter) Process(ctx context.Context, tc observability.TraceContext, orderID string, amount float64, user personas.Persona) downstream.Result {
	return a.invoker.Post(ctx, topology.PaymentService, "/process", processRequest{
		OrderID:  orderID,
		Amount:   amount,
		Currency: "USD",
		User:     user,
	}, tc)
}
