package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/errinject"
	"github.com/shestoi/GoShopSim/platform/httperr"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/payment/internal/service"
)

// Handler содержит HTTP-обработчики Payment Service
type Handler struct {
	paymentService *service.PaymentService
	engine         *errinject.Engine
	version        string
	logger         *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(paymentService *service.PaymentService, engine *errinject.Engine, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		paymentService: paymentService,
		engine:         engine,
		version:        version,
		logger:         logger,
	}
}

// ProcessRequest тело POST /process. Все поля опциональны
type ProcessRequest struct {
	OrderID  string            `json:"order_id"`
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	User     *personas.Persona `json:"user"`
}

// TransactionDTO транзакция в HTTP ответе
type TransactionDTO struct {
	ID       string  `json:"id"`
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
	Provider string  `json:"provider"`
}

// ProcessResponse тело успешного ответа POST /process
type ProcessResponse struct {
	Success     bool           `json:"success"`
	Service     string         `json:"service"`
	Transaction TransactionDTO `json:"transaction"`
}

// RefundRequest тело POST /refund. Все поля опциональны
type RefundRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

// RefundDTO возврат в HTTP ответе
type RefundDTO struct {
	ID            string  `json:"id"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
}

// RefundResponse тело ответа POST /refund
type RefundResponse struct {
	Success bool      `json:"success"`
	Service string    `json:"service"`
	Refund  RefundDTO `json:"refund"`
}

// BalanceDTO баланс счёта в HTTP ответе
type BalanceDTO struct {
	Available float64 `json:"available"`
	Pending   float64 `json:"pending"`
	Currency  string  `json:"currency"`
}

// BalanceResponse тело ответа GET /balance
type BalanceResponse struct {
	Success bool       `json:"success"`
	Service string     `json:"service"`
	Balance BalanceDTO `json:"balance"`
}

// RootResponse карточка сервиса для GET /
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Process обрабатывает POST /process - проведение платежа.
// Сценарии с endpoint /process проверяются здесь, сценарии /validate
// срабатывают глубже, внутри шага validate_card
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	if inj, ok := h.engine.Evaluate(topology.PaymentService, "/process"); ok {
		httperr.WriteInjection(w, topology.PaymentService, inj)
		return
	}

	var req ProcessRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.PaymentService, httperr.KindValidation, err.Error())
		return
	}

	input := service.ProcessInput{
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Trace:    observability.TraceContextFromHeaders(r.Header),
	}
	if req.User != nil {
		input.User = *req.User
	}

	result, err := h.paymentService.Process(r.Context(), input)
	if err != nil {
		observability.L(r.Context(), h.logger).Error("payment processing failed", zap.Error(err))
		httperr.Write(w, http.StatusInternalServerError, topology.PaymentService, "InternalError", err.Error())
		return
	}
	if result.Failed != nil {
		httperr.WriteDownstream(w, topology.PaymentService, result.Failed.Result)
		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{
		Success: true,
		Service: topology.PaymentService,
		Transaction: TransactionDTO{
			ID:       result.Transaction.ID,
			OrderID:  result.Transaction.OrderID,
			Amount:   result.Transaction.Amount,
			Currency: result.Transaction.Currency,
			Status:   result.Transaction.Status,
			Provider: result.Transaction.Provider,
		},
	})
}

// Refund обрабатывает POST /refund - возврат платежа
func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.Write(w, http.StatusBadRequest, topology.PaymentService, httperr.KindValidation, err.Error())
		return
	}

	refund, err := h.paymentService.ProcessRefund(r.Context(), req.TransactionID, req.Amount)
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.PaymentService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, RefundResponse{
		Success: true,
		Service: topology.PaymentService,
		Refund: RefundDTO{
			ID:            refund.ID,
			TransactionID: refund.TransactionID,
			Amount:        refund.Amount,
			Status:        refund.Status,
		},
	})
}

// Balance обрабатывает GET /balance - баланс мерчантского счёта
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.paymentService.GetBalance(r.Context())
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, topology.PaymentService, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{
		Success: true,
		Service: topology.PaymentService,
		Balance: BalanceDTO{
			Available: balance.Available,
			Pending:   balance.Pending,
			Currency:  balance.Currency,
		},
	})
}

// Root обрабатывает GET / - карточка сервиса
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   topology.PaymentService,
		Version:   h.version,
		Endpoints: []string{"/health", "/process", "/refund", "/balance"},
	})
}

// decodeBody декодирует JSON тело запроса. Пустое тело не ошибка:
// все поля запросов демо-стенда опциональны
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("invalid JSON body: %v", err)
}

// writeJSON пишет успешный JSON ответ
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
