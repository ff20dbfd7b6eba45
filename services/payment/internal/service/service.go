package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/errinject"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"
	"github.com/shestoi/GoShopSim/platform/workflow"

	"github.com/shestoi/GoShopSim/services/payment/internal/repository"
)

// PaymentService содержит бизнес-логику обработки платежей.
// Движок инъекций нужен прямо здесь: сценарий /validate срабатывает
// внутри шага validate_card, а не на входе в HTTP handler
type PaymentService struct {
	notification NotificationClient
	txnRepo      repository.PaymentRepository
	engine       *errinject.Engine
	logger       *zap.Logger
}

// NewPaymentService создаёт новый экземпляр PaymentService
func NewPaymentService(
	notification NotificationClient,
	txnRepo repository.PaymentRepository,
	engine *errinject.Engine,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		notification: notification,
		txnRepo:      txnRepo,
		engine:       engine,
		logger:       logger,
	}
}

// ProcessInput содержит входные данные платежа.
// Пустые поля дозаполняются: витрина умеет проводить платёж без данных
type ProcessInput struct {
	OrderID  string
	Amount   float64
	Currency string
	User     personas.Persona
	Trace    observability.TraceContext
}

// ProcessResult содержит итог обработки платежа.
// Ровно одно из двух: Transaction при успехе, Failed при отказе шага
type ProcessResult struct {
	Transaction repository.Transaction
	Failed      *workflow.StepOutcome
}

// Refund результат возврата платежа
type Refund struct {
	ID            string
	TransactionID string
	Amount        float64
	Status        string
}

// Balance баланс мерчантского счёта. Демо-стенд отдаёт фиксированные числа
type Balance struct {
	Available float64
	Pending   float64
	Currency  string
}

// Process проводит платёж в три шага: проверка карты, анти-фрод, списание.
// Все три критические. Квитанция по почте - некритический шаг, её
// неотправка платёж не ломает
func (s *PaymentService) Process(ctx context.Context, input ProcessInput) (ProcessResult, error) {
	log := observability.L(ctx, s.logger)

	orderID := input.OrderID
	if orderID == "" {
		orderID = newID("ord")
	}
	amount := input.Amount
	if amount <= 0 {
		amount = 20 + rand.Float64()*180
	}
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	transactionID := newID("txn")

	log.Info("processing payment",
		zap.String("order_id", orderID),
		zap.String("transaction_id", transactionID),
		zap.Float64("amount", amount),
		zap.String("currency", currency),
		zap.String("provider", "stripe"))

	run := workflow.NewRunner("payment.process", log,
		workflow.Step{
			Name:        "validate_card",
			Criticality: workflow.Critical,
			Run: func(ctx context.Context) downstream.Result {
				simulateWork(ctx, 300*time.Millisecond)
				if inj, ok := s.engine.Evaluate(topology.PaymentService, "/validate"); ok {
					return rejected(inj)
				}
				trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("card.valid", true))
				return localOK()
			},
		},
		workflow.Step{
			Name:        "fraud_check",
			Criticality: workflow.Critical,
			Run: func(ctx context.Context) downstream.Result {
				simulateWork(ctx, 200*time.Millisecond)
				score := rand.Float64() * 0.3
				trace.SpanFromContext(ctx).SetAttributes(attribute.Float64("fraud_score", score))
				log.Debug("fraud check passed",
					zap.String("transaction_id", transactionID),
					zap.Float64("fraud_score", score))
				return localOK()
			},
		},
		workflow.Step{
			Name:        "charge",
			Criticality: workflow.Critical,
			Run: func(ctx context.Context) downstream.Result {
				simulateWork(ctx, 400*time.Millisecond)
				trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("charge.success", true))
				return localOK()
			},
		},
		workflow.Step{
			Name:        "payment_receipt",
			Criticality: workflow.NonCritical,
			Run: func(ctx context.Context) downstream.Result {
				return s.notification.SendPaymentReceipt(ctx, input.Trace, input.User, transactionID, amount)
			},
		},
	)

	wres := run.Run(ctx)
	if wres.Failed != nil {
		return ProcessResult{Failed: wres.Failed}, nil
	}

	txn := repository.Transaction{
		ID:       transactionID,
		OrderID:  orderID,
		Amount:   amount,
		Currency: currency,
		Status:   "completed",
		Provider: "stripe",
	}
	if err := s.txnRepo.Save(ctx, txn); err != nil {
		return ProcessResult{}, fmt.Errorf("failed to save transaction: %w", err)
	}

	log.Info("payment successful",
		zap.String("order_id", orderID),
		zap.String("transaction_id", transactionID),
		zap.Float64("amount", amount),
		zap.String("status", txn.Status))

	return ProcessResult{Transaction: txn}, nil
}

// ProcessRefund проводит возврат платежа. Если транзакция есть в хранилище,
// сумма по умолчанию берётся из неё, иначе подставляется случайная
func (s *PaymentService) ProcessRefund(ctx context.Context, transactionID string, amount float64) (Refund, error) {
	log := observability.L(ctx, s.logger)

	if transactionID == "" {
		transactionID = newID("txn")
	}
	if amount <= 0 {
		if txn, err := s.txnRepo.GetByID(ctx, transactionID); err == nil {
			amount = txn.Amount
		} else {
			amount = 20 + rand.Float64()*180
		}
	}

	simulateWork(ctx, 500*time.Millisecond)

	refund := Refund{
		ID:            newID("ref"),
		TransactionID: transactionID,
		Amount:        amount,
		Status:        "completed",
	}

	log.Info("refund processed",
		zap.String("transaction_id", transactionID),
		zap.String("refund_id", refund.ID),
		zap.Float64("amount", amount))

	return refund, nil
}

// GetBalance возвращает баланс мерчантского счёта
func (s *PaymentService) GetBalance(ctx context.Context) (Balance, error) {
	simulateWork(ctx, 100*time.Millisecond)
	return Balance{
		Available: 125000.50,
		Pending:   3500.00,
		Currency:  "USD",
	}, nil
}

// newID генерирует id вида prefix_<12 hex символов>
func newID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:6])
}

// localOK успешный исход локального шага workflow
func localOK() downstream.Result {
	return downstream.Result{Kind: downstream.Success}
}

// rejected кодирует сработавшую инъекцию как отказ шага.
// Origin - сам payment-service: отказ локальный, а не от соседа
func rejected(inj errinject.Injection) downstream.Result {
	return downstream.Result{
		Kind:       downstream.InjectedFailure,
		Service:    topology.PaymentService,
		ErrorKind:  inj.ErrorKind,
		Message:    inj.Message,
		StatusCode: inj.StatusCode,
	}
}

// simulateWork имитирует полезную работу шага с уважением к отмене контекста
func simulateWork(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
