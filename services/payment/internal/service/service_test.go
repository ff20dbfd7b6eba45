package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/errinject"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/topology"

	"github.com/shestoi/GoShopSim/services/payment/internal/repository"
	repoMocks "github.com/shestoi/GoShopSim/services/payment/internal/repository/mocks"
	"github.com/shestoi/GoShopSim/services/payment/internal/service/mocks"
)

// noInjections движок с пустым каталогом: сценарии не срабатывают никогда
func noInjections() *errinject.Engine {
	return errinject.New(errinject.Catalog{}, nil)
}

// declineCardAlways движок, отклоняющий каждую проверку карты
func declineCardAlways() *errinject.Engine {
	return errinject.New(errinject.Catalog{
		topology.PaymentService: {
			{
				Name:       "payment_declined",
				Rate:       1.0,
				Endpoints:  []string{"/validate"},
				ErrorKind:  "PaymentDeclinedException",
				Message:    "Payment declined by card issuer",
				StatusCode: 402,
			},
		},
	}, nil)
}

func callOK() downstream.Result {
	return downstream.Result{
		Kind:       downstream.Success,
		Payload:    map[string]any{"success": true},
		StatusCode: 200,
	}
}

func transportFailure(msg string) downstream.Result {
	return downstream.Result{
		Kind:  downstream.TransportFailure,
		Cause: errors.New(msg),
	}
}

// amountNear сравнение float64 сумм с допуском на двоичную арифметику
func amountNear(want float64) func(float64) bool {
	return func(got float64) bool { return math.Abs(got-want) < 0.001 }
}

func isTransactionID(id string) bool {
	return strings.HasPrefix(id, "txn_") && len(id) == len("txn_")+12
}

func TestPaymentService_Process_Success(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{TraceParent: "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01"}

	// Arrange
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewPaymentRepository(t)

	svc := NewPaymentService(mockNotification, mockRepo, noInjections(), zap.NewNop())

	user := personas.All[1]

	// Шаги получают производный ctx (span контексты), поэтому ctx
	// матчится через mock.Anything
	var receiptTxnID, savedTxnID string
	mockNotification.On("SendPaymentReceipt", mock.Anything, tc, user,
		mock.MatchedBy(func(id string) bool {
			receiptTxnID = id
			return isTransactionID(id)
		}),
		mock.MatchedBy(amountNear(109.98)),
	).Return(callOK()).Once()

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(tx repository.Transaction) bool {
		savedTxnID = tx.ID
		return isTransactionID(tx.ID) &&
			tx.OrderID == "ord_42" &&
			tx.Currency == "USD" &&
			tx.Status == "completed" &&
			tx.Provider == "stripe"
	})).Return(nil).Once()

	// Act
	result, err := svc.Process(ctx, ProcessInput{
		OrderID:  "ord_42",
		Amount:   109.98,
		Currency: "USD",
		User:     user,
		Trace:    tc,
	})

	// Assert
	require.NoError(t, err)
	require.Nil(t, result.Failed)
	require.Equal(t, savedTxnID, result.Transaction.ID)
	require.Equal(t, receiptTxnID, result.Transaction.ID)
	require.Equal(t, "ord_42", result.Transaction.OrderID)
	require.InDelta(t, 109.98, result.Transaction.Amount, 0.001)
	require.Equal(t, "completed", result.Transaction.Status)
	require.Equal(t, "stripe", result.Transaction.Provider)
}

func TestPaymentService_Process_CardDeclinedAbortsFlow(t *testing.T) {
	ctx := context.Background()

	// Arrange
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewPaymentRepository(t)

	svc := NewPaymentService(mockNotification, mockRepo, declineCardAlways(), zap.NewNop())

	// Act
	result, err := svc.Process(ctx, ProcessInput{OrderID: "ord_42", Amount: 50})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.Failed)
	require.Equal(t, "validate_card", result.Failed.Name)
	require.Equal(t, downstream.InjectedFailure, result.Failed.Result.Kind)
	require.Equal(t, "PaymentDeclinedException", result.Failed.Result.ErrorKind)
	require.Equal(t, 402, result.Failed.Result.StatusCode)
	require.Equal(t, topology.PaymentService, result.Failed.Result.Service)

	// Отказ на первом шаге: ни квитанции, ни записи транзакции
	mockNotification.AssertNotCalled(t, "SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPaymentService_Process_ReceiptFailureDoesNotFailPayment(t *testing.T) {
	ctx := context.Background()

	// Arrange
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewPaymentRepository(t)

	svc := NewPaymentService(mockNotification, mockRepo, noInjections(), zap.NewNop())

	mockNotification.On("SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(transportFailure("connection refused")).Once()
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	// Act
	result, err := svc.Process(ctx, ProcessInput{OrderID: "ord_42", Amount: 50})

	// Assert
	require.NoError(t, err)
	require.Nil(t, result.Failed)
	require.Equal(t, "ord_42", result.Transaction.OrderID)
}

func TestPaymentService_Process_DefaultsForEmptyInput(t *testing.T) {
	ctx := context.Background()

	// Arrange
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewPaymentRepository(t)

	svc := NewPaymentService(mockNotification, mockRepo, noInjections(), zap.NewNop())

	mockNotification.On("SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(callOK()).Once()

	var saved repository.Transaction
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(tx repository.Transaction) bool {
		saved = tx
		return true
	})).Return(nil).Once()

	// Act
	result, err := svc.Process(ctx, ProcessInput{})

	// Assert
	require.NoError(t, err)
	require.Nil(t, result.Failed)
	require.True(t, strings.HasPrefix(saved.OrderID, "ord_"), "generated order id, got %s", saved.OrderID)
	require.GreaterOrEqual(t, saved.Amount, 20.0)
	require.Less(t, saved.Amount, 200.0)
	require.Equal(t, "USD", saved.Currency)
	require.Equal(t, result.Transaction, saved)
}

func TestPaymentService_ProcessRefund_UsesStoredAmount(t *testing.T) {
	ctx := context.Background()

	// Arrange
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewPaymentRepository(t)

	svc := NewPaymentService(mockNotification, mockRepo, noInjections(), zap.NewNop())

	mockRepo.On("GetByID", ctx, "txn_aabbccdd0011").
		Return(repository.Transaction{ID: "txn_aabbccdd0011", Amount: 59.99}, nil).Once()

	// Act
	refund, err := svc.ProcessRefund(ctx, "txn_aabbccdd0011", 0)

	// Assert
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(refund.ID, "ref_"), "refund id, got %s", refund.ID)
	require.Equal(t, "txn_aabbccdd0011", refund.TransactionID)
	require.InDelta(t, 59.99, refund.Amount, 0.001)
	require.Equal(t, "completed", refund.Status)
}

func TestPaymentService_ProcessRefund_ExplicitAmountSkipsLookup(t *testing.T) {
	ctx := context.Background()

	// Arrange
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewPaymentRepository(t)

	svc := NewPaymentService(mockNotification, mockRepo, noInjections(), zap.NewNop())

	// Act
	refund, err := svc.ProcessRefund(ctx, "txn_aabbccdd0011", 25.50)

	// Assert
	require.NoError(t, err)
	require.InDelta(t, 25.50, refund.Amount, 0.001)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPaymentService_ProcessRefund_UnknownTransactionGetsRandomAmount(t *testing.T) {
	ctx := context.Background()

	// Arrange
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewPaymentRepository(t)

	svc := NewPaymentService(mockNotification, mockRepo, noInjections(), zap.NewNop())

	mockRepo.On("GetByID", ctx, "txn_000000000000").
		Return(repository.Transaction{}, repository.ErrNotFound).Once()

	// Act
	refund, err := svc.ProcessRefund(ctx, "txn_000000000000", 0)

	// Assert
	require.NoError(t, err)
	require.GreaterOrEqual(t, refund.Amount, 20.0)
	require.Less(t, refund.Amount, 200.0)
}

func TestPaymentService_ProcessRefund_GeneratesTransactionID(t *testing.T) {
	ctx := context.Background()

	// Arrange
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewPaymentRepository(t)

	svc := NewPaymentService(mockNotification, mockRepo, noInjections(), zap.NewNop())

	mockRepo.On("GetByID", ctx, mock.MatchedBy(isTransactionID)).
		Return(repository.Transaction{}, repository.ErrNotFound).Once()

	// Act
	refund, err := svc.ProcessRefund(ctx, "", 0)

	// Assert
	require.NoError(t, err)
	require.True(t, isTransactionID(refund.TransactionID), "generated transaction id, got %s", refund.TransactionID)
}

func TestPaymentService_GetBalance(t *testing.T) {
	ctx := context.Background()

	// Arrange
	svc := NewPaymentService(mocks.NewNotificationClient(t), repoMocks.NewPaymentRepository(t), noInjections(), zap.NewNop())

	// Act
	balance, err := svc.GetBalance(ctx)

	// Assert
	require.NoError(t, err)
	require.InDelta(t, 125000.50, balance.Available, 0.001)
	require.InDelta(t, 3500.00, balance.Pending, 0.001)
	require.Equal(t, "USD", balance.Currency)
}
