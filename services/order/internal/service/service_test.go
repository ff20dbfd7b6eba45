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
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"

	"github.com/shestoi/GoShopSim/services/order/internal/repository"
	repoMocks "github.com/shestoi/GoShopSim/services/order/internal/repository/mocks"
	"github.com/shestoi/GoShopSim/services/order/internal/service/mocks"
)

// reserveOK успешный ответ inventory /reserve с id резервации в payload
func reserveOK(reservationID string) downstream.Result {
	return downstream.Result{
		Kind: downstream.Success,
		Payload: map[string]any{
			"success":     true,
			"reservation": map[string]any{"id": reservationID, "status": "reserved"},
		},
		StatusCode: 200,
	}
}

func callOK() downstream.Result {
	return downstream.Result{
		Kind:       downstream.Success,
		Payload:    map[string]any{"success": true},
		StatusCode: 200,
	}
}

func injectedFailure(kind, service string, status int) downstream.Result {
	return downstream.Result{
		Kind:       downstream.InjectedFailure,
		ErrorKind:  kind,
		Message:    kind,
		Service:    service,
		StatusCode: status,
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

func isOrderID(id string) bool {
	return strings.HasPrefix(id, "ord_") && len(id) == len("ord_")+12
}

func TestOrderService_Checkout_Success(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{TraceParent: "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01"}

	// Arrange
	mockInventory := mocks.NewInventoryClient(t)
	mockPayment := mocks.NewPaymentClient(t)
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewOrderRepository(t)

	svc := NewOrderService(mockInventory, mockPayment, mockNotification, mockRepo, zap.NewNop(), false)

	user := personas.All[0]
	items := []repository.Item{
		{ProductID: "prod_001", Name: "Feature Flag Starter Kit", Price: 29.99},
		{ProductID: "prod_003", Name: "A/B Testing Suite", Price: 79.99},
	}
	wantTotal := 29.99 + 79.99

	// Шаги получают производный ctx (span контексты), поэтому ctx
	// матчится через mock.Anything
	var reserveOrderID, paymentOrderID, notifyOrderID string
	mockInventory.On("Reserve", mock.Anything, tc, mock.MatchedBy(func(id string) bool {
		reserveOrderID = id
		return isOrderID(id)
	}), items).Return(reserveOK("res_1a2b3c4d5e6f")).Once()

	mockPayment.On("Process", mock.Anything, tc, mock.MatchedBy(func(id string) bool {
		paymentOrderID = id
		return isOrderID(id)
	}), mock.MatchedBy(amountNear(wantTotal)), user).Return(callOK()).Once()

	mockNotification.On("SendOrderConfirmation", mock.Anything, tc, user, mock.MatchedBy(func(id string) bool {
		notifyOrderID = id
		return isOrderID(id)
	}), mock.MatchedBy(amountNear(wantTotal))).Return(callOK()).Once()

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(order repository.Order) bool {
		return order.Status == "completed" &&
			len(order.Items) == 2 &&
			order.User == user &&
			isOrderID(order.ID)
	})).Return(nil).Once()

	// Act
	result, err := svc.Checkout(ctx, CheckoutInput{User: user, Items: items, Trace: tc})

	// Assert
	require.NoError(t, err)
	require.Nil(t, result.Failed)
	require.Equal(t, "completed", result.Order.Status)
	require.Equal(t, user, result.Order.User)
	require.Equal(t, items, result.Order.Items)
	require.InDelta(t, wantTotal, result.Order.Total, 0.001)

	// Все три шага работали с одним и тем же заказом
	require.Equal(t, result.Order.ID, reserveOrderID)
	require.Equal(t, result.Order.ID, paymentOrderID)
	require.Equal(t, result.Order.ID, notifyOrderID)

	mockInventory.AssertExpectations(t)
	mockPayment.AssertExpectations(t)
	mockNotification.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_ReserveFails_AbortsWorkflow(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	mockInventory := mocks.NewInventoryClient(t)
	mockPayment := mocks.NewPaymentClient(t)
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewOrderRepository(t)

	svc := NewOrderService(mockInventory, mockPayment, mockNotification, mockRepo, zap.NewNop(), false)

	items := []repository.Item{{ProductID: "prod_002", Name: "Progressive Rollout Pro", Price: 49.99}}

	mockInventory.On("Reserve", mock.Anything, tc, mock.Anything, items).
		Return(injectedFailure("OutOfStockError", "inventory-service", 409)).Once()

	// Act
	result, err := svc.Checkout(ctx, CheckoutInput{User: personas.All[1], Items: items, Trace: tc})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.Failed)
	require.Equal(t, "reserve_inventory", result.Failed.Name)
	require.Equal(t, downstream.InjectedFailure, result.Failed.Result.Kind)
	require.Equal(t, "OutOfStockError", result.Failed.Result.ErrorKind)
	require.Equal(t, 409, result.Failed.Result.StatusCode)

	// Оплата, письмо и сохранение после отказа резервирования не выполняются
	mockPayment.AssertNotCalled(t, "Process")
	mockNotification.AssertNotCalled(t, "SendOrderConfirmation")
	mockRepo.AssertNotCalled(t, "Save")
}

func TestOrderService_Checkout_PaymentFails_NoCompensationByDefault(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	mockInventory := mocks.NewInventoryClient(t)
	mockPayment := mocks.NewPaymentClient(t)
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewOrderRepository(t)

	svc := NewOrderService(mockInventory, mockPayment, mockNotification, mockRepo, zap.NewNop(), false)

	items := []repository.Item{{ProductID: "prod_004", Name: "Targeting Rules Package", Price: 39.99}}

	mockInventory.On("Reserve", mock.Anything, tc, mock.Anything, items).
		Return(reserveOK("res_aabbccddeeff")).Once()
	mockPayment.On("Process", mock.Anything, tc, mock.Anything, mock.Anything, mock.Anything).
		Return(injectedFailure("PaymentDeclinedError", "payment-service", 402)).Once()

	// Act
	result, err := svc.Checkout(ctx, CheckoutInput{User: personas.All[2], Items: items, Trace: tc})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.Failed)
	require.Equal(t, "process_payment", result.Failed.Name)
	require.Equal(t, "PaymentDeclinedError", result.Failed.Result.ErrorKind)

	// Компенсация выключена: release не вызывается
	mockInventory.AssertNotCalled(t, "Release")
	mockNotification.AssertNotCalled(t, "SendOrderConfirmation")
	mockRepo.AssertNotCalled(t, "Save")
}

func TestOrderService_Checkout_PaymentFails_CompensationReleasesReservation(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	mockInventory := mocks.NewInventoryClient(t)
	mockPayment := mocks.NewPaymentClient(t)
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewOrderRepository(t)

	svc := NewOrderService(mockInventory, mockPayment, mockNotification, mockRepo, zap.NewNop(), true)

	items := []repository.Item{{ProductID: "prod_005", Name: "Segment Builder", Price: 59.99}}

	mockInventory.On("Reserve", mock.Anything, tc, mock.Anything, items).
		Return(reserveOK("res_1122334455aa")).Once()
	mockPayment.On("Process", mock.Anything, tc, mock.Anything, mock.Anything, mock.Anything).
		Return(transportFailure("connection refused")).Once()
	mockInventory.On("Release", mock.Anything, tc, "res_1122334455aa").
		Return(callOK()).Once()

	// Act
	result, err := svc.Checkout(ctx, CheckoutInput{User: personas.All[3], Items: items, Trace: tc})

	// Assert: release выполнен, но итог остаётся отказом оплаты
	require.NoError(t, err)
	require.NotNil(t, result.Failed)
	require.Equal(t, "process_payment", result.Failed.Name)
	require.Equal(t, downstream.TransportFailure, result.Failed.Result.Kind)

	mockInventory.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestOrderService_Checkout_NotificationFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	mockInventory := mocks.NewInventoryClient(t)
	mockPayment := mocks.NewPaymentClient(t)
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewOrderRepository(t)

	svc := NewOrderService(mockInventory, mockPayment, mockNotification, mockRepo, zap.NewNop(), false)

	items := []repository.Item{{ProductID: "prod_001", Name: "Feature Flag Starter Kit", Price: 29.99}}

	mockInventory.On("Reserve", mock.Anything, tc, mock.Anything, items).
		Return(reserveOK("res_0f0f0f0f0f0f")).Once()
	mockPayment.On("Process", mock.Anything, tc, mock.Anything, mock.Anything, mock.Anything).
		Return(callOK()).Once()
	mockNotification.On("SendOrderConfirmation", mock.Anything, tc, mock.Anything, mock.Anything, mock.Anything).
		Return(transportFailure("dial tcp: connection refused")).Once()
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	// Act
	result, err := svc.Checkout(ctx, CheckoutInput{User: personas.All[4], Items: items, Trace: tc})

	// Assert: заказ успешен несмотря на отказ нотификации
	require.NoError(t, err)
	require.Nil(t, result.Failed)
	require.Equal(t, "completed", result.Order.Status)

	mockNotification.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_DefaultsRandomUserAndItems(t *testing.T) {
	ctx := context.Background()
	tc := observability.TraceContext{}

	// Arrange
	mockInventory := mocks.NewInventoryClient(t)
	mockPayment := mocks.NewPaymentClient(t)
	mockNotification := mocks.NewNotificationClient(t)
	mockRepo := repoMocks.NewOrderRepository(t)

	svc := NewOrderService(mockInventory, mockPayment, mockNotification, mockRepo, zap.NewNop(), false)

	var gotItems []repository.Item
	mockInventory.On("Reserve", mock.Anything, tc, mock.Anything, mock.MatchedBy(func(items []repository.Item) bool {
		gotItems = items
		return len(items) >= 1 && len(items) <= 3
	})).Return(reserveOK("res_d00dd00dd00d")).Once()

	var gotUser personas.Persona
	mockPayment.On("Process", mock.Anything, tc, mock.Anything, mock.Anything, mock.MatchedBy(func(u personas.Persona) bool {
		gotUser = u
		return u.Key != ""
	})).Return(callOK()).Once()

	mockNotification.On("SendOrderConfirmation", mock.Anything, tc, mock.Anything, mock.Anything, mock.Anything).
		Return(callOK()).Once()
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	// Act: пустой input, user и items выбираются сервисом
	result, err := svc.Checkout(ctx, CheckoutInput{Trace: tc})

	// Assert
	require.NoError(t, err)
	require.Nil(t, result.Failed)

	_, known := personas.ByKey(gotUser.Key)
	require.True(t, known, "user должен быть одной из демо-персон")

	seen := make(map[string]bool)
	for _, item := range gotItems {
		require.False(t, seen[item.ProductID], "позиции не должны повторяться")
		seen[item.ProductID] = true

		found := false
		for _, cat := range catalog {
			if cat == item {
				found = true
				break
			}
		}
		require.True(t, found, "позиция должна быть из каталога: %+v", item)
	}
	require.InDelta(t, itemsTotal(gotItems), result.Order.Total, 0.001)
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()

	// Arrange
	svc := NewOrderService(
		mocks.NewInventoryClient(t),
		mocks.NewPaymentClient(t),
		mocks.NewNotificationClient(t),
		repoMocks.NewOrderRepository(t),
		zap.NewNop(),
		false,
	)

	// Act
	orders, err := svc.ListOrders(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, orders, 5)

	validStatuses := map[string]bool{"completed": true, "processing": true, "shipped": true}
	for i, order := range orders {
		require.True(t, isOrderID(order.ID))
		require.True(t, validStatuses[order.Status], "unexpected status %q", order.Status)
		require.GreaterOrEqual(t, len(order.Items), 1)
		require.LessOrEqual(t, len(order.Items), 3)
		require.InDelta(t, itemsTotal(order.Items), order.Total, 0.001)
		require.Equal(t, string(rune('1'+i)), order.CreatedAt[9:10])

		_, known := personas.ByKey(order.User.Key)
		require.True(t, known)
	}
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	stored := repository.Order{
		ID:     "ord_feedfacecafe",
		User:   personas.All[5],
		Items:  []repository.Item{{ProductID: "prod_002", Name: "Progressive Rollout Pro", Price: 49.99}},
		Total:  49.99,
		Status: "completed",
	}

	tests := []struct {
		name      string
		orderID   string
		repoOrder repository.Order
		repoError error
		wantErr   string
		validate  func(t *testing.T, order repository.Order)
	}{
		{
			name:      "success: order found in repository",
			orderID:   "ord_feedfacecafe",
			repoOrder: stored,
			validate: func(t *testing.T, order repository.Order) {
				require.Equal(t, stored, order)
			},
		},
		{
			name:      "success: unknown order is synthesized",
			orderID:   "ord_000000000000",
			repoError: repository.ErrNotFound,
			validate: func(t *testing.T, order repository.Order) {
				require.Equal(t, "ord_000000000000", order.ID)
				require.Equal(t, "completed", order.Status)
				require.GreaterOrEqual(t, len(order.Items), 1)
				require.LessOrEqual(t, len(order.Items), 3)
				require.InDelta(t, itemsTotal(order.Items), order.Total, 0.001)
			},
		},
		{
			name:      "error: repository failure",
			orderID:   "ord_deadbeef0000",
			repoError: errors.New("storage corrupted"),
			wantErr:   "failed to get order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockRepo := repoMocks.NewOrderRepository(t)
			svc := NewOrderService(
				mocks.NewInventoryClient(t),
				mocks.NewPaymentClient(t),
				mocks.NewNotificationClient(t),
				mockRepo,
				zap.NewNop(),
				false,
			)

			mockRepo.On("GetByID", ctx, tt.orderID).
				Return(tt.repoOrder, tt.repoError).Once()

			// Act
			order, err := svc.GetOrder(ctx, tt.orderID)

			// Assert
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, order)
			}
		})
	}
}
