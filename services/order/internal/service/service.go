package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/downstream"
	"github.com/shestoi/GoShopSim/platform/observability"
	"github.com/shestoi/GoShopSim/platform/personas"
	"github.com/shestoi/GoShopSim/platform/workflow"

	"github.com/shestoi/GoShopSim/services/order/internal/repository"
)

// catalog пять демо-товаров витрины. Цены фиксированы, сумма заказа
// считается строго по ним
var catalog = []repository.Item{
	{ProductID: "prod_001", Name: "Feature Flag Starter Kit", Price: 29.99},
	{ProductID: "prod_002", Name: "Progressive Rollout Pro", Price: 49.99},
	{ProductID: "prod_003", Name: "A/B Testing Suite", Price: 79.99},
	{ProductID: "prod_004", Name: "Targeting Rules Package", Price: 39.99},
	{ProductID: "prod_005", Name: "Segment Builder", Price: 59.99},
}

// OrderService содержит бизнес-логику работы с заказами
// Зависит от интерфейсов, а не от конкретных HTTP клиентов и репозиториев
type OrderService struct {
	inventory    InventoryClient
	payment      PaymentClient
	notification NotificationClient
	orderRepo    repository.OrderRepository
	logger       *zap.Logger

	// compensate включает best-effort release резервации при отказе оплаты.
	// По умолчанию выключено: зависшая резервация истекает сама
	compensate bool
}

// NewOrderService создаёт новый экземпляр OrderService
// Принимает интерфейсы как зависимости - это позволяет легко подменять их
// в тестах и делает service независимым от конкретной реализации
func NewOrderService(
	inventory InventoryClient,
	payment PaymentClient,
	notification NotificationClient,
	orderRepo repository.OrderRepository,
	logger *zap.Logger,
	compensateOnPaymentFailure bool,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		inventory:    inventory,
		payment:      payment,
		notification: notification,
		orderRepo:    orderRepo,
		logger:       logger,
		compensate:   compensateOnPaymentFailure,
	}
}

// CheckoutInput содержит входные данные оформления заказа.
// Нулевой User и пустые Items дозаполняются случайными значениями:
// витрина умеет оформлять заказ "из ниоткуда" для генерации трафика
type CheckoutInput struct {
	User  personas.Persona
	Items []repository.Item
	Trace observability.TraceContext
}

// CheckoutResult содержит итог оформления заказа.
// Ровно одно из двух: Order при успехе, Failed при отказе критического шага
type CheckoutResult struct {
	Order  repository.Order
	Failed *workflow.StepOutcome
}

// Checkout оформляет заказ: резервирование товара, оплата, письмо-подтверждение.
// Первые два шага критические, отказ любого из них прерывает оформление.
// Неотправленное письмо заказ не ломает
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (CheckoutResult, error) {
	log := observability.L(ctx, s.logger)

	user := input.User
	if user == (personas.Persona{}) {
		user = personas.Random()
	}
	items := input.Items
	if len(items) == 0 {
		items = sampleItems()
	}

	orderID := newID("ord")
	total := itemsTotal(items)

	log.Info("processing checkout",
		zap.String("order_id", orderID),
		zap.String("user_email", user.Email),
		zap.Int("item_count", len(items)),
		zap.Float64("total", total))

	// id резервации заполняется шагом reserve_inventory; нужен для
	// компенсирующего release при отказе оплаты
	var reservationID string

	run := workflow.NewRunner("order.checkout", log,
		workflow.Step{
			Name:        "reserve_inventory",
			Criticality: workflow.Critical,
			Run: func(ctx context.Context) downstream.Result {
				res := s.inventory.Reserve(ctx, input.Trace, orderID, items)
				if res.OK() {
					reservationID = reservationIDFrom(res.Payload)
				}
				return res
			},
		},
		workflow.Step{
			Name:        "process_payment",
			Criticality: workflow.Critical,
			Run: func(ctx context.Context) downstream.Result {
				return s.payment.Process(ctx, input.Trace, orderID, total, user)
			},
		},
		workflow.Step{
			Name:        "order_confirmation",
			Criticality: workflow.NonCritical,
			Run: func(ctx context.Context) downstream.Result {
				return s.notification.SendOrderConfirmation(ctx, input.Trace, user, orderID, total)
			},
		},
	)

	wres := run.Run(ctx)
	if wres.Failed != nil {
		if s.compensate && wres.Failed.Name == "process_payment" && reservationID != "" {
			s.releaseReservation(ctx, input.Trace, log, orderID, reservationID)
		}
		return CheckoutResult{Failed: wres.Failed}, nil
	}

	order := repository.Order{
		ID:     orderID,
		User:   user,
		Items:  items,
		Total:  total,
		Status: "completed",
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return CheckoutResult{}, fmt.Errorf("failed to save order: %w", err)
	}

	log.Info("order completed",
		zap.String("order_id", orderID),
		zap.Float64("total", total),
		zap.String("status", "completed"))

	return CheckoutResult{Order: order}, nil
}

// releaseReservation снимает резервацию после отказа оплаты.
// Неудача release логируется и не меняет итог оформления
func (s *OrderService) releaseReservation(ctx context.Context, tc observability.TraceContext, log *zap.Logger, orderID, reservationID string) {
	res := s.inventory.Release(ctx, tc, reservationID)
	if res.Failed() {
		log.Warn("failed to release reservation after payment failure",
			zap.String("order_id", orderID),
			zap.String("reservation_id", reservationID),
			zap.String("kind", res.Kind.String()))
		return
	}
	log.Info("reservation released after payment failure",
		zap.String("order_id", orderID),
		zap.String("reservation_id", reservationID))
}

// ListOrders возвращает пять недавних заказов.
// Заказы синтезируются на лету: история демо-стенду не нужна
func (s *OrderService) ListOrders(ctx context.Context) ([]repository.Order, error) {
	simulateWork(ctx, 200*time.Millisecond)

	statuses := []string{"completed", "processing", "shipped"}

	orders := make([]repository.Order, 0, 5)
	for i := 0; i < 5; i++ {
		items := sampleItems()
		orders = append(orders, repository.Order{
			ID:        newID("ord"),
			User:      personas.Random(),
			Items:     items,
			Total:     itemsTotal(items),
			Status:    statuses[rand.Intn(len(statuses))],
			CreatedAt: fmt.Sprintf("2024-12-0%dT10:30:00Z", i+1),
		})
	}

	log := observability.L(ctx, s.logger)
	log.Info("retrieved orders", zap.Int("count", len(orders)))

	return orders, nil
}

// GetOrder возвращает заказ по ID. Сначала смотрит в хранилище оформленных
// заказов, для неизвестного id синтезирует правдоподобный ответ
func (s *OrderService) GetOrder(ctx context.Context, id string) (repository.Order, error) {
	simulateWork(ctx, 100*time.Millisecond)

	order, err := s.orderRepo.GetByID(ctx, id)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return repository.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items := sampleItems()
	return repository.Order{
		ID:     id,
		User:   personas.Random(),
		Items:  items,
		Total:  itemsTotal(items),
		Status: "completed",
	}, nil
}

// newID возвращает идентификатор вида ord_3f9c2a1b4d8e
func newID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:6])
}

// sampleItems случайная выборка 1..3 позиций каталога без повторов
func sampleItems() []repository.Item {
	k := 1 + rand.Intn(3)
	perm := rand.Perm(len(catalog))

	items := make([]repository.Item, 0, k)
	for _, idx := range perm[:k] {
		items = append(items, catalog[idx])
	}
	return items
}

// itemsTotal арифметическая сумма цен позиций
func itemsTotal(items []repository.Item) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price
	}
	return total
}

// reservationIDFrom извлекает id резервации из payload ответа inventory
func reservationIDFrom(payload map[string]any) string {
	reservation, ok := payload["reservation"].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := reservation["id"].(string)
	return id
}

// simulateWork имитирует обращение к БД. Прерывается отменой контекста
func simulateWork(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
