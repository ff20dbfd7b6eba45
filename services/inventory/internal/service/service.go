package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/observability"

	"github.com/shestoi/GoShopSim/services/inventory/internal/repository"
)

// lowStockThreshold остаток, ниже которого уходит алерт в notification
const lowStockThreshold = 10

// reservationTTL срок жизни резервации. Зависшие резервации истекают сами,
// поэтому release при отказе оплаты - опция, а не обязанность
const reservationTTL = 15 * time.Minute

// InventoryService содержит бизнес-логику работы со складом
type InventoryService struct {
	repo         repository.InventoryRepository
	notification NotificationClient
	logger       *zap.Logger
}

// NewInventoryService создаёт новый экземпляр InventoryService
func NewInventoryService(repo repository.InventoryRepository, notification NotificationClient, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		repo:         repo,
		notification: notification,
		logger:       logger,
	}
}

// CheckItem запрошенная позиция проверки наличия
type CheckItem struct {
	ProductID string
	Quantity  int
}

// StockCheck итог проверки наличия одной позиции
type StockCheck struct {
	ProductID string
	Requested int
	Available int
	InStock   bool
}

// CheckResult итог проверки наличия по всем позициям
type CheckResult struct {
	AllAvailable bool
	Items        []StockCheck
}

// ReserveInput входные данные резервации
type ReserveInput struct {
	OrderID string
	Items   []repository.ReserveItem
	Trace   observability.TraceContext
}

// ListProducts возвращает все товары каталога
func (s *InventoryService) ListProducts(ctx context.Context) ([]repository.Product, error) {
	simulateWork(ctx, 150*time.Millisecond)

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	observability.L(ctx, s.logger).Info("retrieved products", zap.Int("product_count", len(products)))
	return products, nil
}

// GetProduct возвращает товар по id.
// Возвращает repository.ErrNotFound для неизвестного товара
func (s *InventoryService) GetProduct(ctx context.Context, productID string) (repository.Product, error) {
	simulateWork(ctx, 100*time.Millisecond)

	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		observability.L(ctx, s.logger).Warn("product not found", zap.String("product_id", productID))
		return repository.Product{}, err
	}
	return product, nil
}

// CheckStock проверяет наличие по списку позиций.
// Неизвестный товар не ошибка: он просто недоступен (available = 0)
func (s *InventoryService) CheckStock(ctx context.Context, items []CheckItem) (CheckResult, error) {
	simulateWork(ctx, 100*time.Millisecond)

	result := CheckResult{AllAvailable: true, Items: make([]StockCheck, 0, len(items))}
	for _, item := range items {
		requested := item.Quantity
		if requested <= 0 {
			requested = 1
		}

		available := 0
		if product, err := s.repo.GetProduct(ctx, item.ProductID); err == nil {
			available = product.Stock
		}

		check := StockCheck{
			ProductID: item.ProductID,
			Requested: requested,
			Available: available,
			InStock:   available >= requested,
		}
		if !check.InStock {
			result.AllAvailable = false
		}
		result.Items = append(result.Items, check)
	}

	log := observability.L(ctx, s.logger)
	if result.AllAvailable {
		log.Info("stock check: all available", zap.Int("items_checked", len(items)))
	} else {
		log.Warn("stock check: some unavailable", zap.Int("items_checked", len(items)))
	}

	return result, nil
}

// Reserve резервирует товары под заказ и списывает сток.
// Товары, у которых после списания остаток ниже порога, порождают
// некритический алерт в notification: его отказ резервацию не ломает
func (s *InventoryService) Reserve(ctx context.Context, input ReserveInput) (repository.Reservation, error) {
	log := observability.L(ctx, s.logger)

	orderID := input.OrderID
	if orderID == "" {
		orderID = newID("ord")
	}

	items := make([]repository.ReserveItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		items = append(items, item)
	}

	reservation := repository.Reservation{
		ID:        newID("res"),
		OrderID:   orderID,
		Items:     items,
		Status:    "reserved",
		ExpiresAt: time.Now().Add(reservationTTL).UTC(),
	}

	simulateWork(ctx, 200*time.Millisecond)

	if err := s.repo.Reserve(ctx, reservation); err != nil {
		return repository.Reservation{}, fmt.Errorf("failed to reserve stock: %w", err)
	}

	log.Info("stock reserved",
		zap.String("order_id", orderID),
		zap.String("reservation_id", reservation.ID),
		zap.Int("items", len(items)))

	for _, item := range items {
		product, err := s.repo.GetProduct(ctx, item.ProductID)
		if err != nil || product.Stock >= lowStockThreshold {
			continue
		}
		if res := s.notification.SendLowStockAlert(ctx, input.Trace, product.ID, product.Stock); res.Failed() {
			log.Warn("failed to send low stock alert",
				zap.String("product_id", product.ID),
				zap.Int("current_stock", product.Stock))
		}
	}

	return reservation, nil
}

// Release снимает резервацию и возвращает сток на склад.
// Неизвестная резервация не ошибка: исходная витрина всегда отвечает успехом
func (s *InventoryService) Release(ctx context.Context, reservationID string) error {
	log := observability.L(ctx, s.logger)

	simulateWork(ctx, 100*time.Millisecond)

	_, err := s.repo.Release(ctx, reservationID)
	switch {
	case errors.Is(err, repository.ErrReservationNotFound):
		log.Warn("release of unknown reservation", zap.String("reservation_id", reservationID))
		return nil
	case err != nil:
		return fmt.Errorf("failed to release reservation: %w", err)
	}

	log.Info("reservation released", zap.String("reservation_id", reservationID))
	return nil
}

// newID генерирует id вида prefix_<12 hex символов>
func newID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:6])
}

// simulateWork имитирует обращение к складской БД с уважением к отмене контекста
func simulateWork(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
