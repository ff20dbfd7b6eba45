package memory

import (
	"context"
	"sync"

	"github.com/shestoi/GoShopSim/services/inventory/internal/repository"
)

// seedProducts восемь SKU демо-склада. Начальные остатки фиксированы,
// дальше живут своей жизнью: резервации их списывают
var seedProducts = []repository.Product{
	{ID: "prod_001", Name: "Feature Flag Starter Kit", Price: 29.99, Stock: 150, Category: "kits"},
	{ID: "prod_002", Name: "Progressive Rollout Pro", Price: 49.99, Stock: 75, Category: "tools"},
	{ID: "prod_003", Name: "A/B Testing Suite", Price: 79.99, Stock: 45, Category: "suites"},
	{ID: "prod_004", Name: "Targeting Rules Package", Price: 39.99, Stock: 200, Category: "packages"},
	{ID: "prod_005", Name: "Segment Builder", Price: 59.99, Stock: 100, Category: "tools"},
	{ID: "prod_006", Name: "Experimentation Platform", Price: 99.99, Stock: 30, Category: "platforms"},
	{ID: "prod_007", Name: "SDK Integration Kit", Price: 19.99, Stock: 500, Category: "kits"},
	{ID: "prod_008", Name: "Release Automation", Price: 149.99, Stock: 25, Category: "platforms"},
}

// reservationRecord резервация вместе с фактически списанным стоком.
// Списание может быть меньше запрошенного (остаток не уходит ниже нуля),
// поэтому для честного возврата храним его отдельно
type reservationRecord struct {
	reservation repository.Reservation
	applied     map[string]int
}

// MemoryRepository реализует InventoryRepository используя in-memory хранилище
type MemoryRepository struct {
	mu           sync.RWMutex
	products     map[string]repository.Product
	order        []string
	reservations map[string]reservationRecord
}

// NewMemoryRepository создаёт репозиторий, заполненный демо-каталогом
func NewMemoryRepository() *MemoryRepository {
	products := make(map[string]repository.Product, len(seedProducts))
	order := make([]string, 0, len(seedProducts))
	for _, p := range seedProducts {
		products[p.ID] = p
		order = append(order, p.ID)
	}
	return &MemoryRepository{
		products:     products,
		order:        order,
		reservations: make(map[string]reservationRecord),
	}
}

// ListProducts возвращает все товары в порядке каталога
func (r *MemoryRepository) ListProducts(ctx context.Context) ([]repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]repository.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

// GetProduct получает товар по id из памяти
func (r *MemoryRepository) GetProduct(ctx context.Context, productID string) (repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[productID]
	if !exists {
		return repository.Product{}, repository.ErrNotFound
	}
	return product, nil
}

// Reserve записывает резервацию и списывает сток по её позициям
// Защищён мьютексом для безопасного доступа из разных горутин
func (r *MemoryRepository) Reserve(ctx context.Context, res repository.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := make(map[string]int)
	for _, item := range res.Items {
		product, exists := r.products[item.ProductID]
		if !exists {
			continue
		}
		take := item.Quantity
		if take > product.Stock {
			take = product.Stock
		}
		product.Stock -= take
		r.products[item.ProductID] = product
		applied[item.ProductID] += take
	}

	r.reservations[res.ID] = reservationRecord{reservation: res, applied: applied}
	return nil
}

// Release снимает резервацию и возвращает ровно списанный сток на склад
// Защищён мьютексом для безопасного доступа из разных горутин
func (r *MemoryRepository) Release(ctx context.Context, reservationID string) (repository.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.reservations[reservationID]
	if !exists {
		return repository.Reservation{}, repository.ErrReservationNotFound
	}

	for productID, take := range record.applied {
		product, ok := r.products[productID]
		if !ok {
			continue
		}
		product.Stock += take
		r.products[productID] = product
	}

	delete(r.reservations, reservationID)
	return record.reservation, nil
}
