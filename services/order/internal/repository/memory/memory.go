package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shestoi/GoShopSim/services/order/internal/repository"
)

// Repository реализует OrderRepository в памяти процесса.
// Демо-стенд не переживает рестарт, настоящая БД ему не нужна
type Repository struct {
	mu     sync.RWMutex
	orders map[string]repository.Order
}

// NewRepository создаёт новый in-memory репозиторий
func NewRepository() *Repository {
	return &Repository{
		orders: make(map[string]repository.Order),
	}
}

// Save сохраняет заказ в памяти
// Защищён мьютексом для безопасного доступа из разных горутин
func (r *Repository) Save(ctx context.Context, order repository.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.CreatedAt == "" {
		order.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	r.orders[order.ID] = order
	return nil
}

// GetByID получает заказ по ID из памяти
// Защищён мьютексом для безопасного доступа из разных горутин
func (r *Repository) GetByID(ctx context.Context, id string) (repository.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return repository.Order{}, repository.ErrNotFound
	}

	return order, nil
}
