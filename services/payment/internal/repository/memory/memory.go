package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shestoi/GoShopSim/services/payment/internal/repository"
)

// MemoryRepository реализует PaymentRepository используя in-memory хранилище
// Демо-стек живёт без внешней БД: транзакции нужны только в рамках
// одного прогона сценария
type MemoryRepository struct {
	mu           sync.RWMutex
	transactions map[string]repository.Transaction // ключ = transaction id
}

// NewMemoryRepository создаёт новый in-memory репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		transactions: make(map[string]repository.Transaction),
	}
}

// GetByID получает транзакцию по id из памяти
// Защищён мьютексом для безопасного доступа из разных горутин
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (repository.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, exists := r.transactions[id]
	if !exists {
		return repository.Transaction{}, repository.ErrNotFound
	}

	return tx, nil
}

// Save сохраняет транзакцию в памяти
// Защищён мьютексом для безопасного доступа из разных горутин
func (r *MemoryRepository) Save(ctx context.Context, tx repository.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tx.CreatedAt == 0 {
		tx.CreatedAt = time.Now().Unix()
	}
	r.transactions[tx.ID] = tx
	return nil
}
