package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shestoi/GoShopSim/services/analytics/internal/repository"
)

// Repository реализует EventRepository в памяти процесса.
// Хранятся агрегаты, а не сырые события: никто их обратно не читает,
// а счётчики по именам не растут с трафиком
type Repository struct {
	mu     sync.RWMutex
	counts map[string]int
	total  int
}

// NewRepository создаёт новый in-memory репозиторий
func NewRepository() *Repository {
	return &Repository{
		counts: make(map[string]int),
	}
}

// Record сохраняет событие
// Защищён мьютексом для безопасного доступа из разных горутин
func (r *Repository) Record(ctx context.Context, event repository.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[event.Name]++
	r.total++
	return nil
}

// Count возвращает общее число сохранённых событий
func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.total, nil
}

// TopNames возвращает до n имён событий по убыванию числа срабатываний.
// При равных счётчиках порядок лексикографический, чтобы выдача
// была детерминированной
func (r *Repository) TopNames(ctx context.Context, n int) ([]repository.NameCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	top := make([]repository.NameCount, 0, len(r.counts))
	for name, count := range r.counts {
		top = append(top, repository.NameCount{Name: name, Count: count})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Name < top[j].Name
	})

	if len(top) > n {
		top = top[:n]
	}
	return top, nil
}
