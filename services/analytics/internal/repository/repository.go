package repository

import "context"

// Event доменная модель отслеженного события
type Event struct {
	ID        string
	Name      string
	UserKey   string
	Timestamp float64
}

// NameCount имя события с числом срабатываний
type NameCount struct {
	Name  string
	Count int
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=EventRepository --dir=. --output=./mocks --outpkg=mocks

// EventRepository определяет интерфейс для работы с хранилищем событий
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type EventRepository interface {
	// Record сохраняет событие
	Record(ctx context.Context, event Event) error

	// Count возвращает общее число сохранённых событий
	Count(ctx context.Context) (int, error)

	// TopNames возвращает до n имён событий по убыванию числа срабатываний
	TopNames(ctx context.Context, n int) ([]NameCount, error)
}
