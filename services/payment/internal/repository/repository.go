package repository

import (
	"context"
	"errors"
)

// Transaction представляет доменную модель транзакции платежа
// Это бизнес-сущность, не привязанная к HTTP или хранилищу
type Transaction struct {
	ID        string
	OrderID   string
	Amount    float64
	Currency  string
	Status    string
	Provider  string
	CreatedAt int64 // Unix timestamp
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=PaymentRepository --dir=. --output=./mocks --outpkg=mocks

// PaymentRepository определяет интерфейс для работы с хранилищем транзакций
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type PaymentRepository interface {
	// GetByID получает транзакцию по её id
	// Возвращает ErrNotFound, если транзакция не найдена
	GetByID(ctx context.Context, id string) (Transaction, error)

	// Save сохраняет транзакцию в хранилище
	Save(ctx context.Context, tx Transaction) error
}

// ErrNotFound возвращается, когда транзакция не найдена в хранилище
var ErrNotFound = errors.New("transaction not found")
