package repository

import (
	"context"
	"errors"

	"github.com/shestoi/GoShopSim/platform/personas"
)

// Item позиция заказа: товар каталога с зафиксированной на момент
// оформления ценой
type Item struct {
	ProductID string
	Name      string
	Price     float64
}

// Order представляет доменную модель заказа
// Это бизнес-сущность, не привязанная к HTTP
type Order struct {
	ID        string
	User      personas.Persona
	Items     []Item
	Total     float64
	Status    string
	CreatedAt string
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=OrderRepository --dir=. --output=./mocks --outpkg=mocks

// OrderRepository определяет интерфейс для работы с хранилищем заказов
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type OrderRepository interface {
	// Save сохраняет заказ в хранилище
	Save(ctx context.Context, order Order) error

	// GetByID получает заказ по ID
	// Возвращает ErrNotFound, если заказ не найден
	GetByID(ctx context.Context, id string) (Order, error)
}

// ErrNotFound возвращается, когда заказ не найден в хранилище
var ErrNotFound = errors.New("order not found")
