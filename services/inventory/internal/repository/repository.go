package repository

import (
	"context"
	"errors"
	"time"
)

// Product представляет товар на складе
type Product struct {
	ID       string
	Name     string
	Price    float64
	Stock    int
	Category string
}

// ReserveItem позиция резервации
type ReserveItem struct {
	ProductID string
	Quantity  int
}

// Reservation представляет резервацию товара под заказ
type Reservation struct {
	ID        string
	OrderID   string
	Items     []ReserveItem
	Status    string
	ExpiresAt time.Time
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=InventoryRepository --dir=. --output=./mocks --outpkg=mocks

// InventoryRepository определяет интерфейс для работы с хранилищем инвентаря
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type InventoryRepository interface {
	// ListProducts возвращает все товары в стабильном порядке каталога
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProduct получает товар по id
	// Возвращает ErrNotFound, если товар не найден
	GetProduct(ctx context.Context, productID string) (Product, error)

	// Reserve записывает резервацию и списывает сток по её позициям.
	// Списание не уводит остаток ниже нуля; сколько реально списано,
	// хранилище запоминает само и вернёт при release
	Reserve(ctx context.Context, res Reservation) error

	// Release снимает резервацию и возвращает списанный сток на склад
	// Возвращает ErrReservationNotFound для неизвестной резервации
	Release(ctx context.Context, reservationID string) (Reservation, error)
}

// ErrNotFound возвращается, когда товар не найден в хранилище
var ErrNotFound = errors.New("product not found")

// ErrReservationNotFound возвращается, когда резервация не найдена
var ErrReservationNotFound = errors.New("reservation not found")
