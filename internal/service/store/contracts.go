package store

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// ProductRepository интерфейс репозитория каталога товаров
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, category *string) ([]*domain.Product, error)
}

// InventoryRepository интерфейс репозитория остатков (наличие в каталоге)
type InventoryRepository interface {
	GetByBranch(ctx context.Context, branchID string) ([]*domain.InventoryRecord, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
}

// LoyaltyRepository интерфейс репозитория аккаунтов лояльности
type LoyaltyRepository interface {
	GetByCustomer(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
