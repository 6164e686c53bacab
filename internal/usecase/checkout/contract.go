package checkout

import (
	"context"
	"time"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// ProductRepository интерфейс репозитория каталога товаров
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
}

// InventoryReserver интерфейс сервиса резервирования остатков
type InventoryReserver interface {
	Reserve(ctx context.Context, branchID string, items []domain.CartItem) error
}

// LoyaltyRepository интерфейс репозитория аккаунтов лояльности
type LoyaltyRepository interface {
	GetByCustomerForUpdate(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error)
	Create(ctx context.Context, account *domain.LoyaltyAccount) (*domain.LoyaltyAccount, error)
	Update(ctx context.Context, account *domain.LoyaltyAccount) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
