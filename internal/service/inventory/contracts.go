package inventory

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// InventoryRepository интерфейс репозитория остатков
type InventoryRepository interface {
	GetRecordForUpdate(ctx context.Context, branchID, productID string) (*domain.InventoryRecord, error)
	Deduct(ctx context.Context, branchID, productID string, quantity int) error
	Restock(ctx context.Context, branchID, productID string, quantity int) error
	GetLowStock(ctx context.Context, branchID string, threshold int) ([]*domain.LowStockRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
