package get_low_stock

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

type InventoryService interface {
	GetLowStock(ctx context.Context, branchID string, threshold int) ([]*domain.LowStockRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
