package list_products

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/service/store/models"
)

type StoreService interface {
	ListProducts(ctx context.Context, category *string, branchID *string) (*models.ProductListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
