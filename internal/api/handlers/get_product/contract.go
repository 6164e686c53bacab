package get_product

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/service/store/models"
)

type StoreService interface {
	GetProduct(ctx context.Context, id string) (*models.ProductResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
