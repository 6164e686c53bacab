package get_order

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/service/store/models"
)

type StoreService interface {
	GetOrder(ctx context.Context, id string, userID string) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
