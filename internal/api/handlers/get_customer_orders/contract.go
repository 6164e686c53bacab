package get_customer_orders

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/service/store/models"
)

type StoreService interface {
	GetCustomerOrders(ctx context.Context, customerID string) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
