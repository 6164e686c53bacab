package get_loyalty_account

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/service/store/models"
)

type StoreService interface {
	GetLoyaltyAccount(ctx context.Context, customerID string) (*models.LoyaltyAccountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
