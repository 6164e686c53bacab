package checkout

import (
	"fmt"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

	if req.BranchID == "" {
		return fmt.Errorf("%w: branchID is required", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return ErrEmptyCart
	}

	for _, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: productID is required", ErrInvalidInput)
		}
		if item.Quantity < domain.MinOrderItemQuantity {
			return fmt.Errorf("%w: quantity must be at least %d for product %s",
				ErrInvalidInput, domain.MinOrderItemQuantity, item.ProductID)
		}
	}

	return nil
}

// mergeItems объединяет дубликаты позиций корзины, сохраняя порядок первого вхождения
func mergeItems(items []CartItem) []domain.CartItem {
	index := make(map[string]int, len(items))
	merged := make([]domain.CartItem, 0, len(items))

	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, domain.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return merged
}
