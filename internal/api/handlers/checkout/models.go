package checkout

import (
	"time"

	checkoutUC "github.com/m04kA/PetCare-PortalService/internal/usecase/checkout"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	BranchID string     `json:"branchId"`
	Items    []CartItem `json:"items"`
}

// CartItem позиция корзины
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	OrderID    string     `json:"orderId"`
	CustomerID string     `json:"customerId"`
	BranchID   string     `json:"branchId"`
	Items      []ItemLine `json:"items"`

	Subtotal        float64 `json:"subtotal"`
	Tax             float64 `json:"tax"`
	LoyaltyDiscount float64 `json:"loyaltyDiscount"`
	Total           float64 `json:"total"`

	PointsEarned int    `json:"pointsEarned"`
	LoyaltyTier  string `json:"loyaltyTier"`
	TotalPoints  int    `json:"totalPoints"`

	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// ItemLine позиция заказа
type ItemLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(customerID string) *checkoutUC.Request {
	items := make([]checkoutUC.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, checkoutUC.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return &checkoutUC.Request{
		CustomerID: customerID,
		BranchID:   r.BranchID,
		Items:      items,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkoutUC.Response) *OrderResponse {
	items := make([]ItemLine, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, ItemLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	return &OrderResponse{
		OrderID:         resp.OrderID,
		CustomerID:      resp.CustomerID,
		BranchID:        resp.BranchID,
		Items:           items,
		Subtotal:        resp.Subtotal,
		Tax:             resp.Tax,
		LoyaltyDiscount: resp.LoyaltyDiscount,
		Total:           resp.Total,
		PointsEarned:    resp.PointsEarned,
		LoyaltyTier:     resp.LoyaltyTier,
		TotalPoints:     resp.TotalPoints,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
