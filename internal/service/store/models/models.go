package models

import (
	"time"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// Response модели

// ProductResponse товар каталога; InStock заполняется при запросе с филиалом
type ProductResponse struct {
	ID          string  `json:"id"`
	ProductCode string  `json:"productCode"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	InStock     *int    `json:"inStock,omitempty"` // Остаток в запрошенном филиале
}

// ProductListResponse список товаров каталога
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int                `json:"total"`
}

// LoyaltyAccountResponse состояние аккаунта лояльности клиента
type LoyaltyAccountResponse struct {
	CustomerID   string  `json:"customerId"`
	Points       int     `json:"points"`
	Tier         string  `json:"tier"`
	DiscountRate float64 `json:"discountRate"`
	TotalSpent   float64 `json:"totalSpent"`
}

// OrderItemResponse позиция заказа
type OrderItemResponse struct {
	ItemID    string  `json:"itemId"`
	ItemName  string  `json:"itemName"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// OrderResponse заказ с позициями и расчётом стоимости
type OrderResponse struct {
	ID         string               `json:"id"`
	CustomerID string               `json:"customerId"`
	BranchID   string               `json:"branchId"`
	Items      []*OrderItemResponse `json:"items"`

	Subtotal             float64 `json:"subtotal"`
	Tax                  float64 `json:"tax"`
	LoyaltyDiscount      float64 `json:"loyaltyDiscount"`
	LoyaltyPointsApplied int     `json:"loyaltyPointsApplied"`
	Total                float64 `json:"total"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderListResponse список заказов клиента
type OrderListResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Total  int              `json:"total"`
}

// FromDomainProduct конвертирует товар в response; stock может быть nil
func FromDomainProduct(p *domain.Product, stock *int) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		ProductCode: p.ProductCode,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		InStock:     stock,
	}
}

// FromDomainLoyaltyAccount конвертирует аккаунт лояльности в response
func FromDomainLoyaltyAccount(a *domain.LoyaltyAccount) *LoyaltyAccountResponse {
	return &LoyaltyAccountResponse{
		CustomerID:   a.CustomerID,
		Points:       a.Points,
		Tier:         string(a.Tier),
		DiscountRate: a.Tier.DiscountRate(),
		TotalSpent:   a.TotalSpent,
	}
}

// FromDomainOrder конвертирует заказ в response
func FromDomainOrder(o *domain.Order) *OrderResponse {
	items := make([]*OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, &OrderItemResponse{
			ItemID:    item.ItemID,
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	return &OrderResponse{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		BranchID:             o.BranchID,
		Items:                items,
		Subtotal:             o.Subtotal,
		Tax:                  o.Tax,
		LoyaltyDiscount:      o.LoyaltyDiscount,
		LoyaltyPointsApplied: o.LoyaltyPointsApplied,
		Total:                o.Total,
		Status:               string(o.Status),
		CreatedAt:            o.CreatedAt,
	}
}

// FromDomainOrderList конвертирует список заказов в response
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	items := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, FromDomainOrder(o))
	}
	return &OrderListResponse{
		Orders: items,
		Total:  len(items),
	}
}
