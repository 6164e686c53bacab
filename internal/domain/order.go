package domain

import "time"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a confirmed checkout.
// Создается атомарно при оформлении корзины и после этого неизменяем
// (меняться может только статус доставки).
type Order struct {
	ID         string
	CustomerID string
	BranchID   string
	Items      []OrderItem

	Subtotal             float64
	Tax                  float64
	LoyaltyDiscount      float64
	LoyaltyPointsApplied int // Начисленные (не списанные) баллы
	Total                float64

	Status    OrderStatus
	CreatedAt time.Time
}

// OrderItem represents a single order line
type OrderItem struct {
	ID        string
	ItemID    string
	ItemName  string
	Quantity  int
	UnitPrice float64
	Total     float64 // Quantity × UnitPrice
}

// Product товар зоомагазина (каталожная запись, цена и название)
type Product struct {
	ID          string
	ProductCode string
	Name        string
	Description string
	Category    string
	Price       float64
	CreatedAt   time.Time
}

// CartItem позиция корзины на входе оформления заказа
type CartItem struct {
	ProductID string
	Quantity  int
}
