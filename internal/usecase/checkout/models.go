package checkout

import "time"

// Request модель запроса на оформление заказа
type Request struct {
	CustomerID string     // ID клиента (из заголовка аутентификации)
	BranchID   string     // ID филиала, со склада которого списывается товар
	Items      []CartItem // Позиции корзины
}

// CartItem позиция корзины в запросе
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Response модель ответа с оформленным заказом и состоянием лояльности
type Response struct {
	OrderID    string     // ID созданного заказа
	CustomerID string     // ID клиента
	BranchID   string     // ID филиала
	Items      []ItemLine // Позиции заказа с ценами

	Subtotal        float64 // Сумма позиций до налога и скидки
	Tax             float64 // Налог от суммы до скидки
	LoyaltyDiscount float64 // Скидка по уровню лояльности
	Total           float64 // Итог: subtotal + tax - discount (не ниже нуля)

	PointsEarned int    // Начисленные баллы (1 за каждые 50 000 итога)
	LoyaltyTier  string // Уровень после оформления заказа
	TotalPoints  int    // Баллы на счету после начисления

	Status    string    // Статус заказа
	CreatedAt time.Time // Время оформления
}

// ItemLine позиция заказа в ответе
type ItemLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}
