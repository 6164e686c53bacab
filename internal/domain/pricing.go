package domain

import "math"

// PricedItem позиция корзины с известной ценой
type PricedItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice float64
}

// OrderTotals результат расчёта стоимости заказа
type OrderTotals struct {
	Subtotal        float64
	Tax             float64
	DiscountRate    float64
	LoyaltyDiscount float64
	Total           float64
	PointsEarned    int
}

// ComputeOrderTotals вычисляет стоимость заказа.
// Налог и скидка считаются независимо, оба от суммы ДО скидки:
// total = subtotal + tax - discount. Итог защитно ограничен нулём снизу.
// account может быть nil — тогда скидка 0 и уровень не участвует.
func ComputeOrderTotals(items []PricedItem, account *LoyaltyAccount) OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	tax := subtotal * TaxRate

	var discountRate float64
	if account != nil {
		discountRate = account.Tier.DiscountRate()
	}
	loyaltyDiscount := subtotal * discountRate

	total := subtotal + tax - loyaltyDiscount
	if total < 0 {
		total = 0
	}

	return OrderTotals{
		Subtotal:        subtotal,
		Tax:             tax,
		DiscountRate:    discountRate,
		LoyaltyDiscount: loyaltyDiscount,
		Total:           total,
		PointsEarned:    int(math.Floor(total / PointsPerUnit)),
	}
}
