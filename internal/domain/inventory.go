package domain

import "time"

// InventoryRecord остаток товара в филиале.
// Инвариант: Quantity никогда не уходит в минус — списание, которое
// увело бы остаток ниже нуля, отклоняется до каких-либо изменений.
type InventoryRecord struct {
	BranchID  string
	ProductID string
	Quantity  int
	UpdatedAt time.Time
}

// CanDeduct returns true if the requested quantity is in stock
func (r *InventoryRecord) CanDeduct(quantity int) bool {
	return quantity > 0 && r.Quantity >= quantity
}

// LowStockRecord строка отчёта по товарам с остатком ниже порога дозаказа
type LowStockRecord struct {
	BranchID    string
	ProductID   string
	ProductName string
	Quantity    int
}
