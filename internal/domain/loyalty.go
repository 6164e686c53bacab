package domain

import "time"

// LoyaltyTier represents a loyalty classification derived from cumulative spend
type LoyaltyTier string

const (
	TierBronze LoyaltyTier = "bronze"
	TierSilver LoyaltyTier = "silver"
	TierGold   LoyaltyTier = "gold"
)

// DiscountRate returns the checkout discount rate for the tier
func (t LoyaltyTier) DiscountRate() float64 {
	switch t {
	case TierBronze:
		return 0.05
	case TierSilver:
		return 0.10
	case TierGold:
		return 0.15
	default:
		return 0
	}
}

// rank используется для сравнения уровней при апгрейде
func (t LoyaltyTier) rank() int {
	switch t {
	case TierSilver:
		return 1
	case TierGold:
		return 2
	default:
		return 0
	}
}

// TierForSpent возвращает уровень по накопленной сумме трат
func TierForSpent(totalSpent float64) LoyaltyTier {
	switch {
	case totalSpent >= GoldThreshold:
		return TierGold
	case totalSpent >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// LoyaltyAccount represents a customer's loyalty account.
// Один аккаунт на клиента; меняется только завершёнными покупками.
type LoyaltyAccount struct {
	ID         string
	CustomerID string
	Points     int
	Tier       LoyaltyTier
	TotalSpent float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ApplyOrder начисляет баллы и траты за заказ и пересчитывает уровень.
// Уровень — храповик: пересчёт может только повысить его, понижение
// не происходит даже при меньшем totalSpent (осознанное бизнес-правило,
// перенесённое из действующей логики).
func (a *LoyaltyAccount) ApplyOrder(orderTotal float64, pointsEarned int, now time.Time) {
	a.Points += pointsEarned
	a.TotalSpent += orderTotal

	if next := TierForSpent(a.TotalSpent); next.rank() > a.Tier.rank() {
		a.Tier = next
	}
	a.UpdatedAt = now
}
