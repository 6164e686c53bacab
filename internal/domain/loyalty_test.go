package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTierForSpent(t *testing.T) {
	assert.Equal(t, TierBronze, TierForSpent(0))
	assert.Equal(t, TierBronze, TierForSpent(4_999_999))
	assert.Equal(t, TierSilver, TierForSpent(5_000_000))
	assert.Equal(t, TierSilver, TierForSpent(11_999_999))
	assert.Equal(t, TierGold, TierForSpent(12_000_000))
	assert.Equal(t, TierGold, TierForSpent(50_000_000))
}

func TestLoyaltyAccount_ApplyOrder(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	account := &LoyaltyAccount{
		CustomerID: "cust-1",
		Points:     10,
		Tier:       TierBronze,
		TotalSpent: 4_500_000,
	}

	account.ApplyOrder(1_000_000, 20, now)

	assert.Equal(t, 30, account.Points)
	assert.Equal(t, 5_500_000.0, account.TotalSpent)
	assert.Equal(t, TierSilver, account.Tier)
	assert.Equal(t, now, account.UpdatedAt)
}

// Уровень — храповик: даже если пересчёт по (ошибочно) меньшей сумме даёт
// более низкий уровень, понижения не происходит. Это действующее
// бизнес-правило, а не баг.
func TestLoyaltyAccount_TierNeverDowngrades(t *testing.T) {
	now := time.Now()
	account := &LoyaltyAccount{
		Tier:       TierGold,
		TotalSpent: -20_000_000, // синтетически испорченное значение
	}

	account.ApplyOrder(100_000, 2, now)

	assert.Equal(t, TierGold, account.Tier)
}
