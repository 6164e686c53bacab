package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrderTotals_SilverTier(t *testing.T) {
	// Корзина на 1 000 000: налог 10%, скидка silver 10%,
	// итог остаётся 1 000 000, баллы = floor(1 000 000 / 50 000) = 20
	items := []PricedItem{
		{ProductID: "p1", Name: "Royal Canin 5kg", Quantity: 2, UnitPrice: 400_000},
		{ProductID: "p2", Name: "Cat toy", Quantity: 1, UnitPrice: 200_000},
	}
	account := &LoyaltyAccount{Tier: TierSilver}

	totals := ComputeOrderTotals(items, account)

	assert.Equal(t, 1_000_000.0, totals.Subtotal)
	assert.Equal(t, 100_000.0, totals.Tax)
	assert.Equal(t, 0.10, totals.DiscountRate)
	assert.Equal(t, 100_000.0, totals.LoyaltyDiscount)
	assert.Equal(t, 1_000_000.0, totals.Total)
	assert.Equal(t, 20, totals.PointsEarned)
}

func TestComputeOrderTotals_NoAccount(t *testing.T) {
	items := []PricedItem{
		{ProductID: "p1", Quantity: 1, UnitPrice: 500_000},
	}

	totals := ComputeOrderTotals(items, nil)

	assert.Equal(t, 500_000.0, totals.Subtotal)
	assert.Equal(t, 50_000.0, totals.Tax)
	assert.Equal(t, 0.0, totals.DiscountRate)
	assert.Equal(t, 0.0, totals.LoyaltyDiscount)
	assert.Equal(t, 550_000.0, totals.Total)
	assert.Equal(t, 11, totals.PointsEarned)
}

func TestComputeOrderTotals_RoundTrip(t *testing.T) {
	// total == subtotal + tax - discount для любого неотрицательного набора
	cases := []struct {
		name  string
		items []PricedItem
		tier  LoyaltyTier
	}{
		{"empty cart", nil, TierBronze},
		{"single cheap item", []PricedItem{{Quantity: 1, UnitPrice: 10_000}}, TierBronze},
		{"gold big cart", []PricedItem{
			{Quantity: 3, UnitPrice: 1_500_000},
			{Quantity: 7, UnitPrice: 95_000},
		}, TierGold},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := ComputeOrderTotals(tc.items, &LoyaltyAccount{Tier: tc.tier})
			assert.Equal(t, totals.Subtotal+totals.Tax-totals.LoyaltyDiscount, totals.Total)
			assert.GreaterOrEqual(t, totals.Total, 0.0)
		})
	}
}

func TestComputeOrderTotals_EmptyCart(t *testing.T) {
	totals := ComputeOrderTotals(nil, nil)

	assert.Equal(t, 0.0, totals.Total)
	assert.Equal(t, 0, totals.PointsEarned)
}

func TestDiscountRate_PerTier(t *testing.T) {
	assert.Equal(t, 0.05, TierBronze.DiscountRate())
	assert.Equal(t, 0.10, TierSilver.DiscountRate())
	assert.Equal(t, 0.15, TierGold.DiscountRate())
	assert.Equal(t, 0.0, LoyaltyTier("").DiscountRate())
}
