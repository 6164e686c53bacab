package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	inventoryRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/inventory"
)

type fakeInventoryRepo struct {
	stock map[string]int // productID -> quantity

	deductFailFor string // продукт, на котором списание "ломается"
	deductErr     error

	deducted  []string
	restocked []string
}

func (f *fakeInventoryRepo) GetRecordForUpdate(_ context.Context, branchID, productID string) (*domain.InventoryRecord, error) {
	quantity, ok := f.stock[productID]
	if !ok {
		return nil, inventoryRepo.ErrRecordNotFound
	}
	return &domain.InventoryRecord{
		BranchID:  branchID,
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}, nil
}

func (f *fakeInventoryRepo) Deduct(_ context.Context, _, productID string, quantity int) error {
	if productID == f.deductFailFor {
		return f.deductErr
	}
	f.stock[productID] -= quantity
	f.deducted = append(f.deducted, productID)
	return nil
}

func (f *fakeInventoryRepo) Restock(_ context.Context, _, productID string, quantity int) error {
	f.stock[productID] += quantity
	f.restocked = append(f.restocked, productID)
	return nil
}

func (f *fakeInventoryRepo) GetLowStock(_ context.Context, _ string, threshold int) ([]*domain.LowStockRecord, error) {
	records := make([]*domain.LowStockRecord, 0)
	for id, quantity := range f.stock {
		if quantity < threshold {
			records = append(records, &domain.LowStockRecord{ProductID: id, Quantity: quantity})
		}
	}
	return records, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestReserve_Success(t *testing.T) {
	repo := &fakeInventoryRepo{stock: map[string]int{"food-1": 10, "toy-1": 3}}
	svc := NewService(repo, nopLogger{})

	err := svc.Reserve(context.Background(), "branch-1", []domain.CartItem{
		{ProductID: "food-1", Quantity: 4},
		{ProductID: "toy-1", Quantity: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, 6, repo.stock["food-1"])
	assert.Equal(t, 0, repo.stock["toy-1"])
}

func TestReserve_InsufficientStockLeavesEverythingUntouched(t *testing.T) {
	repo := &fakeInventoryRepo{stock: map[string]int{"food-1": 10, "toy-1": 1}}
	svc := NewService(repo, nopLogger{})

	err := svc.Reserve(context.Background(), "branch-1", []domain.CartItem{
		{ProductID: "food-1", Quantity: 4},
		{ProductID: "toy-1", Quantity: 2}, // не хватает
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	// Ни одна позиция не списана - валидация прошла раньше первого списания
	assert.Empty(t, repo.deducted)
	assert.Equal(t, 10, repo.stock["food-1"])
	assert.Equal(t, 1, repo.stock["toy-1"])
}

func TestReserve_UnknownProduct(t *testing.T) {
	repo := &fakeInventoryRepo{stock: map[string]int{"food-1": 10}}
	svc := NewService(repo, nopLogger{})

	err := svc.Reserve(context.Background(), "branch-1", []domain.CartItem{
		{ProductID: "ghost", Quantity: 1},
	})

	assert.ErrorIs(t, err, ErrProductNotStocked)
}

func TestReserve_InvalidQuantity(t *testing.T) {
	svc := NewService(&fakeInventoryRepo{stock: map[string]int{}}, nopLogger{})

	err := svc.Reserve(context.Background(), "branch-1", []domain.CartItem{
		{ProductID: "food-1", Quantity: 0},
	})

	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestReserve_CompensatesOnDeductFailure(t *testing.T) {
	repo := &fakeInventoryRepo{
		stock:         map[string]int{"food-1": 10, "toy-1": 5},
		deductFailFor: "toy-1",
		deductErr:     errors.New("connection reset"),
	}
	svc := NewService(repo, nopLogger{})

	err := svc.Reserve(context.Background(), "branch-1", []domain.CartItem{
		{ProductID: "food-1", Quantity: 4},
		{ProductID: "toy-1", Quantity: 2},
	})

	assert.ErrorIs(t, err, ErrInternal)
	// Уже списанный food-1 возвращён компенсацией
	assert.Equal(t, []string{"food-1"}, repo.restocked)
	assert.Equal(t, 10, repo.stock["food-1"])
	assert.Equal(t, 5, repo.stock["toy-1"])
}

func TestReserve_ConcurrentDrainMapsToInsufficientStock(t *testing.T) {
	// Остаток "ушёл" между валидацией и списанием
	repo := &fakeInventoryRepo{
		stock:         map[string]int{"food-1": 10},
		deductFailFor: "food-1",
		deductErr:     inventoryRepo.ErrNegativeStock,
	}
	svc := NewService(repo, nopLogger{})

	err := svc.Reserve(context.Background(), "branch-1", []domain.CartItem{
		{ProductID: "food-1", Quantity: 4},
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestGetLowStock(t *testing.T) {
	repo := &fakeInventoryRepo{stock: map[string]int{"food-1": 2, "toy-1": 50}}
	svc := NewService(repo, nopLogger{})

	records, err := svc.GetLowStock(context.Background(), "branch-1", 5)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "food-1", records[0].ProductID)
}
