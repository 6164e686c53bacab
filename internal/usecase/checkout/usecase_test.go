package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	loyaltyRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/loyalty"
	inventorySvc "github.com/m04kA/PetCare-PortalService/internal/service/inventory"
)

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	out := make(map[string]*domain.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeReserver struct {
	err error

	branchID string
	items    []domain.CartItem
}

func (f *fakeReserver) Reserve(_ context.Context, branchID string, items []domain.CartItem) error {
	if f.err != nil {
		return f.err
	}
	f.branchID = branchID
	f.items = items
	return nil
}

type fakeLoyaltyRepo struct {
	account *domain.LoyaltyAccount

	created *domain.LoyaltyAccount
	updated *domain.LoyaltyAccount
}

func (f *fakeLoyaltyRepo) GetByCustomerForUpdate(_ context.Context, _ string) (*domain.LoyaltyAccount, error) {
	if f.account == nil {
		return nil, loyaltyRepo.ErrAccountNotFound
	}
	return f.account, nil
}

func (f *fakeLoyaltyRepo) Create(_ context.Context, account *domain.LoyaltyAccount) (*domain.LoyaltyAccount, error) {
	f.created = account
	return account, nil
}

func (f *fakeLoyaltyRepo) Update(_ context.Context, account *domain.LoyaltyAccount) error {
	f.updated = account
	return nil
}

type fakeOrderRepo struct {
	created *domain.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	order.CreatedAt = time.Now()
	f.created = order
	return order, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func catalog() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domain.Product{
		"food-1": {ID: "food-1", Name: "Royal Canin 2kg", Price: 400_000},
		"toy-1":  {ID: "toy-1", Name: "Rope toy", Price: 100_000},
	}}
}

func newTestUseCase(products *fakeProductRepo, reserver *fakeReserver, loyalty *fakeLoyaltyRepo, orders *fakeOrderRepo) *UseCase {
	return NewUseCase(products, reserver, loyalty, orders, fakeTxManager{}, nopLogger{})
}

func TestExecute_SilverTierCheckout(t *testing.T) {
	// 2x400k + 2x100k = 1 000 000; налог 100 000; скидка silver 100 000
	loyalty := &fakeLoyaltyRepo{account: &domain.LoyaltyAccount{
		ID:         "acc-1",
		CustomerID: "cust-1",
		Points:     5,
		Tier:       domain.TierSilver,
		TotalSpent: 6_000_000,
	}}
	orders := &fakeOrderRepo{}
	reserver := &fakeReserver{}
	uc := newTestUseCase(catalog(), reserver, loyalty, orders)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID: "cust-1",
		BranchID:   "branch-1",
		Items: []CartItem{
			{ProductID: "food-1", Quantity: 2},
			{ProductID: "toy-1", Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1_000_000.0, resp.Subtotal)
	assert.Equal(t, 100_000.0, resp.Tax)
	assert.Equal(t, 100_000.0, resp.LoyaltyDiscount)
	assert.Equal(t, 1_000_000.0, resp.Total)
	assert.Equal(t, 20, resp.PointsEarned)
	assert.Equal(t, 25, resp.TotalPoints)

	require.NotNil(t, orders.created)
	assert.Equal(t, domain.OrderStatusConfirmed, orders.created.Status)
	assert.Len(t, orders.created.Items, 2)

	require.NotNil(t, loyalty.updated)
	assert.Equal(t, 7_000_000.0, loyalty.updated.TotalSpent)
	assert.Equal(t, "branch-1", reserver.branchID)
}

func TestExecute_FirstPurchaseCreatesAccount(t *testing.T) {
	loyalty := &fakeLoyaltyRepo{}
	orders := &fakeOrderRepo{}
	uc := newTestUseCase(catalog(), &fakeReserver{}, loyalty, orders)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID: "cust-new",
		BranchID:   "branch-1",
		Items:      []CartItem{{ProductID: "toy-1", Quantity: 1}},
	})

	require.NoError(t, err)
	// Без аккаунта скидки нет
	assert.Equal(t, 0.0, resp.LoyaltyDiscount)
	assert.Equal(t, 110_000.0, resp.Total)
	assert.Equal(t, 2, resp.PointsEarned)
	assert.Equal(t, string(domain.TierBronze), resp.LoyaltyTier)

	require.NotNil(t, loyalty.created)
	assert.Equal(t, "cust-new", loyalty.created.CustomerID)
	assert.Equal(t, 2, loyalty.created.Points)
	assert.Nil(t, loyalty.updated)
}

func TestExecute_TierUpgradeAfterOrder(t *testing.T) {
	loyalty := &fakeLoyaltyRepo{account: &domain.LoyaltyAccount{
		ID:         "acc-1",
		CustomerID: "cust-1",
		Tier:       domain.TierBronze,
		TotalSpent: 4_800_000,
	}}
	uc := newTestUseCase(catalog(), &fakeReserver{}, loyalty, &fakeOrderRepo{})

	// Скидка считается по уровню до заказа (bronze), апгрейд происходит после
	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID: "cust-1",
		BranchID:   "branch-1",
		Items:      []CartItem{{ProductID: "food-1", Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 20_000.0, resp.LoyaltyDiscount) // 5% bronze
	assert.Equal(t, string(domain.TierSilver), resp.LoyaltyTier)
	assert.Equal(t, domain.TierSilver, loyalty.updated.Tier)
}

func TestExecute_InsufficientStockAbortsEverything(t *testing.T) {
	loyalty := &fakeLoyaltyRepo{}
	orders := &fakeOrderRepo{}
	reserver := &fakeReserver{err: inventorySvc.ErrInsufficientStock}
	uc := newTestUseCase(catalog(), reserver, loyalty, orders)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID: "cust-1",
		BranchID:   "branch-1",
		Items:      []CartItem{{ProductID: "food-1", Quantity: 99}},
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Nil(t, orders.created)
	assert.Nil(t, loyalty.created)
	assert.Nil(t, loyalty.updated)
}

func TestExecute_UnknownProduct(t *testing.T) {
	uc := newTestUseCase(catalog(), &fakeReserver{}, &fakeLoyaltyRepo{}, &fakeOrderRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID: "cust-1",
		BranchID:   "branch-1",
		Items:      []CartItem{{ProductID: "missing", Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestExecute_DuplicateItemsMerged(t *testing.T) {
	reserver := &fakeReserver{}
	uc := newTestUseCase(catalog(), reserver, &fakeLoyaltyRepo{}, &fakeOrderRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID: "cust-1",
		BranchID:   "branch-1",
		Items: []CartItem{
			{ProductID: "toy-1", Quantity: 1},
			{ProductID: "toy-1", Quantity: 2},
		},
	})

	require.NoError(t, err)
	require.Len(t, reserver.items, 1)
	assert.Equal(t, 3, reserver.items[0].Quantity)
	assert.Equal(t, 300_000.0, resp.Subtotal)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(catalog(), &fakeReserver{}, &fakeLoyaltyRepo{}, &fakeOrderRepo{})

	_, err := uc.Execute(context.Background(), &Request{CustomerID: "cust-1", BranchID: "branch-1"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = uc.Execute(context.Background(), &Request{
		CustomerID: "cust-1",
		BranchID:   "branch-1",
		Items:      []CartItem{{ProductID: "toy-1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		BranchID: "branch-1",
		Items:    []CartItem{{ProductID: "toy-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
