package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	loyaltyRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/loyalty"
	inventorySvc "github.com/m04kA/PetCare-PortalService/internal/service/inventory"
)

// UseCase use case оформления заказа зоомагазина
type UseCase struct {
	productRepo  ProductRepository
	inventory    InventoryReserver
	loyaltyRepo  LoyaltyRepository
	orderRepo    OrderRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	productRepo ProductRepository,
	inventory InventoryReserver,
	loyaltyRepo LoyaltyRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		productRepo:  productRepo,
		inventory:    inventory,
		loyaltyRepo:  loyaltyRepo,
		orderRepo:    orderRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет оформление заказа.
//
// Резервирование остатков, расчёт стоимости, сохранение заказа и начисление
// лояльности выполняются в одной сериализуемой транзакции: либо происходит
// всё, либо ничего. Скидка считается по уровню клиента ДО этого заказа;
// начисленные им баллы и траты применяются к аккаунту уже после расчёта.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Checkout: customer=%s, branch=%s, items=%d",
		req.CustomerID, req.BranchID, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Checkout: validation failed: %v", err)
		return nil, err
	}

	// 2. Дубликаты позиций склеиваются до резервирования
	cart := mergeItems(req.Items)

	// 3. Загружаем товары корзины
	ids := make([]string, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.ProductID)
	}

	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Checkout: failed to load products: %v", err)
		return nil, fmt.Errorf("%w: failed to load products: %v", ErrInternal, err)
	}

	pricedItems := make([]domain.PricedItem, 0, len(cart))
	for _, item := range cart {
		product, ok := products[item.ProductID]
		if !ok {
			uc.logger.Warn("Checkout: product=%s not found", item.ProductID)
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		pricedItems = append(pricedItems, domain.PricedItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	now := uc.timeProvider.Now()

	var (
		order   *domain.Order
		account *domain.LoyaltyAccount
		totals  domain.OrderTotals
	)

	// 4. Вся мутация в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Резервируем остатки (всё или ничего, строки под FOR UPDATE)
		if err := uc.inventory.Reserve(txCtx, req.BranchID, cart); err != nil {
			if errors.Is(err, inventorySvc.ErrInsufficientStock) ||
				errors.Is(err, inventorySvc.ErrProductNotStocked) {
				uc.logger.Warn("Checkout: reservation rejected: %v", err)
				return fmt.Errorf("%w: %v", ErrInsufficientStock, err)
			}
			uc.logger.Error("Checkout: reservation failed: %v", err)
			return fmt.Errorf("%w: reservation failed: %v", ErrInternal, err)
		}

		// 4.2. Захватываем аккаунт лояльности; его отсутствие - не ошибка
		acc, err := uc.loyaltyRepo.GetByCustomerForUpdate(txCtx, req.CustomerID)
		if err != nil && !errors.Is(err, loyaltyRepo.ErrAccountNotFound) {
			uc.logger.Error("Checkout: failed to get loyalty account: %v", err)
			return fmt.Errorf("%w: failed to get loyalty account: %v", ErrInternal, err)
		}

		// 4.3. Считаем стоимость по уровню до заказа (nil аккаунт - без скидки)
		totals = domain.ComputeOrderTotals(pricedItems, acc)

		// 4.4. Сохраняем заказ с позициями
		items := make([]domain.OrderItem, 0, len(pricedItems))
		for _, item := range pricedItems {
			items = append(items, domain.OrderItem{
				ID:        uuid.NewString(),
				ItemID:    item.ProductID,
				ItemName:  item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Total:     item.UnitPrice * float64(item.Quantity),
			})
		}

		order = &domain.Order{
			ID:                   uuid.NewString(),
			CustomerID:           req.CustomerID,
			BranchID:             req.BranchID,
			Items:                items,
			Subtotal:             totals.Subtotal,
			Tax:                  totals.Tax,
			LoyaltyDiscount:      totals.LoyaltyDiscount,
			LoyaltyPointsApplied: totals.PointsEarned,
			Total:                totals.Total,
			Status:               domain.OrderStatusConfirmed,
		}

		if _, err := uc.orderRepo.Create(txCtx, order); err != nil {
			uc.logger.Error("Checkout: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		// 4.5. Применяем заказ к аккаунту; при первой покупке создаём его лениво
		if acc == nil {
			acc = &domain.LoyaltyAccount{
				ID:         uuid.NewString(),
				CustomerID: req.CustomerID,
				Tier:       domain.TierBronze,
			}
			acc.ApplyOrder(totals.Total, totals.PointsEarned, now)

			if _, err := uc.loyaltyRepo.Create(txCtx, acc); err != nil {
				uc.logger.Error("Checkout: failed to create loyalty account: %v", err)
				return fmt.Errorf("%w: failed to create loyalty account: %v", ErrInternal, err)
			}
		} else {
			acc.ApplyOrder(totals.Total, totals.PointsEarned, now)

			if err := uc.loyaltyRepo.Update(txCtx, acc); err != nil {
				uc.logger.Error("Checkout: failed to update loyalty account: %v", err)
				return fmt.Errorf("%w: failed to update loyalty account: %v", ErrInternal, err)
			}
		}

		account = acc
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("Checkout: order id=%s created, total=%.0f, points=%d, tier=%s",
		order.ID, totals.Total, totals.PointsEarned, account.Tier)

	lines := make([]ItemLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, ItemLine{
			ProductID: item.ItemID,
			Name:      item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	return &Response{
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		BranchID:        order.BranchID,
		Items:           lines,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		LoyaltyDiscount: totals.LoyaltyDiscount,
		Total:           totals.Total,
		PointsEarned:    totals.PointsEarned,
		LoyaltyTier:     string(account.Tier),
		TotalPoints:     account.Points,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
	}, nil
}
