package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	loyaltyRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/loyalty"
	orderRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/order"
	productRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/product"
	"github.com/m04kA/PetCare-PortalService/internal/service/store/models"
)

// Service сервис витрины зоомагазина: каталог, заказы, аккаунт лояльности
type Service struct {
	productRepo   ProductRepository
	inventoryRepo InventoryRepository
	orderRepo     OrderRepository
	loyaltyRepo   LoyaltyRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса витрины
func NewService(
	productRepo ProductRepository,
	inventoryRepo InventoryRepository,
	orderRepo OrderRepository,
	loyaltyRepo LoyaltyRepository,
	logger Logger,
) *Service {
	return &Service{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		loyaltyRepo:   loyaltyRepo,
		logger:        logger,
	}
}

// ListProducts возвращает каталог товаров
// Опционально фильтрует по категории; при указании branchID добавляет
// к каждому товару остаток в этом филиале (товар без записи остатка - 0)
func (s *Service) ListProducts(ctx context.Context, category *string, branchID *string) (*models.ProductListResponse, error) {
	s.logger.Info("ListProducts: fetching catalog, category=%v, branch=%v", category, branchID)

	products, err := s.productRepo.List(ctx, category)
	if err != nil {
		s.logger.Error("ListProducts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProducts - repository error: %v", ErrInternal, err)
	}

	// Остатки по филиалу подтягиваем одним запросом и раскладываем в map
	var stockByProduct map[string]int
	if branchID != nil {
		records, err := s.inventoryRepo.GetByBranch(ctx, *branchID)
		if err != nil {
			s.logger.Error("ListProducts: failed to get stock for branch=%s: %v", *branchID, err)
			return nil, fmt.Errorf("%w: ListProducts - stock lookup failed: %v", ErrInternal, err)
		}

		stockByProduct = make(map[string]int, len(records))
		for _, rec := range records {
			stockByProduct[rec.ProductID] = rec.Quantity
		}
	}

	items := make([]*models.ProductResponse, 0, len(products))
	for _, p := range products {
		var stock *int
		if stockByProduct != nil {
			quantity := stockByProduct[p.ID] // Нет записи - считаем ноль
			stock = &quantity
		}
		items = append(items, models.FromDomainProduct(p, stock))
	}

	s.logger.Info("ListProducts: returning %d products", len(items))
	return &models.ProductListResponse{Products: items, Total: len(items)}, nil
}

// GetProduct возвращает карточку товара по ID
func (s *Service) GetProduct(ctx context.Context, id string) (*models.ProductResponse, error) {
	s.logger.Info("GetProduct: fetching product id=%s", id)

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("GetProduct: product id=%s not found", id)
			return nil, ErrProductNotFound
		}
		s.logger.Error("GetProduct: repository error for product id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetProduct - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProduct(product, nil), nil
}

// GetLoyaltyAccount возвращает аккаунт лояльности клиента.
// Аккаунт создаётся лениво при первом оформлении заказа, поэтому его отсутствие
// не ошибка: клиенту показывается стартовое состояние (bronze, 0 баллов).
func (s *Service) GetLoyaltyAccount(ctx context.Context, customerID string) (*models.LoyaltyAccountResponse, error) {
	s.logger.Info("GetLoyaltyAccount: fetching account for customer=%s", customerID)

	account, err := s.loyaltyRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, loyaltyRepo.ErrAccountNotFound) {
			s.logger.Info("GetLoyaltyAccount: no account for customer=%s, returning defaults", customerID)
			return models.FromDomainLoyaltyAccount(&domain.LoyaltyAccount{
				CustomerID: customerID,
				Tier:       domain.TierBronze,
			}), nil
		}
		s.logger.Error("GetLoyaltyAccount: repository error for customer=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetLoyaltyAccount - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLoyaltyAccount(account), nil
}

// GetOrder возвращает заказ по ID
// Заказ видит только его клиент
func (s *Service) GetOrder(ctx context.Context, id string, userID string) (*models.OrderResponse, error) {
	s.logger.Info("GetOrder: fetching order id=%s for user=%s", id, userID)

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetOrder: order id=%s not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetOrder: repository error for order id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetOrder - repository error: %v", ErrInternal, err)
	}

	if order.CustomerID != userID {
		s.logger.Warn("GetOrder: access denied for user=%s to order id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainOrder(order), nil
}

// GetCustomerOrders возвращает историю заказов клиента (новые первыми)
func (s *Service) GetCustomerOrders(ctx context.Context, customerID string) (*models.OrderListResponse, error) {
	s.logger.Info("GetCustomerOrders: fetching orders for customer=%s", customerID)

	orders, err := s.orderRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("GetCustomerOrders: repository error for customer=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerOrders: fetched %d orders for customer=%s", len(orders), customerID)
	return models.FromDomainOrderList(orders), nil
}
