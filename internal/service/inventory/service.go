package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	inventoryRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/inventory"
)

// Service сервис резервирования остатков
type Service struct {
	inventoryRepo InventoryRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса остатков
func NewService(inventoryRepo InventoryRepository, logger Logger) *Service {
	return &Service{
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// Reserve резервирует товары корзины в филиале по принципу "всё или ничего".
//
// Фаза 1 валидирует каждую позицию против текущего остатка (внутри транзакции
// строки блокируются FOR UPDATE); любая нехватка прерывает операцию до записи.
// Фаза 2 списывает позиции по одной; неожиданный сбой запускает компенсацию -
// уже списанные позиции возвращаются на склад до проброса ошибки наверх.
//
// Вызывается из транзакции оформления заказа, поэтому компенсация там избыточна
// (откат транзакции вернёт всё сам), но метод обязан быть корректным и без неё.
func (s *Service) Reserve(ctx context.Context, branchID string, items []domain.CartItem) error {
	s.logger.Info("Reserve: reserving %d items at branch=%s", len(items), branchID)

	// Фаза 1: валидация всех позиций до первого списания
	for _, item := range items {
		if item.Quantity <= 0 {
			s.logger.Warn("Reserve: invalid quantity=%d for product=%s", item.Quantity, item.ProductID)
			return fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}

		record, err := s.inventoryRepo.GetRecordForUpdate(ctx, branchID, item.ProductID)
		if err != nil {
			if errors.Is(err, inventoryRepo.ErrRecordNotFound) {
				s.logger.Warn("Reserve: product=%s not stocked at branch=%s", item.ProductID, branchID)
				return fmt.Errorf("%w: product %s", ErrProductNotStocked, item.ProductID)
			}
			s.logger.Error("Reserve: failed to get record for product=%s: %v", item.ProductID, err)
			return fmt.Errorf("%w: Reserve - repository error: %v", ErrInternal, err)
		}

		if !record.CanDeduct(item.Quantity) {
			s.logger.Warn("Reserve: insufficient stock for product=%s at branch=%s: have=%d, want=%d",
				item.ProductID, branchID, record.Quantity, item.Quantity)
			return fmt.Errorf("%w: product %s (have %d, want %d)",
				ErrInsufficientStock, item.ProductID, record.Quantity, item.Quantity)
		}
	}

	// Фаза 2: списание с компенсацией при сбое
	deducted := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if err := s.inventoryRepo.Deduct(ctx, branchID, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("Reserve: deduct failed for product=%s at branch=%s: %v",
				item.ProductID, branchID, err)
			s.compensate(ctx, branchID, deducted)

			if errors.Is(err, inventoryRepo.ErrNegativeStock) {
				// Остаток изменился между валидацией и списанием
				return fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
			}
			return fmt.Errorf("%w: Reserve - deduct failed: %v", ErrInternal, err)
		}
		deducted = append(deducted, item)
	}

	s.logger.Info("Reserve: successfully reserved %d items at branch=%s", len(items), branchID)
	return nil
}

// GetLowStock возвращает позиции филиала с остатком ниже порога дозаказа
func (s *Service) GetLowStock(ctx context.Context, branchID string, threshold int) ([]*domain.LowStockRecord, error) {
	s.logger.Info("GetLowStock: fetching low stock for branch=%s, threshold=%d", branchID, threshold)

	records, err := s.inventoryRepo.GetLowStock(ctx, branchID, threshold)
	if err != nil {
		s.logger.Error("GetLowStock: repository error for branch=%s: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetLowStock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetLowStock: found %d low stock records at branch=%s", len(records), branchID)
	return records, nil
}

// compensate возвращает на склад уже списанные позиции.
// Ошибки компенсации логируются, но не маскируют исходную ошибку списания.
func (s *Service) compensate(ctx context.Context, branchID string, deducted []domain.CartItem) {
	for _, item := range deducted {
		if err := s.inventoryRepo.Restock(ctx, branchID, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("Reserve: compensation failed for product=%s at branch=%s, quantity=%d: %v",
				item.ProductID, branchID, item.Quantity, err)
		}
	}
}
