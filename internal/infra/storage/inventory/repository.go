package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	"github.com/m04kA/PetCare-PortalService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-PortalService/pkg/psqlbuilder"
)

// pgCheckViolation код нарушения CHECK-ограничения PostgreSQL
const pgCheckViolation = "23514"

// Repository репозиторий остатков товаров по филиалам
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория остатков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRecord получает остаток товара в филиале
func (r *Repository) GetRecord(ctx context.Context, branchID, productID string) (*domain.InventoryRecord, error) {
	return r.getRecord(ctx, branchID, productID, false)
}

// GetRecordForUpdate получает остаток с блокировкой строки.
// Вызывается внутри транзакции оформления заказа перед валидацией количества.
func (r *Repository) GetRecordForUpdate(ctx context.Context, branchID, productID string) (*domain.InventoryRecord, error) {
	return r.getRecord(ctx, branchID, productID, true)
}

func (r *Repository) getRecord(ctx context.Context, branchID, productID string, forUpdate bool) (*domain.InventoryRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("branch_id, product_id, quantity, updated_at").
		From("inventory_records").
		Where(squirrel.Eq{"branch_id": branchID, "product_id": productID})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getRecord - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.InventoryRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.BranchID,
		&record.ProductID,
		&record.Quantity,
		&record.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getRecord - scan record: %v", ErrScanRow, err)
	}

	return &record, nil
}

// Deduct списывает quantity единиц товара.
// Условие quantity >= $requested в WHERE вместе с CHECK в схеме гарантирует,
// что остаток не уйдёт в минус даже при конкурентном списании.
func (r *Repository) Deduct(ctx context.Context, branchID, productID string, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("inventory_records").
		Set("quantity", squirrel.Expr("quantity - ?", quantity)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"branch_id": branchID, "product_id": productID}).
		Where(squirrel.GtOrEq{"quantity": quantity}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deduct - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isCheckViolation(err) {
			return ErrNegativeStock
		}
		return fmt.Errorf("%w: Deduct - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deduct - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо записи нет, либо остатка не хватает — различаем отдельным чтением
		if _, getErr := r.getRecord(ctx, branchID, productID, false); getErr != nil {
			return getErr
		}
		return ErrNegativeStock
	}

	return nil
}

// Restock добавляет quantity единиц товара (компенсация отката или приёмка)
func (r *Repository) Restock(ctx context.Context, branchID, productID string, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("inventory_records").
		Set("quantity", squirrel.Expr("quantity + ?", quantity)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"branch_id": branchID, "product_id": productID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Restock - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Restock - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Restock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// GetByBranch возвращает все остатки филиала (для каталога с наличием)
func (r *Repository) GetByBranch(ctx context.Context, branchID string) ([]*domain.InventoryRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("branch_id, product_id, quantity, updated_at").
		From("inventory_records").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.InventoryRecord, 0)
	for rows.Next() {
		var rec domain.InventoryRecord
		if err := rows.Scan(&rec.BranchID, &rec.ProductID, &rec.Quantity, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByBranch - scan row: %v", ErrScanRow, err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// GetLowStock возвращает позиции филиала с остатком ниже порога дозаказа
func (r *Repository) GetLowStock(ctx context.Context, branchID string, threshold int) ([]*domain.LowStockRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("i.branch_id", "i.product_id", "p.name", "i.quantity").
		From("inventory_records i").
		Join("products p ON p.id = i.product_id").
		Where(squirrel.Eq{"i.branch_id": branchID}).
		Where(squirrel.Lt{"i.quantity": threshold}).
		OrderBy("i.quantity ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLowStock - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLowStock - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.LowStockRecord, 0)
	for rows.Next() {
		var rec domain.LowStockRecord
		if err := rows.Scan(&rec.BranchID, &rec.ProductID, &rec.ProductName, &rec.Quantity); err != nil {
			return nil, fmt.Errorf("%w: GetLowStock - scan row: %v", ErrScanRow, err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLowStock - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgCheckViolation
	}
	return false
}
