package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	"github.com/m04kA/PetCare-PortalService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-PortalService/pkg/psqlbuilder"
)

const orderColumns = `id, customer_id, branch_id, subtotal, tax, loyalty_discount,
loyalty_points_applied, total, status, created_at`

// Repository репозиторий заказов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заказ вместе с позициями.
// Вызывается только внутри транзакции оформления заказа: заказ и его
// позиции должны появиться атомарно вместе со списанием остатков.
func (r *Repository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"id",
			"customer_id",
			"branch_id",
			"subtotal",
			"tax",
			"loyalty_discount",
			"loyalty_points_applied",
			"total",
			"status",
		).
		Values(
			o.ID,
			o.CustomerID,
			o.BranchID,
			o.Subtotal,
			o.Tax,
			o.LoyaltyDiscount,
			o.LoyaltyPointsApplied,
			o.Total,
			o.Status,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	for i := range o.Items {
		item := &o.Items[i]

		itemQuery, itemArgs, err := psqlbuilder.Insert("order_items").
			Columns("id", "order_id", "item_id", "item_name", "quantity", "unit_price", "total").
			Values(item.ID, o.ID, item.ItemID, item.ItemName, item.Quantity, item.UnitPrice, item.Total).
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Create - build item insert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, itemQuery, itemArgs...); err != nil {
			return nil, fmt.Errorf("%w: Create - execute item insert: %v", ErrExecQuery, err)
		}
	}

	return o, nil
}

// GetByID получает заказ с позициями
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.Order
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.CustomerID,
		&o.BranchID,
		&o.Subtotal,
		&o.Tax,
		&o.LoyaltyDiscount,
		&o.LoyaltyPointsApplied,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	items, err := r.getItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

// GetByCustomer получает заказы клиента, сначала новые (без позиций)
func (r *Repository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns).
		From("orders").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.BranchID,
			&o.Subtotal,
			&o.Tax,
			&o.LoyaltyDiscount,
			&o.LoyaltyPointsApplied,
			&o.Total,
			&o.Status,
			&o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCustomer - scan row: %v", ErrScanRow, err)
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}

func (r *Repository) getItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "item_id", "item_name", "quantity", "unit_price", "total").
		From("order_items").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("item_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.ItemID, &item.ItemName, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("%w: getItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
