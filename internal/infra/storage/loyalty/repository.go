package loyalty

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	"github.com/m04kA/PetCare-PortalService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-PortalService/pkg/psqlbuilder"
)

const accountColumns = "id, customer_id, points, tier, total_spent, created_at, updated_at"

// Repository репозиторий аккаунтов лояльности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория лояльности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCustomer получает аккаунт лояльности клиента
func (r *Repository) GetByCustomer(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error) {
	return r.getByCustomer(ctx, customerID, false)
}

// GetByCustomerForUpdate получает аккаунт с блокировкой строки.
// Вызывается внутри транзакции оформления заказа: начисление баллов —
// это read-modify-write, строка должна быть захвачена на всё время операции.
func (r *Repository) GetByCustomerForUpdate(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error) {
	return r.getByCustomer(ctx, customerID, true)
}

func (r *Repository) getByCustomer(ctx context.Context, customerID string, forUpdate bool) (*domain.LoyaltyAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(accountColumns).
		From("loyalty_accounts").
		Where(squirrel.Eq{"customer_id": customerID})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	var account domain.LoyaltyAccount
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&account.ID,
		&account.CustomerID,
		&account.Points,
		&account.Tier,
		&account.TotalSpent,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByCustomer - scan account: %v", ErrScanRow, err)
	}

	return &account, nil
}

// Update сохраняет баллы, траты и уровень аккаунта
func (r *Repository) Update(ctx context.Context, account *domain.LoyaltyAccount) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("loyalty_accounts").
		Set("points", account.Points).
		Set("tier", account.Tier).
		Set("total_spent", account.TotalSpent).
		Set("updated_at", account.UpdatedAt).
		Where(squirrel.Eq{"id": account.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// Create создает аккаунт лояльности (ленивое создание при первой покупке)
func (r *Repository) Create(ctx context.Context, account *domain.LoyaltyAccount) (*domain.LoyaltyAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("loyalty_accounts").
		Columns("id", "customer_id", "points", "tier", "total_spent").
		Values(account.ID, account.CustomerID, account.Points, account.Tier, account.TotalSpent).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return account, nil
}
