package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/postgres/generated"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepository(pool)
}

func newAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	err := r.queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:         account.ID,
		Number:     account.Number,
		HolderName: account.HolderName,
		Balance:    account.Balance,
		CreatedAt:  account.CreatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountExists
		}
		return storageError(err)
	}

	return nil
}

// GetByNumber retrieves an account by number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return getAccountByNumber(ctx, r.queries, number)
}

// List lists accounts with pagination. A non-positive limit returns all rows.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Limit:  int32(max(limit, 0)),
		Offset: int32(max(offset, 0)),
	})
	if err != nil {
		return nil, storageError(err)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func getAccountByNumber(ctx context.Context, q *generated.Queries, number string) (*domain.Account, error) {
	row, err := q.GetAccountByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, storageError(err)
	}

	return rowToAccount(row), nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:         row.ID,
		Number:     row.Number,
		HolderName: row.HolderName,
		Balance:    row.Balance,
		CreatedAt:  row.CreatedAt.UTC(),
	}
}
