package memory

import (
	"context"

	"github.com/iho/bankcore/internal/domain"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.Number]; ok {
		return domain.ErrAccountExists
	}

	if err := checkBalance(account.Number, account.Balance); err != nil {
		return err
	}

	s.accounts[account.Number] = account.Clone()
	s.numbers = append(s.numbers, account.Number)

	return nil
}

// GetByNumber returns a copy of the committed account.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.store.get(number)
}

// List returns accounts in creation order. A non-positive limit returns all.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	numbers := page(s.numbers, limit, offset)
	accounts := make([]*domain.Account, 0, len(numbers))
	for _, number := range numbers {
		accounts = append(accounts, s.accounts[number].Clone())
	}

	return accounts, nil
}

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// List returns ledger records in insertion order.
func (r *LedgerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return page(s.ledger, limit, offset), nil
}

// ListByAccount returns the records naming number as sender or recipient.
func (r *LedgerRepository) ListByAccount(ctx context.Context, number string, limit, offset int) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.Transaction
	for _, record := range s.ledger {
		if record.Involves(number) {
			matched = append(matched, record)
		}
	}

	return page(matched, limit, offset), nil
}
