// Package memory is a process-local implementation of the account and ledger
// stores. Row locks are modelled with one lock token per account number.
package memory

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// Store holds committed accounts and ledger records.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	numbers  []string
	ledger   []*domain.Transaction
	txIDs    map[string]struct{}

	locksMu sync.Mutex
	locks   map[string]chan struct{}

	logger zerolog.Logger
}

// NewStore creates an empty Store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		txIDs:    make(map[string]struct{}),
		locks:    make(map[string]chan struct{}),
		logger:   logger,
	}
}

// Accounts returns the unlocked account repository view of the store.
func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

// Ledger returns the ledger repository view of the store.
func (s *Store) Ledger() *LedgerRepository {
	return &LedgerRepository{store: s}
}

// New implements usecase.UnitOfWorkFactory.
func (s *Store) New(ctx context.Context) (usecase.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return newUnitOfWork(s), nil
}

func (s *Store) lockToken(number string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	token, ok := s.locks[number]
	if !ok {
		token = make(chan struct{}, 1)
		s.locks[number] = token
	}

	return token
}

// acquire blocks until the row lock for number is free or ctx is done.
func (s *Store) acquire(ctx context.Context, number string) error {
	select {
	case s.lockToken(number) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release(number string) {
	<-s.lockToken(number)
}

func (s *Store) exists(number string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[number]
	return ok
}

func (s *Store) get(number string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return account.Clone(), nil
}

// apply publishes the balances and records of a unit of work in one step,
// enforcing the same constraints as the database schema.
func (s *Store) apply(balances map[string]*domain.Account, records []*domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for number, working := range balances {
		if _, ok := s.accounts[number]; !ok {
			return storageFailure("account %s vanished", number)
		}
		if err := checkBalance(number, working.Balance); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if !record.Amount.IsPositive() {
			return storageFailure("non-positive amount in transaction %s", record.ID)
		}
		if !fitsNumeric(record.Amount) {
			return storageFailure("amount %s of transaction %s does not fit NUMERIC(20,2)", record.Amount, record.ID)
		}
		if _, dup := s.txIDs[record.ID]; dup {
			return storageFailure("duplicate transaction id %s", record.ID)
		}
		if _, dup := seen[record.ID]; dup {
			return storageFailure("duplicate transaction id %s", record.ID)
		}
		seen[record.ID] = struct{}{}
	}

	for number, working := range balances {
		s.accounts[number].Balance = working.Balance
	}

	for _, record := range records {
		s.ledger = append(s.ledger, record)
		s.txIDs[record.ID] = struct{}{}
	}

	return nil
}

func checkBalance(number string, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return storageFailure("negative balance for account %s", number)
	}
	if !fitsNumeric(balance) {
		return storageFailure("balance %s of account %s does not fit NUMERIC(20,2)", balance, number)
	}
	return nil
}

// fitsNumeric reports whether d is stored exactly by a NUMERIC(20,2) column:
// no more than two fractional digits and eighteen integer digits.
func fitsNumeric(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(domain.MoneyScale)) &&
		d.Abs().LessThan(decimal.New(1, domain.MaxMoneyIntegerDigits))
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}

	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	out := make([]T, len(items))
	copy(out, items)

	return out
}
