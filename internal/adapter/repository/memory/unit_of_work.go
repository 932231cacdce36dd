package memory

import (
	"context"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// UnitOfWork implements usecase.UnitOfWork against a Store. Locked accounts
// are working copies; they and the staged records become visible only when
// the unit of work commits. A UnitOfWork is not safe for concurrent use.
type UnitOfWork struct {
	store    *Store
	active   bool
	disposed bool
	held     []string
	tracked  map[string]*domain.Account
	staged   []*domain.Transaction
}

func newUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{
		store:   store,
		tracked: make(map[string]*domain.Account),
	}
}

// Begin starts a new unit of work.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.disposed {
		return domain.ErrUnitOfWorkDisposed
	}

	if u.active {
		return domain.ErrUnitOfWorkInProgress
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	u.active = true

	return nil
}

// Commit publishes the working copies and staged records, then releases
// every row lock.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.disposed {
		return domain.ErrUnitOfWorkDisposed
	}

	if !u.active {
		return domain.ErrNoActiveTransaction
	}

	defer u.reset()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := u.store.apply(u.tracked, u.staged); err != nil {
		u.store.logger.Warn().Err(err).Msg("commit rejected")
		return err
	}

	return nil
}

// Rollback discards the working copies and staged records.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.disposed {
		return domain.ErrUnitOfWorkDisposed
	}

	if u.active {
		u.reset()
	}

	return nil
}

// Close rolls back any open unit of work. It is idempotent.
func (u *UnitOfWork) Close(ctx context.Context) {
	if u.disposed {
		return
	}

	if u.active {
		u.reset()
	}

	u.disposed = true
}

// Accounts returns the account store bound to this unit of work.
func (u *UnitOfWork) Accounts() usecase.LockedAccountStore {
	return lockedAccounts{u: u}
}

// Ledger returns the ledger writer bound to this unit of work.
func (u *UnitOfWork) Ledger() usecase.LedgerWriter {
	return ledgerWriter{u: u}
}

func (u *UnitOfWork) reset() {
	for i := len(u.held) - 1; i >= 0; i-- {
		u.store.release(u.held[i])
	}

	u.active = false
	u.held = nil
	u.tracked = make(map[string]*domain.Account)
	u.staged = nil
}

type lockedAccounts struct {
	u *UnitOfWork
}

func (a lockedAccounts) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if a.u.disposed {
		return nil, domain.ErrUnitOfWorkDisposed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return a.u.store.get(number)
}

func (a lockedAccounts) GetByNumberForUpdate(ctx context.Context, number string) (*domain.Account, error) {
	u := a.u
	if u.disposed {
		return nil, domain.ErrUnitOfWorkDisposed
	}

	if !u.active {
		return nil, domain.ErrNoActiveTransaction
	}

	if account, ok := u.tracked[number]; ok {
		return account, nil
	}

	if !u.store.exists(number) {
		return nil, domain.ErrAccountNotFound
	}

	if err := u.store.acquire(ctx, number); err != nil {
		return nil, err
	}
	u.held = append(u.held, number)

	// Re-read under the lock; the previous holder may have committed.
	account, err := u.store.get(number)
	if err != nil {
		return nil, err
	}

	u.tracked[number] = account

	return account, nil
}

type ledgerWriter struct {
	u *UnitOfWork
}

func (l ledgerWriter) Append(ctx context.Context, record *domain.Transaction) error {
	u := l.u
	if u.disposed {
		return domain.ErrUnitOfWorkDisposed
	}

	if !u.active {
		return domain.ErrNoActiveTransaction
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := record.Validate(); err != nil {
		return err
	}

	u.staged = append(u.staged, record)

	return nil
}
