package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// AccountRepository defines unlocked data access for accounts. It never takes
// part in the locking protocol.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// LedgerRepository defines read access to the ledger.
type LedgerRepository interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error)
	ListByAccount(ctx context.Context, number string, limit, offset int) ([]*domain.Transaction, error)
}

// LockedAccountStore is the account store bound to one unit of work.
type LockedAccountStore interface {
	// GetByNumber is a consistent read that takes no lock.
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	// GetByNumberForUpdate takes an exclusive row lock held until the unit of
	// work commits or rolls back. Changes made to the returned account are
	// persisted on commit.
	GetByNumberForUpdate(ctx context.Context, number string) (*domain.Account, error)
}

// LedgerWriter stages ledger records in the open unit of work.
type LedgerWriter interface {
	Append(ctx context.Context, tx *domain.Transaction) error
}

// UnitOfWork binds exactly one database transaction to one logical operation.
//
// Idle -> Begin -> Active -> Commit|Rollback -> Idle. Close moves any state
// to Disposed, after which every call fails with domain.ErrUnitOfWorkDisposed.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit flushes pending mutations and commits. On failure it rolls back
	// before returning the original error. The unit of work is Idle afterwards
	// in all cases.
	Commit(ctx context.Context) error
	// Rollback discards pending mutations. It is a no-op when Idle and
	// swallows errors raised by the driver while rolling back.
	Rollback(ctx context.Context) error
	// Close rolls back any open transaction and releases the connection.
	Close(ctx context.Context)

	Accounts() LockedAccountStore
	Ledger() LedgerWriter
}

// UnitOfWorkFactory creates a request-scoped UnitOfWork. Instances must not
// be shared between concurrent callers.
type UnitOfWorkFactory interface {
	New(ctx context.Context) (UnitOfWork, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNumberGenerator generates human-referenceable account numbers.
type AccountNumberGenerator interface {
	GenerateAccountNumber() string
}

// FundsMetrics records the outcome of funds movements.
type FundsMetrics interface {
	ObserveMovement(operation string, amount decimal.Decimal, duration time.Duration, err error)
}

// AccountMetrics records account lifecycle events.
type AccountMetrics interface {
	ObserveAccountCreated()
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete drops a key so that a failed request can be retried.
	Delete(ctx context.Context, key string) error
}
