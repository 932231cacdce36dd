package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/postgres/generated"
	"github.com/iho/bankcore/internal/usecase"
)

// rollbackTimeout bounds rollbacks, which run detached from the caller's
// cancellation so that row locks are always released.
const rollbackTimeout = 5 * time.Second

// pgxConn is a dedicated connection that can start transactions.
type pgxConn interface {
	generated.DBTX
	Begin(context.Context) (pgx.Tx, error)
}

// UnitOfWorkFactory implements usecase.UnitOfWorkFactory. Each unit of work
// holds its own pooled connection until it is closed.
type UnitOfWorkFactory struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory.
func NewUnitOfWorkFactory(pool *pgxpool.Pool, logger zerolog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{pool: pool, logger: logger}
}

// New acquires a connection and wraps it in an idle unit of work.
func (f *UnitOfWorkFactory) New(ctx context.Context) (usecase.UnitOfWork, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	return newUnitOfWork(conn, conn.Release, f.logger), nil
}

type trackedAccount struct {
	account *domain.Account
	loaded  decimal.Decimal
}

// UnitOfWork implements usecase.UnitOfWork on top of a pgx transaction.
// Accounts locked through it are tracked and their changed balances are
// written, together with the staged ledger records, when it commits.
// A UnitOfWork is not safe for concurrent use.
type UnitOfWork struct {
	conn     pgxConn
	release  func()
	tx       pgx.Tx
	logger   zerolog.Logger
	tracked  map[string]*trackedAccount
	order    []string
	staged   []*domain.Transaction
	disposed bool
}

func newUnitOfWork(conn pgxConn, release func(), logger zerolog.Logger) *UnitOfWork {
	return &UnitOfWork{
		conn:    conn,
		release: release,
		logger:  logger,
		tracked: make(map[string]*trackedAccount),
	}
}

// Begin starts a new transaction.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.disposed {
		return domain.ErrUnitOfWorkDisposed
	}

	if u.tx != nil {
		return domain.ErrUnitOfWorkInProgress
	}

	tx, err := u.conn.Begin(ctx)
	if err != nil {
		return storageError(err)
	}

	u.tx = tx

	return nil
}

// Commit writes pending mutations and commits the transaction.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.disposed {
		return domain.ErrUnitOfWorkDisposed
	}

	if u.tx == nil {
		return domain.ErrNoActiveTransaction
	}

	defer u.reset()

	if err := u.flush(ctx); err != nil {
		u.rollbackQuietly(ctx)
		return err
	}

	if err := u.tx.Commit(ctx); err != nil {
		u.rollbackQuietly(ctx)
		return storageError(err)
	}

	return nil
}

// Rollback discards the open transaction, if any.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.disposed {
		return domain.ErrUnitOfWorkDisposed
	}

	if u.tx == nil {
		return nil
	}

	u.rollbackQuietly(ctx)
	u.reset()

	return nil
}

// Close rolls back any open transaction and returns the connection to the pool.
func (u *UnitOfWork) Close(ctx context.Context) {
	if u.disposed {
		return
	}

	if u.tx != nil {
		u.rollbackQuietly(ctx)
		u.reset()
	}

	if u.release != nil {
		u.release()
	}

	u.disposed = true
}

// Accounts returns the account store bound to this unit of work.
func (u *UnitOfWork) Accounts() usecase.LockedAccountStore {
	return uowAccounts{u: u}
}

// Ledger returns the ledger writer bound to this unit of work.
func (u *UnitOfWork) Ledger() usecase.LedgerWriter {
	return uowLedger{u: u}
}

func (u *UnitOfWork) flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q := generated.New(u.tx)

	for _, number := range u.order {
		t := u.tracked[number]
		if t.account.Balance.Equal(t.loaded) {
			continue
		}

		err := q.UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
			ID:      t.account.ID,
			Balance: t.account.Balance,
		})
		if err != nil {
			return storageError(err)
		}
	}

	for _, record := range u.staged {
		if err := q.InsertTransaction(ctx, transactionToParams(record)); err != nil {
			return storageError(err)
		}
	}

	return nil
}

func (u *UnitOfWork) rollbackQuietly(ctx context.Context) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	if err := u.tx.Rollback(rctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.logger.Warn().Err(err).Msg("rollback failed")
	}
}

func (u *UnitOfWork) reset() {
	u.tx = nil
	u.tracked = make(map[string]*trackedAccount)
	u.order = nil
	u.staged = nil
}

// querier reads through the open transaction when there is one.
func (u *UnitOfWork) querier() *generated.Queries {
	if u.tx != nil {
		return generated.New(u.tx)
	}
	return generated.New(u.conn)
}

type uowAccounts struct {
	u *UnitOfWork
}

// GetByNumber reads an account without locking it.
func (a uowAccounts) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if a.u.disposed {
		return nil, domain.ErrUnitOfWorkDisposed
	}

	return getAccountByNumber(ctx, a.u.querier(), number)
}

// GetByNumberForUpdate checks that the account exists, then locks its row
// with SELECT ... FOR UPDATE.
func (a uowAccounts) GetByNumberForUpdate(ctx context.Context, number string) (*domain.Account, error) {
	u := a.u
	if u.disposed {
		return nil, domain.ErrUnitOfWorkDisposed
	}

	if u.tx == nil {
		return nil, domain.ErrNoActiveTransaction
	}

	if t, ok := u.tracked[number]; ok {
		return t.account, nil
	}

	q := generated.New(u.tx)

	exists, err := q.AccountExists(ctx, number)
	if err != nil {
		return nil, storageError(err)
	}

	if !exists {
		return nil, domain.ErrAccountNotFound
	}

	row, err := q.GetAccountByNumberForUpdate(ctx, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, storageError(err)
	}

	account := rowToAccount(row)
	u.tracked[number] = &trackedAccount{account: account, loaded: account.Balance}
	u.order = append(u.order, number)

	return account, nil
}

type uowLedger struct {
	u *UnitOfWork
}

// Append stages a ledger record; it is inserted when the unit of work commits.
func (l uowLedger) Append(ctx context.Context, record *domain.Transaction) error {
	u := l.u
	if u.disposed {
		return domain.ErrUnitOfWorkDisposed
	}

	if u.tx == nil {
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
