package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return newLedgerRepository(pool)
}

func newLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// List returns ledger records in insertion order. A non-positive limit
// returns the whole ledger.
func (r *LedgerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, generated.ListTransactionsParams{
		Limit:  int32(max(limit, 0)),
		Offset: int32(max(offset, 0)),
	})
	if err != nil {
		return nil, storageError(err)
	}

	return rowsToTransactions(rows)
}

// ListByAccount returns the records where number is the sender or the recipient.
func (r *LedgerRepository) ListByAccount(ctx context.Context, number string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByAccount(ctx, generated.ListTransactionsByAccountParams{
		AccountNumber: number,
		Limit:         int32(max(limit, 0)),
		Offset:        int32(max(offset, 0)),
	})
	if err != nil {
		return nil, storageError(err)
	}

	return rowsToTransactions(rows)
}

func rowsToTransactions(rows []generated.Transaction) ([]*domain.Transaction, error) {
	records := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		record, err := rowToTransaction(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func rowToTransaction(row generated.Transaction) (*domain.Transaction, error) {
	typ, err := domain.ParseTransactionType(int(row.TypeID))
	if err != nil {
		return nil, storageError(err)
	}

	parties, err := domain.PartiesFor(typ, row.SenderAccountNumber, row.RecipientAccountNumber)
	if err != nil {
		return nil, storageError(err)
	}

	return &domain.Transaction{
		ID:          row.ID,
		Timestamp:   row.Timestamp.UTC(),
		Parties:     parties,
		Amount:      row.Amount,
		Description: row.Description,
	}, nil
}

func transactionToParams(record *domain.Transaction) generated.InsertTransactionParams {
	params := generated.InsertTransactionParams{
		ID:          record.ID,
		TypeID:      int32(record.Type().Code()),
		Amount:      record.Amount,
		Description: record.Description,
		Timestamp:   record.Timestamp,
	}

	if sender, ok := record.SenderAccountNumber(); ok {
		params.SenderAccountNumber = &sender
	}

	if recipient, ok := record.RecipientAccountNumber(); ok {
		params.RecipientAccountNumber = &recipient
	}

	return params
}
