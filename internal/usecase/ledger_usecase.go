package usecase

import (
	"context"

	"github.com/iho/bankcore/internal/domain"
)

// LedgerUseCase exposes read access to the ledger.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ListTransactionsInput represents input for listing ledger records.
type ListTransactionsInput struct {
	AccountNumber string
	Limit         int
	Offset        int
}

// ListTransactions lists ledger records in insertion order, optionally
// restricted to one account.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := normalizePage(input.Limit, input.Offset)

	if input.AccountNumber == "" {
		return uc.ledgerRepo.List(ctx, limit, offset)
	}

	return uc.ledgerRepo.ListByAccount(ctx, input.AccountNumber, limit, offset)
}
