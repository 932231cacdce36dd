package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// LedgerHandler serves read access to the ledger.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// List lists ledger records, filtered by the {number} URL parameter when
// mounted under an account.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.ledgerUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountNumber: chi.URLParam(r, "number"),
		Limit:         parseIntQuery(r, "limit", usecase.DefaultPageLimit),
		Offset:        parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, r, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(records),
		Total:        int64(len(records)),
	})
}
