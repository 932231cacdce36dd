package handler

import (
	"context"
	"net/http"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// FundsService defines the behavior needed by FundsHandler.
type FundsService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
}

// Retrier re-runs an operation that failed on a transient lock conflict.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// FundsHandler handles funds movement requests.
type FundsHandler struct {
	fundsUC FundsService
	retrier Retrier
}

// NewFundsHandler creates a new FundsHandler. retrier may be nil.
func NewFundsHandler(fundsUC FundsService, retrier Retrier) *FundsHandler {
	return &FundsHandler{fundsUC: fundsUC, retrier: retrier}
}

// Transfer moves funds between two accounts.
func (h *FundsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.run(w, r, "failed to transfer funds", func(ctx context.Context) (*domain.Transaction, error) {
		return h.fundsUC.Transfer(ctx, req.ToUseCaseInput())
	})
}

// Withdraw debits an account.
func (h *FundsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.AccountMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.run(w, r, "failed to withdraw funds", func(ctx context.Context) (*domain.Transaction, error) {
		return h.fundsUC.Withdraw(ctx, req.ToWithdrawInput())
	})
}

// Deposit credits an account.
func (h *FundsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.AccountMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.run(w, r, "failed to deposit funds", func(ctx context.Context) (*domain.Transaction, error) {
		return h.fundsUC.Deposit(ctx, req.ToDepositInput())
	})
}

func (h *FundsHandler) run(w http.ResponseWriter, r *http.Request, message string, op func(context.Context) (*domain.Transaction, error)) {
	ctx := r.Context()

	var record *domain.Transaction
	attempt := func() error {
		var err error
		record, err = op(ctx)
		return err
	}

	var err error
	if h.retrier != nil {
		err = h.retrier.Retry(ctx, attempt)
	} else {
		err = attempt()
	}

	if err != nil {
		writeDomainError(w, r, message, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}
